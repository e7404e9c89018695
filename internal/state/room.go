package state

import (
	"errors"
	"fmt"
	"time"

	"github.com/anchal00/farkle/internal/apperrors"
	"github.com/anchal00/farkle/internal/farkle"
	"github.com/anchal00/farkle/internal/logger"
	"github.com/anchal00/farkle/parser"
)

const inboxSize = 64

type MemberState struct {
	PlayerId  string `json:"playerId"`
	Name      string `json:"name"`
	SeatIndex int    `json:"seatIndex"`
	Score     int    `json:"score"`
	Connected bool   `json:"connected"`
}

// RoomState is the full snapshot attached to broadcasts and sent on
// reconnect.
type RoomState struct {
	RoomId  string        `json:"roomId"`
	Seq     uint64        `json:"seq"`
	Players []MemberState `json:"players"`
	Game    farkle.State  `json:"game"`
}

type member struct {
	playerId string
	name     string
	conn     Conn
	stale    bool
	// gen invalidates grace timers armed before the latest reconnect.
	gen   uint64
	timer *time.Timer
}

type job struct {
	run    func() error
	result chan error
}

// Room owns one game and its seated members. All of its state is confined to
// the goroutine started by newRoom; everything else talks to it through Do.
type Room struct {
	Id       string
	Logger   logger.Logger
	registry *Registry
	game     *farkle.Game
	grace    time.Duration
	members  map[string]*member
	seq      uint64
	inbox    chan job
	done     chan struct{}
	closed   bool
}

func newRoom(id string, registry *Registry, game *farkle.Game, grace time.Duration, log logger.Logger) *Room {
	r := &Room{
		Id:       id,
		Logger:   log,
		registry: registry,
		game:     game,
		grace:    grace,
		members:  make(map[string]*member),
		inbox:    make(chan job, inboxSize),
		done:     make(chan struct{}),
	}
	go r.loop()
	return r
}

func (r *Room) loop() {
	defer close(r.done)
	for {
		j := <-r.inbox
		j.result <- r.runJob(j.run)
		if r.closed {
			return
		}
	}
}

func (r *Room) runJob(run func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = apperrors.Internal("room job panicked", fmt.Errorf("%v", p))
		}
		if err != nil && apperrors.KindOf(err) == apperrors.KindInternal && !r.closed {
			r.degrade(err)
		}
	}()
	return run()
}

// Do runs fn on the room goroutine and waits for it. Jobs run one at a time in
// submission order. ErrRoomClosed is returned once the room has shut down.
func (r *Room) Do(fn func() error) error {
	j := job{run: fn, result: make(chan error, 1)}
	select {
	case r.inbox <- j:
	case <-r.done:
		return ErrRoomClosed
	}
	select {
	case err := <-j.result:
		return err
	case <-r.done:
		select {
		case err := <-j.result:
			return err
		default:
			return ErrRoomClosed
		}
	}
}

// Done is closed when the room goroutine exits.
func (r *Room) Done() <-chan struct{} {
	return r.done
}

func (r *Room) Join(playerId, name string, conn Conn) error {
	return r.Do(func() error { return r.join(playerId, name, conn) })
}

func (r *Room) Start(playerId string) error {
	return r.Do(func() error {
		if _, err := r.memberFor(playerId); err != nil {
			return err
		}
		return r.start()
	})
}

func (r *Room) Roll(playerId string) error {
	return r.Do(func() error {
		if _, err := r.memberFor(playerId); err != nil {
			return err
		}
		result, err := r.game.Roll(playerId)
		if err != nil {
			return err
		}
		r.broadcast(parser.EventRolled, parser.RolledPayload{
			PlayerId:  playerId,
			Dice:      result.Dice,
			Scorable:  result.Scorable,
			BestScore: result.BestScore,
		})
		if result.Bust != nil {
			r.Logger.Debug(fmt.Sprintf("Player %s busted", playerId))
			r.broadcastTurnEnded(*result.Bust)
		}
		return nil
	})
}

func (r *Room) HoldAndContinue(playerId string, indices []int) error {
	return r.Do(func() error {
		if _, err := r.memberFor(playerId); err != nil {
			return err
		}
		hold, err := r.game.HoldAndContinue(playerId, indices)
		if err != nil {
			return err
		}
		r.broadcastHeld(hold)
		return nil
	})
}

func (r *Room) Bank(playerId string, indices []int) error {
	return r.Do(func() error {
		if _, err := r.memberFor(playerId); err != nil {
			return err
		}
		result, err := r.game.Bank(playerId, indices)
		if err != nil {
			return err
		}
		if result.Hold != nil {
			r.broadcastHeld(*result.Hold)
		}
		r.broadcastTurnEnded(result.End)
		if result.Finished {
			r.finish(result.Winner, "target")
		}
		return nil
	})
}

func (r *Room) Leave(playerId string) error {
	return r.Do(func() error { return r.leave(playerId, "left") })
}

// MarkStale starts the reconnect grace period for a member whose connection
// dropped. It is a no-op if conn is no longer the member's connection.
func (r *Room) MarkStale(playerId string, conn Conn) error {
	return r.Do(func() error { return r.markStale(playerId, conn) })
}

// Resume reattaches a member to a new connection and sends it the full room
// state. It reports false when the player no longer holds a seat.
func (r *Room) Resume(playerId string, conn Conn) (bool, error) {
	var resumed bool
	err := r.Do(func() error {
		resumed = r.resume(playerId, conn)
		return nil
	})
	return resumed, err
}

func (r *Room) Shutdown(reason string) error {
	return r.Do(func() error {
		r.close(reason)
		return nil
	})
}

func (r *Room) State() (RoomState, error) {
	var state RoomState
	err := r.Do(func() error {
		state = r.snapshot()
		return nil
	})
	return state, err
}

func (r *Room) memberFor(playerId string) (*member, error) {
	m, ok := r.members[playerId]
	if !ok {
		return nil, ErrNotInRoom
	}
	return m, nil
}

func (r *Room) join(playerId, name string, conn Conn) error {
	if !r.registry.holdsSeatRequest(playerId, conn, r.Id) {
		return ErrSuperseded
	}
	seat, err := r.game.AddPlayer(playerId)
	if err != nil {
		return err
	}
	r.members[playerId] = &member{playerId: playerId, name: name, conn: conn}
	r.Logger.Info(fmt.Sprintf("Player %s took seat %d", playerId, seat))
	r.broadcast(parser.EventPlayerJoined, parser.PlayerJoinedPayload{
		PlayerId:  playerId,
		Name:      name,
		SeatIndex: seat,
	})
	if r.game.Full() {
		if err := r.start(); err != nil {
			r.Logger.Error("Failed to start full room", err)
		}
	}
	return nil
}

func (r *Room) start() error {
	if err := r.game.Start(); err != nil {
		return err
	}
	r.Logger.Info(fmt.Sprintf("Game started with %d players", len(r.game.Seats())))
	r.broadcast(parser.EventGameStarted, parser.GameStartedPayload{
		Order:           r.game.Seats(),
		CurrentPlayerId: r.game.Turn().PlayerID,
	})
	return nil
}

func (r *Room) leave(playerId, reason string) error {
	m, err := r.memberFor(playerId)
	if err != nil {
		return err
	}
	if m.timer != nil {
		m.timer.Stop()
	}
	delete(r.members, playerId)
	result, err := r.game.RemovePlayer(playerId)
	if err != nil {
		return apperrors.Internal(fmt.Sprintf("member %s has no seat", playerId), err)
	}
	r.registry.release(playerId, r.Id)
	r.Logger.Info(fmt.Sprintf("Player %s left (%s)", playerId, reason))

	payload := parser.PlayerLeftPayload{PlayerId: playerId, Reason: reason}
	if m.conn != nil {
		r.send(m.conn, parser.Event{Type: parser.EventPlayerLeft, RoomId: r.Id, Payload: payload})
	}
	r.broadcast(parser.EventPlayerLeft, payload)
	if result.Forfeit != nil {
		r.broadcastTurnEnded(*result.Forfeit)
	}
	if result.Finished && result.Winner != "" {
		r.finish(result.Winner, "forfeit")
		return nil
	}
	if len(r.members) == 0 {
		r.close("empty")
	}
	return nil
}

func (r *Room) markStale(playerId string, conn Conn) error {
	m, ok := r.members[playerId]
	if !ok {
		r.registry.release(playerId, r.Id)
		return nil
	}
	if m.conn != conn {
		return nil
	}
	m.stale = true
	m.conn = nil
	m.gen++
	gen := m.gen
	m.timer = time.AfterFunc(r.grace, func() {
		err := r.Do(func() error { return r.expire(playerId, gen) })
		if err != nil && !errors.Is(err, ErrRoomClosed) {
			r.Logger.Error(fmt.Sprintf("Failed to expire player %s", playerId), err)
		}
	})
	r.Logger.Info(fmt.Sprintf("Player %s disconnected, holding seat for %s", playerId, r.grace))
	r.broadcast(parser.EventPlayerDisconnected, parser.PlayerDisconnectedPayload{
		PlayerId:     playerId,
		GraceSeconds: r.grace.Seconds(),
	})
	return nil
}

func (r *Room) expire(playerId string, gen uint64) error {
	m, ok := r.members[playerId]
	if !ok || !m.stale || m.gen != gen {
		return nil
	}
	return r.leave(playerId, "expired")
}

func (r *Room) resume(playerId string, conn Conn) bool {
	m, ok := r.members[playerId]
	if !ok {
		return false
	}
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.gen++
	old, wasStale := m.conn, m.stale
	m.conn = conn
	m.stale = false
	if old != nil && old != conn {
		old.Close("superseded")
	}
	r.Logger.Info(fmt.Sprintf("Player %s resumed", playerId))
	state := r.snapshot()
	r.send(conn, parser.Event{
		Type:    parser.EventReconnected,
		RoomId:  r.Id,
		Payload: parser.ReconnectedPayload{RoomId: r.Id, FullState: state},
	})
	if wasStale {
		r.broadcast(parser.EventPlayerReconnected, parser.PlayerReconnectedPayload{PlayerId: playerId})
	}
	return true
}

func (r *Room) finish(winner, reason string) {
	r.Logger.Info(fmt.Sprintf("Game won by %s (%s)", winner, reason))
	r.broadcast(parser.EventGameFinished, parser.GameFinishedPayload{WinnerId: winner, Reason: reason})
	r.close("finished")
}

// close releases every member and unregisters the room. The loop exits after
// the current job.
func (r *Room) close(reason string) {
	for id, m := range r.members {
		if m.timer != nil {
			m.timer.Stop()
		}
		if m.conn != nil {
			r.send(m.conn, parser.Event{
				Type:    parser.EventRoomClosed,
				RoomId:  r.Id,
				Payload: parser.RoomClosedPayload{Reason: reason},
			})
		}
		r.registry.release(id, r.Id)
	}
	r.members = make(map[string]*member)
	r.closed = true
	r.registry.removeRoom(r)
	r.Logger.Info(fmt.Sprintf("Room closed (%s)", reason))
}

func (r *Room) degrade(cause error) {
	r.Logger.Error("Room state is inconsistent, closing room", cause)
	conns := make([]Conn, 0, len(r.members))
	for _, m := range r.members {
		if m.conn != nil {
			conns = append(conns, m.conn)
			r.send(m.conn, parser.ErrorEvent(string(apperrors.CodeInternal), "room failed, please rejoin"))
		}
	}
	r.close("degraded")
	for _, conn := range conns {
		conn.Close("degraded")
	}
}

func (r *Room) snapshot() RoomState {
	game := r.game.Snapshot()
	players := make([]MemberState, 0, len(game.Seats))
	for _, seat := range game.Seats {
		state := MemberState{PlayerId: seat.PlayerID, SeatIndex: seat.Seat, Score: seat.Score}
		if m, ok := r.members[seat.PlayerID]; ok {
			state.Name = m.name
			state.Connected = !m.stale
		}
		players = append(players, state)
	}
	return RoomState{RoomId: r.Id, Seq: r.seq, Players: players, Game: game}
}

func (r *Room) broadcast(eventType string, payload any) {
	r.seq++
	event := parser.Event{
		Type:    eventType,
		RoomId:  r.Id,
		Seq:     r.seq,
		Payload: payload,
		State:   r.snapshot(),
	}
	for _, m := range r.members {
		if m.conn != nil {
			r.send(m.conn, event)
		}
	}
}

func (r *Room) broadcastHeld(hold farkle.HoldResult) {
	r.broadcast(parser.EventHeld, parser.HeldPayload{
		PlayerId:      hold.PlayerID,
		HeldDice:      hold.Held,
		HeldScore:     hold.HeldScore,
		RemainingDice: hold.Remaining,
		RunningScore:  hold.RunningScore,
		HotDice:       hold.HotDice,
	})
}

func (r *Room) broadcastTurnEnded(end farkle.TurnEnd) {
	r.broadcast(parser.EventTurnEnded, parser.TurnEndedPayload{
		PlayerId:     end.PlayerID,
		Reason:       string(end.Reason),
		BankedScore:  end.Banked,
		TotalScore:   end.Total,
		NextPlayerId: end.Next,
	})
}

func (r *Room) send(conn Conn, event parser.Event) {
	if err := conn.Send(event); err != nil {
		r.Logger.Debug(fmt.Sprintf("Dropped %s event for connection %s: %s", event.Type, conn.ID(), err.Error()))
	}
}
