package state

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/anchal00/farkle/internal/apperrors"
	"github.com/anchal00/farkle/internal/auth"
	"github.com/anchal00/farkle/internal/dice"
	"github.com/anchal00/farkle/internal/farkle"
	"github.com/anchal00/farkle/internal/logger"
	"github.com/anchal00/farkle/parser"
	"github.com/anchal00/farkle/utils"
)

const roomIdLength = 6

type Options struct {
	Rules farkle.Rules
	Grace time.Duration
	// NewRoller is called once per room.
	NewRoller func() (dice.Roller, error)
}

type session struct {
	playerId string
	name     string
	// conn is nil while the player is disconnected but still seated.
	conn   Conn
	roomId string
}

// Registry tracks which connection belongs to which player and which room
// each player sits in. Its mutex only guards the maps; it is never held while
// waiting on a room.
type Registry struct {
	Logger   logger.Logger
	opts     Options
	mu       sync.Mutex
	rooms    RoomStore
	sessions map[string]*session
	roster   map[string]*session
}

func NewRegistry(opts Options, rooms RoomStore) *Registry {
	if opts.NewRoller == nil {
		opts.NewRoller = func() (dice.Roller, error) { return dice.NewRandomRoller() }
	}
	return &Registry{
		Logger:   logger.New("registry"),
		opts:     opts,
		rooms:    rooms,
		sessions: make(map[string]*session),
		roster:   make(map[string]*session),
	}
}

// Connect registers an authenticated connection. A player already seated in a
// room is reattached to it; any older connection of the same player is closed.
func (g *Registry) Connect(conn Conn, identity auth.Identity) error {
	g.mu.Lock()
	sess, exists := g.sessions[identity.PlayerID]
	if !exists {
		sess = &session{playerId: identity.PlayerID}
		g.sessions[identity.PlayerID] = sess
	}
	if identity.Name != "" {
		sess.name = identity.Name
	}
	old := sess.conn
	if old != nil {
		delete(g.roster, old.ID())
	}
	sess.conn = conn
	g.roster[conn.ID()] = sess
	room, _ := g.rooms.GetRoom(sess.roomId)
	g.mu.Unlock()

	g.Logger.Info(fmt.Sprintf("Player %s connected on %s", identity.PlayerID, conn.ID()))
	resumed := false
	if room != nil {
		var err error
		resumed, err = room.Resume(identity.PlayerID, conn)
		if err != nil && !errors.Is(err, ErrRoomClosed) {
			return err
		}
	}
	if !resumed && old != nil && old != conn {
		old.Close("superseded")
	}
	return nil
}

// JoinRoom seats the connection's player in an existing room, or in a fresh
// one when the request names parser.NewRoomId.
func (g *Registry) JoinRoom(conn Conn, request parser.JoinRoomRequest) (string, error) {
	g.mu.Lock()
	sess, exists := g.roster[conn.ID()]
	if !exists {
		g.mu.Unlock()
		return "", ErrNotInRoom
	}
	if sess.roomId != "" {
		g.mu.Unlock()
		return "", ErrAlreadyInRoom
	}
	var (
		room    *Room
		created bool
		err     error
	)
	if request.RoomId == parser.NewRoomId {
		room, err = g.createRoomLocked(request)
		created = true
	} else if room, err = g.rooms.GetRoom(request.RoomId); err != nil {
		err = ErrRoomNotFound
	}
	if err != nil {
		g.mu.Unlock()
		return "", err
	}
	sess.roomId = room.Id
	playerId, name := sess.playerId, sess.name
	g.mu.Unlock()

	err = room.Join(playerId, name, conn)
	if err == nil {
		return room.Id, nil
	}
	if errors.Is(err, ErrRoomClosed) {
		err = ErrRoomNotFound
	}
	g.mu.Lock()
	if sess.roomId == room.Id {
		sess.roomId = ""
	}
	g.mu.Unlock()
	if created {
		if shutdownErr := room.Shutdown("empty"); shutdownErr != nil && !errors.Is(shutdownErr, ErrRoomClosed) {
			g.Logger.Error(fmt.Sprintf("Failed to close unused room %s", room.Id), shutdownErr)
		}
	}
	return "", err
}

func (g *Registry) createRoomLocked(request parser.JoinRoomRequest) (*Room, error) {
	rules := g.opts.Rules
	if request.MaxPlayers > 0 {
		rules.MaxPlayers = max(rules.MinPlayers, min(request.MaxPlayers, g.opts.Rules.MaxPlayers))
	}
	if request.TargetScore > 0 {
		rules.TargetScore = request.TargetScore
	}
	roller, err := g.opts.NewRoller()
	if err != nil {
		return nil, apperrors.Internal("failed to create dice roller", err)
	}
	roomId := utils.GetRandomRoomId(roomIdLength)
	for {
		if _, err := g.rooms.GetRoom(roomId); err != nil {
			break
		}
		roomId = utils.GetRandomRoomId(roomIdLength)
	}
	room := newRoom(roomId, g, farkle.NewGame(rules, roller), g.opts.Grace, logger.New("room").With("room", roomId))
	g.rooms.SetRoom(roomId, room)
	g.Logger.Info(fmt.Sprintf("Created room %s (max %d players, target %d)", roomId, rules.MaxPlayers, rules.TargetScore))
	return room, nil
}

func (g *Registry) LeaveRoom(conn Conn) error {
	playerId, room, err := g.Resolve(conn)
	if err != nil {
		return err
	}
	if err := room.Leave(playerId); err != nil {
		if errors.Is(err, ErrRoomClosed) {
			return ErrNotInRoom
		}
		return err
	}
	return nil
}

// Resolve returns the player behind conn and the room they are seated in.
func (g *Registry) Resolve(conn Conn) (string, *Room, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	sess, exists := g.roster[conn.ID()]
	if !exists || sess.roomId == "" {
		return "", nil, ErrNotInRoom
	}
	room, err := g.rooms.GetRoom(sess.roomId)
	if err != nil {
		return "", nil, ErrNotInRoom
	}
	return sess.playerId, room, nil
}

// Disconnect forgets conn. A seated player keeps the seat for the grace
// period; anyone else is dropped immediately.
func (g *Registry) Disconnect(conn Conn) {
	g.mu.Lock()
	sess, exists := g.roster[conn.ID()]
	if !exists {
		g.mu.Unlock()
		return
	}
	delete(g.roster, conn.ID())
	if sess.conn != conn {
		g.mu.Unlock()
		return
	}
	sess.conn = nil
	room, err := g.rooms.GetRoom(sess.roomId)
	if err != nil {
		sess.roomId = ""
		g.forgetLocked(sess)
		g.mu.Unlock()
		g.Logger.Info(fmt.Sprintf("Player %s disconnected", sess.playerId))
		return
	}
	g.mu.Unlock()

	if err := room.MarkStale(sess.playerId, conn); err != nil {
		if !errors.Is(err, ErrRoomClosed) {
			g.Logger.Error(fmt.Sprintf("Failed to hold seat for %s", sess.playerId), err)
		}
		g.mu.Lock()
		if sess.conn == nil {
			sess.roomId = ""
			g.forgetLocked(sess)
		}
		g.mu.Unlock()
	}
}

func (g *Registry) forgetLocked(sess *session) {
	if g.sessions[sess.playerId] == sess {
		delete(g.sessions, sess.playerId)
	}
}

// holdsSeatRequest reports whether conn is still the player's live connection
// and the player is still headed for roomId.
func (g *Registry) holdsSeatRequest(playerId string, conn Conn, roomId string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	sess, exists := g.sessions[playerId]
	return exists && sess.conn == conn && sess.roomId == roomId
}

// release clears a player's room membership. Called from the room goroutine.
func (g *Registry) release(playerId, roomId string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	sess, exists := g.sessions[playerId]
	if !exists || sess.roomId != roomId {
		return
	}
	sess.roomId = ""
	if sess.conn == nil {
		delete(g.sessions, playerId)
	}
}

func (g *Registry) removeRoom(room *Room) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rooms.DeleteRoom(room.Id, room)
}

// Room looks up a live room by id.
func (g *Registry) Room(roomId string) (*Room, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	room, err := g.rooms.GetRoom(roomId)
	if err != nil {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

type Stats struct {
	Rooms       int `json:"rooms"`
	Connections int `json:"connections"`
	Players     int `json:"players"`
}

func (g *Registry) Stats() Stats {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Stats{
		Rooms:       len(g.rooms.Rooms()),
		Connections: len(g.roster),
		Players:     len(g.sessions),
	}
}

// Shutdown closes every room, notifying seated players.
func (g *Registry) Shutdown() {
	g.mu.Lock()
	rooms := g.rooms.Rooms()
	g.mu.Unlock()
	for _, room := range rooms {
		if err := room.Shutdown("shutdown"); err != nil && !errors.Is(err, ErrRoomClosed) {
			g.Logger.Error(fmt.Sprintf("Failed to close room %s", room.Id), err)
		}
	}
	g.Logger.Info(fmt.Sprintf("Closed %d rooms", len(rooms)))
}
