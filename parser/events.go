package parser

// Inbound event types.
const (
	EventConnect         = "connect"
	EventJoinRoom        = "joinRoom"
	EventStartGame       = "startGame"
	EventRoll            = "roll"
	EventHoldAndContinue = "holdAndContinue"
	EventBank            = "bank"
	EventLeaveRoom       = "leaveRoom"
	EventPing            = "ping"
)

// Outbound event types.
const (
	EventConnected          = "connected"
	EventPlayerJoined       = "playerJoined"
	EventGameStarted        = "gameStarted"
	EventRolled             = "rolled"
	EventHeld               = "held"
	EventTurnEnded          = "turnEnded"
	EventGameFinished       = "gameFinished"
	EventPlayerLeft         = "playerLeft"
	EventPlayerDisconnected = "playerDisconnected"
	EventPlayerReconnected  = "playerReconnected"
	EventReconnected        = "reconnected"
	EventRoomClosed         = "roomClosed"
	EventPong               = "pong"
	EventError              = "error"
)

// Event is an outbound server frame. Room broadcasts carry the room id, a
// per-room sequence number and the full room state after the change.
type Event struct {
	Type    string `json:"type"`
	RoomId  string `json:"roomId,omitempty"`
	Seq     uint64 `json:"seq,omitempty"`
	Payload any    `json:"payload,omitempty"`
	State   any    `json:"state,omitempty"`
}

type ConnectedPayload struct {
	PlayerId string `json:"playerId"`
	Name     string `json:"name"`
}

type PlayerJoinedPayload struct {
	PlayerId  string `json:"playerId"`
	Name      string `json:"name"`
	SeatIndex int    `json:"seatIndex"`
}

type GameStartedPayload struct {
	Order           []string `json:"order"`
	CurrentPlayerId string   `json:"currentPlayerId"`
}

type RolledPayload struct {
	PlayerId  string `json:"playerId"`
	Dice      []int  `json:"dice"`
	Scorable  bool   `json:"scorable"`
	BestScore int    `json:"bestScore"`
}

type HeldPayload struct {
	PlayerId      string `json:"playerId"`
	HeldDice      []int  `json:"heldDice"`
	HeldScore     int    `json:"heldScore"`
	RemainingDice int    `json:"remainingDice"`
	RunningScore  int    `json:"runningScore"`
	HotDice       bool   `json:"hotDice"`
}

type TurnEndedPayload struct {
	PlayerId     string `json:"playerId"`
	Reason       string `json:"reason"`
	BankedScore  int    `json:"bankedScore"`
	TotalScore   int    `json:"totalScore"`
	NextPlayerId string `json:"nextPlayerId,omitempty"`
}

type GameFinishedPayload struct {
	WinnerId string `json:"winnerId"`
	Reason   string `json:"reason"`
}

type PlayerLeftPayload struct {
	PlayerId string `json:"playerId"`
	Reason   string `json:"reason"`
}

type PlayerDisconnectedPayload struct {
	PlayerId     string  `json:"playerId"`
	GraceSeconds float64 `json:"graceSeconds"`
}

type PlayerReconnectedPayload struct {
	PlayerId string `json:"playerId"`
}

type ReconnectedPayload struct {
	RoomId    string `json:"roomId"`
	FullState any    `json:"fullState"`
}

type RoomClosedPayload struct {
	Reason string `json:"reason"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func ErrorEvent(code, message string) Event {
	return Event{Type: EventError, Payload: ErrorPayload{Code: code, Message: message}}
}
