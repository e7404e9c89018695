package state

import "github.com/anchal00/farkle/parser"

// Conn is a live client connection as seen by rooms and the registry.
// Send must not block: implementations queue the event or fail.
type Conn interface {
	ID() string
	Send(event parser.Event) error
	Close(reason string)
}
