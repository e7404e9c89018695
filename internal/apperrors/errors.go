// Package apperrors defines the error taxonomy shared by the gateway, the
// session registry and the rules engine. Every error that can reach a client
// carries a Kind (which decides how the server reacts) and a Code (the string
// sent on the wire).
package apperrors

import (
	"errors"
)

// Kind groups codes by the server's reaction to them.
type Kind string

const (
	// KindAuth rejects a connection attempt. The socket is closed.
	KindAuth Kind = "auth"
	// KindRoom rejects a membership request. The connection stays open.
	KindRoom Kind = "room"
	// KindRule rejects a game action. Room state is untouched.
	KindRule Kind = "rule"
	// KindRequest rejects an unparseable or unknown inbound event.
	KindRequest Kind = "request"
	// KindInternal degrades the room that produced it.
	KindInternal Kind = "internal"
)

// Code is the machine-readable error identifier sent to clients.
type Code string

const (
	CodeMalformed        Code = "malformed"
	CodeExpired          Code = "expired"
	CodeInvalidSignature Code = "invalidSignature"

	CodeRoomNotFound     Code = "roomNotFound"
	CodeRoomFull         Code = "roomFull"
	CodeRoomInProgress   Code = "roomInProgress"
	CodeAlreadyInRoom    Code = "alreadyInRoom"
	CodeNotInRoom        Code = "notInRoom"
	CodeNotEnoughPlayers Code = "notEnoughPlayers"

	CodeInvalidSelection Code = "invalidSelection"
	CodeNotYourTurn      Code = "notYourTurn"
	CodeWrongState       Code = "wrongState"
	CodeBelowThreshold   Code = "belowThreshold"
	CodeGameFinished     Code = "gameFinished"

	CodeBadRequest   Code = "badRequest"
	CodeUnknownEvent Code = "unknownEvent"

	CodeInternal Code = "internal"
)

// Error is a coded domain error.
type Error struct {
	Kind    Kind
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error carrying the same code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

func New(kind Kind, code Code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func Wrap(kind Kind, code Code, message string, cause error) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Cause: cause}
}

// Internal wraps an unexpected failure.
func Internal(message string, cause error) *Error {
	return Wrap(KindInternal, CodeInternal, message, cause)
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal
// for errors outside the taxonomy.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// CodeOf returns the code of the first *Error in err's chain, or CodeInternal.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}
