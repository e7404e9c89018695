package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/anchal00/farkle/internal/apperrors"
	"github.com/anchal00/farkle/internal/logger"
	"github.com/anchal00/farkle/internal/state"
	"github.com/anchal00/farkle/parser"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var (
	errAlreadyConnected = apperrors.New(apperrors.KindRequest, apperrors.CodeBadRequest, "connection is already authenticated")
	errUnknownEvent     = apperrors.New(apperrors.KindRequest, apperrors.CodeUnknownEvent, "unknown event type")
)

// Dispatcher routes inbound events to the registry or the sender's room.
// Successful actions are broadcast by the room; failures go back to the
// sender only.
type Dispatcher struct {
	Registry *state.Registry
	Logger   logger.Logger
}

func (d *Dispatcher) Dispatch(ctx context.Context, conn state.Conn, data []byte) {
	envelope, err := parser.ParseEnvelope(data)
	eventType := "invalid"
	if err == nil {
		eventType = envelope.Type
	}
	_, span := tracer.Start(ctx, "dispatch "+eventType)
	defer span.End()
	span.SetAttributes(attribute.String("conn.id", conn.ID()))

	if err == nil {
		err = d.route(conn, envelope)
	}
	if err == nil {
		return
	}
	span.SetStatus(codes.Error, string(apperrors.CodeOf(err)))
	d.reject(conn, eventType, err)
}

func (d *Dispatcher) route(conn state.Conn, envelope *parser.Envelope) error {
	switch envelope.Type {
	case parser.EventPing:
		_ = conn.Send(parser.Event{Type: parser.EventPong})
		return nil
	case parser.EventConnect:
		return errAlreadyConnected
	case parser.EventJoinRoom:
		request, err := parser.ParseJoinRoomRequest(envelope.Payload)
		if err != nil {
			return err
		}
		_, err = d.Registry.JoinRoom(conn, *request)
		return err
	case parser.EventLeaveRoom:
		return d.Registry.LeaveRoom(conn)
	case parser.EventStartGame:
		return d.inRoom(conn, func(playerId string, room *state.Room) error {
			return room.Start(playerId)
		})
	case parser.EventRoll:
		return d.inRoom(conn, func(playerId string, room *state.Room) error {
			return room.Roll(playerId)
		})
	case parser.EventHoldAndContinue:
		request, err := parser.ParseHoldRequest(envelope.Payload)
		if err != nil {
			return err
		}
		return d.inRoom(conn, func(playerId string, room *state.Room) error {
			return room.HoldAndContinue(playerId, request.HeldIndices)
		})
	case parser.EventBank:
		request, err := parser.ParseBankRequest(envelope.Payload)
		if err != nil {
			return err
		}
		return d.inRoom(conn, func(playerId string, room *state.Room) error {
			return room.Bank(playerId, request.HeldIndices)
		})
	}
	return errUnknownEvent
}

func (d *Dispatcher) inRoom(conn state.Conn, action func(playerId string, room *state.Room) error) error {
	playerId, room, err := d.Registry.Resolve(conn)
	if err != nil {
		return err
	}
	if err := action(playerId, room); err != nil {
		if errors.Is(err, state.ErrRoomClosed) {
			return state.ErrNotInRoom
		}
		return err
	}
	return nil
}

func (d *Dispatcher) reject(conn state.Conn, eventType string, err error) {
	message := "internal error"
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	if apperrors.KindOf(err) == apperrors.KindInternal {
		d.Logger.Error(fmt.Sprintf("Event %s from %s failed", eventType, conn.ID()), err)
	} else {
		d.Logger.Debug(fmt.Sprintf("Rejected %s from %s: %s", eventType, conn.ID(), err.Error()))
	}
	_ = conn.Send(parser.ErrorEvent(string(apperrors.CodeOf(err)), message))
}
