package state

import "github.com/anchal00/farkle/internal/apperrors"

var (
	ErrRoomNotFound  = apperrors.New(apperrors.KindRoom, apperrors.CodeRoomNotFound, "room not found")
	ErrRoomClosed    = apperrors.New(apperrors.KindRoom, apperrors.CodeRoomNotFound, "room is closed")
	ErrAlreadyInRoom = apperrors.New(apperrors.KindRoom, apperrors.CodeAlreadyInRoom, "already in a room")
	ErrNotInRoom     = apperrors.New(apperrors.KindRoom, apperrors.CodeNotInRoom, "not in a room")
	ErrSuperseded    = apperrors.New(apperrors.KindRoom, apperrors.CodeNotInRoom, "connection was superseded")
)
