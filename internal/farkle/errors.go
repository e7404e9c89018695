package farkle

import "github.com/anchal00/farkle/internal/apperrors"

var (
	ErrRoomFull         = apperrors.New(apperrors.KindRoom, apperrors.CodeRoomFull, "room is full")
	ErrRoomInProgress   = apperrors.New(apperrors.KindRoom, apperrors.CodeRoomInProgress, "game already started")
	ErrAlreadySeated    = apperrors.New(apperrors.KindRoom, apperrors.CodeAlreadyInRoom, "player already seated")
	ErrNotSeated        = apperrors.New(apperrors.KindRoom, apperrors.CodeNotInRoom, "player is not seated")
	ErrNotEnoughPlayers = apperrors.New(apperrors.KindRoom, apperrors.CodeNotEnoughPlayers, "not enough players to start")

	ErrNotYourTurn      = apperrors.New(apperrors.KindRule, apperrors.CodeNotYourTurn, "not your turn")
	ErrWrongState       = apperrors.New(apperrors.KindRule, apperrors.CodeWrongState, "action not allowed now")
	ErrInvalidSelection = apperrors.New(apperrors.KindRule, apperrors.CodeInvalidSelection, "selection does not score")
	ErrBelowThreshold   = apperrors.New(apperrors.KindRule, apperrors.CodeBelowThreshold, "turn score below banking threshold")
	ErrGameFinished     = apperrors.New(apperrors.KindRule, apperrors.CodeGameFinished, "game is finished")
)
