package parser

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/anchal00/farkle/internal/apperrors"
)

// NewRoomId asks the registry to allocate a fresh room.
const NewRoomId = "new"

// Envelope is an inbound client frame.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type ConnectRequest struct {
	Token string `json:"token"`
}

type JoinRoomRequest struct {
	RoomId      string `json:"roomId"`
	MaxPlayers  int    `json:"maxPlayers,omitempty"`
	TargetScore int    `json:"targetScore,omitempty"`
}

type HoldRequest struct {
	HeldIndices []int `json:"heldIndices"`
}

type BankRequest struct {
	HeldIndices []int `json:"heldIndices,omitempty"`
}

func badRequest(message string, err error) error {
	return apperrors.Wrap(apperrors.KindRequest, apperrors.CodeBadRequest, message, err)
}

func ParseEnvelope(data []byte) (*Envelope, error) {
	envelope := &Envelope{}
	if err := json.Unmarshal(data, envelope); err != nil {
		return nil, badRequest("malformed event", err)
	}
	envelope.Type = strings.TrimSpace(envelope.Type)
	if envelope.Type == "" {
		return nil, badRequest("event type is required", nil)
	}
	return envelope, nil
}

func decodePayload(raw json.RawMessage, target any) error {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return badRequest("malformed payload", err)
	}
	return nil
}

func ParseConnectRequest(raw json.RawMessage) (*ConnectRequest, error) {
	request := &ConnectRequest{}
	err := decodePayload(raw, request)
	return request, err
}

func ParseJoinRoomRequest(raw json.RawMessage) (*JoinRoomRequest, error) {
	request := &JoinRoomRequest{}
	if err := decodePayload(raw, request); err != nil {
		return nil, err
	}
	request.RoomId = strings.ToLower(strings.TrimSpace(request.RoomId))
	if request.RoomId == "" {
		return nil, badRequest("roomId is required", nil)
	}
	if request.MaxPlayers < 0 || request.TargetScore < 0 {
		return nil, badRequest("room options must not be negative", nil)
	}
	return request, nil
}

func ParseHoldRequest(raw json.RawMessage) (*HoldRequest, error) {
	request := &HoldRequest{}
	if err := decodePayload(raw, request); err != nil {
		return nil, err
	}
	if len(request.HeldIndices) == 0 {
		return nil, apperrors.New(apperrors.KindRule, apperrors.CodeInvalidSelection, "heldIndices is required")
	}
	return request, nil
}

func ParseBankRequest(raw json.RawMessage) (*BankRequest, error) {
	request := &BankRequest{}
	err := decodePayload(raw, request)
	return request, err
}
