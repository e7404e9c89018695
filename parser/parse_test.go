package parser

import (
	"encoding/json"
	"testing"

	"github.com/anchal00/farkle/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvelope(t *testing.T) {
	envelope, err := ParseEnvelope([]byte(`{"type":" roll "}`))
	require.NoError(t, err)
	assert.Equal(t, EventRoll, envelope.Type)

	_, err = ParseEnvelope([]byte(`{"payload":{}}`))
	assert.Equal(t, apperrors.CodeBadRequest, apperrors.CodeOf(err))

	_, err = ParseEnvelope([]byte(`not json`))
	assert.Equal(t, apperrors.CodeBadRequest, apperrors.CodeOf(err))
}

func TestParseJoinRoomRequest(t *testing.T) {
	tests := []struct {
		description string
		payload     string
		roomId      string
		code        apperrors.Code
	}{
		{"new room", `{"roomId":"new","maxPlayers":3}`, NewRoomId, ""},
		{"existing room is normalised", `{"roomId":" ABCdef "}`, "abcdef", ""},
		{"missing payload", ``, "", apperrors.CodeBadRequest},
		{"blank room", `{"roomId":"  "}`, "", apperrors.CodeBadRequest},
		{"negative seats", `{"roomId":"new","maxPlayers":-2}`, "", apperrors.CodeBadRequest},
		{"unknown field", `{"roomId":"new","colour":"red"}`, "", apperrors.CodeBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			request, err := ParseJoinRoomRequest(json.RawMessage(tc.payload))
			if tc.code != "" {
				assert.Equal(t, tc.code, apperrors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.roomId, request.RoomId)
		})
	}
}

func TestParseHoldAndBank(t *testing.T) {
	hold, err := ParseHoldRequest(json.RawMessage(`{"heldIndices":[0,2,4]}`))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 4}, hold.HeldIndices)

	_, err = ParseHoldRequest(json.RawMessage(`{"heldIndices":[]}`))
	assert.Equal(t, apperrors.CodeInvalidSelection, apperrors.CodeOf(err))

	_, err = ParseHoldRequest(json.RawMessage(`{"heldIndices":"all"}`))
	assert.Equal(t, apperrors.CodeBadRequest, apperrors.CodeOf(err))

	bank, err := ParseBankRequest(nil)
	require.NoError(t, err)
	assert.Empty(t, bank.HeldIndices)

	bank, err = ParseBankRequest(json.RawMessage(`{"heldIndices":[1]}`))
	require.NoError(t, err)
	assert.Equal(t, []int{1}, bank.HeldIndices)
}

func TestEventEncoding(t *testing.T) {
	data, err := json.Marshal(ErrorEvent(string(apperrors.CodeRoomFull), "room is full"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"error","payload":{"code":"roomFull","message":"room is full"}}`, string(data))
}
