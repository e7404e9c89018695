package auth

import (
	"testing"
	"time"

	"github.com/anchal00/farkle/internal/apperrors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

var fixedNow = time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestVerify(t *testing.T) {
	verifier := NewJWTVerifier(testSecret, "farkle", func() time.Time { return fixedNow })
	valid := jwt.MapClaims{
		"sub":  "player-1",
		"name": "Alice",
		"iss":  "farkle",
		"exp":  fixedNow.Add(time.Hour).Unix(),
	}

	tests := []struct {
		description string
		token       string
		code        apperrors.Code
	}{
		{"empty token", "", apperrors.CodeMalformed},
		{"garbage", "not-a-jwt", apperrors.CodeMalformed},
		{"wrong secret", sign(t, jwt.SigningMethodHS256, []byte("other"), valid), apperrors.CodeInvalidSignature},
		{"wrong algorithm", sign(t, jwt.SigningMethodHS512, []byte(testSecret), valid), apperrors.CodeInvalidSignature},
		{"expired", sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
			"sub": "player-1", "iss": "farkle", "exp": fixedNow.Add(-time.Minute).Unix(),
		}), apperrors.CodeExpired},
		{"missing expiry", sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
			"sub": "player-1", "iss": "farkle",
		}), apperrors.CodeMalformed},
		{"missing subject", sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
			"iss": "farkle", "exp": fixedNow.Add(time.Hour).Unix(),
		}), apperrors.CodeMalformed},
		{"foreign issuer", sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
			"sub": "player-1", "iss": "elsewhere", "exp": fixedNow.Add(time.Hour).Unix(),
		}), apperrors.CodeInvalidSignature},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			_, err := verifier.Verify(tc.token)
			require.Error(t, err)
			assert.Equal(t, apperrors.KindAuth, apperrors.KindOf(err))
			assert.Equal(t, tc.code, apperrors.CodeOf(err))
		})
	}

	identity, err := verifier.Verify(sign(t, jwt.SigningMethodHS256, []byte(testSecret), valid))
	require.NoError(t, err)
	assert.Equal(t, Identity{PlayerID: "player-1", Name: "Alice"}, identity)
}

func TestVerifyWithoutIssuer(t *testing.T) {
	verifier := NewJWTVerifier(testSecret, "", func() time.Time { return fixedNow })
	token := sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"sub": "player-2",
		"exp": fixedNow.Add(time.Minute).Unix(),
	})
	identity, err := verifier.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "player-2", identity.PlayerID)
	assert.Empty(t, identity.Name)
}
