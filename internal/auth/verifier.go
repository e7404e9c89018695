//go:generate mockery --with-expecter=true --name=Verifier --output=./mocks
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/anchal00/farkle/internal/apperrors"
	"github.com/golang-jwt/jwt/v5"
)

// Identity is the verified principal attached to a connection for its whole
// lifetime. Later events are never re-verified.
type Identity struct {
	PlayerID string
	Name     string
}

type Verifier interface {
	Verify(token string) (Identity, error)
}

var (
	ErrMalformed        = apperrors.New(apperrors.KindAuth, apperrors.CodeMalformed, "credential is malformed")
	ErrExpired          = apperrors.New(apperrors.KindAuth, apperrors.CodeExpired, "credential is expired")
	ErrInvalidSignature = apperrors.New(apperrors.KindAuth, apperrors.CodeInvalidSignature, "credential signature is invalid")
)

type playerClaims struct {
	jwt.RegisteredClaims
	Name string `json:"name,omitempty"`
}

// JWTVerifier accepts HS256 tokens whose subject is the player id. The
// optional "name" claim carries the display name.
type JWTVerifier struct {
	secret []byte
	issuer string
	now    func() time.Time
}

func NewJWTVerifier(secret, issuer string, now func() time.Time) *JWTVerifier {
	if now == nil {
		now = time.Now
	}
	return &JWTVerifier{
		secret: []byte(secret),
		issuer: strings.TrimSpace(issuer),
		now:    now,
	}
}

func (v *JWTVerifier) Verify(token string) (Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Identity{}, ErrMalformed
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	var claims playerClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return Identity{}, mapJWTError(err)
	}
	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return Identity{}, ErrMalformed
	}
	return Identity{
		PlayerID: subject,
		Name:     strings.TrimSpace(claims.Name),
	}, nil
}

// mapJWTError folds jwt library errors into the three auth failure kinds.
func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return apperrors.Wrap(apperrors.KindAuth, apperrors.CodeExpired, ErrExpired.Message, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable), errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return apperrors.Wrap(apperrors.KindAuth, apperrors.CodeInvalidSignature, ErrInvalidSignature.Message, err)
	default:
		return apperrors.Wrap(apperrors.KindAuth, apperrors.CodeMalformed, ErrMalformed.Message, err)
	}
}
