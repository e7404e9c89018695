package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/anchal00/farkle/internal/apperrors"
	"github.com/anchal00/farkle/internal/auth"
	"github.com/anchal00/farkle/internal/db"
	"github.com/anchal00/farkle/internal/logger"
	"github.com/anchal00/farkle/internal/state"
	"github.com/anchal00/farkle/parser"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const credentialWait = 10 * time.Second

var tracer = otel.Tracer("github.com/anchal00/farkle/internal/server")

// Gateway admits freshly upgraded connections. A connection that fails
// verification is closed without ever reaching the registry.
type Gateway struct {
	Verifier auth.Verifier
	Db       db.Repository
	Registry *state.Registry
	Logger   logger.Logger
}

func (g *Gateway) Admit(ctx context.Context, conn state.Conn, credential string) (auth.Identity, error) {
	_, span := tracer.Start(ctx, "gateway.admit", trace.WithSpanKind(trace.SpanKindServer))
	defer span.End()

	identity, err := g.Verifier.Verify(credential)
	if err != nil {
		code := apperrors.CodeOf(err)
		span.SetStatus(codes.Error, string(code))
		g.Logger.Info(fmt.Sprintf("Rejected connection %s: %s", conn.ID(), code))
		conn.Close(authClosePrefix + string(code))
		return auth.Identity{}, err
	}
	identity.Name = g.displayName(identity)
	span.SetAttributes(attribute.String("player.id", identity.PlayerID))

	if err := conn.Send(parser.Event{
		Type:    parser.EventConnected,
		Payload: parser.ConnectedPayload{PlayerId: identity.PlayerID, Name: identity.Name},
	}); err != nil {
		return auth.Identity{}, err
	}
	if err := g.Registry.Connect(conn, identity); err != nil {
		span.RecordError(err)
		g.Logger.Error(fmt.Sprintf("Failed to resume player %s", identity.PlayerID), err)
		_ = conn.Send(parser.ErrorEvent(string(apperrors.CodeOf(err)), "failed to resume room"))
	}
	return identity, nil
}

// displayName prefers the name in the credential, then the stored one, then
// the player id, and records the result.
func (g *Gateway) displayName(identity auth.Identity) string {
	name := identity.Name
	if name == "" {
		if player := g.Db.GetPlayerById(identity.PlayerID); player != nil {
			name = player.DisplayName
		}
	}
	if name == "" {
		name = identity.PlayerID
	}
	if err := g.Db.UpsertPlayer(identity.PlayerID, name); err != nil {
		g.Logger.Error(fmt.Sprintf("Failed to record player %s", identity.PlayerID), err)
	}
	return name
}

// requestCredential reads a bearer token from the Authorization header or the
// token query parameter.
func requestCredential(request *http.Request) string {
	if header := request.Header.Get("Authorization"); header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if found && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	return strings.TrimSpace(request.URL.Query().Get("token"))
}

// readConnectFrame waits for a connect event carrying the credential. Any
// other first frame is a malformed credential.
func readConnectFrame(ws *websocket.Conn) (string, error) {
	_ = ws.SetReadDeadline(time.Now().Add(credentialWait))
	_, data, err := ws.ReadMessage()
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindAuth, apperrors.CodeMalformed, "no credential presented", err)
	}
	envelope, err := parser.ParseEnvelope(data)
	if err != nil || envelope.Type != parser.EventConnect {
		return "", auth.ErrMalformed
	}
	request, err := parser.ParseConnectRequest(envelope.Payload)
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindAuth, apperrors.CodeMalformed, "bad connect payload", err)
	}
	return request.Token, nil
}
