package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"sync"
	"syscall"
	"time"

	"github.com/anchal00/farkle/internal/auth"
	"github.com/anchal00/farkle/internal/config"
	"github.com/anchal00/farkle/internal/db"
	"github.com/anchal00/farkle/internal/logger"
	"github.com/anchal00/farkle/internal/state"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-set/v3"
)

const HTTP_API_V1_PREFIX = "/api/v1"

type HealthResponse struct {
	Status      string `json:"status"`
	Rooms       int    `json:"rooms"`
	Connections int    `json:"connections"`
}

type GameServer struct {
	Db          db.Repository
	Logger      logger.Logger
	Registry    *state.Registry
	Gateway     *Gateway
	Dispatcher  *Dispatcher
	Router      *mux.Router
	port        string
	sendBuffer  int
	wssUpgrader websocket.Upgrader
	httpServer  *http.Server

	mu           sync.Mutex
	clients      *set.Set[*client]
	shutdownOnce sync.Once
}

func NewGameServer(cfg config.Config, repo db.Repository, verifier auth.Verifier, registry *state.Registry) *GameServer {
	router := mux.NewRouter()
	api := router.PathPrefix(HTTP_API_V1_PREFIX).Subrouter()
	gs := &GameServer{
		Db:       repo,
		Logger:   logger.New("api_server"),
		Registry: registry,
		Gateway: &Gateway{
			Verifier: verifier,
			Db:       repo,
			Registry: registry,
			Logger:   logger.New("gateway"),
		},
		Dispatcher: &Dispatcher{
			Registry: registry,
			Logger:   logger.New("dispatcher"),
		},
		Router:     router,
		port:       cfg.Port,
		sendBuffer: cfg.SendBuffer,
		wssUpgrader: websocket.Upgrader{
			CheckOrigin: originChecker(cfg.AllowedOrigins),
		},
		clients: set.New[*client](0),
	}
	gs.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	api.HandleFunc("/connect", gs.HandleConnect).Methods("GET")
	api.HandleFunc("/health", gs.Health).Methods("GET")
	return gs
}

// originChecker allows any origin when allowed is empty, and requests
// without an Origin header always.
func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return len(allowed) == 0 || origin == "" || slices.Contains(allowed, origin)
	}
}

func (s *GameServer) UpgradeToWebsocket(writer http.ResponseWriter, request *http.Request) *websocket.Conn {
	conn, err := s.wssUpgrader.Upgrade(writer, request, nil)
	if err != nil {
		s.Logger.Error("Failed to upgrade to WS connection", err)
		return nil
	}
	return conn
}

// HandleConnect upgrades the request, admits the connection and then feeds
// its frames to the dispatcher until it drops.
func (s *GameServer) HandleConnect(writer http.ResponseWriter, request *http.Request) {
	credential := requestCredential(request)
	wssConn := s.UpgradeToWebsocket(writer, request)
	if wssConn == nil {
		return
	}
	c := newClient(wssConn, s.sendBuffer, s.Logger)
	go c.writePump()

	if credential == "" {
		var err error
		if credential, err = readConnectFrame(wssConn); err != nil {
			s.Logger.Info(fmt.Sprintf("Connection %s sent no credential", c.ID()))
			c.Close(authClosePrefix + "malformed")
			return
		}
	}
	ctx := request.Context()
	if _, err := s.Gateway.Admit(ctx, c, credential); err != nil {
		return
	}
	if !s.track(c) {
		c.Close("shutdown")
		s.Registry.Disconnect(c)
		return
	}
	defer s.untrack(c)

	c.readPump(func(data []byte) {
		s.Dispatcher.Dispatch(ctx, c, data)
	})
	s.Registry.Disconnect(c)
	c.Close("disconnected")
}

// track records a live client. It fails once shutdown has started.
func (s *GameServer) track(c *client) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clients == nil {
		return false
	}
	s.clients.Insert(c)
	return true
}

func (s *GameServer) untrack(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clients != nil {
		s.clients.Remove(c)
	}
}

func (s *GameServer) Health(writer http.ResponseWriter, request *http.Request) {
	stats := s.Registry.Stats()
	respBody, err := json.Marshal(HealthResponse{
		Status:      "ok",
		Rooms:       stats.Rooms,
		Connections: stats.Connections,
	})
	if err != nil {
		s.sendResponse(writer, nil, http.StatusInternalServerError)
		return
	}
	writer.Header().Set("Content-Type", "application/json")
	s.sendResponse(writer, respBody, http.StatusOK)
}

func (s *GameServer) sendResponse(writer http.ResponseWriter, responseBody []byte, status int) {
	writer.WriteHeader(status)
	if responseBody == nil {
		return
	}
	if _, err := writer.Write(responseBody); err != nil {
		s.Logger.Error("Failed to write response body", err)
	}
}

// Run serves until SIGINT/SIGTERM or a listener failure, then shuts down.
func (s *GameServer) Run() error {
	s.Logger.Info(fmt.Sprintf("Starting server on port %s", s.port))
	sigtermHandler := make(chan os.Signal, 1)
	signal.Notify(sigtermHandler, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigtermHandler)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()
	select {
	case <-sigtermHandler:
		s.Shutdown()
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		s.Logger.Error(fmt.Sprintf("Failed to start server on port %s", s.port), err)
		s.Shutdown()
		return err
	}
}

// Shutdown stops accepting connections, closes every room and connection and
// then the database. It is safe to call more than once.
func (s *GameServer) Shutdown() {
	s.shutdownOnce.Do(func() {
		s.Logger.Info("Shutting down server....")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.Logger.Error("Failed to stop http server", err)
		}
		s.Registry.Shutdown()

		s.mu.Lock()
		clients := s.clients.Slice()
		s.clients = nil
		s.mu.Unlock()
		for _, c := range clients {
			c.Close("shutdown")
		}
		s.Db.CloseConnection()
		s.Logger.Info("Goodbye !")
	})
}
