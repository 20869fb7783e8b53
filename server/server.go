// Package server exposes the command surface over a WebSocket. Each text
// message is a JSON request carrying one command line, answered by one JSON
// reply with the same id.
package server

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"

	"go-rytm/host"
	"go-rytm/value"
)

const (
	writeTimeout = 5 * time.Second
	readLimit    = 64 * 1024
)

// Request is one command line. A missing id is assigned by the server.
type Request struct {
	ID   string `json:"id,omitempty"`
	Line string `json:"line"`
}

// Reply mirrors host.Result. Frame is hex encoded.
type Reply struct {
	ID      string     `json:"id"`
	Status  int        `json:"status"`
	Values  value.List `json:"values,omitempty"`
	Frame   string     `json:"frame,omitempty"`
	Error   string     `json:"error,omitempty"`
	Warning string     `json:"warning,omitempty"`
}

type Server struct {
	host     *host.Host
	log      *slog.Logger
	upgrader websocket.Upgrader
}

func New(h *host.Host, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		host: h,
		log:  log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
}

// Handler routes /ws to the command socket
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", s)
	return mux
}

// ListenAndServe serves on addr until ctx is done
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	s.log.Info("server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer ws.Close()
	ws.SetReadLimit(readLimit)

	ctx := r.Context()
	stop := context.AfterFunc(ctx, func() { ws.Close() })
	defer stop()

	log := s.log.With("remote", r.RemoteAddr)
	log.Debug("client connected")

	for {
		messageType, message, err := ws.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug("client read", "error", err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		reply := s.handle(ctx, message)
		out, err := json.Marshal(reply)
		if err != nil {
			log.Error("encode reply", "id", reply.ID, "error", err)
			return
		}
		ws.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := ws.WriteMessage(websocket.TextMessage, out); err != nil {
			log.Debug("client write", "error", err)
			return
		}
	}
}

func (s *Server) handle(ctx context.Context, message []byte) Reply {
	var req Request
	if err := json.Unmarshal(message, &req); err != nil {
		return Reply{
			ID:     ulid.Make().String(),
			Status: int(host.StatusError),
			Error:  "invalid request: " + err.Error(),
		}
	}
	if req.ID == "" {
		req.ID = ulid.Make().String()
	}

	res := s.host.ExecLine(ctx, req.Line)
	reply := Reply{
		ID:      req.ID,
		Status:  int(res.Status),
		Values:  res.Values,
		Warning: res.Warning,
	}
	if len(res.Frame) > 0 {
		reply.Frame = hex.EncodeToString(res.Frame)
	}
	if res.Err != nil {
		reply.Error = res.Err.Error()
	}
	return reply
}
