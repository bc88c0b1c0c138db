package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"artie/internal/events"
	"artie/internal/syncx"
)

const (
	logPrefix = "[artie/gateway]"

	writeTimeout    = 10 * time.Second
	shutdownTimeout = 2 * time.Second
	pingInterval    = 30 * time.Second

	clientBuffer = 64
)

// Submitter is the slice of the session controller that UI clients drive.
type Submitter interface {
	Submit(text string) error
}

// inboundFrame is what UI clients send: a typed query or a quit request.
type inboundFrame struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Server bridges the event bus to UI clients over a single websocket
// endpoint. Every bus event goes out as one JSON object per message;
// inbound frames feed the session controller.
type Server struct {
	addr string
	bus  *events.Bus
	sub  Submitter

	upgrader websocket.Upgrader
}

func NewServer(addr string, bus *events.Bus, sub Submitter) *Server {
	return &Server{
		addr: addr,
		bus:  bus,
		sub:  sub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Local control surface; no origin policy.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Run serves until the context is cancelled. An empty listen address
// disables the gateway.
func (s *Server) Run(ctx context.Context) {
	if s.addr == "" {
		log.Printf("%s disabled", logPrefix)
		return
	}

	srv := &http.Server{Addr: s.addr, Handler: s.handler(ctx)}
	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutCtx)
	}()

	log.Printf("%s listening on ws://%s/ws", logPrefix, s.addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("%s serve: %v", logPrefix, err)
	}
}

func (s *Server) handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		s.serveWS(ctx, w, r)
	})
	return mux
}

func (s *Server) serveWS(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("%s upgrade: %v", logPrefix, err)
		return
	}
	defer conn.Close()
	log.Printf("%s client connected: %s", logPrefix, conn.RemoteAddr())

	var writeMu sync.Mutex
	sendJSON := func(v any) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		return conn.WriteJSON(v)
	}

	evs, unsub := s.bus.Subscribe(clientBuffer)
	defer unsub()

	connCtx, connCancel := context.WithCancel(ctx)
	defer connCancel()

	// Periodic pings detect peers that vanished without a close frame; a
	// failed ping tears the connection down, which also unblocks the read
	// loop below. WriteControl is safe alongside the fanout writes.
	go syncx.RunInterval(connCtx, pingInterval, false, func(context.Context) {
		if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
			connCancel()
		}
	})

	go func() {
		for {
			select {
			case <-connCtx.Done():
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "shutdown"),
					time.Now().Add(shutdownTimeout))
				_ = conn.Close()
				return
			case ev := <-evs:
				if err := sendJSON(ev); err != nil {
					log.Printf("%s client %s dropped: %v", logPrefix, conn.RemoteAddr(), err)
					_ = conn.Close()
					return
				}
			}
		}
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			log.Printf("%s client %s gone: %v", logPrefix, conn.RemoteAddr(), err)
			return
		}
		s.handleFrame(msg)
	}
}

func (s *Server) handleFrame(msg []byte) {
	var f inboundFrame
	if err := json.Unmarshal(msg, &f); err != nil {
		log.Printf("%s bad frame: %v", logPrefix, err)
		return
	}
	switch f.Type {
	case "query":
		if err := s.sub.Submit(f.Text); err != nil {
			log.Printf("%s query dropped: %v", logPrefix, err)
		}
	case "quit":
		if err := s.sub.Submit("quit"); err != nil {
			log.Printf("%s quit dropped: %v", logPrefix, err)
		}
	default:
		log.Printf("%s unknown frame type %q", logPrefix, f.Type)
	}
}
