package live

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/storefront/pkg/dom"
	"github.com/vango-dev/storefront/pkg/host"
)

const tracerName = "github.com/vango-dev/storefront/pkg/live"

// Server is the live preview server.
type Server struct {
	doc    *dom.Document
	loop   *host.Loop
	config Config
	logger *slog.Logger
	tracer trace.Tracer

	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}

	// dirty is set while a snapshot flush is queued on the loop.
	dirty          atomic.Bool
	cancelObserver func()

	httpServer *http.Server
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// New creates a server for doc. It must be called on the goroutine that
// owns doc, before loop starts running tasks.
func New(doc *dom.Document, loop *host.Loop, opts ...Option) *Server {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	s := &Server{
		doc:     doc,
		loop:    loop,
		config:  config,
		logger:  config.Logger.With("component", "live"),
		tracer:  otel.Tracer(tracerName),
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     config.CheckOrigin,
		},
	}
	s.cancelObserver = doc.OnMutation(s.scheduleFlush)
	return s
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/", s.handlePage)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if s.config.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.config.Metrics.Handler())
	}
	r.Get("/live", s.handleWebSocket)
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

// handlePage renders the document on the UI loop.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	var html string
	if err := s.loop.Do(r.Context(), func() { html = s.doc.HTML() }); err != nil {
		http.Error(w, "document unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(injectClient(html)))
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, max(s.config.SendBuffer, 1))}

	// The first snapshot and the registration share one loop task, so no
	// flush can fall between them.
	if err := s.loop.Do(r.Context(), func() {
		c.send <- encode(Message{Type: TypeSnapshot, HTML: dom.RenderString(s.doc.Body())})
		s.addClient(c)
	}); err != nil {
		// The task may still run after ctx ends; undo it if so.
		s.loop.Post(func() { s.removeClient(c) })
		conn.Close()
		return
	}

	go s.writeLoop(c)
	s.readLoop(c)
}

func (s *Server) addClient(c *client) {
	s.mu.Lock()
	s.clients[c] = struct{}{}
	n := len(s.clients)
	s.mu.Unlock()

	if s.config.Metrics != nil {
		s.config.Metrics.ClientConnected()
	}
	s.logger.Info("client connected", "clients", n)
}

// removeClient closes c's send queue. It is safe to call more than once.
func (s *Server) removeClient(c *client) {
	s.mu.Lock()
	_, ok := s.clients[c]
	if ok {
		delete(s.clients, c)
		close(c.send)
	}
	s.mu.Unlock()

	if ok {
		if s.config.Metrics != nil {
			s.config.Metrics.ClientDisconnected()
		}
		s.logger.Info("client disconnected")
	}
}

// Clients returns the number of connected clients.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) writeLoop(c *client) {
	defer c.conn.Close()
	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			s.logger.Debug("write error", "error", err)
			s.removeClient(c)
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (s *Server) readLoop(c *client) {
	defer s.removeClient(c)

	for {
		c.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))

		var m Message
		if err := c.conn.ReadJSON(&m); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}

		switch m.Type {
		case TypeEvent:
			s.handleEvent(c, m)
		default:
			s.logger.Warn("unknown message type", "type", m.Type)
		}
	}
}

// handleEvent posts a DOM event to the UI loop.
func (s *Server) handleEvent(c *client, m Message) {
	_, span := s.tracer.Start(context.Background(), "live.event",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("live.target", m.Target),
			attribute.String("live.event", m.Event),
		),
	)

	posted := s.loop.Post(func() {
		defer span.End()

		el := s.doc.Lookup(m.Target)
		if el == nil {
			err := fmt.Errorf("unknown target %q", m.Target)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			s.reply(c, Message{Type: TypeError, Error: err.Error()})
			s.recordEvent(m.Event, false)
			return
		}

		handled := el.Dispatch(&dom.Event{Type: m.Event, Value: m.Value})
		span.SetAttributes(attribute.Bool("live.handled", handled))
		span.SetStatus(codes.Ok, "")
		s.recordEvent(m.Event, handled)
	})
	if !posted {
		span.SetStatus(codes.Error, "loop unavailable")
		span.End()
		s.reply(c, Message{Type: TypeError, Error: "event queue full"})
	}
}

func (s *Server) recordEvent(eventType string, handled bool) {
	if s.config.Metrics != nil {
		s.config.Metrics.EventReceived(eventType, handled)
	}
}

// reply queues m for one client, dropping the client if its queue is full.
func (s *Server) reply(c *client, m Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c]; !ok {
		return
	}
	select {
	case c.send <- encode(m):
	default:
		delete(s.clients, c)
		close(c.send)
	}
}

// scheduleFlush runs on the UI goroutine for every mutation. Mutations
// made by the same task share one snapshot.
func (s *Server) scheduleFlush() {
	if s.dirty.Swap(true) {
		return
	}
	if !s.loop.Post(s.flush) {
		s.dirty.Store(false)
	}
}

func (s *Server) flush() {
	s.dirty.Store(false)
	msg := encode(Message{Type: TypeSnapshot, HTML: dom.RenderString(s.doc.Body())})
	s.broadcast(msg)
}

func (s *Server) broadcast(msg []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		select {
		case c.send <- msg:
		default:
			s.logger.Warn("client too slow, dropping")
			delete(s.clients, c)
			close(c.send)
		}
	}
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.Close()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("shutdown error", "error", err)
		return err
	}
	s.logger.Info("server shutdown complete")
	return nil
}

// Close disconnects every client.
func (s *Server) Close() {
	s.mu.Lock()
	for c := range s.clients {
		delete(s.clients, c)
		close(c.send)
	}
	s.mu.Unlock()
}

// Detach stops watching the document. It must run on the UI goroutine.
func (s *Server) Detach() {
	if s.cancelObserver != nil {
		s.cancelObserver()
		s.cancelObserver = nil
	}
}

// injectClient adds the preview script before </html>.
func injectClient(page string) string {
	i := strings.LastIndex(page, "</html>")
	if i < 0 {
		return page + clientScript
	}
	return page[:i] + clientScript + page[i:]
}

const clientScript = `<script>
(function () {
  var ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/live");
  ws.onmessage = function (e) {
    var m = JSON.parse(e.data);
    if (m.type === "snapshot") {
      var t = document.createElement("template");
      t.innerHTML = m.html.replace(/^<body>|<\/body>$/g, "");
      document.body.replaceChildren(t.content);
    } else if (m.type === "error") {
      console.warn("live:", m.error);
    }
  };
  ["click", "input", "change"].forEach(function (type) {
    document.addEventListener(type, function (e) {
      var el = e.target.closest("[data-ref],[id]");
      if (!el) return;
      ws.send(JSON.stringify({
        type: "event",
        target: el.getAttribute("data-ref") || el.id,
        event: type,
        value: e.target.value || ""
      }));
    }, true);
  });
})();
</script>`
