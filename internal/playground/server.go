package playground

import (
	"bufio"
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	mdwlog "github.com/msto63/minipl/foundation/core/log"
	"github.com/msto63/minipl/foundation/minipl/interpreter"
	"github.com/msto63/minipl/pkg/core/health"
	"github.com/msto63/minipl/pkg/core/version"
)

// Server is the playground HTTP server
type Server struct {
	httpServer *http.Server
	handler    *WebSocketHandler
	health     *health.Registry
	logger     *mdwlog.Logger
	config     Config
}

// Config holds server configuration
type Config struct {
	Address     string
	ReadTimeout time.Duration
	Handler     Options
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		Address:     "127.0.0.1:8470",
		ReadTimeout: 5 * time.Minute,
		Handler: Options{
			MaxSourceBytes: 64 * 1024,
			MaxIterations:  1000000,
			RunTimeout:     time.Minute,
		},
	}
}

// New creates a new playground server
func New(cfg Config) (*Server, error) {
	if cfg.Handler.Logger == nil {
		cfg.Handler.Logger = mdwlog.GetDefault()
	}
	if cfg.Handler.IdleTimeout == 0 {
		cfg.Handler.IdleTimeout = cfg.ReadTimeout
	}
	logger := cfg.Handler.Logger.WithField("component", "minipl-playground")

	wsHandler, err := NewWebSocketHandler(cfg.Handler)
	if err != nil {
		return nil, err
	}

	registry := health.NewRegistry("minipl-playground", version.Playground)
	registry.Register(health.ErrorCheck("interpreter", false, func(ctx context.Context) error {
		_, err := wsHandler.Engine().RunWith(ctx, "var ok : bool := 1 = 1; assert (ok)",
			interpreter.NewLinesReader(), nil)
		return err
	}))
	if store := cfg.Handler.Store; store != nil {
		registry.Register(health.ErrorCheck("history", true, func(ctx context.Context) error {
			_, err := store.Stats(ctx)
			return err
		}))
	}

	mux := http.NewServeMux()
	mux.Handle("/ws", wsHandler)
	mux.Handle("/healthz", registry.Handler(5*time.Second))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(indexPage))
	})

	// No WriteTimeout: it would also cut hijacked WebSocket connections.
	httpServer := &http.Server{
		Addr:              cfg.Address,
		Handler:           loggingMiddleware(logger, mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		handler:    wsHandler,
		health:     registry,
		logger:     logger,
		config:     cfg,
	}, nil
}

// Handler returns the HTTP handler of the server, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Serve accepts connections on l until ctx is cancelled, then shuts down
// gracefully and waits for running programs
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	s.logger.Info("Starting Mini-PL playground", mdwlog.Fields{"address": l.Addr().String()})

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(l)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	return s.Stop()
}

// ListenAndServe listens on the configured address and serves until ctx ends
func (s *Server) ListenAndServe(ctx context.Context) error {
	l, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, l)
}

// Stop gracefully stops the server
func (s *Server) Stop() error {
	hits, misses := s.handler.CacheStats()
	s.logger.Info("Stopping Mini-PL playground", mdwlog.Fields{
		"cache_hits":   hits,
		"cache_misses": misses,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.httpServer.Shutdown(ctx)
	s.handler.Close()
	return err
}

// Address returns the configured listen address
func (s *Server) Address() string {
	return s.config.Address
}

// HealthRegistry returns the health check registry
func (s *Server) HealthRegistry() *health.Registry {
	return s.health
}

// loggingMiddleware adds request logging
func loggingMiddleware(logger *mdwlog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		logger.Debug("HTTP request", mdwlog.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   wrapper.statusCode,
			"duration": time.Since(start).String(),
		})
	})
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWrapper) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// Unwrap lets http.ResponseController and the WebSocket upgrader reach the
// underlying writer
func (w *responseWrapper) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Hijack implements http.Hijacker for the WebSocket upgrade
func (w *responseWrapper) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	return hijacker.Hijack()
}

const indexPage = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Mini-PL Playground</title></head>
<body>
<textarea id="src" rows="16" cols="80">var i : int;
for i in 1..3 do print i; end for</textarea><br>
<button onclick="run()">Run</button>
<input id="line" placeholder="input line" onkeydown="if(event.key==='Enter')send()">
<pre id="out"></pre>
<script>
const out = document.getElementById("out");
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
ws.onmessage = (e) => {
  const m = JSON.parse(e.data);
  if (m.type === "output") out.textContent += m.payload.text;
  if (m.type === "error") out.textContent += "\n[" + (m.payload.category || m.payload.code) + "] " + m.payload.message;
  if (m.type === "done") out.textContent += "\n-- " + m.payload.status + " in " + m.payload.duration_ms + "ms\n";
};
function run() {
  out.textContent = "";
  ws.send(JSON.stringify({type: "run", payload: {source: document.getElementById("src").value}}));
}
function send() {
  const el = document.getElementById("line");
  ws.send(JSON.stringify({type: "input", payload: {line: el.value}}));
  el.value = "";
}
</script>
</body>
</html>
`
