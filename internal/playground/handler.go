package playground

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	mdwerror "github.com/msto63/minipl/foundation/core/error"
	mdwerrors "github.com/msto63/minipl/foundation/core/errors"
	mdwlog "github.com/msto63/minipl/foundation/core/log"
	"github.com/msto63/minipl/foundation/minipl"
	"github.com/msto63/minipl/foundation/minipl/semantic"
	"github.com/msto63/minipl/internal/runstore"
	"github.com/msto63/minipl/pkg/core/cache"
)

// inputQueueSize bounds the lines buffered ahead of read statements
const inputQueueSize = 256

// Options configures the WebSocket handler
type Options struct {
	Logger *mdwlog.Logger

	// Store records every run when set
	Store runstore.Store

	// MaxSourceBytes rejects larger programs (0 = unlimited)
	MaxSourceBytes int

	// MaxIterations bounds loop iterations per run (0 = unlimited)
	MaxIterations int64

	// RunTimeout cancels runs that take longer (0 = no limit)
	RunTimeout time.Duration

	// IdleTimeout closes connections without traffic (default: 5m)
	IdleTimeout time.Duration

	// WriteTimeout bounds each message write (default: 10s)
	WriteTimeout time.Duration

	// CheckOrigin overrides the upgrader's origin check
	CheckOrigin func(r *http.Request) bool

	// CacheSize bounds the analyzed programs kept between runs
	// (0 = cache default, negative disables the cache)
	CacheSize int
}

// WebSocketHandler runs Mini-PL programs for WebSocket clients
type WebSocketHandler struct {
	engine   *minipl.Engine
	programs *cache.Cache[*semantic.Analyzer]
	store    runstore.Store
	logger   *mdwlog.Logger
	upgrader websocket.Upgrader
	options  Options
	runs     sync.WaitGroup
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(opts Options) (*WebSocketHandler, error) {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.IdleTimeout == 0 {
		opts.IdleTimeout = 5 * time.Minute
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 10 * time.Second
	}
	if opts.MaxSourceBytes < 0 {
		return nil, mdwerrors.InvalidInput(mdwerrors.ModulePlayground, "NewWebSocketHandler", opts.MaxSourceBytes, "max source bytes >= 0")
	}

	logger := opts.Logger.WithField("component", "minipl-playground")
	engineOpts := minipl.Options{
		Logger:        logger,
		MaxIterations: opts.MaxIterations,
	}
	var programs *cache.Cache[*semantic.Analyzer]
	if opts.CacheSize >= 0 {
		cfg := cache.DefaultConfig()
		if opts.CacheSize > 0 {
			cfg.MaxItems = opts.CacheSize
		}
		programs = cache.New[*semantic.Analyzer](cfg)
		engineOpts.Cache = programs
	}
	engine, err := minipl.New(engineOpts)
	if err != nil {
		if programs != nil {
			programs.Stop()
		}
		return nil, err
	}

	return &WebSocketHandler{
		engine:   engine,
		programs: programs,
		store:    opts.Store,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     opts.CheckOrigin,
		},
		options: opts,
	}, nil
}

// Engine returns the engine used for runs
func (h *WebSocketHandler) Engine() *minipl.Engine {
	return h.engine
}

// Wait blocks until all runs have finished
func (h *WebSocketHandler) Wait() {
	h.runs.Wait()
}

// Close waits for running programs and releases the program cache
func (h *WebSocketHandler) Close() {
	h.runs.Wait()
	if h.programs != nil {
		h.programs.Stop()
	}
}

// CacheStats reports hits and misses of the program cache
func (h *WebSocketHandler) CacheStats() (hits, misses int64) {
	if h.programs == nil {
		return 0, 0
	}
	hits, misses, _ = h.programs.Stats()
	return hits, misses
}

// ServeHTTP handles WebSocket upgrade and connections
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", mdwlog.Fields{"error": err.Error()})
		return
	}
	h.handleConnection(r.Context(), conn)
}

// session is the state of one connection. At most one program runs at a time.
type session struct {
	handler *WebSocketHandler
	conn    *websocket.Conn
	logger  *mdwlog.Logger

	writeMu sync.Mutex

	mu    sync.Mutex
	input *chanReader
}

func (h *WebSocketHandler) handleConnection(parent context.Context, conn *websocket.Conn) {
	defer conn.Close()

	s := &session{
		handler: h,
		conn:    conn,
		logger:  h.logger.WithField("remote", conn.RemoteAddr().String()),
	}
	s.logger.Info("WebSocket connection established")

	ctx, cancel := context.WithCancel(context.WithoutCancel(parent))

	idle := h.options.IdleTimeout
	conn.SetReadDeadline(time.Now().Add(idle))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(idle))
		return nil
	})

	var wg sync.WaitGroup
	defer wg.Wait()
	defer cancel()

	for {
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("WebSocket read error", mdwlog.Fields{"error": err.Error()})
			} else {
				s.logger.Info("WebSocket connection closed")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(idle))

		switch msg.Type {
		case TypePing:
			s.send(WSResponse{Type: TypePong})

		case TypeRun:
			var payload RunPayload
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				s.sendError(CodeInvalidPayload, "Invalid run payload")
				continue
			}
			s.start(ctx, &wg, payload)

		case TypeInput:
			var payload InputPayload
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				s.sendError(CodeInvalidPayload, "Invalid input payload")
				continue
			}
			s.push(payload.Line)

		case TypeEOF:
			s.closeInput()

		default:
			s.sendError(CodeUnknownType, "Unknown message type: "+msg.Type)
		}
	}
}

// start launches a run unless one is active
func (s *session) start(ctx context.Context, wg *sync.WaitGroup, payload RunPayload) {
	opts := s.handler.options
	if payload.Source == "" {
		s.sendError(CodeInvalidRequest, "Source required")
		return
	}
	if opts.MaxSourceBytes > 0 && len(payload.Source) > opts.MaxSourceBytes {
		s.sendError(CodeInvalidRequest, "Source exceeds the limit of "+strconv.Itoa(opts.MaxSourceBytes)+" bytes")
		return
	}

	s.mu.Lock()
	if s.input != nil {
		s.mu.Unlock()
		s.sendError(CodeBusy, "A program is already running")
		return
	}
	if len(payload.Input) > inputQueueSize {
		s.mu.Unlock()
		s.sendError(CodeInputOverflow, "Too many input lines")
		return
	}
	input := newChanReader(inputQueueSize)
	for _, line := range payload.Input {
		input.push(line)
	}

	var runCtx context.Context
	var cancel context.CancelFunc
	if opts.RunTimeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, opts.RunTimeout)
	} else {
		runCtx, cancel = context.WithCancel(ctx)
	}
	s.input = input
	s.mu.Unlock()

	wg.Add(1)
	s.handler.runs.Add(1)
	go func() {
		defer s.handler.runs.Done()
		defer wg.Done()
		defer s.finish(cancel)
		s.run(runCtx, payload.Source, input)
	}()
}

func (s *session) run(ctx context.Context, source string, input *chanReader) {
	h := s.handler
	result, err := h.engine.RunWith(ctx, source, input, &outputWriter{session: s})

	if err != nil {
		s.send(WSResponse{Type: TypeError, Payload: errorPayload(err)})
	}
	s.send(WSResponse{
		Type: TypeDone,
		Payload: DonePayload{
			RunID:      result.RunID,
			Status:     result.Status,
			DurationMS: result.Duration.Milliseconds(),
		},
	})

	if h.store != nil {
		// recorded after the connection may be gone
		recordCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.store.Record(recordCtx, runstore.NewRun("playground", source, result, err)); err != nil {
			s.logger.Warn("Failed to record run", mdwlog.Fields{"error": err.Error(), "run_id": result.RunID})
		}
	}
}

func (s *session) finish(cancel context.CancelFunc) {
	cancel()
	s.mu.Lock()
	s.input.close()
	s.input = nil
	s.mu.Unlock()
}

func (s *session) push(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.input == nil {
		s.sendError(CodeNotRunning, "No program is running")
		return
	}
	switch err := s.input.push(line); {
	case errors.Is(err, errInputClosed):
		s.sendError(CodeInputClosed, "Input was closed by eof")
	case err != nil:
		s.sendError(CodeInputOverflow, "Input queue is full")
	}
}

func (s *session) closeInput() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.input == nil {
		s.sendError(CodeNotRunning, "No program is running")
		return
	}
	s.input.close()
}

// send writes one message; gorilla connections allow a single concurrent writer
func (s *session) send(resp WSResponse) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.conn.SetWriteDeadline(time.Now().Add(s.handler.options.WriteTimeout))
	if err := s.conn.WriteJSON(resp); err != nil {
		s.logger.Debug("WebSocket send error", mdwlog.Fields{"error": err.Error()})
	}
}

func (s *session) sendError(code, message string) {
	s.send(WSResponse{
		Type:    TypeError,
		Payload: ErrorPayload{Code: code, Message: message},
	})
}

func errorPayload(err error) ErrorPayload {
	return ErrorPayload{
		Code:     string(mdwerror.GetCode(err)),
		Category: mdwerrors.Category(err),
		Message:  mdwerrors.Message(err),
	}
}

// outputWriter forwards program output as output messages
type outputWriter struct {
	session *session
}

func (w *outputWriter) Write(p []byte) (int, error) {
	w.session.send(WSResponse{Type: TypeOutput, Payload: OutputPayload{Text: string(p)}})
	return len(p), nil
}
