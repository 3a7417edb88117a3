package live

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/enliven-dev/enliven/internal/errors"
	"github.com/enliven-dev/enliven/pkg/dom"
	"github.com/enliven-dev/enliven/pkg/protocol"
)

// Session errors.
var (
	// ErrSessionClosed reports a dispatch to a closed session.
	ErrSessionClosed = errors.New(errors.CategoryLive,
		"E_LIVE_CLOSED", "session is closed")

	// ErrQueueFull reports a full mutation queue.
	ErrQueueFull = errors.New(errors.CategoryLive,
		"E_LIVE_QUEUE_FULL", "dispatch queue is full")
)

// Session binds one Document to one WebSocket connection. The document is
// mutated only on the session's dispatch goroutine; change records it
// emits during a dispatched call are flushed to the client as one batch
// when the call returns.
type Session struct {
	// ID is the session identity, unique per manager.
	ID string

	doc  *dom.Document
	conn *websocket.Conn

	mu     sync.Mutex // protects conn writes
	closed atomic.Bool

	sendSeq atomic.Uint64 // next server-to-client sequence
	ackSeq  atomic.Uint64 // highest sequence acknowledged by the client

	pending []protocol.Change // records collected during a dispatch

	dispatchCh chan func(*dom.Document)
	done       chan struct{}

	config  *Config
	logger  *slog.Logger
	tracer  trace.Tracer
	onClose func(*Session)
}

func newSession(id string, conn *websocket.Conn, doc *dom.Document, config *Config, logger *slog.Logger) *Session {
	s := &Session{
		ID:         id,
		doc:        doc,
		conn:       conn,
		dispatchCh: make(chan func(*dom.Document), config.MaxDispatchQueue),
		done:       make(chan struct{}),
		config:     config,
		logger:     logger.With("session_id", id),
		tracer:     otel.Tracer("enliven"),
	}
	// Only the dispatch goroutine mutates the document, so appending to
	// pending here needs no lock.
	doc.OnModified(func(ch dom.Change) {
		s.pending = append(s.pending, protocol.FromDOM(ch))
	})
	return s
}

// Document returns the bound document. Mutate it only through Dispatch.
func (s *Session) Document() *dom.Document { return s.doc }

// AckSeq returns the highest sequence the client has acknowledged.
func (s *Session) AckSeq() uint64 { return s.ackSeq.Load() }

// Start renders the document, sends the initial sync message, and starts
// the session loops.
func (s *Session) Start() error {
	_, span := s.tracer.Start(context.Background(), "enliven.render",
		trace.WithAttributes(attribute.String("session_id", s.ID)))
	start := time.Now()
	markup, err := s.doc.Render()
	span.End()
	if err != nil {
		return errors.Wrap(err, errors.CategoryLive, "E_LIVE_RENDER", "initial render")
	}
	getMetrics().renderDuration.Observe(time.Since(start).Seconds())

	// Records emitted while activating are already represented in the
	// markup; the sync message supersedes them.
	s.pending = nil

	if err := s.send(&protocol.Message{
		T:    protocol.MessageSync,
		Seq:  s.sendSeq.Add(1),
		HTML: markup,
	}); err != nil {
		return err
	}

	go s.readLoop()
	go s.heartbeatLoop()
	go s.dispatchLoop()
	return nil
}

// Dispatch queues fn to run on the session's goroutine with exclusive
// access to the document. Change records emitted by fn are flushed as one
// batch after it returns.
func (s *Session) Dispatch(fn func(*dom.Document)) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	select {
	case s.dispatchCh <- fn:
		return nil
	case <-s.done:
		return ErrSessionClosed
	default:
		return ErrQueueFull
	}
}

// Close tears the session down. Safe to call more than once.
func (s *Session) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	close(s.done)
	s.conn.Close()
	if s.onClose != nil {
		s.onClose(s)
	}
}

// dispatchLoop runs queued mutations one at a time and flushes the
// records each one produced.
func (s *Session) dispatchLoop() {
	for {
		select {
		case fn := <-s.dispatchCh:
			s.execute(fn)
		case <-s.done:
			return
		}
	}
}

func (s *Session) execute(fn func(*dom.Document)) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("dispatch panic",
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()
	fn(s.doc)
	s.flush()
}

// flush sends the pending change records as one batch.
func (s *Session) flush() {
	if len(s.pending) == 0 {
		return
	}
	changes := s.pending
	s.pending = nil

	_, span := s.tracer.Start(context.Background(), "enliven.flush",
		trace.WithAttributes(
			attribute.String("session_id", s.ID),
			attribute.Int("change_count", len(changes)),
		))
	defer span.End()

	err := s.send(&protocol.Message{
		T:       protocol.MessageChanges,
		Seq:     s.sendSeq.Add(1),
		Changes: changes,
	})
	if err != nil {
		span.RecordError(err)
		return
	}
	getMetrics().changesSent.Add(float64(len(changes)))
}

// send encodes and writes one message under the connection write lock.
func (s *Session) send(m *protocol.Message) error {
	data, err := protocol.Encode(m)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed.Load() {
		return ErrSessionClosed
	}
	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		s.logger.Error("write error", "error", err)
		getMetrics().wsErrors.WithLabelValues("write").Inc()
		go s.Close()
		return errors.Wrap(err, errors.CategoryLive, "E_LIVE_WRITE", "write message")
	}
	return nil
}

// readLoop consumes client messages until the connection drops.
func (s *Session) readLoop() {
	defer s.Close()

	for {
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
				getMetrics().wsErrors.WithLabelValues("read").Inc()
			}
			return
		}

		msg, err := protocol.Decode(data)
		if err != nil {
			s.logger.Error("decode error", "error", err)
			getMetrics().wsErrors.WithLabelValues("decode").Inc()
			continue
		}

		switch msg.T {
		case protocol.MessagePing:
			if err := s.send(&protocol.Message{T: protocol.MessagePong}); err != nil {
				return
			}

		case protocol.MessagePong:
			s.logger.Debug("received pong")

		case protocol.MessageAck:
			s.ackSeq.Store(msg.Ack)

		case protocol.MessageClose:
			s.logger.Info("client closing", "reason", msg.Reason)
			return

		default:
			s.logger.Warn("unexpected message type", "type", msg.T)
		}
	}
}

// heartbeatLoop pings the client on a fixed cadence.
func (s *Session) heartbeatLoop() {
	ticker := time.NewTicker(s.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.send(&protocol.Message{T: protocol.MessagePing}); err != nil {
				return
			}
		case <-s.done:
			return
		}
	}
}
