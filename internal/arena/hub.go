package arena

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/park285/chess-arena/internal/domain"
	"github.com/park285/chess-arena/internal/msgcat"
	"github.com/park285/chess-arena/internal/obslog"
	"github.com/park285/chess-arena/internal/rules"
	"github.com/park285/chess-arena/pkg/wire"
)

const (
	halfmoveDrawThreshold = 100
	repetitionThreshold   = 3
	persistTimeout        = 5 * time.Second
)

// ResultSink receives final game records. Sink failures are logged and never
// escalated; the hub runs fine with zero sinks attached.
type ResultSink interface {
	SaveResult(ctx context.Context, rec *domain.GameRecord) error
}

// Hub owns the session state machine: it matchmakes connections, applies
// moves, classifies outcomes and routes broadcasts. Locks are released before
// any outbound delivery.
type Hub struct {
	engine    rules.Engine
	cat       *msgcat.Catalog
	sessions  *SessionDirectory
	conns     *ConnRegistry
	sinks     []ResultSink
	queueSize int
}

func NewHub(engine rules.Engine, cat *msgcat.Catalog, sessions *SessionDirectory, conns *ConnRegistry) *Hub {
	return &Hub{
		engine:    engine,
		cat:       cat,
		sessions:  sessions,
		conns:     conns,
		queueSize: 32,
	}
}

// SetOutboundQueueSize adjusts the per-connection queue created by Connect.
func (h *Hub) SetOutboundQueueSize(n int) {
	if n > 0 {
		h.queueSize = n
	}
}

// AttachResultSink wires a persistence target for finished games.
func (h *Hub) AttachResultSink(s ResultSink) {
	if s != nil {
		h.sinks = append(h.sinks, s)
	}
}

// Connect places the identity into a session, registers its outbound handle
// and enqueues the init frame. When an open seat was claimed, the waiting
// player gets the opponent-joined notification. The returned handle feeds the
// connection's writer task.
func (h *Hub) Connect(identity string) (Placement, *Handle) {
	placement, waiting := h.matchmake(identity)

	handle := NewHandle(h.queueSize)
	h.conns.Put(identity, handle)
	connectedPlayers.Set(float64(h.conns.Len()))
	liveSessions.Set(float64(h.sessions.Len()))

	handle.Send(wire.Encode(wire.NewInit(placement.FEN, placement.TurnWhite, string(placement.Color), placement.Opponent)))
	if waiting != "" {
		h.deliver(waiting, wire.Encode(wire.NewOpponentJoined(identity)))
	}

	obslog.L().Info("arena_join",
		zap.String("session_id", placement.SessionID),
		zap.String("player", identity),
		zap.String("color", string(placement.Color)),
		zap.String("opponent", placement.Opponent),
	)
	return placement, handle
}

// HandleMove runs one move submission through the session state machine.
// Rejections reach the mover alone and never mutate session state; accepted
// moves are broadcast to both seats, and terminal outcomes remove the session
// from the directory within the same critical section.
func (h *Hub) HandleMove(identity, sessionID, moveText string) {
	d := h.sessions
	d.mu.Lock()
	s := d.sessions[sessionID]
	if s == nil {
		d.mu.Unlock()
		return
	}

	moverColor, seated := s.seatOf(identity)
	moverIsWhite := moverColor == rules.White
	if !seated || s.State != StateActive || s.TurnWhite != moverIsWhite {
		d.mu.Unlock()
		h.rejectMove(identity, sessionID, "error.not_your_turn", "wrong_turn")
		return
	}

	if err := h.engine.ParsePosition(s.FEN); err != nil {
		d.mu.Unlock()
		h.rejectMove(identity, sessionID, "error.invalid_board", "bad_position")
		return
	}

	newFEN, err := h.engine.ApplyMove(s.FEN, moveText)
	if err != nil {
		d.mu.Unlock()
		if errors.Is(err, rules.ErrInvalidSAN) {
			h.rejectMove(identity, sessionID, "error.invalid_san", "bad_san")
		} else {
			h.rejectMove(identity, sessionID, "error.invalid_move", "illegal_move")
		}
		return
	}

	s.FEN = newFEN
	s.TurnWhite = !s.TurnWhite

	frame, rec := h.classify(s, newFEN)
	white, black := s.White, s.Black
	terminal := rec != nil
	if terminal {
		s.State = StateFinished
		delete(d.sessions, sessionID)
	}
	d.mu.Unlock()

	h.deliver(white, frame)
	h.deliver(black, frame)
	movesTotal.WithLabelValues("accepted").Inc()

	if terminal {
		liveSessions.Set(float64(h.sessions.Len()))
		gamesFinished.WithLabelValues(rec.Result).Inc()
		h.persist(rec)
		obslog.L().Info("arena_game_over",
			zap.String("session_id", sessionID),
			zap.String("result", rec.Result),
			zap.String("method", rec.Method),
		)
		return
	}
	obslog.L().Debug("arena_move",
		zap.String("session_id", sessionID),
		zap.String("player", identity),
		zap.Bool("turn_white", !moverIsWhite),
	)
}

// classify applies the outcome priority order to the freshly stored position:
// engine decisive, engine drawn, fifty-move rule, threefold repetition, else
// non-terminal. It returns the broadcast frame plus a record for terminal
// outcomes. Called with the directory write lock held; the repetition count
// mutation must stay inside the critical section.
func (h *Hub) classify(s *Session, fen string) ([]byte, *domain.GameRecord) {
	verdict, err := h.engine.ClassifyOutcome(fen)
	if err == nil {
		switch verdict.Kind {
		case rules.KindDecisive:
			rec := h.record(s, string(verdict.Winner), methodOr(verdict.Method, "decisive"))
			return wire.Encode(wire.NewWin(s.playerFor(verdict.Winner))), rec
		case rules.KindDrawn:
			return wire.Encode(wire.NewDraw()), h.record(s, "draw", methodOr(verdict.Method, "drawn"))
		}
	}

	if clock, cerr := h.engine.HalfmoveClock(fen); cerr == nil && clock >= halfmoveDrawThreshold {
		return wire.Encode(wire.NewDraw()), h.record(s, "draw", "fifty_move")
	}

	if key, kerr := h.engine.CanonicalKey(fen); kerr == nil {
		s.Reps[key]++
		if s.Reps[key] >= repetitionThreshold {
			return wire.Encode(wire.NewDraw()), h.record(s, "draw", "threefold")
		}
	}

	return wire.Encode(wire.NewUpdate(fen)), nil
}

// Disconnect runs the cleanup path after a connection's reader observed the
// stream end. The handle removal is blind: a replacement login may already
// hold a newer handle for this identity and loses it too, mirroring the known
// last-writer-wins behaviour of registration.
func (h *Hub) Disconnect(identity, sessionID string) {
	h.conns.Remove(identity)
	connectedPlayers.Set(float64(h.conns.Len()))

	d := h.sessions
	d.mu.Lock()
	s := d.sessions[sessionID]
	if s == nil {
		d.mu.Unlock()
		obslog.L().Debug("arena_disconnect", zap.String("player", identity), zap.String("session_id", sessionID))
		return
	}
	opponent := s.opponentOf(identity)
	var rec *domain.GameRecord
	if opponent != "" {
		winner := rules.Black
		if s.White == opponent {
			winner = rules.White
		}
		rec = h.record(s, string(winner), "disconnect")
	}
	delete(d.sessions, sessionID)
	d.mu.Unlock()
	liveSessions.Set(float64(h.sessions.Len()))

	if opponent != "" {
		h.deliver(opponent, wire.Encode(wire.NewForcedWin(h.cat.Text("win.disconnect_reason"))))
		gamesFinished.WithLabelValues(rec.Result).Inc()
		h.persist(rec)
	}
	obslog.L().Info("arena_disconnect",
		zap.String("player", identity),
		zap.String("session_id", sessionID),
		zap.String("opponent", opponent),
	)
}

func (h *Hub) rejectMove(identity, sessionID, msgKey, reason string) {
	movesTotal.WithLabelValues(reason).Inc()
	h.deliver(identity, wire.Encode(wire.NewError(h.cat.Text(msgKey))))
	obslog.L().Debug("arena_move_rejected",
		zap.String("session_id", sessionID),
		zap.String("player", identity),
		zap.String("reason", reason),
	)
}

// deliver sends a frame to an identity's registered handle. Missing handles
// and closed connections are skipped silently.
func (h *Hub) deliver(identity string, frame []byte) {
	if identity == "" {
		return
	}
	if handle := h.conns.Get(identity); handle != nil {
		handle.Send(frame)
	}
}

func (h *Hub) record(s *Session, result, method string) *domain.GameRecord {
	return &domain.GameRecord{
		SessionID: s.ID,
		White:     s.White,
		Black:     s.Black,
		Result:    result,
		Method:    method,
		FinalFEN:  s.FEN,
		StartedAt: s.CreatedAt,
		EndedAt:   time.Now(),
	}
}

func (h *Hub) persist(rec *domain.GameRecord) {
	if len(h.sinks) == 0 || rec == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	for _, sink := range h.sinks {
		if err := sink.SaveResult(ctx, rec); err != nil {
			obslog.L().Error("arena_result_persist_error",
				zap.String("session_id", rec.SessionID),
				zap.String("result", rec.Result),
				zap.Error(err),
			)
		}
	}
}

func methodOr(method, fallback string) string {
	if method == "" || method == "nomethod" {
		return fallback
	}
	return method
}
