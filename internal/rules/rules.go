package rules

import "errors"

// Color identifies a chess side.
type Color string

const (
	White Color = "white"
	Black Color = "black"
)

// Kind classifies the state of a position.
type Kind string

const (
	KindNone     Kind = "none"
	KindDecisive Kind = "decisive"
	KindDrawn    Kind = "drawn"
)

// Verdict is the engine's classification of a position. Winner is set only
// for KindDecisive. Method is a free-form label (checkmate, stalemate, ...)
// used for logging and result records.
type Verdict struct {
	Kind   Kind
	Winner Color
	Method string
}

// Sentinel errors returned by Engine implementations. The session state
// machine maps these onto the wire error taxonomy.
var (
	ErrInvalidPosition = errors.New("invalid position")
	ErrInvalidSAN      = errors.New("invalid san")
	ErrIllegalMove     = errors.New("illegal move")
)

// Engine is the narrow rules capability the session state machine depends on.
// Positions travel as FEN strings so sessions stay engine-agnostic and the
// machine is testable with a stub.
type Engine interface {
	// InitialFEN returns the starting position for new sessions.
	InitialFEN() string
	// ParsePosition reports ErrInvalidPosition when fen is not a playable position.
	ParsePosition(fen string) error
	// ApplyMove plays one SAN move on fen and returns the resulting FEN.
	// Errors: ErrInvalidPosition, ErrInvalidSAN (unparseable move text),
	// ErrIllegalMove (parseable but not legal here).
	ApplyMove(fen, moveText string) (string, error)
	// ClassifyOutcome inspects fen for a decisive or drawn result.
	ClassifyOutcome(fen string) (Verdict, error)
	// CanonicalKey derives the repetition key: board, side to move, castling
	// rights and en-passant target, excluding both move counters.
	CanonicalKey(fen string) (string, error)
	// HalfmoveClock returns the half-moves since the last capture or pawn advance.
	HalfmoveClock(fen string) (int, error)
}
