package arena

import (
	"time"

	"github.com/park285/chess-arena/internal/rules"
)

// SessionState represents a game session's lifecycle.
type SessionState string

const (
	StateAwaitingOpponent SessionState = "AWAITING_OPPONENT"
	StateActive           SessionState = "ACTIVE"
	StateFinished         SessionState = "FINISHED"
)

// Session is one two-player match with a single authoritative position.
// Black is empty only while the session is AwaitingOpponent; White is never
// empty. All mutation happens under the owning directory's write lock.
type Session struct {
	ID        string
	White     string
	Black     string
	FEN       string
	TurnWhite bool
	// Reps counts canonical position keys for threefold detection. Counts
	// only ever grow.
	Reps      map[string]int
	State     SessionState
	CreatedAt time.Time
}

func (s *Session) seatOf(player string) (rules.Color, bool) {
	switch player {
	case s.White:
		return rules.White, true
	case s.Black:
		if s.Black != "" {
			return rules.Black, true
		}
	}
	return "", false
}

// opponentOf returns the other seat's occupant, which may be empty while the
// session is still waiting for one.
func (s *Session) opponentOf(player string) string {
	if s.White == player {
		return s.Black
	}
	return s.White
}

func (s *Session) playerFor(color rules.Color) string {
	if color == rules.White {
		return s.White
	}
	return s.Black
}

// Placement is what a freshly connected player learns about their session.
type Placement struct {
	SessionID string
	Color     rules.Color
	Opponent  string
	FEN       string
	TurnWhite bool
}
