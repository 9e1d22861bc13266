package arena

import (
	"time"

	"github.com/google/uuid"

	"github.com/park285/chess-arena/internal/rules"
)

// matchmake places a connecting identity, in order: rejoin a session already
// holding it in either seat, claim any open black seat, or open a fresh
// session as white. Returns the placement plus the waiting player owed an
// opponent-joined notification (empty unless a seat was claimed). The caller
// sends that notification after this returns; nothing here touches the
// network.
//
// Seat selection among multiple open sessions follows map iteration order on
// purpose: there is no priority policy. An AwaitingOpponent session that
// nobody ever claims stays in the directory forever; expiry is a known gap.
func (h *Hub) matchmake(identity string) (Placement, string) {
	d := h.sessions
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, s := range d.sessions {
		if s.White == identity || (s.Black != "" && s.Black == identity) {
			return placementFor(s, identity), ""
		}
	}

	for _, s := range d.sessions {
		if s.State == StateAwaitingOpponent && s.Black == "" {
			s.Black = identity
			s.State = StateActive
			return placementFor(s, identity), s.White
		}
	}

	s := &Session{
		ID:        uuid.NewString(),
		White:     identity,
		FEN:       h.engine.InitialFEN(),
		TurnWhite: true,
		Reps:      make(map[string]int),
		State:     StateAwaitingOpponent,
		CreatedAt: time.Now(),
	}
	d.sessions[s.ID] = s
	return placementFor(s, identity), ""
}

func placementFor(s *Session, identity string) Placement {
	color := rules.White
	if s.Black == identity {
		color = rules.Black
	}
	return Placement{
		SessionID: s.ID,
		Color:     color,
		Opponent:  s.opponentOf(identity),
		FEN:       s.FEN,
		TurnWhite: s.TurnWhite,
	}
}
