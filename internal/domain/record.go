package domain

import "time"

// GameRecord is the persistence-facing snapshot of a finished session.
// Result is "white", "black" or "draw"; Method says how the game ended
// (checkmate, stalemate, fifty_move, threefold, disconnect, ...).
type GameRecord struct {
	SessionID string
	White     string
	Black     string
	Result    string
	Method    string
	FinalFEN  string
	StartedAt time.Time
	EndedAt   time.Time
}

// Winner returns the winning player's name, or "" for draws.
func (r *GameRecord) Winner() string {
	switch r.Result {
	case "white":
		return r.White
	case "black":
		return r.Black
	default:
		return ""
	}
}
