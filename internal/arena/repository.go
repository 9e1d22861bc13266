package arena

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/park285/chess-arena/internal/domain"
)

// Repository persists final game results to Postgres. It is optional: the hub
// is handed one only when DATABASE_URL is configured.
type Repository struct {
	db *sql.DB
}

func NewRepository(databaseURL string) (*Repository, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(8)
	db.SetConnMaxLifetime(30 * time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// SaveResult upserts a finished game. Replays of the same session id are
// idempotent.
func (r *Repository) SaveResult(ctx context.Context, rec *domain.GameRecord) error {
	if r == nil || r.db == nil || rec == nil {
		return nil
	}
	duration := rec.EndedAt.Sub(rec.StartedAt).Milliseconds()
	if duration < 0 {
		duration = 0
	}

	q := `INSERT INTO arena_games (
	    session_id, white_player, black_player,
	    result, result_method, winner, final_fen,
	    started_at, ended_at, duration_ms
	  ) VALUES (
	    $1,$2,$3,$4,$5,$6,$7,$8,$9,$10
	  ) ON CONFLICT (session_id) DO UPDATE SET
	    white_player=EXCLUDED.white_player,
	    black_player=EXCLUDED.black_player,
	    result=EXCLUDED.result,
	    result_method=EXCLUDED.result_method,
	    winner=EXCLUDED.winner,
	    final_fen=EXCLUDED.final_fen,
	    started_at=EXCLUDED.started_at,
	    ended_at=EXCLUDED.ended_at,
	    duration_ms=EXCLUDED.duration_ms`

	_, err := r.db.ExecContext(ctx, q,
		rec.SessionID,
		rec.White, rec.Black,
		rec.Result, strings.TrimSpace(rec.Method), rec.Winner(), rec.FinalFEN,
		rec.StartedAt, rec.EndedAt, duration,
	)
	return err
}
