package storage

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"card-duel-server/duel"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS duel_history (
	id UUID PRIMARY KEY,
	room_id TEXT NOT NULL,
	played_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	player1_name TEXT NOT NULL,
	player2_name TEXT NOT NULL,
	winner_seat SMALLINT NOT NULL,
	turns INT NOT NULL,
	player1_lp INT NOT NULL,
	player2_lp INT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_duel_history_played_at ON duel_history(played_at DESC);
CREATE TABLE IF NOT EXISTS duelist_records (
	name       TEXT PRIMARY KEY,
	wins       INT NOT NULL DEFAULT 0,
	losses     INT NOT NULL DEFAULT 0,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_duelist_records_wins ON duelist_records(wins DESC);
`

// DuelRecord is one finished duel as stored in duel_history.
type DuelRecord struct {
	ID          string    `json:"id"`
	RoomID      string    `json:"roomId"`
	PlayedAt    time.Time `json:"playedAt"`
	Player1Name string    `json:"player1Name"`
	Player2Name string    `json:"player2Name"`
	WinnerSeat  int       `json:"winnerSeat"` // 1 or 2
	Turns       int       `json:"turns"`
	Player1LP   int       `json:"player1Lp"`
	Player2LP   int       `json:"player2Lp"`
}

// LeaderboardEntry is one row of the win/loss leaderboard.
type LeaderboardEntry struct {
	Name   string `json:"name"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
}

// Store persists and retrieves duel history.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore connects to Postgres and ensures the history tables exist.
// If databaseURL is empty, NewStore returns (nil, nil) and no persistence occurs.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	if databaseURL == "" {
		return nil, nil
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// InsertDuelResult records one finished duel.
func (s *Store) InsertDuelResult(ctx context.Context, rec DuelRecord) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO duel_history (id, room_id, player1_name, player2_name, winner_seat, turns, player1_lp, player2_lp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.ID, rec.RoomID, rec.Player1Name, rec.Player2Name, rec.WinnerSeat, rec.Turns, rec.Player1LP, rec.Player2LP)
	return err
}

// UpdateRecordsAfterDuel bumps the winner's and loser's win/loss counters.
func (s *Store) UpdateRecordsAfterDuel(ctx context.Context, winnerName, loserName string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO duelist_records (name, wins, updated_at) VALUES ($1, 1, now())
		ON CONFLICT (name) DO UPDATE SET wins = duelist_records.wins + 1, updated_at = now()`,
		winnerName)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO duelist_records (name, losses, updated_at) VALUES ($1, 1, now())
		ON CONFLICT (name) DO UPDATE SET losses = duelist_records.losses + 1, updated_at = now()`,
		loserName)
	return err
}

// RecordDuelEnd is the rooms.DuelEndFunc adapter: it writes the history row
// and both players' records in one call.
func (s *Store) RecordDuelEnd(ctx context.Context, duelID, roomID, p1Name, p2Name string, winner duel.Seat, turns, p1LP, p2LP int) error {
	rec := DuelRecord{
		ID:          duelID,
		RoomID:      roomID,
		Player1Name: p1Name,
		Player2Name: p2Name,
		WinnerSeat:  int(winner),
		Turns:       turns,
		Player1LP:   p1LP,
		Player2LP:   p2LP,
	}
	if err := s.InsertDuelResult(ctx, rec); err != nil {
		return err
	}
	winnerName, loserName := p1Name, p2Name
	if winner == duel.Player2 {
		winnerName, loserName = p2Name, p1Name
	}
	return s.UpdateRecordsAfterDuel(ctx, winnerName, loserName)
}

// ListRecent returns the most recent duels, newest first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]DuelRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, room_id, played_at, player1_name, player2_name, winner_seat, turns, player1_lp, player2_lp
		FROM duel_history
		ORDER BY played_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DuelRecord
	for rows.Next() {
		var r DuelRecord
		if err := rows.Scan(&r.ID, &r.RoomID, &r.PlayedAt, &r.Player1Name, &r.Player2Name, &r.WinnerSeat, &r.Turns, &r.Player1LP, &r.Player2LP); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ListLeaderboard returns duelists ordered by wins.
func (s *Store) ListLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT name, wins, losses
		FROM duelist_records
		ORDER BY wins DESC, losses ASC, name ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.Name, &e.Wins, &e.Losses); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}
