package storage

import (
	"context"

	"card-duel-server/duel"
)

// HistoryStore abstracts persistence for duel history and the leaderboard.
// Implementations can be swapped for testing (mocks) or different backends.
type HistoryStore interface {
	// Read
	ListRecent(ctx context.Context, limit int) ([]DuelRecord, error)
	ListLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)

	// Write
	InsertDuelResult(ctx context.Context, rec DuelRecord) error
	UpdateRecordsAfterDuel(ctx context.Context, winnerName, loserName string) error
	RecordDuelEnd(ctx context.Context, duelID, roomID, p1Name, p2Name string, winner duel.Seat, turns, p1LP, p2LP int) error

	// Lifecycle
	Close()
}

// Ensure *Store implements HistoryStore at compile time.
var _ HistoryStore = (*Store)(nil)
