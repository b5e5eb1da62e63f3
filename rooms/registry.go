package rooms

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"card-duel-server/config"
)

// Registry maps room ids to live rooms. Rooms are created on first join and
// closed by the idle sweep once they have sat empty past the configured
// timeout, so abandoned rooms do not accumulate for the life of the process.
type Registry struct {
	cfg *config.Config

	mu         sync.Mutex
	rooms      map[string]*Room
	emptySince map[string]time.Time

	// OnDuelEnd is installed on every room the registry creates; optional.
	OnDuelEnd DuelEndFunc
}

// NewRegistry creates an empty Registry.
func NewRegistry(cfg *config.Config) *Registry {
	return &Registry{
		cfg:        cfg,
		rooms:      make(map[string]*Room),
		emptySince: make(map[string]time.Time),
	}
}

// Join routes the member into the named room, creating it (and its duel) if
// absent. The room replies with the member's role and a state broadcast.
func (reg *Registry) Join(roomID string, m *Member, vsBot bool) *Room {
	reg.mu.Lock()
	room, ok := reg.rooms[roomID]
	if !ok {
		room = reg.create(roomID)
	}
	reg.mu.Unlock()

	if err := room.Join(m, vsBot); err != nil {
		// Lost a race with the sweep; start the room over.
		reg.mu.Lock()
		if reg.rooms[roomID] == room {
			delete(reg.rooms, roomID)
		}
		fresh, ok := reg.rooms[roomID]
		if !ok {
			fresh = reg.create(roomID)
		}
		reg.mu.Unlock()
		fresh.Join(m, vsBot)
		return fresh
	}
	return room
}

// create builds and starts a room; callers must hold reg.mu.
func (reg *Registry) create(roomID string) *Room {
	room := newRoom(roomID, uuid.NewString(), reg.cfg)
	room.OnDuelEnd = reg.OnDuelEnd
	room.onEmpty = reg.markEmpty
	room.onOccupied = reg.markOccupied
	reg.rooms[roomID] = room
	go room.Run()
	slog.Info("room created", "tag", "rooms", "room", roomID, "duel", room.DuelID)
	return room
}

// markEmpty records when a room lost its last member; called from the
// room's actor goroutine.
func (reg *Registry) markEmpty(roomID string) {
	reg.mu.Lock()
	reg.emptySince[roomID] = time.Now()
	reg.mu.Unlock()
}

// markOccupied clears the idle marker when a member joins. Like markEmpty it
// runs on the room's actor goroutine, so a queued leave followed by a join
// always settles with the marker cleared.
func (reg *Registry) markOccupied(roomID string) {
	reg.mu.Lock()
	delete(reg.emptySince, roomID)
	reg.mu.Unlock()
}

// Len returns the number of live rooms.
func (reg *Registry) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.rooms)
}

// Sweep runs the idle-room janitor until ctx is cancelled. Should be run as
// a goroutine. No-op when the idle timeout is disabled.
func (reg *Registry) Sweep(ctx context.Context) {
	if reg.cfg.RoomIdleTimeoutSec <= 0 {
		return
	}
	interval := time.Duration(reg.cfg.SweepIntervalSec) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			reg.sweepOnce(time.Now())
		}
	}
}

// sweepOnce closes every room that has been empty longer than the idle
// timeout.
func (reg *Registry) sweepOnce(now time.Time) {
	timeout := time.Duration(reg.cfg.RoomIdleTimeoutSec) * time.Second

	reg.mu.Lock()
	var expired []*Room
	for id, since := range reg.emptySince {
		if now.Sub(since) < timeout {
			continue
		}
		if room, ok := reg.rooms[id]; ok {
			expired = append(expired, room)
			delete(reg.rooms, id)
		}
		delete(reg.emptySince, id)
	}
	reg.mu.Unlock()

	for _, room := range expired {
		room.Close()
		slog.Info("idle room closed", "tag", "rooms", "room", room.ID)
	}
}
