package rooms

import (
	"encoding/json"
	"log/slog"
	"time"

	"card-duel-server/ai"
	"card-duel-server/config"
	"card-duel-server/duel"
	"card-duel-server/wsutil"
)

// Status is the room's pairing state. A room is playing only while both
// seats are bound; a disconnect drops it back to waiting.
type Status int

const (
	StatusWaiting Status = iota
	StatusPlaying
)

// String returns the protocol string for a Status.
func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	default:
		return "waiting"
	}
}

// Member is one connection inside a room: a seat holder or a spectator.
// ID is the connection identity (stable across a single socket's lifetime);
// Send is the connection's outbound channel.
type Member struct {
	ID   string
	Name string
	Send chan []byte
}

type eventType int

const (
	eventJoin eventType = iota
	eventAction
	eventLeave
	eventBotMove
	eventClose
)

// event is one unit of work for the room actor. Events are processed
// strictly in arrival order, so a racing action and disconnect resolve to
// whichever reached the channel first.
type event struct {
	typ      eventType
	member   *Member
	memberID string
	vsBot    bool
	action   duel.Action
}

// DuelEndFunc is called once when a duel reaches a winner. winnerSeat is
// duel.Player1 or duel.Player2.
type DuelEndFunc func(duelID, roomID, player1Name, player2Name string, winnerSeat duel.Seat, turns, player1LP, player2LP int)

// Room owns one duel and the connections watching it. All mutable state is
// confined to the Run goroutine; the exported methods only enqueue events.
type Room struct {
	ID     string
	DuelID string

	cfg *config.Config

	state   *duel.DuelState
	seats   [2]*Member // index 0 = player1
	members map[string]*Member
	status  Status

	botSeat    duel.Seat // SeatNone when no bot is attached
	botPending bool

	recorded bool

	events chan event
	done   chan struct{}

	// OnDuelEnd records the result when a winner is reached; optional.
	OnDuelEnd DuelEndFunc

	// onEmpty and onOccupied keep the registry's idle bookkeeping in step
	// with actor-ordered membership; set by the registry before Run starts.
	onEmpty    func(roomID string)
	onOccupied func(roomID string)
}

// newRoom creates a room with a fresh duel. The registry starts Run.
func newRoom(id, duelID string, cfg *config.Config) *Room {
	return &Room{
		ID:      id,
		DuelID:  duelID,
		cfg:     cfg,
		state:   duel.NewDuelState(),
		members: make(map[string]*Member),
		status:  StatusWaiting,
		events:  make(chan event, 32),
		done:    make(chan struct{}),
	}
}

// Join binds the member to the first free seat (or spectator) and broadcasts
// the resulting state. vsBot attaches the built-in opponent to the free seat.
func (r *Room) Join(m *Member, vsBot bool) error {
	return r.enqueue(event{typ: eventJoin, member: m, vsBot: vsBot})
}

// Act submits a player action. It is applied only if the sender holds the
// active seat while the room is playing; everything else is dropped without
// a reply, per the authoritative-server contract.
func (r *Room) Act(memberID string, action duel.Action) error {
	return r.enqueue(event{typ: eventAction, memberID: memberID, action: action})
}

// Leave removes a member. If it held a seat the seat frees and the room
// reverts to waiting; nobody wins by disconnect.
func (r *Room) Leave(memberID string) error {
	return r.enqueue(event{typ: eventLeave, memberID: memberID})
}

// Close shuts the room down and waits for the actor to exit. Idempotent.
func (r *Room) Close() {
	r.enqueue(event{typ: eventClose})
	<-r.done
}

func (r *Room) enqueue(ev event) error {
	select {
	case <-r.done:
		return ErrRoomClosed
	default:
	}
	select {
	case <-r.done:
		return ErrRoomClosed
	case r.events <- ev:
		return nil
	}
}

// Run is the room's actor loop. It owns all room state; at most one duel
// transition is in flight at any instant. Should be run as a goroutine.
func (r *Room) Run() {
	defer close(r.done)

	for ev := range r.events {
		switch ev.typ {
		case eventJoin:
			r.handleJoin(ev.member, ev.vsBot)
		case eventAction:
			r.handleAction(ev.memberID, ev.action)
		case eventLeave:
			r.handleLeave(ev.memberID)
		case eventBotMove:
			r.botPending = false
			r.handleBotMove()
		case eventClose:
			return
		}
	}
}

func (r *Room) handleJoin(m *Member, vsBot bool) {
	r.members[m.ID] = m
	if r.onOccupied != nil {
		r.onOccupied(r.ID)
	}

	seat := r.bindSeat(m)
	if seat != duel.SeatNone {
		name := m.Name
		if name == "" {
			name = seat.Label()
		}
		r.state = r.state.Clone()
		r.state.Player(seat).Name = name
	}

	if vsBot && r.botSeat == duel.SeatNone {
		if free := r.freeSeat(); free != duel.SeatNone {
			r.botSeat = free
			r.state = r.state.Clone()
			r.state.Player(free).Name = "Oponente"
		}
	}

	r.refreshStatus()

	role := "spectator"
	if seat != duel.SeatNone {
		role = seat.String()
	}
	r.send(m, RoleMsg{Type: "role", Role: role})
	slog.Info("member joined", "tag", "rooms", "room", r.ID, "name", m.Name, "role", role)

	r.broadcast()
	r.scheduleBotMove()
}

// bindSeat gives the member its previous seat if it already holds one,
// otherwise the first free non-bot seat. Returns SeatNone for spectators.
func (r *Room) bindSeat(m *Member) duel.Seat {
	for i, holder := range r.seats {
		if holder != nil && holder.ID == m.ID {
			r.seats[i] = m
			return duel.Seat(i + 1)
		}
	}
	for i, holder := range r.seats {
		seat := duel.Seat(i + 1)
		if holder == nil && seat != r.botSeat {
			r.seats[i] = m
			return seat
		}
	}
	return duel.SeatNone
}

// freeSeat returns the first unbound, non-bot seat, or SeatNone.
func (r *Room) freeSeat() duel.Seat {
	for i, holder := range r.seats {
		seat := duel.Seat(i + 1)
		if holder == nil && seat != r.botSeat {
			return seat
		}
	}
	return duel.SeatNone
}

// refreshStatus recomputes waiting/playing from seat occupancy. A bot seat
// counts as bound.
func (r *Room) refreshStatus() {
	bound := 0
	for i := range r.seats {
		if r.seats[i] != nil || duel.Seat(i+1) == r.botSeat {
			bound++
		}
	}
	if bound == 2 {
		r.status = StatusPlaying
	} else {
		r.status = StatusWaiting
	}
}

func (r *Room) handleAction(memberID string, action duel.Action) {
	if r.status != StatusPlaying {
		return
	}
	seat := r.seatOf(memberID)
	if seat == duel.SeatNone || seat != r.state.ActiveSeat {
		return
	}

	r.state = duel.Apply(r.state, action)
	r.afterTransition()
}

func (r *Room) handleBotMove() {
	if r.status != StatusPlaying || r.botSeat == duel.SeatNone {
		return
	}
	action := ai.ChooseAction(r.state, r.botSeat)
	if action == nil {
		return
	}

	r.state = duel.Apply(r.state, *action)
	r.afterTransition()
}

// afterTransition runs the shared post-apply steps: result recording,
// broadcast, and keeping the bot moving.
func (r *Room) afterTransition() {
	if r.state.Winner != duel.SeatNone && !r.recorded {
		r.recorded = true
		slog.Info("duel finished", "tag", "rooms", "room", r.ID, "winner", r.state.Winner)
		if r.OnDuelEnd != nil {
			r.OnDuelEnd(r.DuelID, r.ID,
				r.state.Player1.Name, r.state.Player2.Name,
				r.state.Winner, r.state.TurnNumber,
				r.state.Player1.LifePoints, r.state.Player2.LifePoints)
		}
	}
	r.broadcast()
	r.scheduleBotMove()
}

// scheduleBotMove arms a delayed bot step when it is the bot's turn. The
// delay keeps the pace readable for the human seat. At most one timer is
// pending at a time.
func (r *Room) scheduleBotMove() {
	if r.botPending || r.botSeat == duel.SeatNone || r.status != StatusPlaying {
		return
	}
	if r.state.Winner != duel.SeatNone || r.state.ActiveSeat != r.botSeat {
		return
	}
	r.botPending = true

	delay := time.Duration(r.cfg.BotDelayMS) * time.Millisecond
	time.AfterFunc(delay, func() {
		select {
		case r.events <- event{typ: eventBotMove}:
		case <-r.done:
		}
	})
}

func (r *Room) handleLeave(memberID string) {
	m, ok := r.members[memberID]
	if !ok {
		return
	}
	delete(r.members, memberID)

	if seat := r.seatOf(memberID); seat != duel.SeatNone {
		r.seats[seat-1] = nil
		r.refreshStatus()
		slog.Info("seat freed", "tag", "rooms", "room", r.ID, "seat", seat, "name", m.Name)
	}

	if len(r.members) == 0 {
		if r.onEmpty != nil {
			r.onEmpty(r.ID)
		}
		return
	}

	r.broadcast()
}

func (r *Room) seatOf(memberID string) duel.Seat {
	for i, holder := range r.seats {
		if holder != nil && holder.ID == memberID {
			return duel.Seat(i + 1)
		}
	}
	return duel.SeatNone
}

func (r *Room) send(m *Member, msg interface{}) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshaling room message", "tag", "rooms", "err", err)
		return
	}
	wsutil.SafeSend(m.Send, data)
}

// broadcast fans the full current state out to every member, spectators
// included.
func (r *Room) broadcast() {
	msg := GameStateMsg{
		Type:   "game_state",
		RoomID: r.ID,
		Status: r.status.String(),
		State:  r.state,
	}
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshaling game state", "tag", "rooms", "err", err)
		return
	}
	for _, m := range r.members {
		wsutil.SafeSend(m.Send, data)
	}
}
