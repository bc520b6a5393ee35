package game

import (
	"math/rand"
	"sync"
	"time"

	"github.com/Medinhoo/liar/internal/deck"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 6
)

// Registry owns the room-code → session mapping, the only process-wide
// mutable state. Operations on different rooms run fully concurrently;
// within one room every state-changing operation is serialized on the
// session mutex.
type Registry struct {
	mu       sync.RWMutex
	rooms    map[string]*session
	byPlayer map[string]string // playerID → roomCode, at most one room per player
}

// Departure describes the outcome of removing a player, with enough
// context for the caller to notify the right audience and to record a
// finished match.
type Departure struct {
	RoomCode    string
	PlayerID    string
	PlayerName  string
	Destroyed   bool
	Remaining   []string // player ids still seated (or to notify on destruction)
	Started     bool
	StartedAt   time.Time
	PlayerCount int
	Challenges  int
	WinnerName  string
}

func NewRegistry() *Registry {
	return &Registry{
		rooms:    make(map[string]*session),
		byPlayer: make(map[string]string),
	}
}

// CreateRoom allocates a fresh room code and seats the host. It never
// fails: code collisions are detected and retried. The caller must
// ensure the host is not seated elsewhere (RoomOf), since hosting a
// second room would orphan the first seat's index entry.
func (r *Registry) CreateRoom(hostID, hostName string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var code string
	for {
		code = newRoomCode()
		if _, taken := r.rooms[code]; !taken {
			break
		}
	}

	r.rooms[code] = newSession(code, hostID, hostName)
	r.byPlayer[hostID] = code
	return code
}

func (r *Registry) JoinRoom(code, playerID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// a player holds at most one seat; joining a second room would
	// desync the byPlayer index
	if existing, seated := r.byPlayer[playerID]; seated && existing != code {
		return ErrAlreadyInRoom
	}

	s, ok := r.rooms[code]
	if !ok {
		return ErrRoomNotFound
	}

	s.mu.Lock()
	err := s.addPlayer(playerID, name)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	r.byPlayer[playerID] = code
	return nil
}

// StartGame shuffles and deals, seats the turn at index 0 and marks the
// session started. A session transitions to started exactly once.
func (r *Registry) StartGame(code string) error {
	s, ok := r.room(code)
	if !ok {
		return ErrRoomNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.start()
}

func (r *Registry) PlayCards(code, playerID string, cardIDs []string, declared deck.Rank) error {
	s, ok := r.room(code)
	if !ok {
		return ErrRoomNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playCards(playerID, cardIDs, declared)
}

func (r *Registry) CallLiar(code, accuserID string) (*ChallengeResult, error) {
	s, ok := r.room(code)
	if !ok {
		return nil, ErrRoomNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.callLiar(accuserID)
}

// FinishReveal closes the resolution window after the reveal has been
// delivered. No-op if the room is already gone.
func (r *Registry) FinishReveal(code string) {
	s, ok := r.room(code)
	if !ok {
		return
	}

	s.mu.Lock()
	s.finishReveal()
	s.mu.Unlock()
}

// RemovePlayer handles a player vacating their seat. A not-yet-started
// room survives a non-host leaving; in every other case the room is
// destroyed, since the game cannot continue with a vacated seat.
// Returns nil when the player is not seated anywhere.
func (r *Registry) RemovePlayer(playerID string) *Departure {
	r.mu.Lock()
	defer r.mu.Unlock()

	code, ok := r.byPlayer[playerID]
	if !ok {
		return nil
	}
	s := r.rooms[code]

	s.mu.Lock()
	defer s.mu.Unlock()

	seat := s.seatOf(playerID)
	if seat < 0 {
		// index out of sync; drop the stale entry
		delete(r.byPlayer, playerID)
		return nil
	}
	leaving := s.players[seat]

	dep := &Departure{
		RoomCode:    code,
		PlayerID:    playerID,
		PlayerName:  leaving.name,
		Started:     s.started,
		StartedAt:   s.startedAt,
		PlayerCount: len(s.players),
		Challenges:  s.challenges,
	}
	if s.winner != nil {
		dep.WinnerName = s.winner.name
	}
	for _, p := range s.players {
		if p.id != playerID {
			dep.Remaining = append(dep.Remaining, p.id)
		}
	}

	if !s.started && !leaving.isHost {
		s.players = append(s.players[:seat], s.players[seat+1:]...)
		delete(r.byPlayer, playerID)
		return dep
	}

	dep.Destroyed = true
	delete(r.rooms, code)
	for _, p := range s.players {
		delete(r.byPlayer, p.id)
	}
	return dep
}

// Project renders the per-viewer snapshot of a room.
func (r *Registry) Project(code, viewerID string) (*View, error) {
	s, ok := r.room(code)
	if !ok {
		return nil, ErrRoomNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return project(s, viewerID), nil
}

// PlayerIDs returns the seated player ids in turn order.
func (r *Registry) PlayerIDs(code string) []string {
	s, ok := r.room(code)
	if !ok {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, len(s.players))
	for i, p := range s.players {
		ids[i] = p.id
	}
	return ids
}

// Winner reports the winner's name, if the room has one.
func (r *Registry) Winner(code string) (string, bool) {
	s, ok := r.room(code)
	if !ok {
		return "", false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.winner == nil {
		return "", false
	}
	return s.winner.name, true
}

// RoomOf returns the room code a player is seated in.
func (r *Registry) RoomOf(playerID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	code, ok := r.byPlayer[playerID]
	return code, ok
}

// Len is the number of live rooms.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

func (r *Registry) room(code string) (*session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.rooms[code]
	return s, ok
}

func newRoomCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(b)
}
