package game

import (
	"sync"
	"time"

	"github.com/Medinhoo/liar/internal/deck"
)

const (
	// MaxPlayers is the seat limit per room.
	MaxPlayers = 4
	// MinPlayers is the minimum required to start a game.
	MinPlayers = 2
)

type playerState struct {
	id     string
	name   string
	isHost bool
	hand   []deck.Card
}

type lastPlay struct {
	playerID     string
	playerName   string
	declaredRank deck.Rank
	cards        []deck.Card
	at           time.Time
}

// session is the authoritative per-room state. All access goes through
// the Registry, which serializes every state-changing operation on the
// session's own mutex. The registry never hands the raw struct out.
type session struct {
	mu sync.Mutex

	roomCode           string
	players            []*playerState
	pile               []deck.Card
	lastPlay           *lastPlay
	currentPlayerIndex int
	started            bool

	// resolving is true between a challenge resolution and the delayed
	// reveal broadcast; play and challenge intents are rejected in that
	// window.
	resolving bool

	winner *playerState

	challenges int
	createdAt  time.Time
	startedAt  time.Time
}

// ChallengeResult is the public outcome of a resolved challenge. The
// revealed cards are intentionally shown to everyone: this is the one
// point where hidden information becomes public.
type ChallengeResult struct {
	WasLiar       bool        `json:"was_liar"`
	RevealedCards []deck.Card `json:"revealed_cards"`
	DeclaredRank  deck.Rank   `json:"declared_rank"`
	AccuserName   string      `json:"accuser_name"`
	LoserName     string      `json:"loser_name"`
	WinnerName    string      `json:"winner_name"`
	PileCount     int         `json:"pile_count"`
}

func newSession(roomCode, hostID, hostName string) *session {
	return &session{
		roomCode: roomCode,
		players: []*playerState{
			{id: hostID, name: hostName, isHost: true},
		},
		createdAt: time.Now(),
	}
}

// seatOf returns the seat index of playerID, or -1.
func (s *session) seatOf(playerID string) int {
	for i, p := range s.players {
		if p.id == playerID {
			return i
		}
	}
	return -1
}

func (s *session) addPlayer(playerID, name string) error {
	if s.started {
		return ErrGameAlreadyStarted
	}
	if len(s.players) >= MaxPlayers {
		return ErrRoomFull
	}
	if s.seatOf(playerID) >= 0 {
		return ErrDuplicatePlayer
	}
	s.players = append(s.players, &playerState{id: playerID, name: name})
	return nil
}

func (s *session) start() error {
	if s.started {
		return ErrGameAlreadyStarted
	}
	if len(s.players) < MinPlayers {
		return ErrNotEnoughPlayers
	}

	shuffled := deck.Shuffle(deck.Generate())
	hands := deck.Deal(shuffled, len(s.players))
	for i, p := range s.players {
		p.hand = hands[i]
	}

	s.started = true
	s.startedAt = time.Now()
	s.currentPlayerIndex = 0
	return nil
}

// playCards removes the named cards from the player's hand, stacks them
// on the pile and records the declaration. The declared rank is NOT
// required to match the actual cards: the mismatch is exactly what a
// later challenge tests.
func (s *session) playCards(playerID string, cardIDs []string, declared deck.Rank) error {
	if !s.started {
		return ErrRoomNotStarted
	}
	if s.resolving {
		return ErrResolutionInProgress
	}
	if s.winner != nil {
		return ErrGameAlreadyWon
	}

	seat := s.seatOf(playerID)
	if seat < 0 {
		return ErrPlayerNotFound
	}
	if seat != s.currentPlayerIndex {
		return ErrNotYourTurn
	}

	player := s.players[seat]

	// Validate-then-apply: collect from a scratch copy so a missing card
	// leaves the hand untouched. A duplicate id fails here too, since the
	// first pick consumes the card.
	remaining := make([]deck.Card, len(player.hand))
	copy(remaining, player.hand)

	played := make([]deck.Card, 0, len(cardIDs))
	for _, id := range cardIDs {
		idx := -1
		for i, c := range remaining {
			if c.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrCardNotInHand
		}
		played = append(played, remaining[idx])
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}

	player.hand = remaining
	s.pile = append(s.pile, played...)
	s.lastPlay = &lastPlay{
		playerID:     player.id,
		playerName:   player.name,
		declaredRank: declared,
		cards:        played,
		at:           time.Now(),
	}
	s.currentPlayerIndex = (s.currentPlayerIndex + 1) % len(s.players)

	s.checkVictory()
	return nil
}

// callLiar resolves a challenge against the most recent play. The full
// pile, not just the challenged cards, moves to the losing side.
func (s *session) callLiar(accuserID string) (*ChallengeResult, error) {
	if s.resolving {
		return nil, ErrResolutionInProgress
	}
	if s.winner != nil {
		return nil, ErrGameAlreadyWon
	}
	if s.lastPlay == nil {
		return nil, ErrNoPendingPlay
	}
	if accuserID == s.lastPlay.playerID {
		return nil, ErrCannotAccuseSelf
	}

	accuserSeat := s.seatOf(accuserID)
	if accuserSeat < 0 {
		return nil, ErrAccuserNotFound
	}
	accuser := s.players[accuserSeat]
	accused := s.players[s.seatOf(s.lastPlay.playerID)]

	wasLiar := false
	for _, c := range s.lastPlay.cards {
		if c.Rank != s.lastPlay.declaredRank {
			wasLiar = true
			break
		}
	}

	var loser, winner *playerState
	if wasLiar {
		// The liar takes the pile and the accuser takes the turn.
		loser, winner = accused, accuser
		s.currentPlayerIndex = accuserSeat
	} else {
		// Truthful play: the accuser takes the pile and whoever was
		// already next keeps the turn.
		loser, winner = accuser, accused
	}
	loser.hand = append(loser.hand, s.pile...)

	result := &ChallengeResult{
		WasLiar:       wasLiar,
		RevealedCards: s.lastPlay.cards,
		DeclaredRank:  s.lastPlay.declaredRank,
		AccuserName:   accuser.name,
		LoserName:     loser.name,
		WinnerName:    winner.name,
		PileCount:     len(s.pile),
	}

	s.pile = nil
	s.lastPlay = nil
	s.resolving = true
	s.challenges++

	s.checkVictory()
	return result, nil
}

// finishReveal closes the resolution window opened by callLiar.
func (s *session) finishReveal() {
	s.resolving = false
}

// checkVictory marks the first empty-handed player (stable by seat
// order) as the winner. Once set, play and challenge intents fail with
// ErrGameAlreadyWon.
func (s *session) checkVictory() {
	if !s.started || s.winner != nil {
		return
	}
	for _, p := range s.players {
		if len(p.hand) == 0 {
			s.winner = p
			return
		}
	}
}
