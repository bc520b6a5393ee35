package game

import "github.com/Medinhoo/liar/internal/deck"

// View is the per-viewer projection of a session. Opponents' hands are
// reduced to a count and a pending play never exposes card identities,
// to anyone, until it is resolved.
type View struct {
	RoomCode           string        `json:"room_code"`
	Players            []PlayerView  `json:"players"`
	PileCount          int           `json:"pile_count"`
	LastPlay           *LastPlayView `json:"last_play"`
	CurrentPlayerIndex int           `json:"current_player_index"`
	Started            bool          `json:"started"`
	CurrentPlayer      string        `json:"current_player"`
	WinnerName         string        `json:"winner_name,omitempty"`
}

type PlayerView struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	IsHost    bool        `json:"is_host"`
	CardCount int         `json:"card_count"`
	Hand      []deck.Card `json:"hand"`
}

type LastPlayView struct {
	PlayerID     string    `json:"player_id"`
	PlayerName   string    `json:"player_name"`
	DeclaredRank deck.Rank `json:"declared_rank"`
	CardCount    int       `json:"card_count"`
}

// project renders the session for one viewer. It is a pure read: the
// canonical session is never mutated to produce a redacted view. The
// caller must hold the session lock.
func project(s *session, viewerID string) *View {
	players := make([]PlayerView, len(s.players))
	for i, p := range s.players {
		hand := []deck.Card{}
		if p.id == viewerID {
			hand = make([]deck.Card, len(p.hand))
			copy(hand, p.hand)
		}
		players[i] = PlayerView{
			ID:        p.id,
			Name:      p.name,
			IsHost:    p.isHost,
			CardCount: len(p.hand),
			Hand:      hand,
		}
	}

	var last *LastPlayView
	if s.lastPlay != nil {
		last = &LastPlayView{
			PlayerID:     s.lastPlay.playerID,
			PlayerName:   s.lastPlay.playerName,
			DeclaredRank: s.lastPlay.declaredRank,
			CardCount:    len(s.lastPlay.cards),
		}
	}

	v := &View{
		RoomCode:           s.roomCode,
		Players:            players,
		PileCount:          len(s.pile),
		LastPlay:           last,
		CurrentPlayerIndex: s.currentPlayerIndex,
		Started:            s.started,
	}
	if len(s.players) > 0 {
		v.CurrentPlayer = s.players[s.currentPlayerIndex].name
	}
	if s.winner != nil {
		v.WinnerName = s.winner.name
	}
	return v
}
