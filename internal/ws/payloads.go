package ws

import "github.com/Medinhoo/liar/internal/game"

// client → server

type JoinRoomPayload struct {
	RoomCode string `json:"room_code"`
}

type PlayCardsPayload struct {
	CardIDs      []string `json:"card_ids"`
	DeclaredRank string   `json:"declared_rank"`
}

// server → client

type RoomCreatedPayload struct {
	RoomCode string     `json:"room_code"`
	State    *game.View `json:"state"`
}

type RoomJoinedPayload struct {
	RoomCode string     `json:"room_code"`
	State    *game.View `json:"state"`
}

type PlayerJoinedPayload struct {
	PlayerName string     `json:"player_name"`
	State      *game.View `json:"state"`
}

// StatePayload carries a per-viewer projection for game_started,
// cards_played and player_left events.
type StatePayload struct {
	State *game.View `json:"state"`
}

type LiarCalledPayload struct {
	AccuserName string `json:"accuser_name"`
}

type LiarResultPayload struct {
	game.ChallengeResult
	State *game.View `json:"state"`
}

type GameWonPayload struct {
	WinnerName string `json:"winner_name"`
}

type RoomEndedPayload struct {
	Message string `json:"message"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
