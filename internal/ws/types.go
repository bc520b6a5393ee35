package ws

import "encoding/json"

const (
	// client → server
	MsgCreateRoom = "create_room"
	MsgJoinRoom   = "join_room"
	MsgStartGame  = "start_game"
	MsgPlayCards  = "play_cards"
	MsgCallLiar   = "call_liar"

	// server → client
	MsgRoomCreated  = "room_created"
	MsgRoomJoined   = "room_joined"
	MsgPlayerJoined = "player_joined"
	MsgGameStarted  = "game_started"
	MsgCardsPlayed  = "cards_played"
	MsgLiarCalled   = "liar_called"
	MsgLiarResult   = "liar_result"
	MsgGameWon      = "game_won"
	MsgPlayerLeft   = "player_left"
	MsgRoomEnded    = "room_ended"
	MsgError        = "error"
)

// Envelope is the inbound frame; the payload is decoded per message type.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Message is the outbound frame.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}
