package game

import "errors"

var (
	ErrRoomNotFound         = errors.New("room not found")
	ErrGameAlreadyStarted   = errors.New("game already started")
	ErrRoomFull             = errors.New("room is full")
	ErrDuplicatePlayer      = errors.New("player already in this room")
	ErrAlreadyInRoom        = errors.New("player already seated in another room")
	ErrNotEnoughPlayers     = errors.New("at least 2 players are required to start")
	ErrRoomNotStarted       = errors.New("game has not started yet")
	ErrPlayerNotFound       = errors.New("player not found in room")
	ErrNotYourTurn          = errors.New("not your turn")
	ErrCardNotInHand        = errors.New("card not in your hand")
	ErrNoPendingPlay        = errors.New("no play to challenge")
	ErrCannotAccuseSelf     = errors.New("cannot challenge your own play")
	ErrAccuserNotFound      = errors.New("accuser not found in room")
	ErrGameAlreadyWon       = errors.New("game already has a winner")
	ErrResolutionInProgress = errors.New("a challenge is being resolved")
)

// Code maps a game error to a stable wire code for clients.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrRoomNotFound):
		return "room_not_found"
	case errors.Is(err, ErrGameAlreadyStarted):
		return "game_already_started"
	case errors.Is(err, ErrRoomFull):
		return "room_full"
	case errors.Is(err, ErrDuplicatePlayer):
		return "duplicate_player"
	case errors.Is(err, ErrAlreadyInRoom):
		return "already_in_room"
	case errors.Is(err, ErrNotEnoughPlayers):
		return "not_enough_players"
	case errors.Is(err, ErrRoomNotStarted):
		return "room_not_started"
	case errors.Is(err, ErrPlayerNotFound):
		return "player_not_found"
	case errors.Is(err, ErrNotYourTurn):
		return "not_your_turn"
	case errors.Is(err, ErrCardNotInHand):
		return "card_not_in_hand"
	case errors.Is(err, ErrNoPendingPlay):
		return "no_pending_play"
	case errors.Is(err, ErrCannotAccuseSelf):
		return "cannot_accuse_self"
	case errors.Is(err, ErrAccuserNotFound):
		return "accuser_not_found"
	case errors.Is(err, ErrGameAlreadyWon):
		return "game_already_won"
	case errors.Is(err, ErrResolutionInProgress):
		return "resolution_in_progress"
	default:
		return "internal"
	}
}
