package domain

import "time"

// MatchOutcome - how a match ended
type MatchOutcome string

const (
	MatchOutcomeVictory    MatchOutcome = "victory"
	MatchOutcomePlayerLeft MatchOutcome = "player_left"
)

// Match - record of a finished game, written once when the room is torn
// down. Live sessions are never persisted.
type Match struct {
	ID          int64        `db:"id" json:"id"`
	RoomCode    string       `db:"room_code" json:"room_code"`
	WinnerName  *string      `db:"winner_name" json:"winner_name,omitempty"`
	PlayerCount int          `db:"player_count" json:"player_count"`
	Challenges  int          `db:"challenges" json:"challenges"`
	Outcome     MatchOutcome `db:"outcome" json:"outcome"`
	StartedAt   time.Time    `db:"started_at" json:"started_at"`
	EndedAt     time.Time    `db:"ended_at" json:"ended_at"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
}
