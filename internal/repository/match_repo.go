package repository

import (
	"context"

	"github.com/Medinhoo/liar/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type MatchRepository struct {
	db *pgxpool.Pool
}

func NewMatchRepository(db *pgxpool.Pool) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) Create(ctx context.Context, m *domain.Match) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO matches (room_code, winner_name, player_count, challenges, outcome, started_at, ended_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7)
         RETURNING id, created_at`,
		m.RoomCode,
		m.WinnerName,
		m.PlayerCount,
		m.Challenges,
		m.Outcome,
		m.StartedAt,
		m.EndedAt,
	).Scan(&m.ID, &m.CreatedAt)
}

func (r *MatchRepository) Recent(ctx context.Context, limit int) ([]*domain.Match, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, room_code, winner_name, player_count, challenges, outcome, started_at, ended_at, created_at
         FROM matches
         ORDER BY created_at DESC
         LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Match
	for rows.Next() {
		m := &domain.Match{}
		if err := rows.Scan(&m.ID, &m.RoomCode, &m.WinnerName, &m.PlayerCount, &m.Challenges, &m.Outcome, &m.StartedAt, &m.EndedAt, &m.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, m)
	}

	return res, rows.Err()
}
