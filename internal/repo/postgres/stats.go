package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// StatsSummary is what GET /api/stats serves (and what the stats cache holds).
type StatsSummary struct {
	Clinics       int `json:"clinics"`
	Applications  int `json:"applications"`
	TotalPatients int `json:"totalPatients"`
	Countries     int `json:"countries"`
}

type StatsRepo struct {
	pool *pgxpool.Pool
}

func NewStatsRepo(pool *pgxpool.Pool) *StatsRepo {
	return &StatsRepo{pool: pool}
}

func (r *StatsRepo) Summary(ctx context.Context) (StatsSummary, error) {
	var s StatsSummary

	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM clinics WHERE active = TRUE),
			(SELECT COUNT(*) FROM applications),
			(SELECT COALESCE(SUM(total_patients), 0) FROM clinics)
	`).Scan(&s.Clinics, &s.Applications, &s.TotalPatients)

	if err != nil {
		return StatsSummary{}, err
	}

	// static for now
	s.Countries = 100

	return s, nil
}
