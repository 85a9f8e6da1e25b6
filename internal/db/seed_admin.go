package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/turkhealth/clinichub/internal/config"
	"github.com/turkhealth/clinichub/internal/security"
)

// EnsureAdminUser inserts the configured back-office user when it does not
// exist yet, so a fresh database can be logged into right away. Provisioning
// of further staff accounts happens outside this service.
func EnsureAdminUser(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	// check if the user exists

	var dummy string

	err := pool.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, cfg.AdminEmail).Scan(&dummy)

	if err == nil {
		return nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := security.HashPassword(cfg.AdminPassword)

	if err != nil {
		return err
	}

	now := time.Now().UTC()

	_, err = pool.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, name, role, active, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		`,
		uuid.NewString(), cfg.AdminEmail, hash, cfg.AdminName, cfg.AdminRole, true, now,
	)

	return err
}
