package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/turkhealth/clinichub/internal/domain/clinic"
	"github.com/turkhealth/clinichub/internal/observability"
)

const clinicColumns = `id, name, slug, city, country, address, specialties, phone, email, website,
		description, rating, featured, verified, active, total_patients, created_at, updated_at`

type ClinicsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewClinicsRepo(pool *pgxpool.Pool, prom *observability.Prom) *ClinicsRepo {
	return &ClinicsRepo{
		pool: pool,
		prom: prom,
	}
}

func (r *ClinicsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *ClinicsRepo) Create(ctx context.Context, req clinic.CreateClinicRequest) (clinic.Clinic, error) {
	c := clinic.NewFromCreateRequest(req)

	err := r.observe("clinics.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO clinics (id, name, slug, city, country, address, specialties, phone, email,
				website, description, featured, verified, active, created_at, updated_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
			c.ID, c.Name, c.Slug, c.City, c.Country, c.Address, c.Specialties, c.Phone, c.Email,
			c.Website, c.Description, c.Featured, c.Verified, c.Active, c.CreatedAt, c.UpdatedAt,
		)
		return err
	})

	if err != nil {
		if IsUniqueViolation(err) {
			return clinic.Clinic{}, clinic.ErrSlugTaken
		}
		return clinic.Clinic{}, err
	}

	return c, nil
}

// List returns active clinics only; back-office edits go through GetByID.
func (r *ClinicsRepo) List(ctx context.Context, filter clinic.ListFilter) ([]clinic.Clinic, error) {
	conds := []string{"active = TRUE"}
	var args []interface{}

	argsPosition := 1

	if filter.Specialty != nil {
		conds = append(conds, fmt.Sprintf("$%d = ANY(specialties)", argsPosition))
		args = append(args, *filter.Specialty)
		argsPosition++
	}

	if filter.City != nil {
		conds = append(conds, fmt.Sprintf("city = $%d", argsPosition))
		args = append(args, *filter.City)
		argsPosition++
	}

	if filter.Featured {
		conds = append(conds, "featured = TRUE")
	}

	query := `SELECT ` + clinicColumns + ` FROM clinics WHERE ` + strings.Join(conds, " AND ") +
		` ORDER BY featured DESC, rating DESC`

	var out []clinic.Clinic

	err := r.observe("clinics.list", func() error {
		rows, err := r.pool.Query(ctx, query, args...)

		if err != nil {
			return err
		}

		defer rows.Close()

		out = make([]clinic.Clinic, 0, 16)

		for rows.Next() {
			c, err := scanClinic(rows)

			if err != nil {
				return err
			}

			out = append(out, c)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *ClinicsRepo) GetByID(ctx context.Context, id string) (clinic.Clinic, error) {
	var c clinic.Clinic

	err := r.observe("clinics.get_by_id", func() error {
		row := r.pool.QueryRow(ctx, `SELECT `+clinicColumns+` FROM clinics WHERE id = $1`, id)

		var err error
		c, err = scanClinic(row)
		return err
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return clinic.Clinic{}, clinic.ErrNotFound
		}
		return clinic.Clinic{}, err
	}

	return c, nil
}

func (r *ClinicsRepo) Update(ctx context.Context, id string, req clinic.UpdateClinicRequest) (clinic.Clinic, error) {
	var c clinic.Clinic

	err := r.observe("clinics.update", func() error {
		row := r.pool.QueryRow(ctx,
			`UPDATE clinics
				SET name = $2,
					slug = $3,
					city = $4,
					country = COALESCE(NULLIF($5, ''), country),
					address = $6,
					specialties = $7,
					phone = $8,
					email = $9,
					website = $10,
					description = $11,
					featured = COALESCE($12, featured),
					verified = COALESCE($13, verified),
					active = COALESCE($14, active),
					updated_at = NOW()
			WHERE id = $1
			RETURNING `+clinicColumns,
			id, req.Name, req.Slug, req.City, req.Country, req.Address, req.Specialties,
			req.Phone, req.Email, req.Website, req.Description, req.Featured, req.Verified, req.Active,
		)

		var err error
		c, err = scanClinic(row)
		return err
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return clinic.Clinic{}, clinic.ErrNotFound
		}
		if IsUniqueViolation(err) {
			return clinic.Clinic{}, clinic.ErrSlugTaken
		}
		return clinic.Clinic{}, err
	}

	return c, nil
}

// SoftDelete flips active off; the row stays for the back office.
func (r *ClinicsRepo) SoftDelete(ctx context.Context, id string) (clinic.Clinic, error) {
	var c clinic.Clinic

	err := r.observe("clinics.soft_delete", func() error {
		row := r.pool.QueryRow(ctx,
			`UPDATE clinics
				SET active = FALSE,
					updated_at = NOW()
			WHERE id = $1
			RETURNING `+clinicColumns,
			id,
		)

		var err error
		c, err = scanClinic(row)
		return err
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return clinic.Clinic{}, clinic.ErrNotFound
		}
		return clinic.Clinic{}, err
	}

	return c, nil
}

func scanClinic(row pgx.Row) (clinic.Clinic, error) {
	var c clinic.Clinic

	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Slug,
		&c.City,
		&c.Country,
		&c.Address,
		&c.Specialties,
		&c.Phone,
		&c.Email,
		&c.Website,
		&c.Description,
		&c.Rating,
		&c.Featured,
		&c.Verified,
		&c.Active,
		&c.TotalPatients,
		&c.CreatedAt,
		&c.UpdatedAt,
	)

	return c, err
}
