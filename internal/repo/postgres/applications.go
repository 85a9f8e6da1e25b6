package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/turkhealth/clinichub/internal/domain/application"
	"github.com/turkhealth/clinichub/internal/observability"
)

type ApplicationsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewApplicationsRepo(pool *pgxpool.Pool, prom *observability.Prom) *ApplicationsRepo {
	return &ApplicationsRepo{
		pool: pool,
		prom: prom,
	}
}

func (r *ApplicationsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *ApplicationsRepo) Create(ctx context.Context, req application.CreateApplicationRequest) (application.Application, error) {
	a := application.NewFromCreateRequest(req)

	err := r.observe("applications.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO applications (id, name, email, phone, country, age, treatment, message,
				budget, urgency, status, clinic_id, created_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
			a.ID, a.Name, a.Email, a.Phone, a.Country, a.Age, a.Treatment, a.Message,
			a.Budget, a.Urgency, a.Status, a.ClinicID, a.CreatedAt,
		)
		return err
	})

	if err != nil {
		if IsForeignKeyViolation(err) {
			return application.Application{}, application.ErrUnknownClinic
		}
		return application.Application{}, err
	}

	return a, nil
}

// List joins the clinic summary on so the back office sees where a lead
// points without a second query.
func (r *ApplicationsRepo) List(ctx context.Context, filter application.ListFilter) ([]application.Application, error) {
	baseQuery := `SELECT a.id,
		a.name,
		a.email,
		a.phone,
		a.country,
		a.age,
		a.treatment,
		a.message,
		a.budget,
		a.urgency,
		a.status,
		a.clinic_id,
		a.created_at,
		c.id,
		c.name,
		c.slug,
		c.city
	FROM applications a
	LEFT JOIN clinics c ON c.id = a.clinic_id
	`

	var conds []string
	var args []interface{}

	argsPosition := 1

	if filter.Status != nil {
		conds = append(conds, fmt.Sprintf("a.status = $%d", argsPosition))
		args = append(args, *filter.Status)
		argsPosition++
	}

	if filter.Treatment != nil {
		conds = append(conds, fmt.Sprintf("a.treatment = $%d", argsPosition))
		args = append(args, *filter.Treatment)
	}

	query := baseQuery

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	query += " ORDER BY a.created_at DESC"

	var out []application.Application

	err := r.observe("applications.list", func() error {
		rows, err := r.pool.Query(ctx, query, args...)

		if err != nil {
			return err
		}

		defer rows.Close()

		out = make([]application.Application, 0, 32)

		for rows.Next() {
			var a application.Application
			var cID, cName, cSlug, cCity *string

			err = rows.Scan(
				&a.ID, &a.Name, &a.Email, &a.Phone, &a.Country, &a.Age, &a.Treatment,
				&a.Message, &a.Budget, &a.Urgency, &a.Status, &a.ClinicID, &a.CreatedAt,
				&cID, &cName, &cSlug, &cCity,
			)

			if err != nil {
				return err
			}

			if cID != nil {
				a.Clinic = &application.ClinicRef{
					ID:   *cID,
					Name: *cName,
					Slug: *cSlug,
					City: *cCity,
				}
			}

			out = append(out, a)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

// ListRecentByClinic backs the clinic detail view (latest leads first).
func (r *ApplicationsRepo) ListRecentByClinic(ctx context.Context, clinicID string, limit int) ([]application.Application, error) {
	var out []application.Application

	err := r.observe("applications.list_recent_by_clinic", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT id, name, email, phone, country, age, treatment, message,
				budget, urgency, status, clinic_id, created_at
			FROM applications
			WHERE clinic_id = $1
			ORDER BY created_at DESC
			LIMIT $2`,
			clinicID, limit,
		)

		if err != nil {
			return err
		}

		defer rows.Close()

		out = make([]application.Application, 0, limit)

		for rows.Next() {
			var a application.Application

			err = rows.Scan(
				&a.ID, &a.Name, &a.Email, &a.Phone, &a.Country, &a.Age, &a.Treatment,
				&a.Message, &a.Budget, &a.Urgency, &a.Status, &a.ClinicID, &a.CreatedAt,
			)

			if err != nil {
				return err
			}

			out = append(out, a)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}
