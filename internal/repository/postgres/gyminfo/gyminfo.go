package gyminfo

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"fitura/backend/foundation/web"
	"fitura/backend/internal/auth"
	"fitura/backend/internal/pkg/repository/postgresql"
	"fitura/backend/internal/service/dayclose"

	"github.com/pkg/errors"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// GetList returns the gym settings. There is a single row in practice; the
// list shape keeps the admin UI's table plumbing happy.
func (r Repository) GetList(ctx context.Context) ([]GetListResponse, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT
			id,
			gym_name,
			logo_url,
			currency,
			end_of_day_time
		FROM gym_info
		WHERE deleted_at IS NULL
		ORDER BY id
	`

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting gym info"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []GetListResponse

	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.GymName,
			&detail.LogoUrl,
			&detail.Currency,
			&detail.EndOfDayTime); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "scanning gym info"), http.StatusBadRequest)
		}

		list = append(list, detail)
	}

	return list, rows.Err()
}

// GetCutoff reads the configured end-of-day time for the sweeper. Missing or
// unreadable settings fall back to the default cutoff.
func (r Repository) GetCutoff(ctx context.Context) string {
	var cutoff *string

	err := r.QueryRowContext(ctx,
		`SELECT end_of_day_time FROM gym_info WHERE deleted_at IS NULL ORDER BY id LIMIT 1`).Scan(&cutoff)
	if err != nil || cutoff == nil {
		return dayclose.DefaultCutoff
	}

	normalized, err := dayclose.NormalizeCutoff(*cutoff)
	if err != nil {
		return dayclose.DefaultCutoff
	}

	return normalized
}

func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "ID"); err != nil {
		return err
	}

	q := r.NewUpdate().Table("gym_info").Where("deleted_at IS NULL AND id = ?", request.ID)

	if request.GymName != nil {
		q.Set("gym_name = ?", request.GymName)
	}
	if request.LogoUrl != nil {
		q.Set("logo_url = ?", request.LogoUrl)
	}
	if request.Currency != nil {
		q.Set("currency = ?", request.Currency)
	}
	if request.EndOfDayTime != nil {
		normalized, err := dayclose.NormalizeCutoff(*request.EndOfDayTime)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "parsing end_of_day_time"), http.StatusBadRequest)
		}
		q.Set("end_of_day_time = ?", normalized)
	}
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	res, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating gym info"), http.StatusBadRequest)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return web.NewRequestError(sql.ErrNoRows, http.StatusNotFound)
	}

	return nil
}
