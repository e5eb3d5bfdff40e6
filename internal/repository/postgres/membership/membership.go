package membership

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fitura/backend/foundation/web"
	"fitura/backend/internal/auth"
	"fitura/backend/internal/pkg/repository/postgresql"
	"fitura/backend/internal/repository/postgres"
	"fitura/backend/internal/service/sequence"

	"github.com/pkg/errors"
)

type Repository struct {
	*postgresql.Database

	allocator *sequence.Allocator
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{
		Database:  database,
		allocator: sequence.NewAllocator(database),
	}
}

// GetList returns active plans with their member counts. Inactive plans are
// included only when the all filter is set; the UI shows them greyed out.
func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `
		WHERE
			m.deleted_at IS NULL
	`

	if filter.All == nil || !*filter.All {
		whereQuery += " AND m.is_active = true"
	}

	if filter.Search != nil {
		search := strings.Replace(*filter.Search, "'", "''", -1)
		whereQuery += fmt.Sprintf(" AND m.name ilike '%s'", "%"+search+"%")
	}

	orderQuery := "ORDER BY m.plan_number asc"

	var limitQuery, offsetQuery string

	if filter.Page != nil && filter.Limit != nil {
		offset := (*filter.Page - 1) * (*filter.Limit)
		filter.Offset = &offset
	}

	if filter.Limit != nil {
		limitQuery += fmt.Sprintf(" LIMIT %d", *filter.Limit)
	}

	if filter.Offset != nil {
		offsetQuery += fmt.Sprintf(" OFFSET %d", *filter.Offset)
	}

	query := fmt.Sprintf(`
		SELECT
			m.id,
			m.plan_number,
			m.name,
			m.duration_days,
			m.price,
			m.is_active,
			(SELECT count(c.id) FROM clients c WHERE c.deleted_at IS NULL AND c.membership_plan_id = m.id) as members
		FROM membership_plans m
		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting membership plans"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []GetListResponse

	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.PlanNumber,
			&detail.Name,
			&detail.DurationDays,
			&detail.Price,
			&detail.IsActive,
			&detail.Members); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning membership plan list"), http.StatusBadRequest)
		}

		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(m.id)
		FROM membership_plans m
		%s
	`, whereQuery)

	count := 0

	if err := r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "counting membership plans"), http.StatusInternalServerError)
	}

	return list, count, nil
}

func (r Repository) GetDetailByNumber(ctx context.Context, number int) (GetDetailByNumberResponse, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return GetDetailByNumberResponse{}, err
	}

	query := fmt.Sprintf(`
		SELECT
			m.id,
			m.plan_number,
			m.name,
			m.description,
			m.duration_days,
			m.price,
			m.is_active
		FROM membership_plans m
		WHERE m.deleted_at IS NULL AND m.plan_number = %d
	`, number)

	var detail GetDetailByNumberResponse

	err = r.QueryRowContext(ctx, query).Scan(
		&detail.ID,
		&detail.PlanNumber,
		&detail.Name,
		&detail.Description,
		&detail.DurationDays,
		&detail.Price,
		&detail.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDetailByNumberResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return GetDetailByNumberResponse{}, web.NewRequestError(errors.Wrap(err, "selecting membership plan detail"), http.StatusInternalServerError)
	}

	return detail, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "Name", "DurationDays", "Price"); err != nil {
		return CreateResponse{}, err
	}

	if *request.DurationDays < 1 {
		return CreateResponse{}, web.NewRequestError(errors.New("duration_days must be positive"), http.StatusBadRequest)
	}

	var response CreateResponse

	response.Name = request.Name
	response.Description = request.Description
	response.DurationDays = request.DurationDays
	response.Price = request.Price
	response.IsActive = request.IsActive == nil || *request.IsActive
	response.CreatedAt = time.Now()
	response.CreatedBy = claims.UserId

	// Same read-then-insert dance as client numbers: collide, re-read, retry
	// once.
	for attempt := 0; ; attempt++ {
		number, err := r.allocator.Allocate(ctx, sequence.KindMembershipPlan)
		if err != nil {
			return CreateResponse{}, err
		}
		response.PlanNumber = number

		_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
		if err == nil {
			return response, nil
		}
		if postgresql.IsUniqueViolation(err) && attempt == 0 {
			continue
		}
		if postgresql.IsUniqueViolation(err) {
			return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "plan number conflict"), http.StatusConflict)
		}
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating membership plan"), http.StatusBadRequest)
	}
}

func (r Repository) UpdateAll(ctx context.Context, request UpdateRequest) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "ID", "Name", "DurationDays", "Price"); err != nil {
		return err
	}

	q := r.NewUpdate().Table("membership_plans").Where("deleted_at IS NULL AND id = ?", request.ID)
	q.Set("name = ?", request.Name)
	q.Set("description = ?", request.Description)
	q.Set("duration_days = ?", request.DurationDays)
	q.Set("price = ?", request.Price)
	if request.IsActive != nil {
		q.Set("is_active = ?", request.IsActive)
	}
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	_, err = q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating membership plan"), http.StatusBadRequest)
	}

	return nil
}

func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "ID"); err != nil {
		return err
	}

	q := r.NewUpdate().Table("membership_plans").Where("deleted_at IS NULL AND id = ?", request.ID)

	if request.Name != nil {
		q.Set("name = ?", request.Name)
	}
	if request.Description != nil {
		q.Set("description = ?", request.Description)
	}
	if request.DurationDays != nil {
		if *request.DurationDays < 1 {
			return web.NewRequestError(errors.New("duration_days must be positive"), http.StatusBadRequest)
		}
		q.Set("duration_days = ?", request.DurationDays)
	}
	if request.Price != nil {
		q.Set("price = ?", request.Price)
	}
	if request.IsActive != nil {
		q.Set("is_active = ?", request.IsActive)
	}
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	_, err = q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating membership plan"), http.StatusBadRequest)
	}

	return nil
}

func (r Repository) Delete(ctx context.Context, id int) error {
	return r.DeleteRow(ctx, "membership_plans", id)
}

// FixNumbers reassigns plan numbers that are missing, non-positive or
// duplicated.
func (r Repository) FixNumbers(ctx context.Context) (FixNumbersResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return FixNumbersResponse{}, err
	}

	query := `
		SELECT id FROM membership_plans m
		WHERE m.deleted_at IS NULL AND (
			m.plan_number IS NULL
			OR m.plan_number < 1
			OR EXISTS (
				SELECT 1 FROM membership_plans o
				WHERE o.deleted_at IS NULL
					AND o.plan_number = m.plan_number
					AND o.id < m.id
			)
		)
		ORDER BY m.id
	`

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return FixNumbersResponse{}, web.NewRequestError(errors.Wrap(err, "selecting broken plan numbers"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return FixNumbersResponse{}, web.NewRequestError(errors.Wrap(err, "scanning broken plan numbers"), http.StatusInternalServerError)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return FixNumbersResponse{}, web.NewRequestError(errors.Wrap(err, "scanning broken plan numbers"), http.StatusInternalServerError)
	}

	var response FixNumbersResponse

	for _, id := range ids {
		number, err := r.allocator.Allocate(ctx, sequence.KindMembershipPlan)
		if err != nil {
			return FixNumbersResponse{}, err
		}

		q := r.NewUpdate().Table("membership_plans").Where("deleted_at IS NULL AND id = ?", id)
		q.Set("plan_number = ?", number)
		q.Set("updated_at = ?", time.Now())
		q.Set("updated_by = ?", claims.UserId)

		if _, err := q.Exec(ctx); err != nil {
			return FixNumbersResponse{}, web.NewRequestError(errors.Wrapf(err, "fixing plan %d", id), http.StatusInternalServerError)
		}

		response.Fixed++
		response.Numbers = append(response.Numbers, number)
	}

	return response, nil
}
