package attendance

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fitura/backend/foundation/web"
	"fitura/backend/internal/pkg/repository/postgresql"
	"fitura/backend/internal/repository/postgres"
	"fitura/backend/internal/service/dayclose"
	"fitura/backend/internal/service/ledger"
	"fitura/backend/internal/service/timesheet"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/pkg/errors"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// Find returns the day's record for a client, if one exists. One row per
// (client_id, attendance_date) is guaranteed by a unique index.
func (r Repository) Find(ctx context.Context, clientRef int, day time.Time) (ledger.Record, bool, error) {
	query := `
		SELECT
			id,
			client_id,
			attendance_date,
			in_time,
			out_time,
			status
		FROM attendance
		WHERE deleted_at IS NULL AND client_id = $1 AND attendance_date = $2
	`

	var (
		record       ledger.Record
		dayString    string
		inTimeBytes  []byte
		outTimeBytes []byte
	)

	err := r.QueryRowContext(ctx, query, clientRef, day.Format("2006-01-02")).Scan(
		&record.ID,
		&record.ClientRef,
		&dayString,
		&inTimeBytes,
		&outTimeBytes,
		&record.Status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.Record{}, false, nil
	}
	if err != nil {
		return ledger.Record{}, false, web.NewRequestError(errors.Wrap(err, "selecting attendance"), http.StatusInternalServerError)
	}

	parsedDay, err := time.Parse("2006-01-02", dayString)
	if err != nil {
		return ledger.Record{}, false, web.NewRequestError(errors.Wrap(err, "parsing attendance_date"), http.StatusInternalServerError)
	}
	record.Day = parsedDay
	record.InTime = clockString(inTimeBytes)
	record.OutTime = clockString(outTimeBytes)

	return record, true, nil
}

func (r Repository) Insert(ctx context.Context, record ledger.Record) (ledger.Record, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return ledger.Record{}, err
	}

	row := insertRow{
		ClientID:       record.ClientRef,
		AttendanceDate: record.Day.Format("2006-01-02"),
		InTime:         record.InTime,
		Status:         record.Status,
		CreatedAt:      time.Now(),
		CreatedBy:      claims.UserId,
	}

	_, err = r.NewInsert().Model(&row).Returning("id").Exec(ctx, &row.ID)
	if err != nil {
		if postgresql.IsUniqueViolation(err) {
			return ledger.Record{}, web.NewRequestError(errors.Wrap(err, "attendance already recorded for this day"), http.StatusConflict)
		}
		return ledger.Record{}, web.NewRequestError(errors.Wrap(err, "inserting attendance"), http.StatusBadRequest)
	}

	record.ID = row.ID
	return record, nil
}

func (r Repository) Update(ctx context.Context, record ledger.Record) error {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return err
	}

	q := r.NewUpdate().Table("attendance").Where("deleted_at IS NULL AND id = ?", record.ID)
	q.Set("in_time = ?", record.InTime)
	if record.OutTime != "" {
		q.Set("out_time = ?", record.OutTime)
	} else {
		q.Set("out_time = NULL")
	}
	q.Set("status = ?", record.Status)
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	_, err = q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating attendance"), http.StatusBadRequest)
	}

	return nil
}

// Open lists records still marked IN, across all days. The sweeper decides
// which of them are past their cutoff.
func (r Repository) Open(ctx context.Context) ([]dayclose.OpenRecord, error) {
	query := `
		SELECT
			id,
			attendance_date
		FROM attendance
		WHERE deleted_at IS NULL AND status = 'IN' AND out_time IS NULL
	`

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting open attendance"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var open []dayclose.OpenRecord

	for rows.Next() {
		var (
			record    dayclose.OpenRecord
			dayString string
		)
		if err = rows.Scan(&record.ID, &dayString); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "scanning open attendance"), http.StatusInternalServerError)
		}

		day, err := time.Parse("2006-01-02", dayString)
		if err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "parsing attendance_date"), http.StatusInternalServerError)
		}
		record.Day = day

		open = append(open, record)
	}

	return open, rows.Err()
}

func (r Repository) ForceClose(ctx context.Context, id int, outTime string) error {
	q := r.NewUpdate().Table("attendance").Where("deleted_at IS NULL AND id = ?", id)
	q.Set("out_time = ?", outTime)
	q.Set("status = ?", ledger.StatusOut)
	q.Set("updated_at = ?", time.Now())

	_, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "force closing attendance"), http.StatusBadRequest)
	}

	return nil
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `
		WHERE
			a.deleted_at IS NULL
	`

	if filter.Search != nil {
		search := strings.Replace(*filter.Search, "'", "''", -1)

		whereQuery += fmt.Sprintf(` AND
		(c.first_name ilike '%s' OR c.last_name ilike '%s' OR c.client_number::text = '%s')`,
			"%"+search+"%", "%"+search+"%", search)
	}
	if filter.ClientID != nil {
		whereQuery += fmt.Sprintf(" AND c.client_number = %d", *filter.ClientID)
	}
	if filter.Status != nil {
		status := strings.ToUpper(strings.Replace(*filter.Status, "'", "''", -1))
		whereQuery += fmt.Sprintf(" AND a.status = '%s'", status)
	}

	if filter.Date != nil {
		parsed, err := time.Parse("2006-01-02", *filter.Date)
		if err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "date parse"), http.StatusBadRequest)
		}
		whereQuery += fmt.Sprintf(" AND a.attendance_date = '%s'", parsed.Format("2006-01-02"))
	}

	orderQuery := "ORDER BY a.attendance_date desc, a.created_at desc"

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
			a.id,
			c.client_number,
			c.first_name,
			c.last_name,
			c.photo_url,
			a.attendance_date,
			a.in_time,
			a.out_time,
			a.status
		FROM attendance as a
		LEFT JOIN clients c ON a.client_id = c.id
		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting attendance list"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []GetListResponse

	for rows.Next() {
		var (
			detail       GetListResponse
			dayString    string
			inTimeBytes  []byte
			outTimeBytes []byte
		)

		if err = rows.Scan(
			&detail.ID,
			&detail.ClientNumber,
			&detail.FirstName,
			&detail.LastName,
			&detail.PhotoUrl,
			&dayString,
			&inTimeBytes,
			&outTimeBytes,
			&detail.Status); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning attendance list"), http.StatusBadRequest)
		}

		day, err := date.ParseDate(dayString)
		if err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "converting attendance_date"), http.StatusBadRequest)
		}
		detail.Date = &day
		detail.InTime = clockString(inTimeBytes)
		detail.OutTime = clockString(outTimeBytes)

		if detail.OutTime != "" {
			duration, err := timesheet.Duration(detail.InTime, detail.OutTime)
			if err != nil {
				return nil, 0, web.NewRequestError(errors.Wrap(err, "computing duration"), http.StatusInternalServerError)
			}
			detail.Duration = duration
		}

		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(a.id)
		FROM attendance as a
		LEFT JOIN clients c ON a.client_id = c.id
		%s
	`, whereQuery)

	count := 0

	if err := r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "counting attendance"), http.StatusInternalServerError)
	}

	return list, count, nil
}

func (r Repository) Delete(ctx context.Context, id int) error {
	return r.DeleteRow(ctx, "attendance", id)
}

// clockString trims a scanned TIME column down to HH:MM for responses.
// Seconds are kept when they carry information, as with the 23:59:59 cutoff.
func clockString(raw []byte) string {
	if raw == nil {
		return ""
	}
	s := string(raw)
	if t, err := time.Parse("15:04:05", s); err == nil {
		if t.Second() == 0 {
			return t.Format("15:04")
		}
		return s
	}
	return s
}
