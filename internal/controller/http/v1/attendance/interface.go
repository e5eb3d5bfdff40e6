package attendance

import (
	"context"

	"fitura/backend/internal/repository/postgres/attendance"
)

type Attendance interface {
	GetList(ctx context.Context, filter attendance.Filter) ([]attendance.GetListResponse, int, error)
	Delete(ctx context.Context, id int) error
}

// Settings supplies the configured end-of-day cutoff for sweeps.
type Settings interface {
	GetCutoff(ctx context.Context) string
}
