package dashboard

import (
	"context"

	"fitura/backend/internal/repository/postgres/dashboard"
)

type Dashboard interface {
	GetStats(ctx context.Context) (dashboard.StatsResponse, error)
}
