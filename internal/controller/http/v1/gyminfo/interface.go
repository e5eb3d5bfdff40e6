package gyminfo

import (
	"context"

	"fitura/backend/internal/repository/postgres/gyminfo"
)

type GymInfo interface {
	GetList(ctx context.Context) ([]gyminfo.GetListResponse, error)
	UpdateColumns(ctx context.Context, request gyminfo.UpdateRequest) error
}
