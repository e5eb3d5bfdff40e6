package membership

import (
	"context"

	"fitura/backend/internal/repository/postgres/membership"
)

type Membership interface {
	GetList(ctx context.Context, filter membership.Filter) ([]membership.GetListResponse, int, error)
	GetDetailByNumber(ctx context.Context, number int) (membership.GetDetailByNumberResponse, error)
	Create(ctx context.Context, request membership.CreateRequest) (membership.CreateResponse, error)
	UpdateAll(ctx context.Context, request membership.UpdateRequest) error
	UpdateColumns(ctx context.Context, request membership.UpdateRequest) error
	Delete(ctx context.Context, id int) error
	FixNumbers(ctx context.Context) (membership.FixNumbersResponse, error)
}
