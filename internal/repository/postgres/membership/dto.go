package membership

import (
	"time"

	"github.com/uptrace/bun"
)

type Filter struct {
	Limit  *int
	Offset *int
	Page   *int
	Search *string
	All    *bool
}

type GetListResponse struct {
	ID           int      `json:"id"`
	PlanNumber   *int     `json:"plan_number"`
	Name         *string  `json:"name"`
	DurationDays *int     `json:"duration_days"`
	Price        *float64 `json:"price"`
	IsActive     *bool    `json:"is_active"`
	Members      int      `json:"members"`
}

type GetDetailByNumberResponse struct {
	ID           int      `json:"id"`
	PlanNumber   *int     `json:"plan_number"`
	Name         *string  `json:"name"`
	Description  *string  `json:"description,omitempty"`
	DurationDays *int     `json:"duration_days"`
	Price        *float64 `json:"price"`
	IsActive     *bool    `json:"is_active"`
}

type CreateRequest struct {
	Name         *string  `json:"name" form:"name"`
	Description  *string  `json:"description" form:"description"`
	DurationDays *int     `json:"duration_days" form:"duration_days"`
	Price        *float64 `json:"price" form:"price"`
	IsActive     *bool    `json:"is_active" form:"is_active"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:membership_plans"`

	ID           int       `json:"id" bun:"-"`
	PlanNumber   int       `json:"plan_number" bun:"plan_number"`
	Name         *string   `json:"name" bun:"name"`
	Description  *string   `json:"description" bun:"description"`
	DurationDays *int      `json:"duration_days" bun:"duration_days"`
	Price        *float64  `json:"price" bun:"price"`
	IsActive     bool      `json:"is_active" bun:"is_active"`
	CreatedAt    time.Time `json:"-" bun:"created_at"`
	CreatedBy    int       `json:"-" bun:"created_by"`
}

type UpdateRequest struct {
	ID           int      `json:"id" form:"id"`
	Name         *string  `json:"name" form:"name"`
	Description  *string  `json:"description" form:"description"`
	DurationDays *int     `json:"duration_days" form:"duration_days"`
	Price        *float64 `json:"price" form:"price"`
	IsActive     *bool    `json:"is_active" form:"is_active"`
}

type FixNumbersResponse struct {
	Fixed   int   `json:"fixed"`
	Numbers []int `json:"numbers"`
}
