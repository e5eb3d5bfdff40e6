package entity

import (
	"github.com/uptrace/bun"
)

type MembershipPlan struct {
	bun.BaseModel `bun:"table:membership_plans"`

	BasicEntity
	PlanNumber   *int     `json:"plan_number" bun:"plan_number"`
	Name         *string  `json:"name" bun:"name"`
	Description  *string  `json:"description" bun:"description"`
	DurationDays *int     `json:"duration_days" bun:"duration_days"`
	Price        *float64 `json:"price" bun:"price"`
	IsActive     *bool    `json:"is_active" bun:"is_active"`
}
