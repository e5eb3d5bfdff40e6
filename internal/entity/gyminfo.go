package entity

import (
	"github.com/uptrace/bun"
)

type GymInfo struct {
	bun.BaseModel `bun:"table:gym_info"`

	BasicEntity
	GymName      *string `json:"gym_name" bun:"gym_name"`
	LogoUrl      *string `json:"logo_url" bun:"logo_url"`
	Currency     *string `json:"currency" bun:"currency"`
	EndOfDayTime *string `json:"end_of_day_time" bun:"end_of_day_time"`
}
