package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Attendance is one member's presence for one calendar day. (client_id,
// attendance_date) is the natural key, enforced with a unique index.
type Attendance struct {
	bun.BaseModel `bun:"table:attendance"`

	BasicEntity
	ClientID       *int       `json:"client_id" bun:"client_id"`
	AttendanceDate *time.Time `json:"attendance_date" bun:"attendance_date"`
	InTime         *string    `json:"in_time" bun:"in_time"`
	OutTime        *string    `json:"out_time" bun:"out_time"`
	Status         *string    `json:"status" bun:"status"`
}
