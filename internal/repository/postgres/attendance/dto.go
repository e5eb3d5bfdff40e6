package attendance

import (
	"time"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/uptrace/bun"
)

type Filter struct {
	Limit    *int
	Offset   *int
	Page     *int
	Search   *string
	ClientID *int
	Status   *string
	Date     *string
}

type GetListResponse struct {
	ID           int        `json:"id"`
	ClientNumber *int       `json:"client_number"`
	FirstName    *string    `json:"first_name"`
	LastName     *string    `json:"last_name"`
	PhotoUrl     *string    `json:"photo_url,omitempty"`
	Date         *date.Date `json:"date"`
	InTime       string     `json:"in_time"`
	OutTime      string     `json:"out_time,omitempty"`
	Status       string     `json:"status"`
	Duration     string     `json:"duration,omitempty"`
}

type CheckInRequest struct {
	ClientID string `json:"client_id" form:"client_id"`
	Date     string `json:"date" form:"date"`
	Time     string `json:"time" form:"time"`
}

type CheckInResponse struct {
	ID       int    `json:"id"`
	ClientID int    `json:"client_id"`
	Date     string `json:"date"`
	InTime   string `json:"in_time"`
	OutTime  string `json:"out_time,omitempty"`
	Status   string `json:"status"`
	Duration string `json:"duration,omitempty"`
}

type AutoCheckoutRequest struct {
	EndTime string `json:"end_time" form:"end_time"`
}

type AutoCheckoutResponse struct {
	Closed int `json:"closed"`
}

type insertRow struct {
	bun.BaseModel `bun:"table:attendance"`

	ID             int       `json:"-" bun:"-"`
	ClientID       int       `json:"-" bun:"client_id"`
	AttendanceDate string    `json:"-" bun:"attendance_date"`
	InTime         string    `json:"-" bun:"in_time"`
	Status         string    `json:"-" bun:"status"`
	CreatedAt      time.Time `json:"-" bun:"created_at"`
	CreatedBy      int       `json:"-" bun:"created_by"`
}
