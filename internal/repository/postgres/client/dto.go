package client

import (
	"time"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/uptrace/bun"
)

type Filter struct {
	Limit  *int
	Offset *int
	Page   *int
	Search *string
	PlanID *int
}

type GetListResponse struct {
	ID             int        `json:"id"`
	ClientNumber   *int       `json:"client_number"`
	FirstName      *string    `json:"first_name"`
	LastName       *string    `json:"last_name"`
	Phone          *string    `json:"phone"`
	Email          *string    `json:"email"`
	PhotoUrl       *string    `json:"photo_url,omitempty"`
	PlanNumber     *int       `json:"plan_number,omitempty"`
	MembershipName *string    `json:"membership_name,omitempty"`
	JoiningDate    *date.Date `json:"joining_date,omitempty"`
	ExpiryDate     *date.Date `json:"expiry_date,omitempty"`
}

type GetDetailByNumberResponse struct {
	ID             int        `json:"id"`
	ClientNumber   *int       `json:"client_number"`
	FirstName      *string    `json:"first_name"`
	LastName       *string    `json:"last_name"`
	Email          *string    `json:"email"`
	Phone          *string    `json:"phone"`
	DateOfBirth    *date.Date `json:"date_of_birth,omitempty"`
	Gender         *string    `json:"gender,omitempty"`
	Height         *float64   `json:"height,omitempty"`
	Weight         *float64   `json:"weight,omitempty"`
	PhotoUrl       *string    `json:"photo_url,omitempty"`
	Address        *string    `json:"address,omitempty"`
	PlanNumber     *int       `json:"plan_number,omitempty"`
	MembershipName *string    `json:"membership_name,omitempty"`
	JoiningDate    *date.Date `json:"joining_date,omitempty"`
	ExpiryDate     *date.Date `json:"expiry_date,omitempty"`
	MembershipFee  *float64   `json:"membership_fee,omitempty"`
	Discount       *float64   `json:"discount,omitempty"`
	PaidAmount     *float64   `json:"paid_amount,omitempty"`
	PaymentDate    *date.Date `json:"payment_date,omitempty"`
	PaymentMode    *string    `json:"payment_mode,omitempty"`
	TransactionID  *string    `json:"transaction_id,omitempty"`
	FitnessGoals   *string    `json:"fitness_goals,omitempty"`
}

type CreateRequest struct {
	FirstName     *string  `json:"first_name" form:"first_name"`
	LastName      *string  `json:"last_name" form:"last_name"`
	Email         *string  `json:"email" form:"email"`
	Phone         *string  `json:"phone" form:"phone"`
	DateOfBirth   string   `json:"date_of_birth" form:"date_of_birth"`
	Gender        *string  `json:"gender" form:"gender"`
	Height        *float64 `json:"height" form:"height"`
	Weight        *float64 `json:"weight" form:"weight"`
	PhotoUrl      *string  `json:"photo_url" form:"photo_url"`
	Address       *string  `json:"address" form:"address"`
	PlanNumber    *int     `json:"plan_number" form:"plan_number"`
	JoiningDate   string   `json:"joining_date" form:"joining_date"`
	ExpiryDate    string   `json:"expiry_date" form:"expiry_date"`
	MembershipFee *float64 `json:"membership_fee" form:"membership_fee"`
	Discount      *float64 `json:"discount" form:"discount"`
	PaidAmount    *float64 `json:"paid_amount" form:"paid_amount"`
	PaymentDate   string   `json:"payment_date" form:"payment_date"`
	PaymentMode   *string  `json:"payment_mode" form:"payment_mode"`
	TransactionID *string  `json:"transaction_id" form:"transaction_id"`
	FitnessGoals  *string  `json:"fitness_goals" form:"fitness_goals"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:clients"`

	ID               int        `json:"id" bun:"-"`
	ClientNumber     int        `json:"client_number" bun:"client_number"`
	FirstName        *string    `json:"first_name" bun:"first_name"`
	LastName         *string    `json:"last_name" bun:"last_name"`
	Email            *string    `json:"email" bun:"email"`
	Phone            *string    `json:"phone" bun:"phone"`
	DateOfBirth      *time.Time `json:"date_of_birth" bun:"date_of_birth"`
	Gender           *string    `json:"gender" bun:"gender"`
	Height           *float64   `json:"height" bun:"height"`
	Weight           *float64   `json:"weight" bun:"weight"`
	PhotoUrl         *string    `json:"photo_url" bun:"photo_url"`
	Address          *string    `json:"address" bun:"address"`
	MembershipPlanID *int       `json:"membership_plan_id" bun:"membership_plan_id"`
	JoiningDate      *time.Time `json:"joining_date" bun:"joining_date"`
	ExpiryDate       *time.Time `json:"expiry_date" bun:"expiry_date"`
	MembershipFee    *float64   `json:"membership_fee" bun:"membership_fee"`
	Discount         *float64   `json:"discount" bun:"discount"`
	PaidAmount       *float64   `json:"paid_amount" bun:"paid_amount"`
	PaymentDate      *time.Time `json:"payment_date" bun:"payment_date"`
	PaymentMode      *string    `json:"payment_mode" bun:"payment_mode"`
	TransactionID    *string    `json:"transaction_id" bun:"transaction_id"`
	FitnessGoals     *string    `json:"fitness_goals" bun:"fitness_goals"`
	CreatedAt        time.Time  `json:"-" bun:"created_at"`
	CreatedBy        int        `json:"-" bun:"created_by"`
}

type UpdateRequest struct {
	ID            int      `json:"id" form:"id"`
	FirstName     *string  `json:"first_name" form:"first_name"`
	LastName      *string  `json:"last_name" form:"last_name"`
	Email         *string  `json:"email" form:"email"`
	Phone         *string  `json:"phone" form:"phone"`
	DateOfBirth   *string  `json:"date_of_birth" form:"date_of_birth"`
	Gender        *string  `json:"gender" form:"gender"`
	Height        *float64 `json:"height" form:"height"`
	Weight        *float64 `json:"weight" form:"weight"`
	PhotoUrl      *string  `json:"photo_url" form:"photo_url"`
	Address       *string  `json:"address" form:"address"`
	PlanNumber    *int     `json:"plan_number" form:"plan_number"`
	JoiningDate   *string  `json:"joining_date" form:"joining_date"`
	ExpiryDate    *string  `json:"expiry_date" form:"expiry_date"`
	MembershipFee *float64 `json:"membership_fee" form:"membership_fee"`
	Discount      *float64 `json:"discount" form:"discount"`
	PaidAmount    *float64 `json:"paid_amount" form:"paid_amount"`
	PaymentDate   *string  `json:"payment_date" form:"payment_date"`
	PaymentMode   *string  `json:"payment_mode" form:"payment_mode"`
	TransactionID *string  `json:"transaction_id" form:"transaction_id"`
	FitnessGoals  *string  `json:"fitness_goals" form:"fitness_goals"`
}

type FixNumbersResponse struct {
	Fixed   int   `json:"fixed"`
	Numbers []int `json:"numbers"`
}

type ImportResponse struct {
	Created      int      `json:"created"`
	PlansCreated int      `json:"plans_created"`
	Skipped      []string `json:"skipped,omitempty"`
}
