package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Client carries both identities of a gym member: the surrogate ID used for
// relational links and the dense human-facing ClientNumber used at the front
// desk.
type Client struct {
	bun.BaseModel `bun:"table:clients"`

	BasicEntity
	ClientNumber     *int       `json:"client_number" bun:"client_number"`
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
}
