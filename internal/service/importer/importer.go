// Package importer parses the legacy member roster CSV used for bulk
// onboarding. The column layout is fixed and comes from the spreadsheet the
// gym kept before this system existed.
package importer

import (
	"encoding/csv"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	colUserID = iota
	colFirstName
	colLastName
	colGender
	colPTEnabled
	colSubMonths
	colSubAmount
	colPaidAmount
	colPending
	colRecentPaid
	colJoined
	colRenewed
	colExpiry
	colMobile
	colAadhar
	colHeight
	colWeight
	colEmail
	colDOB
	colGymGoal
	colAddress
)

// Common plans carry exact durations instead of the 30-days-a-month
// approximation. A 12 month plan is a full year, not 360 days.
var monthsToDays = map[int]int{
	1:  30,
	2:  60,
	3:  90,
	6:  180,
	12: 365,
	13: 395,
	14: 420,
	15: 450,
}

var digitsRe = regexp.MustCompile(`\d+`)

// MonthsFromText extracts the plan length from free text like "3 Months".
// Unparseable text defaults to one month.
func MonthsFromText(text string) int {
	match := digitsRe.FindString(text)
	n, err := strconv.Atoi(match)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// DurationDays maps a plan length in months to its duration in days.
func DurationDays(months int) int {
	if days, ok := monthsToDays[months]; ok {
		return days
	}
	return months * 30
}

type Row struct {
	UserID             string
	FirstName          string
	LastName           string
	Gender             string
	SubscriptionMonths string
	SubscriptionAmount float64
	PaidAmount         float64
	RecentPaidDate     string
	JoinedDate         string
	RenewedDate        string
	ExpiryDate         string
	Mobile             string
	Email              string
	Height             string
	Weight             string
	DateOfBirth        string
	GymGoal            string
	Address            string
}

// Parse reads the roster CSV, skipping the header row and rows that are
// entirely empty. Missing names and contact fields get the placeholder
// values the legacy sheet used.
func Parse(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "reading csv")
	}
	if len(records) < 2 {
		return nil, nil
	}

	var rows []Row
	for _, record := range records[1:] {
		if isEmpty(record) {
			continue
		}

		row := Row{
			UserID:             cell(record, colUserID),
			FirstName:          orDefault(cell(record, colFirstName), "Unknown"),
			LastName:           orDefault(cell(record, colLastName), "."),
			Gender:             cell(record, colGender),
			SubscriptionMonths: cell(record, colSubMonths),
			SubscriptionAmount: number(cell(record, colSubAmount)),
			PaidAmount:         number(cell(record, colPaidAmount)),
			RecentPaidDate:     cell(record, colRecentPaid),
			JoinedDate:         cell(record, colJoined),
			RenewedDate:        cell(record, colRenewed),
			ExpiryDate:         cell(record, colExpiry),
			Mobile:             orDefault(strings.ReplaceAll(cell(record, colMobile), " ", ""), "0000000000"),
			Email:              cell(record, colEmail),
			Height:             cell(record, colHeight),
			Weight:             cell(record, colWeight),
			DateOfBirth:        cell(record, colDOB),
			GymGoal:            cell(record, colGymGoal),
			Address:            orDefault(cell(record, colAddress), "N/A"),
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func cell(record []string, idx int) string {
	if idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func number(s string) float64 {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return n
}

func isEmpty(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
