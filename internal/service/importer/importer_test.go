package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "User ID,First Name,Last Name,Gender,PT,Subscription,Amount,Paid,Pending,Recent Paid,Joined,Renewed,Expiry,Mobile,Aadhar,Height,Weight,Email,DOB,Goal,Address,Added By\n"

func TestParse(t *testing.T) {
	csv := header +
		`101,Asha,Rao,Female,,3 Months,3000,2500,500,2024-01-05,2024-01-01,,2024-03-31,98765 43210,,165,60,asha@example.com,1990-04-12,Weight loss,"12, Main Street",admin` + "\n" +
		",,,,,,,,,,,,,,,,,,,,,\n" +
		`102,,,,,1 Month,1000,1000,0,,2024-02-01,,2024-03-02,,,,,,,,,` + "\n"

	rows, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, "101", first.UserID)
	assert.Equal(t, "Asha", first.FirstName)
	assert.Equal(t, "Rao", first.LastName)
	assert.Equal(t, "3 Months", first.SubscriptionMonths)
	assert.Equal(t, 3000.0, first.SubscriptionAmount)
	assert.Equal(t, 2500.0, first.PaidAmount)
	// spaces inside the number are stripped
	assert.Equal(t, "9876543210", first.Mobile)
	// quoted field keeps its comma
	assert.Equal(t, "12, Main Street", first.Address)

	second := rows[1]
	assert.Equal(t, "Unknown", second.FirstName)
	assert.Equal(t, ".", second.LastName)
	assert.Equal(t, "0000000000", second.Mobile)
	assert.Equal(t, "N/A", second.Address)
}

func TestParseEmpty(t *testing.T) {
	rows, err := Parse(strings.NewReader(header))
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestMonthsFromText(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"1 Month", 1},
		{"3 Months", 3},
		{"12 Months", 12},
		{"6", 6},
		{"Annual", 1},
		{"", 1},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, MonthsFromText(tt.text))
		})
	}
}

func TestDurationDays(t *testing.T) {
	tests := []struct {
		months int
		want   int
	}{
		{1, 30},
		{2, 60},
		{3, 90},
		{6, 180},
		{12, 365},
		{13, 395},
		{15, 450},
		{4, 120},
		{24, 720},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DurationDays(tt.months), "months=%d", tt.months)
	}
}
