package split

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GlebRadaev/gosplit/internal/apperrors"
)

func amounts(allocations []Allocation) []string {
	out := make([]string, len(allocations))
	for i, a := range allocations {
		out[i] = a.AmountOwed.StringFixed(2)
	}
	return out
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAllocate(t *testing.T) {
	tests := []struct {
		name          string
		total         string
		strategy      Strategy
		expected      []string
		expectedError error
	}{
		{
			name:     "Equal split puts remainder on first member",
			total:    "10.00",
			strategy: Equal{Members: []string{"a", "b", "c"}},
			expected: []string{"3.34", "3.33", "3.33"},
		},
		{
			name:     "Equal split without remainder",
			total:    "120.50",
			strategy: Equal{Members: []string{"a", "b"}},
			expected: []string{"60.25", "60.25"},
		},
		{
			name:     "Equal split of a single cent",
			total:    "0.01",
			strategy: Equal{Members: []string{"a", "b", "c"}},
			expected: []string{"0.01", "0.00", "0.00"},
		},
		{
			name:     "Exact amounts are kept as given",
			total:    "50.00",
			strategy: Exact{Amounts: []Portion{{UserID: "a", Value: dec("20.00")}, {UserID: "b", Value: dec("30.00")}}},
			expected: []string{"20.00", "30.00"},
		},
		{
			name:     "Exact amounts within tolerance",
			total:    "50.00",
			strategy: Exact{Amounts: []Portion{{UserID: "a", Value: dec("20.00")}, {UserID: "b", Value: dec("29.99")}}},
			expected: []string{"20.00", "29.99"},
		},
		{
			name:          "Exact amounts off by more than a cent",
			total:         "50.00",
			strategy:      Exact{Amounts: []Portion{{UserID: "a", Value: dec("20.00")}, {UserID: "b", Value: dec("29.00")}}},
			expectedError: apperrors.ErrSplitMismatch,
		},
		{
			name:          "Exact negative amount",
			total:         "10.00",
			strategy:      Exact{Amounts: []Portion{{UserID: "a", Value: dec("15.00")}, {UserID: "b", Value: dec("-5.00")}}},
			expectedError: apperrors.ErrInvalidInput,
		},
		{
			name:          "Exact sub-cent amount",
			total:         "10.50",
			strategy:      Exact{Amounts: []Portion{{UserID: "a", Value: dec("5.245")}, {UserID: "b", Value: dec("5.255")}}},
			expectedError: apperrors.ErrInvalidInput,
		},
		{
			name:     "Percentage split reconciles remainder",
			total:    "100.00",
			strategy: Percentage{Percentages: []Portion{{UserID: "a", Value: dec("33.33")}, {UserID: "b", Value: dec("33.33")}, {UserID: "c", Value: dec("33.34")}}},
			expected: []string{"33.33", "33.33", "33.34"},
		},
		{
			name:     "Percentage split of odd total",
			total:    "10.00",
			strategy: Percentage{Percentages: []Portion{{UserID: "a", Value: dec("50")}, {UserID: "b", Value: dec("25")}, {UserID: "c", Value: dec("25")}}},
			expected: []string{"5.00", "2.50", "2.50"},
		},
		{
			name:     "Percentage split with thirds",
			total:    "1.00",
			strategy: Percentage{Percentages: []Portion{{UserID: "a", Value: dec("33.333")}, {UserID: "b", Value: dec("33.333")}, {UserID: "c", Value: dec("33.334")}}},
			expected: []string{"0.34", "0.33", "0.33"},
		},
		{
			name:          "Percentages summing to 99.5",
			total:         "10.00",
			strategy:      Percentage{Percentages: []Portion{{UserID: "a", Value: dec("49.5")}, {UserID: "b", Value: dec("50")}}},
			expectedError: apperrors.ErrSplitMismatch,
		},
		{
			name:          "Percentages summing to 100.5",
			total:         "10.00",
			strategy:      Percentage{Percentages: []Portion{{UserID: "a", Value: dec("50.5")}, {UserID: "b", Value: dec("50")}}},
			expectedError: apperrors.ErrSplitMismatch,
		},
		{
			name:     "Shares split",
			total:    "100.00",
			strategy: Shares{Weights: []Weight{{UserID: "a", Shares: 1}, {UserID: "b", Shares: 1}, {UserID: "c", Shares: 1}}},
			expected: []string{"33.34", "33.33", "33.33"},
		},
		{
			name:     "Shares split with zero share member",
			total:    "30.00",
			strategy: Shares{Weights: []Weight{{UserID: "a", Shares: 2}, {UserID: "b", Shares: 1}, {UserID: "c", Shares: 0}}},
			expected: []string{"20.00", "10.00", "0.00"},
		},
		{
			name:          "Shares summing to zero",
			total:         "30.00",
			strategy:      Shares{Weights: []Weight{{UserID: "a", Shares: 0}, {UserID: "b", Shares: 0}}},
			expectedError: apperrors.ErrInvalidInput,
		},
		{
			name:          "Negative shares",
			total:         "30.00",
			strategy:      Shares{Weights: []Weight{{UserID: "a", Shares: 3}, {UserID: "b", Shares: -1}}},
			expectedError: apperrors.ErrInvalidInput,
		},
		{
			name:          "No members",
			total:         "30.00",
			strategy:      Equal{},
			expectedError: apperrors.ErrInvalidInput,
		},
		{
			name:          "Duplicate member",
			total:         "30.00",
			strategy:      Equal{Members: []string{"a", "a"}},
			expectedError: apperrors.ErrInvalidInput,
		},
		{
			name:          "Zero total",
			total:         "0",
			strategy:      Equal{Members: []string{"a"}},
			expectedError: apperrors.ErrInvalidInput,
		},
		{
			name:          "Negative total",
			total:         "-5.00",
			strategy:      Equal{Members: []string{"a"}},
			expectedError: apperrors.ErrInvalidInput,
		},
		{
			name:          "Missing strategy",
			total:         "5.00",
			strategy:      nil,
			expectedError: apperrors.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Allocate(dec(tt.total), tt.strategy)
			if tt.expectedError != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.expectedError), "got %v", err)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, amounts(result))
		})
	}
}

func TestAllocateReconciles(t *testing.T) {
	members := []string{"a", "b", "c", "d", "e", "f", "g"}
	totals := []string{"0.07", "1.00", "9.99", "10.00", "33.33", "100.01", "1234.56", "99999.99"}

	for _, total := range totals {
		for n := 1; n <= len(members); n++ {
			strategies := []Strategy{
				Equal{Members: members[:n]},
				Shares{Weights: weights(members[:n])},
				Percentage{Percentages: evenPercentages(members[:n])},
			}
			for _, s := range strategies {
				result, err := Allocate(dec(total), s)
				require.NoError(t, err)
				require.Len(t, result, n)
				assert.True(t, Total(result).Equal(dec(total)),
					"%s over %d members with %s: got %s", total, n, s.Method(), Total(result))
				for _, a := range result {
					assert.False(t, a.AmountOwed.IsNegative())
					assert.True(t, a.AmountOwed.Equal(a.AmountOwed.Truncate(2)))
				}
			}
		}
	}
}

func weights(ids []string) []Weight {
	out := make([]Weight, len(ids))
	for i, id := range ids {
		out[i] = Weight{UserID: id, Shares: int64(i + 1)}
	}
	return out
}

// evenPercentages splits 100% with the remainder on the last member.
func evenPercentages(ids []string) []Portion {
	out := make([]Portion, len(ids))
	per, _ := hundred.QuoRem(decimal.NewFromInt(int64(len(ids))), 3)
	for i, id := range ids {
		out[i] = Portion{UserID: id, Value: per}
	}
	out[len(out)-1].Value = per.Add(hundred.Sub(per.Mul(decimal.NewFromInt(int64(len(ids))))))
	return out
}

func TestRescale(t *testing.T) {
	existing := []Allocation{
		{UserID: "a", AmountOwed: dec("3.34")},
		{UserID: "b", AmountOwed: dec("3.33")},
		{UserID: "c", AmountOwed: dec("3.33")},
	}

	result, err := Rescale(dec("20.00"), existing)
	require.NoError(t, err)
	assert.Equal(t, []string{"6.68", "6.66", "6.66"}, amounts(result))
	assert.True(t, Total(result).Equal(dec("20.00")))

	_, err = Rescale(dec("20.00"), []Allocation{{UserID: "a", AmountOwed: decimal.Zero}})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = Rescale(decimal.Zero, existing)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestReconciles(t *testing.T) {
	assert.True(t, Reconciles(dec("10.00"), dec("10.01")))
	assert.True(t, Reconciles(dec("10.00"), dec("9.99")))
	assert.False(t, Reconciles(dec("10.00"), dec("10.02")))
}
