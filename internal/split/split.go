// Package split turns an expense total into per-member owed amounts.
//
// Every strategy reconciles to the total exactly: shares are truncated to the
// cent and the leftover cents go to the first member listed. The tie-break is
// deterministic and depends on member order.
package split

import (
	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/gosplit/internal/apperrors"
)

type Method string

const (
	MethodEqual      Method = "EQUAL"
	MethodExact      Method = "EXACT"
	MethodPercentage Method = "PERCENTAGE"
	MethodShares     Method = "SHARES"
)

var (
	// Tolerance is the absolute drift allowed when comparing sums.
	Tolerance = decimal.New(1, -2)

	hundred = decimal.NewFromInt(100)
)

type Allocation struct {
	UserID     string
	AmountOwed decimal.Decimal
}

// Portion is a per-member decimal input: an exact amount or a percentage.
type Portion struct {
	UserID string
	Value  decimal.Decimal
}

// Weight is a per-member integer share.
type Weight struct {
	UserID string
	Shares int64
}

// Strategy is one of Equal, Exact, Percentage or Shares.
type Strategy interface {
	Method() Method
	allocate(total decimal.Decimal) ([]Allocation, error)
}

type Equal struct {
	Members []string
}

type Exact struct {
	Amounts []Portion
}

type Percentage struct {
	Percentages []Portion
}

type Shares struct {
	Weights []Weight
}

func (Equal) Method() Method      { return MethodEqual }
func (Exact) Method() Method      { return MethodExact }
func (Percentage) Method() Method { return MethodPercentage }
func (Shares) Method() Method     { return MethodShares }

// Allocate splits total among the strategy's members.
func Allocate(total decimal.Decimal, strategy Strategy) ([]Allocation, error) {
	if strategy == nil {
		return nil, apperrors.InvalidInput("split method is required")
	}
	if !total.IsPositive() {
		return nil, apperrors.InvalidInput("amount must be positive")
	}
	return strategy.allocate(total)
}

// Rescale moves existing allocations to a new total, keeping their
// proportions and the remainder rule.
func Rescale(total decimal.Decimal, allocations []Allocation) ([]Allocation, error) {
	if !total.IsPositive() {
		return nil, apperrors.InvalidInput("amount must be positive")
	}
	ids := make([]string, len(allocations))
	weights := make([]decimal.Decimal, len(allocations))
	for i, a := range allocations {
		ids[i] = a.UserID
		weights[i] = a.AmountOwed
	}
	if err := checkMembers(ids); err != nil {
		return nil, err
	}
	if !Sum(weights...).IsPositive() {
		return nil, apperrors.InvalidInput("existing splits have no positive amount to scale")
	}
	return proportional(total, ids, weights), nil
}

// Sum adds up decimals.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// Total is the sum of owed amounts.
func Total(allocations []Allocation) decimal.Decimal {
	total := decimal.Zero
	for _, a := range allocations {
		total = total.Add(a.AmountOwed)
	}
	return total
}

// Reconciles reports whether actual is within Tolerance of expected.
func Reconciles(expected, actual decimal.Decimal) bool {
	return expected.Sub(actual).Abs().LessThanOrEqual(Tolerance)
}

func (s Equal) allocate(total decimal.Decimal) ([]Allocation, error) {
	if err := checkMembers(s.Members); err != nil {
		return nil, err
	}
	count := decimal.NewFromInt(int64(len(s.Members)))
	perShare, _ := total.QuoRem(count, 2)

	out := make([]Allocation, len(s.Members))
	for i, id := range s.Members {
		out[i] = Allocation{UserID: id, AmountOwed: perShare}
	}
	out[0].AmountOwed = out[0].AmountOwed.Add(total.Sub(perShare.Mul(count)))
	return out, nil
}

func (s Exact) allocate(total decimal.Decimal) ([]Allocation, error) {
	if err := checkMembers(portionIDs(s.Amounts)); err != nil {
		return nil, err
	}
	out := make([]Allocation, len(s.Amounts))
	for i, p := range s.Amounts {
		if p.Value.IsNegative() {
			return nil, apperrors.InvalidInput("amount for user %s must be non-negative", p.UserID)
		}
		if !p.Value.Equal(p.Value.Truncate(2)) {
			return nil, apperrors.InvalidInput("amount for user %s must have at most 2 decimal places", p.UserID)
		}
		out[i] = Allocation{UserID: p.UserID, AmountOwed: p.Value}
	}
	if sum := Total(out); !Reconciles(total, sum) {
		return nil, apperrors.SplitMismatch("sum of exact amounts", total, sum)
	}
	return out, nil
}

func (s Percentage) allocate(total decimal.Decimal) ([]Allocation, error) {
	ids := portionIDs(s.Percentages)
	if err := checkMembers(ids); err != nil {
		return nil, err
	}
	weights := make([]decimal.Decimal, len(s.Percentages))
	for i, p := range s.Percentages {
		if p.Value.IsNegative() {
			return nil, apperrors.InvalidInput("percentage for user %s must be non-negative", p.UserID)
		}
		weights[i] = p.Value
	}
	if sum := Sum(weights...); !Reconciles(hundred, sum) {
		return nil, apperrors.SplitMismatch("sum of percentages", hundred, sum)
	}
	return proportional(total, ids, weights), nil
}

func (s Shares) allocate(total decimal.Decimal) ([]Allocation, error) {
	ids := make([]string, len(s.Weights))
	weights := make([]decimal.Decimal, len(s.Weights))
	for i, w := range s.Weights {
		if w.Shares < 0 {
			return nil, apperrors.InvalidInput("shares for user %s must be non-negative", w.UserID)
		}
		ids[i] = w.UserID
		weights[i] = decimal.NewFromInt(w.Shares)
	}
	if err := checkMembers(ids); err != nil {
		return nil, err
	}
	if !Sum(weights...).IsPositive() {
		return nil, apperrors.InvalidInput("sum of shares must be positive")
	}
	return proportional(total, ids, weights), nil
}

// proportional gives member i floor(total*w_i/sum(w)) to the cent and the
// leftover cents to member 0. Weights must have a positive sum.
func proportional(total decimal.Decimal, ids []string, weights []decimal.Decimal) []Allocation {
	sum := Sum(weights...)
	out := make([]Allocation, len(ids))
	allocated := decimal.Zero
	for i, id := range ids {
		share, _ := total.Mul(weights[i]).QuoRem(sum, 2)
		out[i] = Allocation{UserID: id, AmountOwed: share}
		allocated = allocated.Add(share)
	}
	out[0].AmountOwed = out[0].AmountOwed.Add(total.Sub(allocated))
	return out
}

func checkMembers(ids []string) error {
	if len(ids) == 0 {
		return apperrors.InvalidInput("at least one member is required")
	}
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			return apperrors.InvalidInput("member id is required")
		}
		if _, ok := seen[id]; ok {
			return apperrors.InvalidInput("member %s is listed more than once", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func portionIDs(portions []Portion) []string {
	ids := make([]string, len(portions))
	for i, p := range portions {
		ids[i] = p.UserID
	}
	return ids
}
