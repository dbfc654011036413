package balanceservice

import (
	"math/rand"
	"testing"

	"github.com/GlebRadaev/gosplit/internal/domain"
	"github.com/GlebRadaev/gosplit/internal/split"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = domain.Member{ID: "u1", Username: "alice"}
	bob   = domain.Member{ID: "u2", Username: "bob"}
	carol = domain.Member{ID: "u3", Username: "carol"}
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func expense(id string, payer domain.Member, amount string, members ...domain.Member) domain.Expense {
	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}
	allocations, err := split.Allocate(dec(amount), split.Equal{Members: ids})
	if err != nil {
		panic(err)
	}
	e := domain.Expense{ID: id, Amount: dec(amount), GroupID: "g1", PaidByID: payer.ID, PaidBy: payer}
	for i, a := range allocations {
		e.Splits = append(e.Splits, domain.ExpenseSplit{
			ID:         id + "-" + a.UserID,
			ExpenseID:  id,
			UserID:     a.UserID,
			AmountOwed: a.AmountOwed,
			Username:   members[i].Username,
		})
	}
	return e
}

func payment(payer, payee domain.Member, amount string) domain.Payment {
	return domain.Payment{ID: payer.ID + payee.ID, Amount: dec(amount), PayerID: payer.ID, PayeeID: payee.ID, Payer: payer, Payee: payee}
}

func TestDetailed(t *testing.T) {
	dinner := expense("e1", alice, "120.50", alice, bob)

	tests := []struct {
		name     string
		userID   string
		expenses []domain.Expense
		payments []domain.Payment
		expected []domain.CounterpartyBalance
	}{
		{
			name:     "Payer sees the debtor",
			userID:   alice.ID,
			expenses: []domain.Expense{dinner},
			expected: []domain.CounterpartyBalance{{UserID: bob.ID, Username: "bob", Balance: dec("60.25")}},
		},
		{
			name:     "Debtor sees the payer",
			userID:   bob.ID,
			expenses: []domain.Expense{dinner},
			expected: []domain.CounterpartyBalance{{UserID: alice.ID, Username: "alice", Balance: dec("-60.25")}},
		},
		{
			name:     "Uninvolved user sees nothing",
			userID:   carol.ID,
			expenses: []domain.Expense{dinner},
			expected: []domain.CounterpartyBalance{},
		},
		{
			name:     "Settled by a payment back",
			userID:   alice.ID,
			expenses: []domain.Expense{dinner},
			payments: []domain.Payment{payment(bob, alice, "60.25")},
			expected: []domain.CounterpartyBalance{},
		},
		{
			name:     "Settled from the payer side",
			userID:   bob.ID,
			expenses: []domain.Expense{dinner},
			payments: []domain.Payment{payment(bob, alice, "60.25")},
			expected: []domain.CounterpartyBalance{},
		},
		{
			name:     "Settled by a reverse expense",
			userID:   alice.ID,
			expenses: []domain.Expense{dinner, expense("e2", bob, "120.50", alice, bob)},
			expected: []domain.CounterpartyBalance{},
		},
		{
			name:     "Partial payment",
			userID:   bob.ID,
			expenses: []domain.Expense{dinner},
			payments: []domain.Payment{payment(bob, alice, "20.00")},
			expected: []domain.CounterpartyBalance{{UserID: alice.ID, Username: "alice", Balance: dec("-40.25")}},
		},
		{
			name:   "Several counterparties sorted by username",
			userID: alice.ID,
			expenses: []domain.Expense{
				expense("e1", alice, "30.00", carol, bob, alice),
				expense("e2", carol, "4.00", alice, carol),
			},
			expected: []domain.CounterpartyBalance{
				{UserID: bob.ID, Username: "bob", Balance: dec("10.00")},
				{UserID: carol.ID, Username: "carol", Balance: dec("8.00")},
			},
		},
		{
			name:   "Sub-cent residue is dropped",
			userID: alice.ID,
			expenses: []domain.Expense{{
				ID: "e1", Amount: dec("0.0005"), PaidByID: alice.ID, PaidBy: alice,
				Splits: []domain.ExpenseSplit{{UserID: bob.ID, Username: "bob", AmountOwed: dec("0.0005")}},
			}},
			expected: []domain.CounterpartyBalance{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Detailed(tt.userID, tt.expenses, tt.payments)
			require.Len(t, result, len(tt.expected))
			for i := range tt.expected {
				assert.Equal(t, tt.expected[i].UserID, result[i].UserID)
				assert.Equal(t, tt.expected[i].Username, result[i].Username)
				assert.True(t, tt.expected[i].Balance.Equal(result[i].Balance),
					"expected %s, got %s", tt.expected[i].Balance, result[i].Balance)
			}
		})
	}
}

func TestDetailedIsAntisymmetric(t *testing.T) {
	expenses := []domain.Expense{
		expense("e1", alice, "120.50", alice, bob),
		expense("e2", bob, "10.00", alice, bob, carol),
		expense("e3", carol, "99.99", bob, carol),
	}
	payments := []domain.Payment{payment(bob, alice, "15.00"), payment(carol, bob, "3.33")}

	views := map[string][]domain.CounterpartyBalance{}
	for _, id := range []string{alice.ID, bob.ID, carol.ID} {
		views[id] = Detailed(id, expenses, payments)
	}
	for user, balances := range views {
		for _, b := range balances {
			mirror := decimal.Zero
			for _, other := range views[b.UserID] {
				if other.UserID == user {
					mirror = other.Balance
				}
			}
			assert.True(t, b.Balance.Neg().Equal(mirror), "%s vs %s: %s and %s", user, b.UserID, b.Balance, mirror)
		}
	}
}

// aggregates recomputes the four overall sums the way the store does.
func aggregates(userID string, expenses []domain.Expense, payments []domain.Payment) (paid, owed, made, received decimal.Decimal) {
	for _, e := range expenses {
		if e.PaidByID == userID {
			paid = paid.Add(e.Amount)
		}
		for _, s := range e.Splits {
			if s.UserID == userID {
				owed = owed.Add(s.AmountOwed)
			}
		}
	}
	for _, p := range payments {
		if p.PayerID == userID {
			made = made.Add(p.Amount)
		}
		if p.PayeeID == userID {
			received = received.Add(p.Amount)
		}
	}
	return paid, owed, made, received
}

func TestOverallConsistency(t *testing.T) {
	members := []domain.Member{alice, bob, carol}
	rnd := rand.New(rand.NewSource(42))

	var expenses []domain.Expense
	for i := 0; i < 50; i++ {
		payer := members[rnd.Intn(len(members))]
		cents := decimal.New(int64(rnd.Intn(100000)+1), -2)
		participants := members[:rnd.Intn(len(members))+1]
		expenses = append(expenses, expense("e"+cents.String(), payer, cents.StringFixed(2), participants...))
	}
	var payments []domain.Payment
	for i := 0; i < 20; i++ {
		from := rnd.Intn(len(members))
		to := (from + 1 + rnd.Intn(len(members)-1)) % len(members)
		cents := decimal.New(int64(rnd.Intn(5000)+1), -2)
		payments = append(payments, payment(members[from], members[to], cents.StringFixed(2)))
	}

	total := decimal.Zero
	for _, m := range members {
		paid, owed, made, received := aggregates(m.ID, expenses, payments)
		summary := Overall(paid, owed, made, received)

		expected := paid.Add(received).Sub(owed.Add(made))
		assert.True(t, expected.Equal(summary.NetBalance), "%s: %s != %s", m.Username, expected, summary.NetBalance)
		assert.True(t, paid.Equal(summary.TotalPaid))
		assert.True(t, owed.Equal(summary.TotalOwed))
		assert.True(t, made.Equal(summary.PaymentsMade))
		assert.True(t, received.Equal(summary.PaymentsReceived))
		total = total.Add(summary.NetBalance)
	}
	assert.True(t, total.IsZero(), "net balances must sum to zero, got %s", total)
}

func TestOverall(t *testing.T) {
	summary := Overall(dec("120.50"), dec("60.25"), dec("0"), dec("60.25"))
	assert.Equal(t, "120.50", summary.NetBalance.StringFixed(2))

	summary = Overall(dec("0"), dec("60.25"), dec("60.25"), dec("0"))
	assert.Equal(t, "-120.50", summary.NetBalance.StringFixed(2))
}
