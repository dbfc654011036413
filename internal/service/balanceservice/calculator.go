package balanceservice

import (
	"sort"

	"github.com/GlebRadaev/gosplit/internal/domain"
	"github.com/shopspring/decimal"
)

// negligible is the largest absolute balance treated as settled.
var negligible = decimal.New(1, -3)

// Overall derives the net position from the four aggregates.
func Overall(paid, owed, made, received decimal.Decimal) domain.Summary {
	return domain.Summary{
		TotalPaid:        paid,
		TotalOwed:        owed,
		PaymentsMade:     made,
		PaymentsReceived: received,
		NetBalance:       paid.Add(received).Sub(owed.Add(made)),
	}
}

type ledger struct {
	userID   string
	balances map[string]*domain.CounterpartyBalance
}

func newLedger(userID string) *ledger {
	return &ledger{userID: userID, balances: make(map[string]*domain.CounterpartyBalance)}
}

func (l *ledger) add(counterparty domain.Member, amount decimal.Decimal) {
	b, ok := l.balances[counterparty.ID]
	if !ok {
		b = &domain.CounterpartyBalance{UserID: counterparty.ID, Username: counterparty.Username}
		l.balances[counterparty.ID] = b
	}
	b.Balance = b.Balance.Add(amount)
}

func (l *ledger) expense(e domain.Expense) {
	if e.PaidByID == l.userID {
		for _, s := range e.Splits {
			if s.UserID == l.userID {
				continue
			}
			l.add(domain.Member{ID: s.UserID, Username: s.Username}, s.AmountOwed)
		}
		return
	}
	for _, s := range e.Splits {
		if s.UserID == l.userID {
			l.add(domain.Member{ID: e.PaidByID, Username: e.PaidBy.Username}, s.AmountOwed.Neg())
		}
	}
}

func (l *ledger) payment(p domain.Payment) {
	switch l.userID {
	case p.PayerID:
		l.add(domain.Member{ID: p.PayeeID, Username: p.Payee.Username}, p.Amount)
	case p.PayeeID:
		l.add(domain.Member{ID: p.PayerID, Username: p.Payer.Username}, p.Amount.Neg())
	}
}

func (l *ledger) result() []domain.CounterpartyBalance {
	out := make([]domain.CounterpartyBalance, 0, len(l.balances))
	for _, b := range l.balances {
		rounded := b.Balance.Round(2)
		if rounded.Abs().LessThanOrEqual(negligible) {
			continue
		}
		out = append(out, domain.CounterpartyBalance{UserID: b.UserID, Username: b.Username, Balance: rounded})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Username != out[j].Username {
			return out[i].Username < out[j].Username
		}
		return out[i].UserID < out[j].UserID
	})
	return out
}

// Detailed walks expenses and payments from userID's point of view.
// A positive balance means the counterparty owes userID.
func Detailed(userID string, expenses []domain.Expense, payments []domain.Payment) []domain.CounterpartyBalance {
	l := newLedger(userID)
	for _, e := range expenses {
		l.expense(e)
	}
	for _, p := range payments {
		l.payment(p)
	}
	return l.result()
}
