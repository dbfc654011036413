package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// Member is the public part of a User shown next to groups, expenses and balances.
type Member struct {
	ID       string `db:"id"`
	Username string `db:"username"`
}

type Group struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	Members   []Member
}

type Membership struct {
	GroupID  string    `db:"group_id"`
	UserID   string    `db:"user_id"`
	JoinedAt time.Time `db:"joined_at"`
}

type Expense struct {
	ID          string          `db:"id"`
	Description string          `db:"description"`
	Amount      decimal.Decimal `db:"amount"`
	GroupID     string          `db:"group_id"`
	PaidByID    string          `db:"paid_by_id"`
	Date        time.Time       `db:"date"`
	PaidBy      Member
	Splits      []ExpenseSplit
}

type ExpenseSplit struct {
	ID         string          `db:"id"`
	ExpenseID  string          `db:"expense_id"`
	UserID     string          `db:"user_id"`
	AmountOwed decimal.Decimal `db:"amount_owed"`
	Username   string
}

// UserExpense is one of the user's splits joined with its expense, payer and group.
type UserExpense struct {
	Split     ExpenseSplit
	Expense   Expense
	GroupName string
}

type Payment struct {
	ID        string          `db:"id"`
	Amount    decimal.Decimal `db:"amount"`
	PayerID   string          `db:"payer_id"`
	PayeeID   string          `db:"payee_id"`
	GroupID   *string         `db:"group_id"`
	CreatedAt time.Time       `db:"created_at"`
	Payer     Member
	Payee     Member
}

// Summary is a user's overall position. NetBalance > 0 means the user is owed money.
type Summary struct {
	TotalPaid        decimal.Decimal
	TotalOwed        decimal.Decimal
	PaymentsMade     decimal.Decimal
	PaymentsReceived decimal.Decimal
	NetBalance       decimal.Decimal
}

// CounterpartyBalance is what one counterparty owes the user (negative: the user owes them).
type CounterpartyBalance struct {
	UserID   string
	Username string
	Balance  decimal.Decimal
}
