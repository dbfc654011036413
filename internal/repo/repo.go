package repo

import (
	"github.com/GlebRadaev/gosplit/internal/pg"
	balancerepo "github.com/GlebRadaev/gosplit/internal/repo/balance-repo"
	expenserepo "github.com/GlebRadaev/gosplit/internal/repo/expense-repo"
	grouprepo "github.com/GlebRadaev/gosplit/internal/repo/group-repo"
	paymentrepo "github.com/GlebRadaev/gosplit/internal/repo/payment-repo"
	userrepo "github.com/GlebRadaev/gosplit/internal/repo/user-repo"
)

type Repositories struct {
	UserRepo    *userrepo.Repository
	GroupRepo   *grouprepo.Repository
	ExpenseRepo *expenserepo.Repository
	PaymentRepo *paymentrepo.Repository
	BalanceRepo *balancerepo.Repository
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		UserRepo:    userrepo.New(conn),
		GroupRepo:   grouprepo.New(conn, txManager),
		ExpenseRepo: expenserepo.New(conn, txManager),
		PaymentRepo: paymentrepo.New(conn),
		BalanceRepo: balancerepo.New(conn),
	}
}
