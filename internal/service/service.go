package service

import (
	"time"

	"github.com/GlebRadaev/gosplit/internal/handlers/auth"
	"github.com/GlebRadaev/gosplit/internal/handlers/balance"
	"github.com/GlebRadaev/gosplit/internal/handlers/expenses"
	"github.com/GlebRadaev/gosplit/internal/handlers/groups"
	"github.com/GlebRadaev/gosplit/internal/handlers/payments"

	pkgauth "github.com/GlebRadaev/gosplit/pkg/auth"

	"github.com/GlebRadaev/gosplit/internal/repo"
	authservice "github.com/GlebRadaev/gosplit/internal/service/authservice"
	balanceservice "github.com/GlebRadaev/gosplit/internal/service/balanceservice"
	expenseservice "github.com/GlebRadaev/gosplit/internal/service/expenseservice"
	groupservice "github.com/GlebRadaev/gosplit/internal/service/groupservice"
	paymentservice "github.com/GlebRadaev/gosplit/internal/service/paymentservice"
)

type Services struct {
	AuthService    auth.Service
	GroupService   groups.Service
	ExpenseService expenses.Service
	BalanceService balance.Service
	PaymentService payments.Service
}

type Options struct {
	TokenTTL               time.Duration
	BalanceIncludePayments bool
}

func New(repo *repo.Repositories, jwtService pkgauth.JWTServiceInterface, opts Options) *Services {
	authService := authservice.New(repo.UserRepo, &pkgauth.HashService{}, jwtService, opts.TokenTTL)
	groupService := groupservice.New(repo.GroupRepo, repo.UserRepo)
	expenseService := expenseservice.New(repo.ExpenseRepo, repo.GroupRepo)
	balanceService := balanceservice.New(repo.BalanceRepo, repo.GroupRepo, repo.PaymentRepo, opts.BalanceIncludePayments)
	paymentService := paymentservice.New(repo.PaymentRepo, repo.UserRepo, repo.GroupRepo)

	return &Services{
		AuthService:    authService,
		GroupService:   groupService,
		ExpenseService: expenseService,
		BalanceService: balanceService,
		PaymentService: paymentService,
	}
}
