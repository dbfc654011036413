package handlers

import (
	"net/http"

	_ "github.com/GlebRadaev/gosplit/docs"
	authhandlers "github.com/GlebRadaev/gosplit/internal/handlers/auth"
	balancehandlers "github.com/GlebRadaev/gosplit/internal/handlers/balance"
	expensehandlers "github.com/GlebRadaev/gosplit/internal/handlers/expenses"
	grouphandlers "github.com/GlebRadaev/gosplit/internal/handlers/groups"
	paymenthandlers "github.com/GlebRadaev/gosplit/internal/handlers/payments"
	"github.com/GlebRadaev/gosplit/internal/service"
	"github.com/GlebRadaev/gosplit/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

//go:generate mockgen -source=handlers.go -destination=mock_handlers.go -package=handlers

type AuthHandler interface {
	Signup(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type GroupHandler interface {
	CreateGroup(w http.ResponseWriter, r *http.Request)
	ListGroups(w http.ResponseWriter, r *http.Request)
	GetGroup(w http.ResponseWriter, r *http.Request)
	AddMember(w http.ResponseWriter, r *http.Request)
}

type ExpenseHandler interface {
	CreateExpense(w http.ResponseWriter, r *http.Request)
	ListExpenses(w http.ResponseWriter, r *http.Request)
	GetExpense(w http.ResponseWriter, r *http.Request)
	UpdateExpense(w http.ResponseWriter, r *http.Request)
	DeleteExpense(w http.ResponseWriter, r *http.Request)
}

type BalanceHandler interface {
	GetOverall(w http.ResponseWriter, r *http.Request)
	GetDetailed(w http.ResponseWriter, r *http.Request)
}

type PaymentHandler interface {
	RecordPayment(w http.ResponseWriter, r *http.Request)
	ListPayments(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler    AuthHandler
	GroupHandler   GroupHandler
	ExpenseHandler ExpenseHandler
	BalanceHandler BalanceHandler
	PaymentHandler PaymentHandler
	jwtService     auth.JWTServiceInterface
}

func New(s *service.Services, jwtService auth.JWTServiceInterface) *Handlers {
	return &Handlers{
		AuthHandler:    authhandlers.New(s.AuthService),
		GroupHandler:   grouphandlers.New(s.GroupService),
		ExpenseHandler: expensehandlers.New(s.ExpenseService),
		BalanceHandler: balancehandlers.New(s.BalanceService),
		PaymentHandler: paymenthandlers.New(s.PaymentService),
		jwtService:     jwtService,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", h.AuthHandler.Signup)
			r.Post("/login", h.AuthHandler.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware(h.jwtService))
			r.Route("/groups", func(r chi.Router) {
				r.Get("/", h.GroupHandler.ListGroups)
				r.Post("/", h.GroupHandler.CreateGroup)
				r.Get("/{groupID}", h.GroupHandler.GetGroup)
				r.Post("/{groupID}/members", h.GroupHandler.AddMember)
			})
			r.Route("/expenses", func(r chi.Router) {
				r.Get("/", h.ExpenseHandler.ListExpenses)
				r.Post("/", h.ExpenseHandler.CreateExpense)
				r.Get("/{expenseID}", h.ExpenseHandler.GetExpense)
				r.Put("/{expenseID}", h.ExpenseHandler.UpdateExpense)
				r.Delete("/{expenseID}", h.ExpenseHandler.DeleteExpense)
			})
			r.Route("/balance", func(r chi.Router) {
				r.Get("/overall", h.BalanceHandler.GetOverall)
				r.Get("/detailed", h.BalanceHandler.GetDetailed)
			})
			r.Route("/payments", func(r chi.Router) {
				r.Get("/", h.PaymentHandler.ListPayments)
				r.Post("/", h.PaymentHandler.RecordPayment)
			})
		})
	})

	return r
}
