package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GlebRadaev/gosplit/internal/handlers/auth"
	"github.com/GlebRadaev/gosplit/internal/handlers/balance"
	"github.com/GlebRadaev/gosplit/internal/handlers/expenses"
	"github.com/GlebRadaev/gosplit/internal/handlers/groups"
	"github.com/GlebRadaev/gosplit/internal/handlers/payments"
	"github.com/GlebRadaev/gosplit/internal/service"
	pkgauth "github.com/GlebRadaev/gosplit/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	services := &service.Services{
		AuthService:    auth.NewMockService(ctrl),
		GroupService:   groups.NewMockService(ctrl),
		ExpenseService: expenses.NewMockService(ctrl),
		BalanceService: balance.NewMockService(ctrl),
		PaymentService: payments.NewMockService(ctrl),
	}

	h := New(services, pkgauth.NewMockJWTServiceInterface(ctrl))
	assert.NotNil(t, h, "Handlers should not be nil")
	assert.NotNil(t, h.GroupHandler)
	assert.NotNil(t, h.PaymentHandler)
}

func newRouter(ctrl *gomock.Controller, jwtService pkgauth.JWTServiceInterface) chi.Router {
	mockAuthHandler := NewMockAuthHandler(ctrl)
	mockGroupHandler := NewMockGroupHandler(ctrl)
	mockExpenseHandler := NewMockExpenseHandler(ctrl)
	mockBalanceHandler := NewMockBalanceHandler(ctrl)
	mockPaymentHandler := NewMockPaymentHandler(ctrl)

	mockAuthHandler.EXPECT().Signup(gomock.Any(), gomock.Any()).AnyTimes()
	mockAuthHandler.EXPECT().Login(gomock.Any(), gomock.Any()).AnyTimes()
	mockGroupHandler.EXPECT().ListGroups(gomock.Any(), gomock.Any()).AnyTimes()
	mockGroupHandler.EXPECT().CreateGroup(gomock.Any(), gomock.Any()).AnyTimes()
	mockGroupHandler.EXPECT().GetGroup(gomock.Any(), gomock.Any()).AnyTimes()
	mockGroupHandler.EXPECT().AddMember(gomock.Any(), gomock.Any()).AnyTimes()
	mockExpenseHandler.EXPECT().ListExpenses(gomock.Any(), gomock.Any()).AnyTimes()
	mockExpenseHandler.EXPECT().CreateExpense(gomock.Any(), gomock.Any()).AnyTimes()
	mockExpenseHandler.EXPECT().GetExpense(gomock.Any(), gomock.Any()).AnyTimes()
	mockExpenseHandler.EXPECT().UpdateExpense(gomock.Any(), gomock.Any()).AnyTimes()
	mockExpenseHandler.EXPECT().DeleteExpense(gomock.Any(), gomock.Any()).AnyTimes()
	mockBalanceHandler.EXPECT().GetOverall(gomock.Any(), gomock.Any()).AnyTimes()
	mockBalanceHandler.EXPECT().GetDetailed(gomock.Any(), gomock.Any()).AnyTimes()
	mockPaymentHandler.EXPECT().ListPayments(gomock.Any(), gomock.Any()).AnyTimes()
	mockPaymentHandler.EXPECT().RecordPayment(gomock.Any(), gomock.Any()).AnyTimes()

	h := &Handlers{
		AuthHandler:    mockAuthHandler,
		GroupHandler:   mockGroupHandler,
		ExpenseHandler: mockExpenseHandler,
		BalanceHandler: mockBalanceHandler,
		PaymentHandler: mockPaymentHandler,
		jwtService:     jwtService,
	}

	router := chi.NewRouter()
	h.InitRoutes(router)
	return router
}

var protectedRoutes = []struct {
	method string
	url    string
}{
	{"GET", "/api/groups"},
	{"POST", "/api/groups"},
	{"GET", "/api/groups/g1"},
	{"POST", "/api/groups/g1/members"},
	{"GET", "/api/expenses"},
	{"POST", "/api/expenses"},
	{"GET", "/api/expenses/e1"},
	{"PUT", "/api/expenses/e1"},
	{"DELETE", "/api/expenses/e1"},
	{"GET", "/api/balance/overall"},
	{"GET", "/api/balance/detailed"},
	{"GET", "/api/payments"},
	{"POST", "/api/payments"},
}

type routeCase struct {
	method string
	url    string
	token  string
	status int
}

func TestInitRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	jwtService := pkgauth.NewMockJWTServiceInterface(ctrl)
	jwtService.EXPECT().ValidateToken("bad-token").Return(nil, errors.New("token is expired")).AnyTimes()
	router := newRouter(ctrl, jwtService)

	tests := []routeCase{
		{"POST", "/api/auth/signup", "", http.StatusOK},
		{"POST", "/api/auth/login", "", http.StatusOK},
		{"GET", "/api/unknown", "", http.StatusNotFound},
	}
	for _, route := range protectedRoutes {
		tests = append(tests,
			routeCase{route.method, route.url, "", http.StatusUnauthorized},
			routeCase{route.method, route.url, "bad-token", http.StatusUnauthorized},
		)
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestInitRoutesAuthorized(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	jwtService := pkgauth.NewMockJWTServiceInterface(ctrl)
	jwtService.EXPECT().ValidateToken("good-token").Return(&pkgauth.Claims{UserID: "u1"}, nil).AnyTimes()
	router := newRouter(ctrl, jwtService)

	for _, route := range protectedRoutes {
		t.Run(route.method+" "+route.url, func(t *testing.T) {
			req := httptest.NewRequest(route.method, route.url, nil)
			req.Header.Set("Authorization", "Bearer good-token")
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}
