package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GlebRadaev/gosplit/internal/apperrors"
	"github.com/GlebRadaev/gosplit/internal/domain"
	"github.com/GlebRadaev/gosplit/internal/dto"
	"github.com/GlebRadaev/gosplit/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*AuthHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

var alice = &domain.User{
	ID:           "u1",
	Username:     "alice",
	Email:        "alice@example.com",
	PasswordHash: "hashedpassword",
}

func TestSignupHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful registration",
			body: `{"username":"alice","email":"alice@example.com","password":"password123"}`,
			prepareMock: func() {
				service.EXPECT().Register(context.Background(), "alice", "alice@example.com", "password123").Return(alice, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name: "User already exists",
			body: `{"username":"alice","email":"alice@example.com","password":"password123"}`,
			prepareMock: func() {
				service.EXPECT().Register(context.Background(), "alice", "alice@example.com", "password123").
					Return(nil, apperrors.Conflict("email or username already taken"))
			},
			expectedCode:  http.StatusConflict,
			expectedError: "email or username already taken",
		},
		{
			name:          "Invalid request body",
			body:          `{invalid json`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name:          "Missing email",
			body:          `{"username":"alice","password":"password123"}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "email is required",
		},
		{
			name:          "Short password",
			body:          `{"username":"alice","email":"alice@example.com","password":"123"}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "password must be at least 6",
		},
		{
			name: "Storage failure",
			body: `{"username":"alice","email":"alice@example.com","password":"password123"}`,
			prepareMock: func() {
				service.EXPECT().Register(context.Background(), "alice", "alice@example.com", "password123").
					Return(nil, apperrors.Persistence("register", errors.New("connection refused")))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "register: storage unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("POST", "/api/auth/signup", bytes.NewReader([]byte(tt.body)))
			rr := httptest.NewRecorder()

			handler.Signup(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp utils.Response
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedError, resp.Message)
				return
			}
			var resp dto.SignupResponseDTO
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, dto.UserDTO{ID: "u1", Username: "alice", Email: "alice@example.com"}, resp.User)
			assert.NotContains(t, rr.Body.String(), "hashedpassword")
		})
	}
}

func TestLoginHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful login",
			body: `{"email":"alice@example.com","password":"password123"}`,
			prepareMock: func() {
				service.EXPECT().
					Authenticate(context.Background(), "alice@example.com", "password123").
					Return(alice, nil)

				service.EXPECT().
					GenerateToken("u1").
					Return("some-jwt-token", nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Invalid credentials",
			body: `{"email":"alice@example.com","password":"wrongpassword"}`,
			prepareMock: func() {
				service.EXPECT().
					Authenticate(context.Background(), "alice@example.com", "wrongpassword").
					Return(nil, apperrors.Unauthorized("invalid credentials"))
			},
			expectedCode:  http.StatusUnauthorized,
			expectedError: "invalid credentials",
		},
		{
			name:          "Invalid request body",
			body:          `{invalid json`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name:          "Missing password",
			body:          `{"email":"alice@example.com"}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "password is required",
		},
		{
			name: "Error generating token",
			body: `{"email":"alice@example.com","password":"password123"}`,
			prepareMock: func() {
				service.EXPECT().
					Authenticate(context.Background(), "alice@example.com", "password123").
					Return(alice, nil)

				service.EXPECT().
					GenerateToken("u1").
					Return("", errors.New("token generation error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Error generating token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewReader([]byte(tt.body)))
			rr := httptest.NewRecorder()

			handler.Login(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp utils.Response
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedError, resp.Message)
				return
			}
			assert.Equal(t, "Bearer some-jwt-token", rr.Header().Get("Authorization"))
			var resp dto.LoginResponseDTO
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, "some-jwt-token", resp.Token)
			assert.Equal(t, "alice", resp.User.Username)
		})
	}
}
