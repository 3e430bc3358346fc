package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/socialseed/socialseed/internal/api"
	"github.com/socialseed/socialseed/internal/types"
)

// MockAuthService is a mock implementation of the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*AuthResponse), args.Error(1)
}

func (m *MockAuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*AuthResponse), args.Error(1)
}

func postJSON(t *testing.T, handler http.HandlerFunc, target string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) api.Envelope {
	t.Helper()
	var env api.Envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	return env
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := NewAuthHandler(mockService, slog.Default())

		mockService.On("Login", mock.Anything, "test@example.com", "password123").
			Return(&AuthResponse{Token: "signed.jwt.token", Roles: []string{DefaultRole}}, nil).Once()

		rr := postJSON(t, handler.Login, "/api/v1/auth/login",
			`{"email":"test@example.com","password":"password123"}`)

		assert.Equal(t, http.StatusOK, rr.Code)
		env := decodeEnvelope(t, rr)
		assert.Equal(t, http.StatusOK, env.Status)
		assert.Equal(t, "Login successful", env.Message)

		data, ok := env.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "signed.jwt.token", data["token"])
		mockService.AssertExpectations(t)
	})

	t.Run("InvalidCredentials", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := NewAuthHandler(mockService, slog.Default())

		mockService.On("Login", mock.Anything, "test@example.com", "wrong").
			Return(nil, types.ErrUnauthenticated).Once()

		rr := postJSON(t, handler.Login, "/api/v1/auth/login",
			`{"email":"test@example.com","password":"wrong"}`)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		env := decodeEnvelope(t, rr)
		assert.Equal(t, "Invalid email or password", env.Message)
		assert.Nil(t, env.Data)
		mockService.AssertExpectations(t)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := NewAuthHandler(mockService, slog.Default())

		rr := postJSON(t, handler.Login, "/api/v1/auth/login", `{not json`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("MissingFields", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := NewAuthHandler(mockService, slog.Default())

		rr := postJSON(t, handler.Login, "/api/v1/auth/login", `{"email":"test@example.com"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ServiceError", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := NewAuthHandler(mockService, slog.Default())

		mockService.On("Login", mock.Anything, "test@example.com", "password123").
			Return(nil, assert.AnError).Once()

		rr := postJSON(t, handler.Login, "/api/v1/auth/login",
			`{"email":"test@example.com","password":"password123"}`)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		mockService.AssertExpectations(t)
	})
}

func TestAuthHandler_Register(t *testing.T) {
	validBody := `{"username":"newuser","email":"new@example.com","password":"password123","full_name":"New User"}`

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := NewAuthHandler(mockService, slog.Default())

		mockService.On("Register", mock.Anything, RegisterRequest{
			Username: "newuser",
			Email:    "new@example.com",
			Password: "password123",
			FullName: "New User",
		}).Return(&AuthResponse{Token: "signed.jwt.token", Roles: []string{DefaultRole}}, nil).Once()

		rr := postJSON(t, handler.Register, "/api/v1/auth/register", validBody)

		assert.Equal(t, http.StatusOK, rr.Code)
		env := decodeEnvelope(t, rr)
		assert.Equal(t, "Registration successful", env.Message)

		data, ok := env.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "signed.jwt.token", data["token"])
		mockService.AssertExpectations(t)
	})

	t.Run("EmailConflict", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := NewAuthHandler(mockService, slog.Default())

		mockService.On("Register", mock.Anything, mock.AnythingOfType("RegisterRequest")).
			Return(nil, types.ErrConflict).Once()

		rr := postJSON(t, handler.Register, "/api/v1/auth/register", validBody)

		assert.Equal(t, http.StatusConflict, rr.Code)
		env := decodeEnvelope(t, rr)
		assert.Equal(t, "Email already registered", env.Message)
		mockService.AssertExpectations(t)
	})

	t.Run("ValidationFailures", func(t *testing.T) {
		tests := []struct {
			name string
			body string
		}{
			{"EmptyUsername", `{"username":"","email":"a@b.com","password":"password123","full_name":"A"}`},
			{"UsernameTooLong", `{"username":"` + string(bytes.Repeat([]byte("u"), 31)) + `","email":"a@b.com","password":"password123","full_name":"A"}`},
			{"PasswordTooShort", `{"username":"u","email":"a@b.com","password":"short","full_name":"A"}`},
			{"InvalidEmail", `{"username":"u","email":"not-an-email","password":"password123","full_name":"A"}`},
		}
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				mockService := new(MockAuthService)
				handler := NewAuthHandler(mockService, slog.Default())

				rr := postJSON(t, handler.Register, "/api/v1/auth/register", tc.body)

				assert.Equal(t, http.StatusBadRequest, rr.Code)
				mockService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
			})
		}
	})
}
