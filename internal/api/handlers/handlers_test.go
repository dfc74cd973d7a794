package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"spendbook/internal/api"
	"spendbook/internal/api/handlers"
	"spendbook/internal/dto"
	"spendbook/internal/service"
	"spendbook/internal/testutil"
	"spendbook/pkg/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testEnv wires the full router over in-memory stores and registers one user.
type testEnv struct {
	app        *fiber.App
	token      string
	userID     uuid.UUID
	users      *testutil.InMemoryUserStore
	categories *testutil.InMemoryCategoryStore
	expenses   *testutil.InMemoryExpenseStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := zap.NewNop()
	jwtManager := auth.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	users := &testutil.InMemoryUserStore{}
	categories := &testutil.InMemoryCategoryStore{}
	expenses := &testutil.InMemoryExpenseStore{Categories: categories}

	authService := service.NewAuthService(users, jwtManager, logger)
	categoryService := service.NewCategoryService(categories, expenses, logger)
	expenseService := service.NewExpenseService(expenses, categories, logger)
	statsService := service.NewStatsService(expenses, categories, logger)

	app := api.SetupRouter(
		handlers.NewAuthHandler(authService, logger),
		handlers.NewCategoryHandler(categoryService, logger),
		handlers.NewExpenseHandler(expenseService, logger),
		handlers.NewDashboardHandler(statsService, logger),
		jwtManager,
		logger,
	)

	resp, err := authService.Register(context.Background(), &dto.RegisterRequest{
		Email:    "tester@spendbook.local",
		Password: "hunter22",
	})
	require.NoError(t, err)
	userID, err := uuid.Parse(resp.User.ID)
	require.NoError(t, err)

	return &testEnv{
		app:        app,
		token:      resp.AccessToken,
		userID:     userID,
		users:      users,
		categories: categories,
		expenses:   expenses,
	}
}

// request performs an authenticated call; a nil body sends no payload.
func (env *testEnv) request(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	req := newJSONRequest(t, method, path, body)
	req.Header.Set("Authorization", "Bearer "+env.token)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// anonymous performs a call without credentials.
func (env *testEnv) anonymous(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	req := newJSONRequest(t, method, path, body)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func newJSONRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func errorMessage(t *testing.T, resp *http.Response) string {
	t.Helper()
	body := decodeBody[map[string]string](t, resp)
	return body["error"]
}

// createCategory is a fixture helper going through the real endpoint.
func (env *testEnv) createCategory(t *testing.T, name string) dto.CategoryResponse {
	t.Helper()
	resp := env.request(t, http.MethodPost, "/api/v1/categories", map[string]any{"name": name})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeBody[dto.CategoryEnvelope](t, resp).Category
}

// createExpense posts an expense and returns the stored representation.
func (env *testEnv) createExpense(t *testing.T, body map[string]any) dto.ExpenseResponse {
	t.Helper()
	resp := env.request(t, http.MethodPost, "/api/v1/expenses", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeBody[dto.ExpenseEnvelope](t, resp).Expense
}
