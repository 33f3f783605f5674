package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mdriyazakondo/book-curriter-server/internal/models"
	"github.com/mdriyazakondo/book-curriter-server/pkg/checkout"
)

// setupTestApp builds the fully wired app against an in-memory database
// and a mock payment provider. Each test gets its own named database so
// state never leaks between tests.
func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB, *checkout.MockProvider) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	provider := checkout.NewMockProvider()
	app, _, err := NewApp(db, provider, nil, AppConfig{
		JWTSecret:          "test_jwt_secret",
		CheckoutSuccessURL: "http://localhost/success?session_id={CHECKOUT_SESSION_ID}",
		CheckoutCancelURL:  "http://localhost/cancel",
	})
	require.NoError(t, err)

	return app, db, provider
}

func doJSON(t *testing.T, app *fiber.App, method, target, token string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body), "body: %s", string(raw))
	return body
}

// registerAndLogin creates an account over HTTP and returns its token.
func registerAndLogin(t *testing.T, app *fiber.App, name, email, password string) string {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"name":     name,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)

	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealthCheck(t *testing.T) {
	app, _, _ := setupTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "healthy", body["status"])
}

func TestRegisterAndLogin(t *testing.T) {
	app, _, _ := setupTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"name":     "Test Reader",
		"email":    "reader@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Registering the same address again must fail.
	resp = doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"name":     "Test Reader",
		"email":    "reader@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email":    "reader@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["token"])

	resp = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email":    "reader@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestUnauthenticatedAccess(t *testing.T) {
	app, _, _ := setupTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/v1/orders/reader@example.com", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/v1/wishlist/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// The public catalog stays open.
	resp = doJSON(t, app, http.MethodGet, "/api/v1/books/", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestRoleGating(t *testing.T) {
	app, db, _ := setupTestApp(t)

	token := registerAndLogin(t, app, "Plain Customer", "customer@example.com", "password123")

	// New accounts are customers and cannot list users.
	resp := doJSON(t, app, http.MethodGet, "/api/v1/users/", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, string(models.RoleCustomer), body["role"])

	// Promote to admin and retry with the same token: the stored role is
	// what counts, not anything baked into the token.
	err := db.Model(&models.User{}).
		Where("email = ?", "customer@example.com").
		Update("role", models.RoleAdmin).Error
	require.NoError(t, err)

	resp = doJSON(t, app, http.MethodGet, "/api/v1/users/", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestCheckoutAndReconciliation(t *testing.T) {
	app, db, provider := setupTestApp(t)

	require.NoError(t, db.Create(&models.Book{
		ID:          "b1",
		Title:       "Distributed Systems",
		AuthorName:  "A. Librarian",
		AuthorEmail: "librarian@example.com",
		Price:       25.00,
		Quantity:    3,
		Status:      models.BookStatusPublished,
	}).Error)

	token := registerAndLogin(t, app, "Paying Customer", "payer@example.com", "password123")

	resp := doJSON(t, app, http.MethodPost, "/api/v1/orders/", token, fiber.Map{
		"book_id":       "b1",
		"customer_name": "Paying Customer",
		"quantity":      2,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	orderBody := decodeBody(t, resp)
	orderID, _ := orderBody["id"].(string)
	require.NotEmpty(t, orderID)
	assert.Equal(t, models.PaymentStatusUnpaid, orderBody["payment_status"])

	resp = doJSON(t, app, http.MethodPost, "/api/v1/payments/checkout-session", token, fiber.Map{
		"order_id": orderID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sessionBody := decodeBody(t, resp)
	url, _ := sessionBody["url"].(string)
	require.NotEmpty(t, url)
	sessionID := url[strings.LastIndex(url, "/")+1:]

	// Reconciling before the customer pays changes nothing.
	resp = doJSON(t, app, http.MethodPatch, "/api/v1/payments/success?session_id="+sessionID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Payment not completed", body["message"])

	txID := provider.MarkPaid(sessionID)
	require.NotEmpty(t, txID)

	resp = doJSON(t, app, http.MethodPatch, "/api/v1/payments/success?session_id="+sessionID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, txID, body["transaction_id"])
	assert.Equal(t, orderID, body["order_id"])
	assert.NotEmpty(t, body["payment_id"])

	var order models.Order
	require.NoError(t, db.First(&order, "id = ?", orderID).Error)
	assert.Equal(t, models.PaymentStatusPaid, order.PaymentStatus)
	assert.Equal(t, 1, order.Quantity)

	var payment models.Payment
	require.NoError(t, db.First(&payment, "transaction_id = ?", txID).Error)
	assert.Equal(t, orderID, payment.OrderID)
	assert.Equal(t, 25.00, payment.Price)

	// The customer refreshing the success page must not double-record.
	resp = doJSON(t, app, http.MethodPatch, "/api/v1/payments/success?session_id="+sessionID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, "Payment already processed", body["message"])
	assert.Equal(t, txID, body["transaction_id"])

	var count int64
	require.NoError(t, db.Model(&models.Payment{}).Where("order_id = ?", orderID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	require.NoError(t, db.First(&order, "id = ?", orderID).Error)
	assert.Equal(t, 1, order.Quantity)
}

func TestReconcileUnknownSession(t *testing.T) {
	app, _, _ := setupTestApp(t)

	resp := doJSON(t, app, http.MethodPatch, "/api/v1/payments/success?session_id=cs_missing", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPatch, "/api/v1/payments/success", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestWishlistDuplicate(t *testing.T) {
	app, _, _ := setupTestApp(t)

	token := registerAndLogin(t, app, "Wisher", "wisher@example.com", "password123")

	item := fiber.Map{
		"book_id":   "b1",
		"book_name": "Distributed Systems",
		"price":     25.00,
	}
	resp := doJSON(t, app, http.MethodPost, "/api/v1/wishlist/", token, item)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/v1/wishlist/", token, item)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "already_exists", body["message"])
}
