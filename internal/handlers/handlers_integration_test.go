package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"pasar/internal/handlers"
	"pasar/internal/middleware"
	"pasar/internal/models"
	"pasar/internal/repositories"
	"pasar/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// setupApp wires the full API against a fresh in-memory SQLite database,
// mirroring the production wiring minus the message broker.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	assert.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
	)
	assert.NoError(t, err)

	userRepo := repositories.NewGORMUserRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	reviewRepo := repositories.NewGORMReviewRepository(db)
	uow := repositories.NewGORMUnitOfWork(db)

	authService := services.NewAuthService(userRepo, "test-secret")
	productService := services.NewProductService(productRepo, reviewRepo)
	orderService := services.NewOrderService(uow, orderRepo, productRepo, nil)
	reviewService := services.NewReviewService(reviewRepo, productRepo)
	adminService := services.NewAdminService(userRepo, productRepo, orderRepo)

	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	adminHandler := handlers.NewAdminHandler(adminService)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")
	authHandler.RegisterRoutes(apiV1)

	protected := apiV1.Group("", middleware.AuthRequired(authService), middleware.ActiveRequired())
	authHandler.RegisterProtectedRoutes(protected)
	productHandler.RegisterRoutes(apiV1, protected)
	orderHandler.RegisterRoutes(protected)
	reviewHandler.RegisterRoutes(protected)
	adminHandler.RegisterRoutes(protected)

	return app
}

func request(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()

	var parsed map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil && err != io.EOF {
		t.Fatalf("failed to decode response from %s %s: %v", method, path, err)
	}
	return resp.StatusCode, parsed
}

func registerAndLogin(t *testing.T, app *fiber.App, name, email, role string) string {
	t.Helper()

	status, _ := request(t, app, http.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"name":     name,
		"email":    email,
		"password": "password123",
		"role":     role,
	})
	assert.Equal(t, http.StatusCreated, status)

	status, body := request(t, app, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email":    email,
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, status)

	token, _ := body["token"].(string)
	assert.NotEmpty(t, token)
	return token
}

func createProduct(t *testing.T, app *fiber.App, token, name, price string, stock int) string {
	t.Helper()

	status, body := request(t, app, http.MethodPost, "/api/v1/products", token, fiber.Map{
		"name":           name,
		"price":          price,
		"stock_quantity": stock,
		"status":         "published",
	})
	assert.Equal(t, http.StatusCreated, status)

	data := body["data"].(map[string]any)
	return data["id"].(string)
}

// amount parses a JSON money field, which serializes as a quoted string.
func amount(t *testing.T, v any) decimal.Decimal {
	t.Helper()
	s, ok := v.(string)
	assert.True(t, ok, "expected amount as string, got %T (%v)", v, v)
	return decimal.RequireFromString(s)
}

func productStock(t *testing.T, app *fiber.App, productID string) int {
	t.Helper()
	status, body := request(t, app, http.MethodGet, "/api/v1/products/"+productID, "", nil)
	assert.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]any)
	return int(data["stock_quantity"].(float64))
}

func TestAPI_OrderLifecycle(t *testing.T) {
	app := setupApp(t)

	vendorToken := registerAndLogin(t, app, "Vendor One", "vendor@example.com", "vendor")
	customerToken := registerAndLogin(t, app, "Customer One", "customer@example.com", "customer")
	intruderToken := registerAndLogin(t, app, "Customer Two", "intruder@example.com", "customer")
	adminToken := registerAndLogin(t, app, "Admin", "admin@example.com", "admin")

	p1 := createProduct(t, app, vendorToken, "Coffee Beans", "10.00", 10)
	p2 := createProduct(t, app, vendorToken, "Paper Filters", "5.00", 5)

	// Customer places an order for 2x p1 and 1x p2.
	status, body := request(t, app, http.MethodPost, "/api/v1/orders", customerToken, fiber.Map{
		"items": []fiber.Map{
			{"product_id": p1, "quantity": 2},
			{"product_id": p2, "quantity": 1},
		},
	})
	assert.Equal(t, http.StatusCreated, status)

	data := body["data"].(map[string]any)
	orderID := data["id"].(string)
	assert.Equal(t, "pending", data["status"])
	assert.Equal(t, "25.00", data["total_amount"])
	items := data["items"].([]any)
	assert.Len(t, items, 2)
	for _, raw := range items {
		item := raw.(map[string]any)
		qty := decimal.NewFromInt(int64(item["quantity"].(float64)))
		assert.True(t, amount(t, item["subtotal"]).Equal(amount(t, item["price"]).Mul(qty)))
	}

	assert.Equal(t, 8, productStock(t, app, p1))
	assert.Equal(t, 4, productStock(t, app, p2))

	// Another customer cannot see the order; the admin can.
	status, _ = request(t, app, http.MethodGet, "/api/v1/orders/"+orderID, intruderToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = request(t, app, http.MethodGet, "/api/v1/orders/"+orderID, adminToken, nil)
	assert.Equal(t, http.StatusOK, status)

	// The vendor with items in the order moves it to processing.
	status, body = request(t, app, http.MethodPut, "/api/v1/orders/"+orderID+"/status", vendorToken, fiber.Map{
		"status": "processing",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "processing", body["data"].(map[string]any)["status"])

	// The customer cancels; stock returns to pre-order levels.
	status, body = request(t, app, http.MethodDelete, "/api/v1/orders/"+orderID, customerToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "cancelled", body["data"].(map[string]any)["status"])

	assert.Equal(t, 10, productStock(t, app, p1))
	assert.Equal(t, 5, productStock(t, app, p2))
}

func TestAPI_CreateOrder_InsufficientStockRollsBack(t *testing.T) {
	app := setupApp(t)

	vendorToken := registerAndLogin(t, app, "Vendor One", "vendor@example.com", "vendor")
	customerToken := registerAndLogin(t, app, "Customer One", "customer@example.com", "customer")

	p1 := createProduct(t, app, vendorToken, "Coffee Beans", "10.00", 10)
	p2 := createProduct(t, app, vendorToken, "Paper Filters", "5.00", 1)

	status, body := request(t, app, http.MethodPost, "/api/v1/orders", customerToken, fiber.Map{
		"items": []fiber.Map{
			{"product_id": p1, "quantity": 4},
			{"product_id": p2, "quantity": 3},
		},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, false, body["success"])

	// The decrement applied to p1 before the failure was rolled back.
	assert.Equal(t, 10, productStock(t, app, p1))
	assert.Equal(t, 1, productStock(t, app, p2))

	status, body = request(t, app, http.MethodGet, "/api/v1/orders", customerToken, nil)
	assert.Equal(t, http.StatusOK, status)
	meta := body["meta"].(map[string]any)
	assert.Equal(t, float64(0), meta["total"])
}

func TestAPI_UpdateOrderStatus_Rules(t *testing.T) {
	app := setupApp(t)

	vendorToken := registerAndLogin(t, app, "Vendor One", "vendor@example.com", "vendor")
	customerToken := registerAndLogin(t, app, "Customer One", "customer@example.com", "customer")

	p1 := createProduct(t, app, vendorToken, "Coffee Beans", "10.00", 10)

	status, body := request(t, app, http.MethodPost, "/api/v1/orders", customerToken, fiber.Map{
		"items": []fiber.Map{{"product_id": p1, "quantity": 1}},
	})
	assert.Equal(t, http.StatusCreated, status)
	orderID := body["data"].(map[string]any)["id"].(string)

	// Customers cannot hit the transition endpoint at all.
	status, _ = request(t, app, http.MethodPut, "/api/v1/orders/"+orderID+"/status", customerToken, fiber.Map{
		"status": "processing",
	})
	assert.Equal(t, http.StatusForbidden, status)

	// Pending cannot jump straight to delivered.
	status, _ = request(t, app, http.MethodPut, "/api/v1/orders/"+orderID+"/status", vendorToken, fiber.Map{
		"status": "delivered",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, body = request(t, app, http.MethodGet, "/api/v1/orders/"+orderID, customerToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "pending", body["data"].(map[string]any)["status"])
}

func TestAPI_AuthRequired(t *testing.T) {
	app := setupApp(t)

	status, _ := request(t, app, http.MethodGet, "/api/v1/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = request(t, app, http.MethodGet, "/api/v1/orders", "not-a-real-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	// Browsing products needs no token.
	status, _ = request(t, app, http.MethodGet, "/api/v1/products", "", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestAPI_Register_DuplicateEmail(t *testing.T) {
	app := setupApp(t)

	registerAndLogin(t, app, "Customer One", "customer@example.com", "customer")

	status, body := request(t, app, http.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"name":     "Customer Clone",
		"email":    "customer@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, false, body["success"])
}

func TestAPI_Login_WrongPassword(t *testing.T) {
	app := setupApp(t)

	registerAndLogin(t, app, "Customer One", "customer@example.com", "customer")

	status, _ := request(t, app, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email":    "customer@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAPI_CustomerOrderScoping(t *testing.T) {
	app := setupApp(t)

	vendorToken := registerAndLogin(t, app, "Vendor One", "vendor@example.com", "vendor")
	firstToken := registerAndLogin(t, app, "Customer One", "first@example.com", "customer")
	secondToken := registerAndLogin(t, app, "Customer Two", "second@example.com", "customer")
	adminToken := registerAndLogin(t, app, "Admin", "admin@example.com", "admin")

	p1 := createProduct(t, app, vendorToken, "Coffee Beans", "10.00", 100)

	for _, token := range []string{firstToken, secondToken} {
		status, _ := request(t, app, http.MethodPost, "/api/v1/orders", token, fiber.Map{
			"items": []fiber.Map{{"product_id": p1, "quantity": 1}},
		})
		assert.Equal(t, http.StatusCreated, status)
	}

	status, body := request(t, app, http.MethodGet, "/api/v1/orders", firstToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["meta"].(map[string]any)["total"])

	status, body = request(t, app, http.MethodGet, "/api/v1/orders", adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), body["meta"].(map[string]any)["total"])
}

func TestAPI_Reviews(t *testing.T) {
	app := setupApp(t)

	vendorToken := registerAndLogin(t, app, "Vendor One", "vendor@example.com", "vendor")
	customerToken := registerAndLogin(t, app, "Customer One", "customer@example.com", "customer")

	p1 := createProduct(t, app, vendorToken, "Coffee Beans", "10.00", 10)

	status, _ := request(t, app, http.MethodPost, "/api/v1/products/"+p1+"/reviews", customerToken, fiber.Map{
		"rating":  5,
		"comment": "Great beans",
	})
	assert.Equal(t, http.StatusCreated, status)

	// One review per user per product.
	status, _ = request(t, app, http.MethodPost, "/api/v1/products/"+p1+"/reviews", customerToken, fiber.Map{
		"rating": 3,
	})
	assert.Equal(t, http.StatusConflict, status)

	status, body := request(t, app, http.MethodGet, "/api/v1/products/"+p1+"/reviews", customerToken, nil)
	assert.Equal(t, http.StatusOK, status)
	meta := body["meta"].(map[string]any)
	assert.Equal(t, float64(5), meta["average_rating"])
	assert.Len(t, body["data"].([]any), 1)
}

func TestAPI_ProductPayloadCarriesAverageRating(t *testing.T) {
	app := setupApp(t)

	vendorToken := registerAndLogin(t, app, "Vendor One", "vendor@example.com", "vendor")
	customerToken := registerAndLogin(t, app, "Customer One", "customer@example.com", "customer")

	p1 := createProduct(t, app, vendorToken, "Coffee Beans", "10.00", 10)

	// Unreviewed products report a zero average.
	status, body := request(t, app, http.MethodGet, "/api/v1/products/"+p1, "", nil)
	assert.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(0), data["average_rating"])
	assert.Equal(t, "10.00", data["price"])

	status, _ = request(t, app, http.MethodPost, "/api/v1/products/"+p1+"/reviews", customerToken, fiber.Map{
		"rating":  4,
		"comment": "Solid beans",
	})
	assert.Equal(t, http.StatusCreated, status)

	status, body = request(t, app, http.MethodGet, "/api/v1/products/"+p1, "", nil)
	assert.Equal(t, http.StatusOK, status)
	data = body["data"].(map[string]any)
	assert.Equal(t, float64(4), data["average_rating"])

	// The listing carries the average too.
	status, body = request(t, app, http.MethodGet, "/api/v1/products", "", nil)
	assert.Equal(t, http.StatusOK, status)
	listed := body["data"].([]any)[0].(map[string]any)
	assert.Equal(t, p1, listed["id"])
	assert.Equal(t, float64(4), listed["average_rating"])
}

func TestAPI_VendorOrderListing(t *testing.T) {
	app := setupApp(t)

	vendorToken := registerAndLogin(t, app, "Vendor One", "vendor@example.com", "vendor")
	customerToken := registerAndLogin(t, app, "Customer One", "customer@example.com", "customer")

	p1 := createProduct(t, app, vendorToken, "Coffee Beans", "10.00", 10)

	status, _ := request(t, app, http.MethodPost, "/api/v1/orders", customerToken, fiber.Map{
		"items": []fiber.Map{{"product_id": p1, "quantity": 1}},
	})
	assert.Equal(t, http.StatusCreated, status)

	status, body := request(t, app, http.MethodGet, "/api/v1/vendor/orders", vendorToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["meta"].(map[string]any)["total"])

	status, _ = request(t, app, http.MethodGet, "/api/v1/vendor/orders", customerToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestAPI_AdminEndpoints(t *testing.T) {
	app := setupApp(t)

	vendorToken := registerAndLogin(t, app, "Vendor One", "vendor@example.com", "vendor")
	customerToken := registerAndLogin(t, app, "Customer One", "customer@example.com", "customer")
	adminToken := registerAndLogin(t, app, "Admin", "admin@example.com", "admin")

	createProduct(t, app, vendorToken, "Coffee Beans", "10.00", 10)

	status, _ := request(t, app, http.MethodGet, "/api/v1/admin/statistics", customerToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, body := request(t, app, http.MethodGet, "/api/v1/admin/statistics", adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
	stats := body["data"].(map[string]any)
	assert.Equal(t, float64(3), stats["total_users"])
	assert.Equal(t, float64(1), stats["total_vendors"])
	assert.Equal(t, float64(1), stats["total_products"])

	status, body = request(t, app, http.MethodGet, "/api/v1/admin/users", adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"].([]any), 3)
}
