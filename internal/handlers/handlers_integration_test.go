package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"tienda/internal/handlers"
	"tienda/internal/middleware"
	"tienda/internal/models"
	"tienda/internal/repositories"
	"tienda/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupApp builds a Fiber app over a fresh in-memory SQLite database
// with all handlers, services, and middleware wired like main.go.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	viper.SetDefault("JWT_SECRET", "test_jwt_secret")
	viper.AutomaticEnv()
	jwtSecret := viper.GetString("JWT_SECRET")

	// One named in-memory database per test so state never leaks.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.Product{}, &models.ProductImage{}, &models.Store{}, &models.User{})
	require.NoError(t, err)

	productRepo := repositories.NewGORMProductRepository(db)
	storeRepo := repositories.NewGORMStoreRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)

	productService := services.NewProductService(productRepo, nil) // no broker in tests
	storeService := services.NewStoreService(storeRepo)
	authService := services.NewAuthService(userRepo, jwtSecret)

	productHandler := handlers.NewProductHandler(productService)
	storeHandler := handlers.NewStoreHandler(storeService)
	authHandler := handlers.NewAuthHandler(authService)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")

	authHandler.RegisterRoutes(apiV1)

	protectedRoutes := apiV1.Group("", middleware.AuthRequired(authService))
	productHandler.RegisterRoutes(protectedRoutes)
	storeHandler.RegisterRoutes(protectedRoutes)

	return app
}

// doRequest performs a JSON request against the test app and decodes
// the response body into out when it is non-nil.
func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}, out interface{}) *http.Response {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(raw)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, reqBody)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

// registerAndLogin creates a user (optionally with roles) and returns a
// bearer token for it.
func registerAndLogin(t *testing.T, app *fiber.App, username string, roles []string) string {
	t.Helper()

	registerBody := map[string]interface{}{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	}
	if roles != nil {
		registerBody["roles"] = roles
	}
	resp := doRequest(t, app, http.MethodPost, "/api/v1/auth/register", "", registerBody, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var loginResult struct {
		Token string `json:"token"`
	}
	resp = doRequest(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": "password123",
	}, &loginResult)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, loginResult.Token)
	return loginResult.Token
}

func TestUnauthenticatedRequestsAreRejected(t *testing.T) {
	app := setupApp(t)

	resp := doRequest(t, app, http.MethodGet, "/api/v1/products/", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProductLifecycle(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app, "carol", nil)

	// Create with two images
	var created models.PlainProduct
	resp := doRequest(t, app, http.MethodPost, "/api/v1/products/", token, map[string]interface{}{
		"title":  "Shirt",
		"price":  19.99,
		"stock":  3,
		"images": []string{"a.png", "b.png"},
	}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "shirt", created.Slug)
	assert.Equal(t, []string{"a.png", "b.png"}, created.Images)

	// Case-insensitive title lookup returns the plain projection
	var fetched models.PlainProduct
	resp = doRequest(t, app, http.MethodGet, "/api/v1/products/shirt", token, nil, &fetched)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, []string{"a.png", "b.png"}, fetched.Images)

	// Slug lookup resolves too
	resp = doRequest(t, app, http.MethodGet, "/api/v1/products/"+created.Slug, token, nil, &fetched)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Listing flattens images in order
	var page []models.PlainProduct
	resp = doRequest(t, app, http.MethodGet, "/api/v1/products/?limit=10", token, nil, &page)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, page, 1)
	assert.Equal(t, []string{"a.png", "b.png"}, page[0].Images)

	// Update without images leaves them untouched
	var updated models.PlainProduct
	resp = doRequest(t, app, http.MethodPatch, "/api/v1/products/"+created.ID, token, map[string]interface{}{
		"title": "Better Shirt",
	}, &updated)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Better Shirt", updated.Title)
	assert.Equal(t, []string{"a.png", "b.png"}, updated.Images)

	// Update with images replaces the whole set atomically
	resp = doRequest(t, app, http.MethodPatch, "/api/v1/products/"+created.ID, token, map[string]interface{}{
		"images": []string{"c.png"},
	}, &updated)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"c.png"}, updated.Images)

	// Idempotent replacement: same update twice, same final set
	resp = doRequest(t, app, http.MethodPatch, "/api/v1/products/"+created.ID, token, map[string]interface{}{
		"images": []string{"c.png"},
	}, &updated)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"c.png"}, updated.Images)

	// Present-but-empty images clears the set
	resp = doRequest(t, app, http.MethodPatch, "/api/v1/products/"+created.ID, token, map[string]interface{}{
		"images": []string{},
	}, &updated)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, updated.Images)

	// Delete, then the product is gone
	resp = doRequest(t, app, http.MethodDelete, "/api/v1/products/"+created.ID, token, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = doRequest(t, app, http.MethodGet, "/api/v1/products/"+created.ID, token, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProductDuplicateSlugIsConflict(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app, "dave", nil)

	resp := doRequest(t, app, http.MethodPost, "/api/v1/products/", token, map[string]interface{}{
		"title": "Mug", "slug": "mug",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPost, "/api/v1/products/", token, map[string]interface{}{
		"title": "Other Mug", "slug": "mug",
	}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestProductNotFound(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app, "erin", nil)

	// Syntactically valid UUID that does not exist
	resp := doRequest(t, app, http.MethodGet, "/api/v1/products/c56a4180-65aa-42ec-a945-5fd21dec0538", token, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Non-UUID term matching no title or slug
	resp = doRequest(t, app, http.MethodGet, "/api/v1/products/no-such-thing", token, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStoreOwnership(t *testing.T) {
	app := setupApp(t)
	tokenA := registerAndLogin(t, app, "alice", nil)
	tokenB := registerAndLogin(t, app, "bob", nil)

	var created models.Store
	resp := doRequest(t, app, http.MethodPost, "/api/v1/stores/", tokenA, map[string]interface{}{
		"name":        "Bodega",
		"description": "odds and ends",
		"slug":        "my-store",
	}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "my-store", created.Slug)

	// Owner sees it, by list, uuid, case-insensitive name, and slug
	var stores []models.Store
	resp = doRequest(t, app, http.MethodGet, "/api/v1/stores/", tokenA, nil, &stores)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, stores, 1)
	resp = doRequest(t, app, http.MethodGet, "/api/v1/stores/"+created.ID, tokenA, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = doRequest(t, app, http.MethodGet, "/api/v1/stores/bodega", tokenA, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = doRequest(t, app, http.MethodGet, "/api/v1/stores/my-store", tokenA, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Another user cannot see it at all
	resp = doRequest(t, app, http.MethodGet, "/api/v1/stores/", tokenB, nil, &stores)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, stores)
	resp = doRequest(t, app, http.MethodGet, "/api/v1/stores/"+created.ID, tokenB, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Update by a non-owner reveals existence but denies the mutation
	resp = doRequest(t, app, http.MethodPatch, "/api/v1/stores/"+created.ID, tokenB, map[string]interface{}{
		"name": "Hijacked",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Remove by a non-owner goes through the scoped lookup: NotFound
	resp = doRequest(t, app, http.MethodDelete, "/api/v1/stores/"+created.ID, tokenB, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// The owner can update and remove
	var updated models.Store
	resp = doRequest(t, app, http.MethodPatch, "/api/v1/stores/"+created.ID, tokenA, map[string]interface{}{
		"name": "Bodega Deluxe",
	}, &updated)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Bodega Deluxe", updated.Name)

	resp = doRequest(t, app, http.MethodDelete, "/api/v1/stores/"+created.ID, tokenA, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = doRequest(t, app, http.MethodGet, "/api/v1/stores/"+created.ID, tokenA, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBulkProductResetRequiresAdminRole(t *testing.T) {
	app := setupApp(t)
	userToken := registerAndLogin(t, app, "frank", nil)
	adminToken := registerAndLogin(t, app, "grace", []string{models.RoleAdmin})

	resp := doRequest(t, app, http.MethodPost, "/api/v1/products/", userToken, map[string]interface{}{
		"title": "Poster",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Plain users are refused
	resp = doRequest(t, app, http.MethodDelete, "/api/v1/products/", userToken, nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Admins wipe the catalog
	resp = doRequest(t, app, http.MethodDelete, "/api/v1/products/", adminToken, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page []models.PlainProduct
	resp = doRequest(t, app, http.MethodGet, "/api/v1/products/", userToken, nil, &page)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, page)
}
