package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/nmwangi/duka-api/initializers"
	"github.com/nmwangi/duka-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listedProductNames(t *testing.T, body map[string]any) []string {
	t.Helper()
	raw, ok := body["products"].([]any)
	require.True(t, ok, "response has a products array")

	names := make([]string, 0, len(raw))
	for _, entry := range raw {
		product := entry.(map[string]any)
		names = append(names, product["name"].(string))
	}
	return names
}

func TestGetProductsNoFilters(t *testing.T) {
	server := setupServer(t)
	createProduct(t, "Laptop", 999, 5, "electronics", true)
	createProduct(t, "Mug", 8, 20, "kitchen", true)
	createProduct(t, "Discontinued", 1, 1, "misc", false)

	w := performRequest(t, server, http.MethodGet, "/api/products", nil, "")

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	names := listedProductNames(t, body)
	assert.ElementsMatch(t, []string{"Laptop", "Mug"}, names, "soft-deleted rows are invisible")
	assert.Equal(t, float64(2), body["totalItems"])
	assert.Equal(t, float64(0), body["currentPage"])
}

func TestGetProductsNameFilter(t *testing.T) {
	server := setupServer(t)
	createProduct(t, "Gaming Laptop", 1500, 3, "electronics", true)
	createProduct(t, "Office laptop", 700, 4, "electronics", true)
	createProduct(t, "Mug", 8, 20, "kitchen", true)

	w := performRequest(t, server, http.MethodGet, "/api/products?name=LAPTOP", nil, "")

	require.Equal(t, http.StatusOK, w.Code)
	names := listedProductNames(t, decodeBody(t, w))
	assert.ElementsMatch(t, []string{"Gaming Laptop", "Office laptop"}, names)
}

func TestGetProductsPriceBoundsInclusive(t *testing.T) {
	server := setupServer(t)
	createProduct(t, "Cheap", 10, 1, "misc", true)
	createProduct(t, "Mid", 50, 1, "misc", true)
	createProduct(t, "Pricey", 100, 1, "misc", true)

	w := performRequest(t, server, http.MethodGet, "/api/products?minPrice=10&maxPrice=50", nil, "")

	require.Equal(t, http.StatusOK, w.Code)
	names := listedProductNames(t, decodeBody(t, w))
	assert.ElementsMatch(t, []string{"Cheap", "Mid"}, names, "bounds are inclusive")
}

func TestGetProductsCategoryFilter(t *testing.T) {
	server := setupServer(t)
	createProduct(t, "Laptop", 999, 5, "electronics", true)
	createProduct(t, "Mug", 8, 20, "kitchen", true)

	w := performRequest(t, server, http.MethodGet, "/api/products?category=kitchen", nil, "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.ElementsMatch(t, []string{"Mug"}, listedProductNames(t, decodeBody(t, w)))
}

func TestGetProductsSorting(t *testing.T) {
	server := setupServer(t)
	createProduct(t, "B", 20, 1, "misc", true)
	createProduct(t, "A", 10, 1, "misc", true)
	createProduct(t, "C", 30, 1, "misc", true)

	w := performRequest(t, server, http.MethodGet, "/api/products?sortBy=price&sortDir=DESC", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"C", "B", "A"}, listedProductNames(t, decodeBody(t, w)))

	w = performRequest(t, server, http.MethodGet, "/api/products?sortBy=name", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"A", "B", "C"}, listedProductNames(t, decodeBody(t, w)))
}

func TestGetProductsInvalidSortField(t *testing.T) {
	server := setupServer(t)

	w := performRequest(t, server, http.MethodGet, "/api/products?sortBy=password", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProductsPagination(t *testing.T) {
	server := setupServer(t)
	for i := 1; i <= 5; i++ {
		createProduct(t, fmt.Sprintf("P%d", i), float64(i), 1, "misc", true)
	}

	w := performRequest(t, server, http.MethodGet, "/api/products?page=1&size=2&sortBy=price", nil, "")

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, []string{"P3", "P4"}, listedProductNames(t, body), "page index is 0-based")
	assert.Equal(t, float64(5), body["totalItems"])
	assert.Equal(t, float64(3), body["totalPages"])
}

func TestGetProductByID(t *testing.T) {
	server := setupServer(t)
	active := createProduct(t, "Laptop", 999, 5, "electronics", true)
	inactive := createProduct(t, "Discontinued", 1, 1, "misc", false)

	w := performRequest(t, server, http.MethodGet, fmt.Sprintf("/api/products/%d", active.ID), nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(t, server, http.MethodGet, fmt.Sprintf("/api/products/%d", inactive.ID), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code, "soft-deleted product is not retrievable")

	w = performRequest(t, server, http.MethodGet, "/api/products/9999", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetCategories(t *testing.T) {
	server := setupServer(t)
	createProduct(t, "Laptop", 999, 5, "electronics", true)
	createProduct(t, "Phone", 500, 5, "electronics", true)
	createProduct(t, "Mug", 8, 20, "kitchen", true)
	createProduct(t, "Relic", 1, 1, "antiques", false)

	w := performRequest(t, server, http.MethodGet, "/api/products/categories", nil, "")

	require.Equal(t, http.StatusOK, w.Code)
	var categories []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &categories))
	assert.ElementsMatch(t, []string{"electronics", "kitchen"}, categories)
}

func TestCreateProductRequiresAdmin(t *testing.T) {
	server := setupServer(t)
	_, userToken := createUser(t, "Jane", "jane@example.com", models.RoleUser)
	_, adminToken := createUser(t, "Admin", "admin@example.com", models.RoleAdmin)

	payload := map[string]any{
		"name":          "Laptop",
		"price":         999.0,
		"stockQuantity": 5,
		"category":      "electronics",
	}

	w := performRequest(t, server, http.MethodPost, "/api/products", payload, userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = performRequest(t, server, http.MethodPost, "/api/products", payload, adminToken)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestUpdateProduct(t *testing.T) {
	server := setupServer(t)
	_, adminToken := createUser(t, "Admin", "admin@example.com", models.RoleAdmin)
	product := createProduct(t, "Laptop", 999, 5, "electronics", true)

	w := performRequest(t, server, http.MethodPut, fmt.Sprintf("/api/products/%d", product.ID), map[string]any{
		"name":          "Laptop Pro",
		"price":         1299.0,
		"stockQuantity": 3,
		"category":      "electronics",
	}, adminToken)

	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Product
	require.NoError(t, initializers.DB.First(&updated, product.ID).Error)
	assert.Equal(t, "Laptop Pro", updated.Name)
	assert.Equal(t, 1299.0, updated.Price)
	assert.Equal(t, 3, updated.StockQuantity)
}

func TestDeleteProductIsSoftDelete(t *testing.T) {
	server := setupServer(t)
	_, adminToken := createUser(t, "Admin", "admin@example.com", models.RoleAdmin)
	product := createProduct(t, "Laptop", 999, 5, "electronics", true)

	w := performRequest(t, server, http.MethodDelete, fmt.Sprintf("/api/products/%d", product.ID), nil, adminToken)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Product deleted successfully", decodeBody(t, w)["message"])

	// The row survives with the active flag off.
	var stored models.Product
	require.NoError(t, initializers.DB.First(&stored, product.ID).Error)
	assert.False(t, stored.IsActive())

	w = performRequest(t, server, http.MethodGet, fmt.Sprintf("/api/products/%d", product.ID), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetLowStockProducts(t *testing.T) {
	server := setupServer(t)
	_, userToken := createUser(t, "Jane", "jane@example.com", models.RoleUser)
	_, adminToken := createUser(t, "Admin", "admin@example.com", models.RoleAdmin)
	createProduct(t, "Scarce", 10, 2, "misc", true)
	createProduct(t, "AtThreshold", 10, 5, "misc", true)
	createProduct(t, "Plenty", 10, 50, "misc", true)

	w := performRequest(t, server, http.MethodGet, "/api/products/low-stock?threshold=5", nil, userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = performRequest(t, server, http.MethodGet, "/api/products/low-stock?threshold=5", nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)

	var products []models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 1, "threshold is exclusive")
	assert.Equal(t, "Scarce", products[0].Name)
}
