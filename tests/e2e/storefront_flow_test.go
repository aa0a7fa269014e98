//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"testing"
	"time"

	"greenbasket/internal/app/storefront/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const BaseURL = "http://localhost:8080"

// makeToken выпускает токен тем же секретом, что сконфигурирован у сервиса
func makeToken(t *testing.T, userID, role string) string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "your-secret-key-change-this-in-production"
	}

	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   "e2e@example.com",
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func authHeaders(token string) http.Header {
	headers := make(http.Header)
	headers.Set("Content-Type", "application/json")
	headers.Set("Authorization", "Bearer "+token)
	return headers
}

func createTestProduct(t *testing.T, client *http.Client, adminToken string) *entity.Product {
	createReq := entity.CreateProductRequest{
		Name:        "E2E Green Tea",
		Slug:        "e2e-green-tea-" + uuid.NewString(),
		Category:    "Drinks",
		Brand:       "GreenBasket",
		Description: "Loose leaf green tea for e2e runs",
		Price:       12.50,
		Stock:       40,
	}
	body, _ := json.Marshal(createReq)

	req, _ := http.NewRequest(http.MethodPost, BaseURL+"/admin/products", bytes.NewBuffer(body))
	req.Header = authHeaders(adminToken)

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var product entity.Product
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&product))
	return &product
}

func deleteTestProduct(client *http.Client, adminToken string, id uuid.UUID) {
	req, _ := http.NewRequest(http.MethodDelete, BaseURL+"/admin/products/"+id.String(), nil)
	req.Header = authHeaders(adminToken)
	resp, _ := client.Do(req)
	if resp != nil {
		resp.Body.Close()
	}
}

func TestFullReviewFlow(t *testing.T) {
	client := &http.Client{Timeout: 10 * time.Second}
	adminToken := makeToken(t, uuid.NewString(), "admin")
	userToken := makeToken(t, uuid.NewString(), "user")

	product := createTestProduct(t, client, adminToken)
	defer deleteTestProduct(client, adminToken, product.ID)

	// Submit
	submitReq := entity.SubmitReviewRequest{
		ProductID:   product.ID.String(),
		Title:       "Excellent tea",
		Description: "Fresh leaves and a clean taste.",
		Rating:      5,
	}
	body, _ := json.Marshal(submitReq)

	req, _ := http.NewRequest(http.MethodPost, BaseURL+"/reviews", bytes.NewBuffer(body))
	req.Header = authHeaders(userToken)

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Product page shows the fresh aggregate
	resp, err = client.Get(BaseURL + "/products/slug/" + product.Slug)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page entity.Product
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	assert.Equal(t, 1, page.NumReviews)
	assert.Equal(t, 5.0, page.Rating)

	// Resubmit updates in place
	submitReq.Rating = 3
	submitReq.Title = "Changed my mind"
	body, _ = json.Marshal(submitReq)

	req, _ = http.NewRequest(http.MethodPost, BaseURL+"/reviews", bytes.NewBuffer(body))
	req.Header = authHeaders(userToken)

	resp, err = client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = client.Get(BaseURL + "/products/slug/" + product.Slug)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	assert.Equal(t, 1, page.NumReviews)
	assert.Equal(t, 3.0, page.Rating)

	// Own review is readable for form prefill
	req, _ = http.NewRequest(http.MethodGet, BaseURL+"/products/"+product.ID.String()+"/reviews/me", nil)
	req.Header = authHeaders(userToken)

	resp, err = client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var own entity.Review
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&own))
	assert.Equal(t, "Changed my mind", own.Title)
}

func TestSubmitReview_Unauthorized(t *testing.T) {
	client := &http.Client{Timeout: 10 * time.Second}

	submitReq := entity.SubmitReviewRequest{
		ProductID:   uuid.NewString(),
		Title:       "No token",
		Description: "This must not get through.",
		Rating:      5,
	}
	body, _ := json.Marshal(submitReq)

	req, _ := http.NewRequest(http.MethodPost, BaseURL+"/reviews", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSubmitReview_ValidationErrors(t *testing.T) {
	client := &http.Client{Timeout: 10 * time.Second}
	userToken := makeToken(t, uuid.NewString(), "user")

	testCases := []struct {
		name    string
		request map[string]interface{}
	}{
		{
			name: "Rating too low",
			request: map[string]interface{}{
				"product_id":  uuid.NewString(),
				"title":       "Valid title",
				"description": "Long enough description text.",
				"rating":      0,
			},
		},
		{
			name: "Rating too high",
			request: map[string]interface{}{
				"product_id":  uuid.NewString(),
				"title":       "Valid title",
				"description": "Long enough description text.",
				"rating":      6,
			},
		},
		{
			name: "Description too short",
			request: map[string]interface{}{
				"product_id":  uuid.NewString(),
				"title":       "Valid title",
				"description": "Short",
				"rating":      4,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			body, _ := json.Marshal(tc.request)

			req, _ := http.NewRequest(http.MethodPost, BaseURL+"/reviews", bytes.NewBuffer(body))
			req.Header = authHeaders(userToken)

			resp, err := client.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestSubmitReview_ProductNotFound(t *testing.T) {
	client := &http.Client{Timeout: 10 * time.Second}
	userToken := makeToken(t, uuid.NewString(), "user")

	submitReq := entity.SubmitReviewRequest{
		ProductID:   uuid.NewString(),
		Title:       "Ghost product",
		Description: "There is no such product here.",
		Rating:      4,
	}
	body, _ := json.Marshal(submitReq)

	req, _ := http.NewRequest(http.MethodPost, BaseURL+"/reviews", bytes.NewBuffer(body))
	req.Header = authHeaders(userToken)

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdminProducts_RequiresAdminRole(t *testing.T) {
	client := &http.Client{Timeout: 10 * time.Second}
	userToken := makeToken(t, uuid.NewString(), "user")

	createReq := entity.CreateProductRequest{
		Name:        "Forbidden",
		Slug:        "forbidden-" + uuid.NewString(),
		Category:    "Drinks",
		Brand:       "GreenBasket",
		Description: "Must not be created",
		Price:       1,
	}
	body, _ := json.Marshal(createReq)

	req, _ := http.NewRequest(http.MethodPost, BaseURL+"/admin/products", bytes.NewBuffer(body))
	req.Header = authHeaders(userToken)

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCatalogEndpoints(t *testing.T) {
	client := &http.Client{Timeout: 10 * time.Second}

	for _, path := range []string{"/products", "/products/latest", "/products/featured", "/products/categories"} {
		resp, err := client.Get(BaseURL + path)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		resp.Body.Close()
	}
}

func TestHealthCheck(t *testing.T) {
	client := &http.Client{Timeout: 10 * time.Second}

	resp, err := client.Get(BaseURL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
