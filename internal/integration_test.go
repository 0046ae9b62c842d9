package internal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"bilemo-backend/config"
	"bilemo-backend/internal/api"
	"bilemo-backend/internal/model"
	"bilemo-backend/internal/store"
)

const testPassword = "password123456"

// setupAPI builds a router over a fresh in-memory database seeded with
// two API-enabled customers, one disabled customer, and a small catalog.
func setupAPI(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to the in-memory database: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, _ := testDB.DB()
		sqlDB.Close()
	})

	err = testDB.AutoMigrate(&model.Customer{}, &model.User{}, &model.Brand{}, &model.Device{})
	assert.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	assert.NoError(t, err)

	customers := []model.Customer{
		{ID: 1, Name: "Customer A", CanUseAPI: true},
		{ID: 2, Name: "Customer B", CanUseAPI: true},
		{ID: 3, Name: "Customer C", CanUseAPI: false},
	}
	assert.NoError(t, testDB.Create(&customers).Error)

	users := []model.User{
		{ID: 1, Email: "alice@a.com", Fullname: "Alice", Password: string(hash), CustomerID: 1},
		{ID: 2, Email: "andy@a.com", Fullname: "Andy", Password: string(hash), CustomerID: 1},
		{ID: 3, Email: "bob@b.com", Fullname: "Bob", Password: string(hash), CustomerID: 2},
		{ID: 4, Email: "carol@c.com", Fullname: "Carol", Password: string(hash), CustomerID: 3},
	}
	assert.NoError(t, testDB.Create(&users).Error)

	brands := []model.Brand{
		{ID: 1, Name: "Apple"},
		{ID: 2, Name: "Samsung"},
	}
	assert.NoError(t, testDB.Create(&brands).Error)

	devices := []model.Device{
		{ID: 1, BrandID: 1, Model: "iPhone 12", Type: "phone", Description: "A phone"},
		{ID: 2, BrandID: 1, Model: "iPad Air", Type: "tablet", Description: "A tablet"},
		{ID: 3, BrandID: 2, Model: "Galaxy S21", Type: "phone", Description: "Another phone"},
	}
	assert.NoError(t, testDB.Create(&devices).Error)

	cfg := &config.Config{}
	cfg.Server.RateLimitPerSec = 1000
	cfg.Server.RateLimitBurst = 1000
	cfg.Server.CacheTTLSeconds = 300
	cfg.Auth.JWTSecret = "integration-test-secret"
	cfg.Auth.TokenTTLMinutes = 60
	cfg.Auth.BcryptCost = bcrypt.MinCost

	return api.NewRouter(cfg, store.NewGormStore(testDB))
}

func doRequest(router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()

	w := doRequest(router, "POST", "/api/login", "", gin.H{
		"username": email,
		"password": testPassword,
	})
	assert.Equal(t, http.StatusOK, w.Code, "login should succeed for %s", email)

	var resp struct {
		Token string `json:"token"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	return resp.Token
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAuthentication(t *testing.T) {
	router := setupAPI(t)

	t.Run("Missing token yields 401", func(t *testing.T) {
		w := doRequest(router, "GET", "/api/brands", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, float64(401), body["status"])
	})

	t.Run("Garbage token yields 401", func(t *testing.T) {
		w := doRequest(router, "GET", "/api/brands", "garbage", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Wrong password yields 401", func(t *testing.T) {
		w := doRequest(router, "POST", "/api/login", "", gin.H{
			"username": "alice@a.com",
			"password": "not-the-password",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Unknown user yields 401", func(t *testing.T) {
		w := doRequest(router, "POST", "/api/login", "", gin.H{
			"username": "nobody@nowhere.com",
			"password": testPassword,
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Valid credentials yield a working token", func(t *testing.T) {
		token := login(t, router, "alice@a.com")
		w := doRequest(router, "GET", "/api/brands", token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestCatalogEndpoints(t *testing.T) {
	router := setupAPI(t)
	token := login(t, router, "alice@a.com")

	t.Run("Brand list is paginated and tagged with an ETag", func(t *testing.T) {
		w := doRequest(router, "GET", "/api/brands?page=1&pageSize=1", token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get("ETag"))

		body := decodeBody(t, w)
		assert.Equal(t, float64(1), body["page"])
		assert.Equal(t, float64(1), body["pageSize"])
		assert.Equal(t, float64(2), body["totalCount"])
		items := body["items"].([]any)
		assert.Len(t, items, 1)

		first := items[0].(map[string]any)
		assert.Equal(t, "Apple", first["name"])
		assert.Equal(t, float64(2), first["deviceCount"])
	})

	t.Run("Pagination parameters are normalized", func(t *testing.T) {
		w := doRequest(router, "GET", "/api/brands?page=-2&pageSize=0", token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, float64(1), body["page"])
		assert.Equal(t, float64(10), body["pageSize"])
	})

	t.Run("Brand detail includes its devices", func(t *testing.T) {
		w := doRequest(router, "GET", "/api/brands/1", token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Apple", body["name"])
		assert.Equal(t, float64(2), body["deviceCount"])
		assert.Len(t, body["devices"].([]any), 2)
	})

	t.Run("Unknown brand yields a named 404", func(t *testing.T) {
		w := doRequest(router, "GET", "/api/brands/999", token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "This brand does not exist", body["message"])
	})

	t.Run("Brand devices honor the types filter", func(t *testing.T) {
		w := doRequest(router, "GET", "/api/brands/1/devices?types=tablet", token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, float64(1), body["totalCount"])
		items := body["items"].([]any)
		assert.Len(t, items, 1)
		assert.Equal(t, "iPad Air", items[0].(map[string]any)["model"])
	})

	t.Run("Device list honors brand filter case-insensitively", func(t *testing.T) {
		w := doRequest(router, "GET", "/api/devices?brands=Apple&pageSize=1", token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, float64(2), body["totalCount"], "totalCount must reflect the full filtered set")
		assert.Len(t, body["items"].([]any), 1)
	})

	t.Run("Device index omits the description, detail includes it", func(t *testing.T) {
		w := doRequest(router, "GET", "/api/devices", token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		first := body["items"].([]any)[0].(map[string]any)
		_, hasDescription := first["description"]
		assert.False(t, hasDescription)

		w = doRequest(router, "GET", "/api/devices/1", token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		detail := decodeBody(t, w)
		assert.Equal(t, "A phone", detail["description"])
		assert.Equal(t, "Apple", detail["brand"].(map[string]any)["name"])
	})
}

func TestAPIAccessGate(t *testing.T) {
	router := setupAPI(t)
	token := login(t, router, "carol@c.com") // customer with canUseApi=false

	for _, path := range []string{"/api/brands", "/api/brands/1", "/api/brands/1/devices", "/api/devices", "/api/devices/1"} {
		w := doRequest(router, "GET", path, token, nil)
		assert.Equal(t, http.StatusForbidden, w.Code, "expected 403 on %s", path)
		body := decodeBody(t, w)
		assert.Equal(t, "The customer you are attached to cannot use the API.", body["message"])
	}

	// User management of one's own customer stays available.
	w := doRequest(router, "GET", "/api/users", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUserEndpoints(t *testing.T) {
	router := setupAPI(t)
	aliceToken := login(t, router, "alice@a.com")
	bobToken := login(t, router, "bob@b.com")

	t.Run("Listing is scoped to the caller's customer", func(t *testing.T) {
		w := doRequest(router, "GET", "/api/users", aliceToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, float64(2), body["totalCount"])
		for _, item := range body["items"].([]any) {
			email := item.(map[string]any)["email"].(string)
			assert.Contains(t, []string{"alice@a.com", "andy@a.com"}, email)
		}
	})

	t.Run("Viewing another customer's user yields 403", func(t *testing.T) {
		w := doRequest(router, "GET", "/api/users/1", bobToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "You cannot view another customer's users", body["message"])
	})

	t.Run("Own user detail includes the customer", func(t *testing.T) {
		w := doRequest(router, "GET", "/api/users/2", aliceToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "andy@a.com", body["email"])
		assert.Equal(t, "Customer A", body["customer"].(map[string]any)["name"])
	})

	t.Run("Create validates input", func(t *testing.T) {
		w := doRequest(router, "POST", "/api/users", aliceToken, gin.H{
			"email":    "not-an-email",
			"fullname": "",
			"password": "short",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Validation error", body["message"])
		errs := body["errors"].(map[string]any)
		assert.Contains(t, errs, "email")
		assert.Contains(t, errs, "fullname")
		assert.Contains(t, errs, "password")
	})

	t.Run("Create rejects duplicate emails", func(t *testing.T) {
		w := doRequest(router, "POST", "/api/users", aliceToken, gin.H{
			"email":    "bob@b.com",
			"fullname": "Impostor",
			"password": "a valid password",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		errs := body["errors"].(map[string]any)
		assert.Contains(t, errs, "email")
	})

	t.Run("Create succeeds and invalidates the cached listing", func(t *testing.T) {
		// Warm the list cache first.
		w := doRequest(router, "GET", "/api/users", aliceToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(2), decodeBody(t, w)["totalCount"])

		w = doRequest(router, "POST", "/api/users", aliceToken, gin.H{
			"email":    "anna@a.com",
			"fullname": "Anna",
			"password": "a valid password",
		})
		assert.Equal(t, http.StatusCreated, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "anna@a.com", body["email"])
		assert.Equal(t, "Customer A", body["customer"].(map[string]any)["name"])

		newID := int64(body["id"].(float64))
		assert.Equal(t, fmt.Sprintf("/api/users/%d", newID), w.Header().Get("Location"))

		// The listing must not serve the stale cached page.
		w = doRequest(router, "GET", "/api/users", aliceToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(3), decodeBody(t, w)["totalCount"])
	})

	t.Run("Update changes fields and allows login with the new password", func(t *testing.T) {
		w := doRequest(router, "PUT", "/api/users/2", aliceToken, gin.H{
			"fullname": "Andrew",
			"password": "a brand new password",
		})
		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Andrew", body["fullname"])
		assert.Equal(t, "andy@a.com", body["email"], "unset fields keep their value")

		w = doRequest(router, "POST", "/api/login", "", gin.H{
			"username": "andy@a.com",
			"password": "a brand new password",
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Updating another customer's user yields 403", func(t *testing.T) {
		w := doRequest(router, "PUT", "/api/users/1", bobToken, gin.H{"fullname": "Hijacked"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Delete removes the user and refreshes the listing", func(t *testing.T) {
		w := doRequest(router, "DELETE", "/api/users/2", aliceToken, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = doRequest(router, "GET", "/api/users/2", aliceToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "This user does not exist", decodeBody(t, w)["message"])
	})

	t.Run("Deleting another customer's user yields 403", func(t *testing.T) {
		w := doRequest(router, "DELETE", "/api/users/1", bobToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "You cannot delete another customer's users", decodeBody(t, w)["message"])
	})
}

func TestBrandDeleteCascades(t *testing.T) {
	router := setupAPI(t)
	token := login(t, router, "alice@a.com")

	// Warm device caches so the invalidation path is exercised too.
	w := doRequest(router, "GET", "/api/devices/1", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doRequest(router, "GET", "/api/brands", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, "DELETE", "/api/brands/1", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// The brand and each of its devices are gone, cache included.
	w = doRequest(router, "GET", "/api/brands/1", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	for _, id := range []int{1, 2} {
		w = doRequest(router, "GET", fmt.Sprintf("/api/devices/%d", id), token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "This device does not exist", decodeBody(t, w)["message"])
	}

	// The other brand's devices survive.
	w = doRequest(router, "GET", "/api/devices/3", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, "GET", "/api/brands", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["totalCount"])
}

func TestResponseCaching(t *testing.T) {
	router := setupAPI(t)
	token := login(t, router, "alice@a.com")

	// Identical requests serve identical payloads with identical ETags.
	w1 := doRequest(router, "GET", "/api/devices?page=1&pageSize=2", token, nil)
	assert.Equal(t, http.StatusOK, w1.Code)
	w2 := doRequest(router, "GET", "/api/devices?page=1&pageSize=2", token, nil)
	assert.Equal(t, http.StatusOK, w2.Code)

	assert.Equal(t, w1.Body.String(), w2.Body.String())
	assert.Equal(t, w1.Header().Get("ETag"), w2.Header().Get("ETag"))
	assert.NotEmpty(t, w1.Header().Get("ETag"))

	// Different filters key different entries.
	w3 := doRequest(router, "GET", "/api/devices?page=1&pageSize=2&types=tablet", token, nil)
	assert.Equal(t, http.StatusOK, w3.Code)
	assert.NotEqual(t, w1.Body.String(), w3.Body.String())
}
