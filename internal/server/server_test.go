package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appmw "github.com/shinyyama/harvestx-backend/internal/middleware"
	"github.com/shinyyama/harvestx-backend/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *string         `json:"error"`
}

type client struct {
	t *testing.T
	h http.Handler
}

func newClient(t *testing.T) *client {
	t.Helper()
	srv := New(Deps{Store: memory.NewStore(), Verifier: appmw.DevVerifier{}, GitSHA: "abc123"})
	return &client{t: t, h: srv.Handler()}
}

func (c *client) do(method, path, uid string, body interface{}) (int, envelope) {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if uid != "" {
		req.Header.Set("Authorization", "Bearer "+uid)
	}
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)
	var env envelope
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestHealthz(t *testing.T) {
	c := newClient(t)
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "true", body["ok"])
	assert.Equal(t, "HarvestX backend is healthy", body["message"])
	assert.Equal(t, "abc123", body["git_sha"])
}

func TestMarketplaceFlow(t *testing.T) {
	c := newClient(t)

	status, env := c.do(http.MethodPost, "/api/users", "farmer-f", map[string]string{"role": "Farmer", "displayName": "F"})
	require.Equal(t, http.StatusCreated, status, env.Error)
	status, _ = c.do(http.MethodPost, "/api/users", "investor-i", map[string]string{"role": "investor"})
	require.Equal(t, http.StatusCreated, status)
	status, env = c.do(http.MethodPost, "/api/users", "farmer-f", map[string]string{"role": "Farmer"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "User already registered", *env.Error)

	status, env = c.do(http.MethodPost, "/api/offers", "investor-i", map[string]interface{}{
		"productName": "Avocados", "productType": "Fruits", "qualityGrade": "Premium", "totalQuantity": 100, "pricePerKg": 5.0,
	})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Farmer role required", *env.Error)

	status, env = c.do(http.MethodPost, "/api/offers", "farmer-f", map[string]interface{}{
		"productName": "Avocados", "productType": "Fruits", "qualityGrade": "Premium",
		"totalQuantity": 100, "pricePerKg": 5.0, "minimumInvestment": 10, "location": "Mexico",
	})
	require.Equal(t, http.StatusCreated, status, env.Error)
	offer := decode[map[string]interface{}](t, env.Data)
	offerID := offer["id"].(string)
	assert.Equal(t, 100.0, offer["availableQuantity"])
	assert.Equal(t, "Active", offer["status"])

	status, env = c.do(http.MethodPost, "/api/offers/"+offerID+"/requests", "investor-i", map[string]interface{}{
		"requestedQuantity": 60, "offeredPricePerKg": 4.5, "message": "hello",
	})
	require.Equal(t, http.StatusCreated, status, env.Error)
	req := decode[map[string]interface{}](t, env.Data)
	assert.Equal(t, 270.0, req["totalOffered"])
	assert.Equal(t, "Pending", req["status"])
	reqID := req["id"].(string)

	status, env = c.do(http.MethodGet, "/api/offers/"+offerID+"/requests", "investor-i", nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Access denied - not offer owner", *env.Error)

	status, env = c.do(http.MethodPost, "/api/requests/"+reqID+"/respond", "farmer-f", map[string]bool{"accept": true})
	require.Equal(t, http.StatusOK, status, env.Error)
	assert.Equal(t, "Accepted", decode[map[string]interface{}](t, env.Data)["status"])

	status, env = c.do(http.MethodPost, "/api/requests/"+reqID+"/respond", "farmer-f", map[string]bool{"accept": false})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Request already processed", *env.Error)

	status, env = c.do(http.MethodPost, "/api/requests/req_missing/respond", "farmer-f", map[string]bool{"accept": true})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Investment request not found", *env.Error)

	_, env = c.do(http.MethodGet, "/api/me/sales", "farmer-f", nil)
	sales := decode[[]map[string]interface{}](t, env.Data)
	require.Len(t, sales, 1)
	assert.Equal(t, "Confirmed", sales[0]["status"])
	assert.Nil(t, sales[0]["tokenizedAt"])

	_, env = c.do(http.MethodGet, "/api/me/investments", "investor-i", nil)
	assert.Len(t, decode[[]map[string]interface{}](t, env.Data), 1)

	_, env = c.do(http.MethodGet, "/api/offers/"+offerID, "", nil)
	assert.Equal(t, 40.0, decode[map[string]interface{}](t, env.Data)["availableQuantity"])

	_, env = c.do(http.MethodGet, "/api/stats", "", nil)
	stats := decode[map[string]float64](t, env.Data)
	assert.Equal(t, map[string]float64{
		"totalUsers": 2, "totalOffers": 1, "totalRequests": 1, "totalTransactions": 1, "activeOffers": 1,
	}, stats)
}

func TestPublicAndMissingData(t *testing.T) {
	c := newClient(t)

	status, env := c.do(http.MethodGet, "/api/offers", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)
	assert.JSONEq(t, `[]`, string(env.Data))

	status, env = c.do(http.MethodGet, "/api/offers/offer_missing", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "null", string(env.Data))

	status, env = c.do(http.MethodGet, "/api/me", "newcomer", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "null", string(env.Data))

	status, env = c.do(http.MethodGet, "/api/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Authentication required", *env.Error)
}

func TestBadInput(t *testing.T) {
	c := newClient(t)

	status, env := c.do(http.MethodPost, "/api/users", "u", map[string]string{"role": "Owner"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, env.Success)

	status, _ = c.do(http.MethodPost, "/api/requests/req_1/respond", "u", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAdminRoutes(t *testing.T) {
	c := newClient(t)
	c.do(http.MethodPost, "/api/users", "root", map[string]string{"role": "Admin"})
	c.do(http.MethodPost, "/api/users", "guest", map[string]string{"role": "Guest"})

	status, env := c.do(http.MethodGet, "/api/users", "guest", nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Admin access required", *env.Error)

	status, env = c.do(http.MethodPut, "/api/users/guest/role", "root", map[string]string{"role": "Farmer"})
	require.Equal(t, http.StatusOK, status, env.Error)
	assert.Equal(t, "Farmer", decode[map[string]interface{}](t, env.Data)["role"])

	status, env = c.do(http.MethodPut, "/api/users/nobody/role", "root", map[string]string{"role": "Farmer"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "User not found", *env.Error)

	_, env = c.do(http.MethodGet, "/api/users", "root", nil)
	assert.Len(t, decode[[]map[string]interface{}](t, env.Data), 2)
}

func TestUploadWithoutMediaDriver(t *testing.T) {
	c := newClient(t)
	c.do(http.MethodPost, "/api/users", "farmer-f", map[string]string{"role": "Farmer"})

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", "a.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/uploads/offer-images", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer farmer-f")
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "Image uploads are not configured"))
}

func TestMetricsEndpoint(t *testing.T) {
	c := newClient(t)
	c.do(http.MethodPost, "/api/requests/req_missing/respond", "someone", map[string]bool{"accept": true})

	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `harvestx_settlements_total{outcome="failed"} 1`)
}

func TestAllowOrigin(t *testing.T) {
	for origin, want := range map[string]bool{
		"http://localhost:3000":       true,
		"https://harvestx.vercel.app": true,
		"https://harvestx.web.app":    true,
		"https://evil.example.com":    false,
		"ftp://localhost:21":          false,
	} {
		got, err := allowOrigin(origin)
		require.NoError(t, err)
		assert.Equal(t, want, got, origin)
	}
}
