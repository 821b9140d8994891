package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"grievancehub/internal/config"
	"grievancehub/internal/model"
	"grievancehub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := &config.Config{}
	cfg.Store.Backend = config.BackendMemory

	srv, err := New(cfg, zap.NewNop())
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url string, body any, headers map[string]string) (*http.Response, map[string]json.RawMessage) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var payload map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return resp, payload
}

func TestEndToEndScenario(t *testing.T) {
	ts := newTestServer(t)
	admin := map[string]string{"X-User-ID": "1"}

	// Factory reset from an uninitialized store.
	resp, payload := doJSON(t, http.MethodPost, ts.URL+"/api/setup", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var accounts []service.SampleAccount
	require.NoError(t, json.Unmarshal(payload["accounts"], &accounts))
	require.Len(t, accounts, 2)
	assert.Equal(t, "admin@example.com", accounts[0].Email)

	// Admin login succeeds and returns the admin role without the password.
	resp, payload = doJSON(t, http.MethodPost, ts.URL+"/api/auth/login",
		model.LoginRequest{Email: "admin@example.com", Password: "admin123"}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var user model.User
	require.NoError(t, json.Unmarshal(payload["user"], &user))
	assert.Equal(t, model.RoleAdmin, user.Role)
	assert.False(t, strings.Contains(string(payload["user"]), "password"))

	// Wrong password fails uniformly.
	resp, payload = doJSON(t, http.MethodPost, ts.URL+"/api/auth/login",
		model.LoginRequest{Email: "admin@example.com", Password: "wrong"}, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.JSONEq(t, `"Invalid credentials"`, string(payload["error"]))

	// John submits a grievance.
	resp, payload = doJSON(t, http.MethodPost, ts.URL+"/api/grievances",
		model.CreateGrievanceRequest{Title: "AC broken", Description: "Too hot to work.", Department: "Maintenance", UserID: "2"}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var created model.Grievance
	require.NoError(t, json.Unmarshal(payload["grievance"], &created))
	assert.Equal(t, model.StatusPending, created.Status)

	// The admin listing shows the new grievance first, joined with John.
	resp, payload = doJSON(t, http.MethodGet, ts.URL+"/api/admin/grievances", nil, admin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listed []model.GrievanceWithUser
	require.NoError(t, json.Unmarshal(payload["grievances"], &listed))
	require.Len(t, listed, 3)
	assert.Equal(t, created.ID, listed[0].ID)
	assert.Equal(t, model.StatusPending, listed[0].Status)
	assert.Equal(t, "John Doe", listed[0].UserName)

	// Responding resolves it.
	resp, payload = doJSON(t, http.MethodPost, ts.URL+"/api/admin/grievances/respond",
		model.RespondRequest{GrievanceID: created.ID, Response: "Fixed", Status: model.StatusResolved}, admin)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The response is visible on a subsequent load.
	resp, payload = doJSON(t, http.MethodGet, ts.URL+"/api/admin/grievances", nil, admin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(payload["grievances"], &listed))
	assert.Equal(t, model.StatusResolved, listed[0].Status)
	assert.Equal(t, "Fixed", listed[0].AdminResponse)
	assert.NotNil(t, listed[0].RespondedAt)

	// John sees his own grievances through the user listing.
	resp, payload = doJSON(t, http.MethodGet, ts.URL+"/api/grievances?userId=2", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var mine []model.Grievance
	require.NoError(t, json.Unmarshal(payload["grievances"], &mine))
	assert.Len(t, mine, 3)
}

func TestSystemStatus(t *testing.T) {
	ts := newTestServer(t)

	// The status probe has no seeding side effect.
	resp, payload := doJSON(t, http.MethodGet, ts.URL+"/api/system-status", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, "false", string(payload["initialized"]))

	resp, payload = doJSON(t, http.MethodGet, ts.URL+"/api/system-status", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, "false", string(payload["initialized"]))

	// A login triggers the auto-seed, after which the system reports ready.
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/auth/login",
		model.LoginRequest{Email: "admin@example.com", Password: "admin123"}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, payload = doJSON(t, http.MethodGet, ts.URL+"/api/system-status", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, "true", string(payload["initialized"]))
}

func TestAdminGate(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/setup", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Missing identity header.
	resp, payload := doJSON(t, http.MethodGet, ts.URL+"/api/admin/grievances", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.JSONEq(t, `"User ID is required"`, string(payload["error"]))

	// Claimed identity without the admin role.
	resp, payload = doJSON(t, http.MethodGet, ts.URL+"/api/admin/grievances", nil,
		map[string]string{"X-User-ID": "2"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.JSONEq(t, `"Admin access required"`, string(payload["error"]))

	// Unknown claimed identity.
	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/api/admin/grievances", nil,
		map[string]string{"X-User-ID": "999"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterValidationAndConflict(t *testing.T) {
	ts := newTestServer(t)

	resp, payload := doJSON(t, http.MethodPost, ts.URL+"/api/auth/register",
		model.RegisterRequest{Name: "X", Email: "not-an-email", Password: "pw"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `"Invalid email format"`, string(payload["error"]))

	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/auth/register",
		model.RegisterRequest{Name: "Carol", Email: "carol@example.com", Password: "pw"}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, payload = doJSON(t, http.MethodPost, ts.URL+"/api/auth/register",
		model.RegisterRequest{Name: "Carol Again", Email: "carol@example.com", Password: "pw2"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `"User already exists"`, string(payload["error"]))
}

func TestListGrievancesRequiresUserID(t *testing.T) {
	ts := newTestServer(t)

	resp, payload := doJSON(t, http.MethodGet, ts.URL+"/api/grievances", nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `"User ID is required"`, string(payload["error"]))
}

func TestAdminFeedStreamsEvents(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/setup", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/admin/grievances/feed"
	header := http.Header{"X-User-ID": []string{"1"}}
	conn, wsResp, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	if wsResp != nil {
		wsResp.Body.Close()
	}
	defer conn.Close()

	// Give the handler a moment to register its subscription.
	time.Sleep(100 * time.Millisecond)

	resp, payload := doJSON(t, http.MethodPost, ts.URL+"/api/grievances",
		model.CreateGrievanceRequest{Title: "Elevator stuck", Description: "Between floors 2 and 3.", Department: "Maintenance", UserID: "2"}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var created model.Grievance
	require.NoError(t, json.Unmarshal(payload["grievance"], &created))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev service.FeedEvent
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, service.FeedCreated, ev.Type)
	assert.Equal(t, created.ID, ev.Grievance.ID)
}
