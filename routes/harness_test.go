package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"food-delivery-app/config"
	"food-delivery-app/middleware"
	"food-delivery-app/models"
	"food-delivery-app/realtime"
	"food-delivery-app/session"
	"food-delivery-app/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type harness struct {
	t        *testing.T
	db       *gorm.DB
	router   *gin.Engine
	auth     *middleware.Auth
	sessions *session.Manager
	hub      *realtime.Hub
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newHarness(t *testing.T) *harness {
	return newHarnessWithPusher(t, config.PusherConfig{})
}

func newHarnessWithPusher(t *testing.T, pc config.PusherConfig) *harness {
	db := testutil.NewDB(t)
	sessions := session.NewManager(session.NewSQLStore(db), time.Hour)
	h := &harness{
		t:        t,
		db:       db,
		router:   gin.New(),
		auth:     middleware.NewAuth([]byte("test-secret"), time.Hour, sessions, "session_id"),
		sessions: sessions,
		hub:      realtime.NewHub(),
	}
	SetupRoutes(h.router, Deps{
		DB:                db,
		Auth:              h.auth,
		Sessions:          sessions,
		Publisher:         h.hub,
		Pusher:            realtime.NewPusher(pc),
		Hub:               h.hub,
		CacheTTL:          time.Minute,
		AuthRatePerMinute: 100,
	})
	return h
}

// request is one call; token and cookie are optional.
type request struct {
	method, path string
	body         any
	token        string
	cookie       *http.Cookie
}

func (h *harness) do(r request) *httptest.ResponseRecorder {
	h.t.Helper()
	var buf bytes.Buffer
	if r.body != nil {
		if s, ok := r.body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(h.t, json.NewEncoder(&buf).Encode(r.body))
		}
	}
	req := httptest.NewRequest(r.method, r.path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}
	if r.cookie != nil {
		req.AddCookie(r.cookie)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func (h *harness) token(u *models.User) string {
	h.t.Helper()
	tok, err := h.auth.GenerateToken(u)
	require.NoError(h.t, err)
	return tok
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}
