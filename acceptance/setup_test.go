package acceptance

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gearlog/gearlog-backend/api"
	"github.com/gearlog/gearlog-backend/bike"
	"github.com/gearlog/gearlog-backend/internal/auth0"
	"github.com/gearlog/gearlog-backend/internal/mailer"
	"github.com/gearlog/gearlog-backend/internal/middleware"
	"github.com/gearlog/gearlog-backend/internal/o11y"
	"github.com/gearlog/gearlog-backend/maintenance"
	"github.com/gearlog/gearlog-backend/part"
	"github.com/gearlog/gearlog-backend/summary"
	"github.com/gearlog/gearlog-backend/user"
)

const (
	opsUser = "ops"
	opsPass = "ops-secret"
)

type TestServer struct {
	DB     *sqlx.DB
	Router *gin.Engine
	Mailer *mailer.FakeMailer
	Auth0  *auth0.FakeClient
}

func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	gin.SetMode(gin.TestMode)

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set; skipping acceptance tests")
	}

	db, err := sqlx.Connect("pgx", dbURL)
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}

	cleanupTestData(t, db)

	ur := user.NewRepository(db)
	br := bike.NewRepository(db)
	pr := part.NewRepository(db)
	mr := maintenance.NewRepository(db)

	obs := &o11y.Observability{
		Logger:   slog.New(slog.DiscardHandler),
		Registry: prometheus.NewRegistry(),
	}

	fm := mailer.NewFakeMailer()
	fa := auth0.NewFakeClient()
	disp := summary.NewDispatcher(ur, br, mr, fm, obs.Logger)

	a := api.New(ur, br, pr, mr, disp, fa, obs, api.Config{
		Auth:        fakeAuthMiddleware(),
		OpsUsername: opsUser,
		OpsPassword: opsPass,
	})

	return &TestServer{
		DB:     db,
		Router: a.Router(),
		Mailer: fm,
		Auth0:  fa,
	}
}

func (ts *TestServer) Close() {
	ts.DB.Close()
}

func cleanupTestData(t *testing.T, db *sqlx.DB) {
	t.Helper()

	// Delete in order of dependencies
	for _, table := range []string{
		"notification_preferences",
		"maintenance_records",
		"parts",
		"part_categories",
		"maintenance_types",
		"bikes",
		"users",
	} {
		_, err := db.Exec("DELETE FROM " + table)
		if err != nil {
			t.Logf("warning: failed to clean %s: %v", table, err)
		}
	}
}

// fakeAuthMiddleware reads the caller identity from X-User-ID instead of
// validating a real JWT.
func fakeAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth0ID := c.GetHeader("X-User-ID")
		if auth0ID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHORIZED", "message": "Authentication required"})
			c.Abort()
			return
		}
		c.Set(middleware.Auth0IDKey, auth0ID)
		c.Next()
	}
}

// Helper methods for making requests
func (ts *TestServer) GET(path string, headers map[string]string) *httptest.ResponseRecorder {
	return ts.do(http.MethodGet, path, nil, headers)
}

func (ts *TestServer) POST(path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	return ts.do(http.MethodPost, path, body, headers)
}

func (ts *TestServer) PUT(path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	return ts.do(http.MethodPut, path, body, headers)
}

func (ts *TestServer) DELETE(path string, headers map[string]string) *httptest.ResponseRecorder {
	return ts.do(http.MethodDelete, path, nil, headers)
}

func (ts *TestServer) do(method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)
	return w
}

func authHeader(auth0ID string) map[string]string {
	return map[string]string{"X-User-ID": auth0ID}
}

func opsHeaders() map[string]string {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.SetBasicAuth(opsUser, opsPass)
	return map[string]string{"Authorization": req.Header.Get("Authorization")}
}

// Helper to create test user directly in DB
func (ts *TestServer) CreateTestUser(t *testing.T, auth0ID, email string) uuid.UUID {
	t.Helper()
	var id uuid.UUID
	err := ts.DB.Get(&id, `
		INSERT INTO users (id, auth0_id, email)
		VALUES (gen_random_uuid(), $1, NULLIF($2, ''))
		RETURNING id
	`, auth0ID, email)
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return id
}

// Helper to create test bike directly in DB
func (ts *TestServer) CreateTestBike(t *testing.T, userID uuid.UUID, name, brand, model string) uuid.UUID {
	t.Helper()
	var id uuid.UUID
	err := ts.DB.Get(&id, `
		INSERT INTO bikes (id, user_id, name, brand, model)
		VALUES (gen_random_uuid(), $1, $2, $3, $4)
		RETURNING id
	`, userID, name, brand, model)
	if err != nil {
		t.Fatalf("failed to create test bike: %v", err)
	}
	return id
}

// Helper to create a maintenance type in the shared catalog
func (ts *TestServer) CreateTestType(t *testing.T, name string, intervalDays *int) uuid.UUID {
	t.Helper()
	var id uuid.UUID
	err := ts.DB.Get(&id, `
		INSERT INTO maintenance_types (id, name, default_interval_days)
		VALUES (gen_random_uuid(), $1, $2)
		RETURNING id
	`, name, intervalDays)
	if err != nil {
		t.Fatalf("failed to create test maintenance type: %v", err)
	}
	return id
}

// Helper to create a maintenance record directly in DB
func (ts *TestServer) CreateTestRecord(t *testing.T, bikeID uuid.UUID, typeName, performedAt string) uuid.UUID {
	t.Helper()
	var id uuid.UUID
	err := ts.DB.Get(&id, `
		INSERT INTO maintenance_records (id, bike_id, type_name, performed_at)
		VALUES (gen_random_uuid(), $1, $2, $3::date)
		RETURNING id
	`, bikeID, typeName, performedAt)
	if err != nil {
		t.Fatalf("failed to create test maintenance record: %v", err)
	}
	return id
}

func intPtr(v int) *int {
	return &v
}
