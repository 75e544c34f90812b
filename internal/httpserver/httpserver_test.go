package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shophub/backend/internal/events"
	authmw "github.com/shophub/backend/internal/middleware/auth"
	"github.com/shophub/backend/internal/models"
	"github.com/shophub/backend/internal/repo"
	"github.com/shophub/backend/internal/service"
)

var testSecret = []byte("test-secret")

type testEnv struct {
	E    *echo.Echo
	Repo *repo.GormRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))

	gormRepo := repo.New(db)
	producer := events.NewProducer(nil)

	deps := &Deps{
		AuthHandler: &AuthHTTP{
			Svc:      &service.AuthService{Repo: gormRepo, JWTSecret: testSecret},
			Producer: producer,
		},
		ProductHandler: &ProductHTTP{
			Svc:      service.NewCatalogService(gormRepo, nil),
			Producer: producer,
		},
		CartHandler: &CartHTTP{
			Svc:      service.NewCartService(gormRepo, nil),
			Producer: producer,
		},
		OrderHandler: &OrderHTTP{
			Svc:      &service.OrderService{Repo: gormRepo},
			Producer: producer,
		},
		AuthMW: authmw.New(testSecret),
	}

	e := echo.New()
	Register(e, deps)
	return &testEnv{E: e, Repo: gormRepo}
}

func (env *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) register(t *testing.T, name, email string) (uint, string) {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": "hunter2",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID uint `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.User.ID, resp.Token
}

func errBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp["error"]
}
