package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hamza-boudefa/Fidgi-sub001/internal/cart"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/events"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/httpserver"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/media"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/models"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/repo"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/service"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/transport"
)

type env struct {
	e    *echo.Echo
	repo *repo.GormRepo
	db   *gorm.DB
	disk *media.MemDisk
}

func newEnv(t *testing.T) *env {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	r := repo.New(db)
	disk := media.NewMemDisk()

	deps := httpserver.Deps{
		Catalog:           &service.CatalogService{Repo: r, Producer: events.Nop{}},
		Orders:            &service.OrderService{Repo: r, Producer: events.Nop{}, ShippingCost: 5},
		Cart:              &service.CartService{Store: cart.NewMemoryStore(), Repo: r},
		Auth:              &service.AuthService{Repo: r, JWTSecret: []byte("test-secret")},
		Dashboard:         &service.DashboardService{Repo: r, DefaultThreshold: 10},
		Media:             &media.Service{Disk: disk},
		Repo:              r,
		LowStockThreshold: 10,
	}

	e := echo.New()
	e.HTTPErrorHandler = transport.HTTPErrorHandler
	httpserver.Register(e, deps)

	return &env{e: e, repo: r, db: db, disk: disk}
}

func (v *env) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, val := range headers {
		req.Header.Set(k, val)
	}

	rec := httptest.NewRecorder()
	v.e.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.True(t, env.Success, "expected success envelope, got error: %s", env.Error)
	if out != nil {
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
}

func errMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.False(t, env.Success)
	return env.Error
}

type listEnvelope struct {
	Data json.RawMessage    `json:"data"`
	Meta transport.ListMeta `json:"meta"`
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder, out any) transport.ListMeta {
	t.Helper()

	var list listEnvelope
	decode(t, rec, &list)
	if out != nil {
		require.NoError(t, json.Unmarshal(list.Data, out))
	}
	return list.Meta
}

// adminToken bootstraps a superadmin and logs it in.
func (v *env) adminToken(t *testing.T) string {
	t.Helper()

	rec := v.do(t, http.MethodPost, "/api/admin/setup", map[string]any{
		"email":    "boss@fidgi.shop",
		"password": "supersecret1",
		"name":     "Boss",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = v.do(t, http.MethodPost, "/api/admin/login", map[string]any{
		"email":    "boss@fidgi.shop",
		"password": "supersecret1",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Token string `json:"token"`
	}
	decode(t, rec, &out)
	require.NotEmpty(t, out.Token)
	return out.Token
}

func bearer(token string) map[string]string {
	return map[string]string{echo.HeaderAuthorization: "Bearer " + token}
}

// seedComponents creates one component of each kind with known prices.
func (v *env) seedComponents(t *testing.T) (color *models.BaseColor, keycap *models.KeycapDesign, sw *models.SwitchType) {
	t.Helper()
	ctx := context.Background()

	color = &models.BaseColor{Name: "Ocean Blue", HexCode: "#1166ff", Price: 15, Cost: 5, Quantity: 10, Active: true}
	require.NoError(t, v.repo.CreateBaseColor(ctx, color))

	keycap = &models.KeycapDesign{Name: "Galaxy", Price: 8, Cost: 3, Quantity: 10, Active: true}
	require.NoError(t, v.repo.CreateKeycapDesign(ctx, keycap))

	sw = &models.SwitchType{Name: "Silent Red", SoundProfile: "quiet", Price: 0, Cost: 2, Quantity: 10, Active: true}
	require.NoError(t, v.repo.CreateSwitchType(ctx, sw))

	return color, keycap, sw
}
