package httpserver_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hamza-boudefa/Fidgi-sub001/internal/models"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/repo"
)

func TestInventoryLevels(t *testing.T) {
	v := newEnv(t)
	token := v.adminToken(t)
	v.seedComponents(t)

	ctx := context.Background()
	require.NoError(t, v.repo.CreateOtherFidget(ctx, &models.OtherFidget{
		Name: "Spinner", Category: "spinners", Price: 12, Cost: 4, Quantity: 3, Active: true,
	}))

	rec := v.do(t, http.MethodGet, "/api/admin/inventory", nil, bearer(token))
	require.Equal(t, http.StatusOK, rec.Code)

	var levels []repo.StockLevel
	decode(t, rec, &levels)
	require.Len(t, levels, 4)

	byCategory := map[string]int{}
	for _, lvl := range levels {
		byCategory[lvl.Category]++
	}
	require.Equal(t, 1, byCategory["colors"])
	require.Equal(t, 1, byCategory["keycaps"])
	require.Equal(t, 1, byCategory["switches"])
	require.Equal(t, 1, byCategory["other-fidgets"])
}

func TestLowStockThresholdBoundary(t *testing.T) {
	v := newEnv(t)
	token := v.adminToken(t)
	ctx := context.Background()

	mk := func(name string, qty int, active bool) {
		require.NoError(t, v.repo.CreateBaseColor(ctx, &models.BaseColor{
			Name: name, HexCode: "#222222", Quantity: qty, Active: active,
		}))
	}
	mk("at threshold", 5, true)
	mk("below", 2, true)
	mk("empty", 0, true)
	mk("plenty", 50, true)
	mk("inactive low", 1, false)

	rec := v.do(t, http.MethodGet, "/api/admin/inventory/low-stock?threshold=5", nil, bearer(token))
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Threshold int               `json:"threshold"`
		Items     []repo.StockLevel `json:"items"`
	}
	decode(t, rec, &out)
	require.Equal(t, 5, out.Threshold)

	names := map[string]bool{}
	for _, lvl := range out.Items {
		names[lvl.Name] = true
	}
	require.True(t, names["at threshold"], "quantity == threshold counts as low")
	require.True(t, names["below"])
	require.True(t, names["empty"])
	require.False(t, names["plenty"])
	require.False(t, names["inactive low"], "inactive items are not alerted")
}

func TestLowStockDefaultThreshold(t *testing.T) {
	v := newEnv(t)
	token := v.adminToken(t)

	rec := v.do(t, http.MethodGet, "/api/admin/inventory/low-stock", nil, bearer(token))
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Threshold int `json:"threshold"`
	}
	decode(t, rec, &out)
	require.Equal(t, 10, out.Threshold)
}

func TestAdjustStock(t *testing.T) {
	v := newEnv(t)
	token := v.adminToken(t)
	color, _, _ := v.seedComponents(t)
	ctx := context.Background()

	rec := v.do(t, http.MethodPut, fmt.Sprintf("/api/admin/inventory/colors/%d", color.ID),
		map[string]any{"quantity": 42}, bearer(token))
	require.Equal(t, http.StatusOK, rec.Code)

	got, err := v.repo.GetBaseColor(ctx, color.ID)
	require.NoError(t, err)
	require.Equal(t, 42, got.Quantity)

	rec = v.do(t, http.MethodPut, fmt.Sprintf("/api/admin/inventory/colors/%d", color.ID),
		map[string]any{"quantity": -1}, bearer(token))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = v.do(t, http.MethodPut, "/api/admin/inventory/gadgets/1",
		map[string]any{"quantity": 1}, bearer(token))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = v.do(t, http.MethodPut, "/api/admin/inventory/colors/999",
		map[string]any{"quantity": 1}, bearer(token))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
