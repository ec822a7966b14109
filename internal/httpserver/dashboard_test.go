package httpserver_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hamza-boudefa/Fidgi-sub001/internal/models"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/service"
)

func TestDashboardStats(t *testing.T) {
	v := newEnv(t)
	token := v.adminToken(t)
	color, keycap, sw := v.seedComponents(t)
	ctx := context.Background()

	require.NoError(t, v.repo.CreateOtherFidget(ctx, &models.OtherFidget{
		Name: "Cube", Category: "cubes", Price: 9, Cost: 3, Quantity: 0, Active: true,
	}))

	// Two orders: one confirmed (counts towards revenue), one left pending.
	for i := 0; i < 2; i++ {
		rec := v.do(t, http.MethodPost, "/api/orders", customOrderBody(color.ID, keycap.ID, sw.ID, 1), nil)
		require.Equal(t, http.StatusCreated, rec.Code)
		if i == 0 {
			var order models.Order
			decode(t, rec, &order)
			rec = v.do(t, http.MethodPatch, fmt.Sprintf("/api/admin/orders/%d/status", order.ID),
				map[string]any{"status": models.OrderStatusConfirmed}, bearer(token))
			require.Equal(t, http.StatusOK, rec.Code)
		}
	}

	rec := v.do(t, http.MethodGet, "/api/admin/dashboard?threshold=5", nil, bearer(token))
	require.Equal(t, http.StatusOK, rec.Code)

	var stats service.DashboardStats
	decode(t, rec, &stats)

	require.EqualValues(t, 2, stats.TotalOrders)
	require.EqualValues(t, 1, stats.OrdersByStatus[models.OrderStatusPending])
	require.EqualValues(t, 1, stats.OrdersByStatus[models.OrderStatusConfirmed])

	// Pending orders do not count as revenue.
	require.EqualValues(t, 1, stats.Last7Days.Orders)
	require.Equal(t, 28.0, stats.Last7Days.Revenue, "subtotal 23 plus shipping 5")
	require.Equal(t, stats.Last7Days, stats.Last30Days)

	require.Equal(t, 5, stats.LowStockThreshold)
	cube := stats.StockAlerts["other-fidgets"]
	require.Equal(t, 1, cube.LowStock)
	require.Equal(t, 1, cube.OutOfStock)

	require.NotEmpty(t, stats.TopSellers)
	require.Equal(t, "Custom clicker", stats.TopSellers[0].Name)
	require.EqualValues(t, 2, stats.TopSellers[0].Quantity)
}

func TestDashboardRequiresAuth(t *testing.T) {
	v := newEnv(t)
	rec := v.do(t, http.MethodGet, "/api/admin/dashboard", nil, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
