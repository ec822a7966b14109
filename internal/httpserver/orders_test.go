package httpserver_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hamza-boudefa/Fidgi-sub001/internal/models"
)

func customOrderBody(color, keycap, sw uint, qty int) map[string]any {
	return map[string]any{
		"customer_name": "Lena",
		"phone":         "+21612345678",
		"address":       "12 Rue des Fleurs",
		"city":          "Tunis",
		"items": []map[string]any{{
			"item_type":        models.ItemTypeCustom,
			"base_color_id":    color,
			"keycap_design_id": keycap,
			"switch_type_id":   sw,
			"quantity":         qty,
		}},
	}
}

func TestCreateCustomOrderPricesAndDecrementsStock(t *testing.T) {
	v := newEnv(t)
	color, keycap, sw := v.seedComponents(t)

	rec := v.do(t, http.MethodPost, "/api/orders", customOrderBody(color.ID, keycap.ID, sw.ID, 2), nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var order models.Order
	decode(t, rec, &order)
	require.Equal(t, models.OrderStatusPending, order.Status)
	require.NotEmpty(t, order.Reference)
	require.Len(t, order.Items, 1)

	// 15 + 8 + 0 per unit, two units.
	item := order.Items[0]
	require.Equal(t, 23.0, item.UnitPrice)
	require.Equal(t, 46.0, item.TotalPrice)
	require.Equal(t, 10.0, item.UnitCost)
	require.Equal(t, 26.0, item.Profit)

	require.Equal(t, 46.0, order.Subtotal)
	require.Equal(t, 5.0, order.ShippingCost)
	require.Equal(t, 51.0, order.Total)
	require.Equal(t, 26.0, order.Profit)

	ctx := context.Background()
	gotColor, err := v.repo.GetBaseColor(ctx, color.ID)
	require.NoError(t, err)
	require.Equal(t, 8, gotColor.Quantity)
	gotKeycap, err := v.repo.GetKeycapDesign(ctx, keycap.ID)
	require.NoError(t, err)
	require.Equal(t, 8, gotKeycap.Quantity)
	gotSwitch, err := v.repo.GetSwitchType(ctx, sw.ID)
	require.NoError(t, err)
	require.Equal(t, 8, gotSwitch.Quantity)
}

func TestCreateOrderInsufficientStockRollsBack(t *testing.T) {
	v := newEnv(t)
	color, keycap, sw := v.seedComponents(t)
	ctx := context.Background()

	// Keycap stock is too small for the requested quantity.
	require.NoError(t, v.repo.SetQuantity(ctx, "keycaps", keycap.ID, 1))

	rec := v.do(t, http.MethodPost, "/api/orders", customOrderBody(color.ID, keycap.ID, sw.ID, 3), nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	// Nothing may be written: the color decrement from the same line must
	// have been rolled back, and no order rows survive.
	gotColor, err := v.repo.GetBaseColor(ctx, color.ID)
	require.NoError(t, err)
	require.Equal(t, 10, gotColor.Quantity)

	total, _, err := v.repo.ListOrders(ctx, "", 0, 10)
	require.NoError(t, err)
	require.Zero(t, total)
}

func TestCreateOrderValidation(t *testing.T) {
	v := newEnv(t)
	color, keycap, sw := v.seedComponents(t)

	body := customOrderBody(color.ID, keycap.ID, sw.ID, 1)
	body["items"] = []map[string]any{}
	rec := v.do(t, http.MethodPost, "/api/orders", body, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body = customOrderBody(color.ID, keycap.ID, sw.ID, 1)
	body["phone"] = ""
	rec = v.do(t, http.MethodPost, "/api/orders", body, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body = customOrderBody(999, keycap.ID, sw.ID, 1)
	rec = v.do(t, http.MethodPost, "/api/orders", body, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderLifecycle(t *testing.T) {
	v := newEnv(t)
	token := v.adminToken(t)
	color, keycap, sw := v.seedComponents(t)

	rec := v.do(t, http.MethodPost, "/api/orders", customOrderBody(color.ID, keycap.ID, sw.ID, 1), nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var order models.Order
	decode(t, rec, &order)

	setStatus := func(status string) *models.Order {
		rec := v.do(t, http.MethodPatch, fmt.Sprintf("/api/admin/orders/%d/status", order.ID),
			map[string]any{"status": status}, bearer(token))
		require.Equal(t, http.StatusOK, rec.Code)
		var got models.Order
		decode(t, rec, &got)
		return &got
	}

	got := setStatus(models.OrderStatusConfirmed)
	require.Equal(t, models.OrderStatusConfirmed, got.Status)
	got = setStatus(models.OrderStatusDelivered)
	require.Equal(t, models.OrderStatusDelivered, got.Status)

	// Delivered is terminal.
	rec = v.do(t, http.MethodPatch, fmt.Sprintf("/api/admin/orders/%d/status", order.ID),
		map[string]any{"status": models.OrderStatusCancelled}, bearer(token))
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = v.do(t, http.MethodPatch, fmt.Sprintf("/api/admin/orders/%d/status", order.ID),
		map[string]any{"status": "shipped"}, bearer(token))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCancelRestoresStock(t *testing.T) {
	v := newEnv(t)
	token := v.adminToken(t)
	color, keycap, sw := v.seedComponents(t)
	ctx := context.Background()

	rec := v.do(t, http.MethodPost, "/api/orders", customOrderBody(color.ID, keycap.ID, sw.ID, 4), nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var order models.Order
	decode(t, rec, &order)

	gotColor, err := v.repo.GetBaseColor(ctx, color.ID)
	require.NoError(t, err)
	require.Equal(t, 6, gotColor.Quantity)

	rec = v.do(t, http.MethodPatch, fmt.Sprintf("/api/admin/orders/%d/status", order.ID),
		map[string]any{"status": models.OrderStatusCancelled}, bearer(token))
	require.Equal(t, http.StatusOK, rec.Code)

	gotColor, err = v.repo.GetBaseColor(ctx, color.ID)
	require.NoError(t, err)
	require.Equal(t, 10, gotColor.Quantity)
	gotKeycap, err := v.repo.GetKeycapDesign(ctx, keycap.ID)
	require.NoError(t, err)
	require.Equal(t, 10, gotKeycap.Quantity)
	gotSwitch, err := v.repo.GetSwitchType(ctx, sw.ID)
	require.NoError(t, err)
	require.Equal(t, 10, gotSwitch.Quantity)
}

func TestDeleteOrderOnlyWhenCancelled(t *testing.T) {
	v := newEnv(t)
	token := v.adminToken(t)
	color, keycap, sw := v.seedComponents(t)

	rec := v.do(t, http.MethodPost, "/api/orders", customOrderBody(color.ID, keycap.ID, sw.ID, 1), nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var order models.Order
	decode(t, rec, &order)

	rec = v.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/orders/%d", order.ID), nil, bearer(token))
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = v.do(t, http.MethodPatch, fmt.Sprintf("/api/admin/orders/%d/status", order.ID),
		map[string]any{"status": models.OrderStatusCancelled}, bearer(token))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = v.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/orders/%d", order.ID), nil, bearer(token))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = v.do(t, http.MethodGet, fmt.Sprintf("/api/admin/orders/%d", order.ID), nil, bearer(token))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListOrdersByStatus(t *testing.T) {
	v := newEnv(t)
	token := v.adminToken(t)
	color, keycap, sw := v.seedComponents(t)

	for i := 0; i < 3; i++ {
		rec := v.do(t, http.MethodPost, "/api/orders", customOrderBody(color.ID, keycap.ID, sw.ID, 1), nil)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	var orders []models.Order
	meta := decodeList(t, v.do(t, http.MethodGet, "/api/admin/orders?status=pending", nil, bearer(token)), &orders)
	require.EqualValues(t, 3, meta.Total)

	rec := v.do(t, http.MethodGet, "/api/admin/orders?status=bogus", nil, bearer(token))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecalculateProfitTracksCostChanges(t *testing.T) {
	v := newEnv(t)
	token := v.adminToken(t)
	color, keycap, sw := v.seedComponents(t)
	ctx := context.Background()

	rec := v.do(t, http.MethodPost, "/api/orders", customOrderBody(color.ID, keycap.ID, sw.ID, 2), nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var order models.Order
	decode(t, rec, &order)
	require.Equal(t, 26.0, order.Profit)

	// Supplier price correction: color now costs 7 instead of 5.
	color.Cost = 7
	require.NoError(t, v.repo.SaveBaseColor(ctx, color))

	rec = v.do(t, http.MethodPost, fmt.Sprintf("/api/admin/orders/%d/recalculate-profit", order.ID), nil, bearer(token))
	require.Equal(t, http.StatusOK, rec.Code)

	var recalced models.Order
	decode(t, rec, &recalced)
	require.Equal(t, 24.0, recalced.TotalCost)
	require.Equal(t, 22.0, recalced.Profit)
	require.Len(t, recalced.Items, 1)
	require.Equal(t, 12.0, recalced.Items[0].UnitCost)
}

func TestCreatePrebuiltOrderAppliesDiscount(t *testing.T) {
	v := newEnv(t)
	color, keycap, sw := v.seedComponents(t)
	ctx := context.Background()

	prebuilt := &models.PrebuiltFidget{
		Name:            "Deep Sea",
		BaseColorID:     color.ID,
		KeycapDesignID:  keycap.ID,
		SwitchTypeID:    sw.ID,
		Price:           30,
		DiscountPercent: 10,
		Active:          true,
	}
	require.NoError(t, v.repo.CreatePrebuiltFidget(ctx, prebuilt))

	rec := v.do(t, http.MethodPost, "/api/orders", map[string]any{
		"customer_name": "Sam",
		"phone":         "+21699999999",
		"address":       "5 Avenue Habib Bourguiba",
		"items": []map[string]any{{
			"item_type":          models.ItemTypePrebuilt,
			"prebuilt_fidget_id": prebuilt.ID,
			"quantity":           1,
		}},
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var order models.Order
	decode(t, rec, &order)
	require.Len(t, order.Items, 1)
	require.Equal(t, 27.0, order.Items[0].UnitPrice, "30 minus 10 percent")
	require.Equal(t, 10.0, order.Items[0].UnitCost, "component costs 5+3+2")

	// A prebuilt order consumes its components' stock.
	gotColor, err := v.repo.GetBaseColor(ctx, color.ID)
	require.NoError(t, err)
	require.Equal(t, 9, gotColor.Quantity)
}
