package repo

import (
	"context"
	"time"

	"github.com/hamza-boudefa/Fidgi-sub001/internal/models"
)

// RevenueWindow aggregates confirmed and delivered orders in a time window.
type RevenueWindow struct {
	Orders  int64   `json:"orders"`
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
}

// TopSeller is one aggregated best-selling line. Custom builds aggregate
// into a single row with zero ids.
type TopSeller struct {
	ItemType         string `json:"item_type"`
	PrebuiltFidgetID uint   `json:"prebuilt_fidget_id,omitempty"`
	OtherFidgetID    uint   `json:"other_fidget_id,omitempty"`
	Name             string `json:"name"`
	Quantity         int64  `json:"quantity"`
}

func (r *GormRepo) OrderCountsByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *GormRepo) RevenueSince(ctx context.Context, since time.Time) (RevenueWindow, error) {
	var win RevenueWindow
	err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Select("COUNT(*) as orders, COALESCE(SUM(total), 0) as revenue, COALESCE(SUM(profit), 0) as profit").
		Where("status IN ?", []string{models.OrderStatusConfirmed, models.OrderStatusDelivered}).
		Where("created_at >= ?", since).
		Scan(&win).Error
	return win, err
}

func (r *GormRepo) TopSellers(ctx context.Context, limit int) ([]TopSeller, error) {
	var rows []TopSeller
	err := r.DB.WithContext(ctx).Model(&models.OrderItem{}).
		Select("item_type, prebuilt_fidget_id, other_fidget_id, SUM(quantity) as quantity").
		Group("item_type, prebuilt_fidget_id, other_fidget_id").
		Order("quantity DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
