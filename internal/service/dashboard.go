package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/hamza-boudefa/Fidgi-sub001/internal/models"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/repo"
)

type DashboardService struct {
	Repo             *repo.GormRepo
	DefaultThreshold int
}

// CategoryStock counts stock alerts for one catalog category.
type CategoryStock struct {
	LowStock   int `json:"low_stock"`
	OutOfStock int `json:"out_of_stock"`
}

type DashboardStats struct {
	OrdersByStatus    map[string]int64         `json:"orders_by_status"`
	TotalOrders       int64                    `json:"total_orders"`
	Last7Days         repo.RevenueWindow       `json:"last_7_days"`
	Last30Days        repo.RevenueWindow       `json:"last_30_days"`
	LowStockThreshold int                      `json:"low_stock_threshold"`
	StockAlerts       map[string]CategoryStock `json:"stock_alerts"`
	TopSellers        []repo.TopSeller         `json:"top_sellers"`
}

// Stats builds the whole dashboard in one shot. threshold <= 0 falls back
// to the configured default.
func (s *DashboardService) Stats(ctx context.Context, threshold int) (*DashboardStats, error) {
	if threshold <= 0 {
		threshold = s.DefaultThreshold
	}

	counts, err := s.Repo.OrderCountsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	var total int64
	for _, n := range counts {
		total += n
	}

	now := time.Now().UTC()
	week, err := s.Repo.RevenueSince(ctx, now.AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}
	month, err := s.Repo.RevenueSince(ctx, now.AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}

	low, err := s.Repo.LowStock(ctx, threshold)
	if err != nil {
		return nil, err
	}
	alerts := make(map[string]CategoryStock)
	for _, lvl := range low {
		cs := alerts[lvl.Category]
		cs.LowStock++
		if lvl.Quantity == 0 {
			cs.OutOfStock++
		}
		alerts[lvl.Category] = cs
	}

	top, err := s.Repo.TopSellers(ctx, 5)
	if err != nil {
		return nil, err
	}
	for i := range top {
		top[i].Name = s.sellerName(ctx, top[i])
	}

	return &DashboardStats{
		OrdersByStatus:    counts,
		TotalOrders:       total,
		Last7Days:         week,
		Last30Days:        month,
		LowStockThreshold: threshold,
		StockAlerts:       alerts,
		TopSellers:        top,
	}, nil
}

func (s *DashboardService) sellerName(ctx context.Context, t repo.TopSeller) string {
	switch t.ItemType {
	case models.ItemTypePrebuilt:
		if p, err := s.Repo.GetPrebuiltFidget(ctx, t.PrebuiltFidgetID); err == nil {
			return p.Name
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "(unknown)"
		}
		return "(deleted prebuilt)"
	case models.ItemTypeOther:
		if o, err := s.Repo.GetOtherFidget(ctx, t.OtherFidgetID); err == nil {
			return o.Name
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "(unknown)"
		}
		return "(deleted item)"
	}
	return "Custom clicker"
}
