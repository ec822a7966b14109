package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hamza-boudefa/Fidgi-sub001/internal/logging"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/models"
)

var allowedTransitions = map[string][]string{
	models.OrderStatusPending:   {models.OrderStatusConfirmed, models.OrderStatusCancelled},
	models.OrderStatusConfirmed: {models.OrderStatusDelivered, models.OrderStatusCancelled},
}

func canTransition(from, to string) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// decrementLine removes the stock an order line consumes. Custom and prebuilt
// lines consume all three referenced components, other lines consume the
// standalone item.
func decrementLine(tx *gorm.DB, item *models.OrderItem) error {
	switch item.ItemType {
	case models.ItemTypeCustom, models.ItemTypePrebuilt:
		if err := decrementStock(tx, &models.BaseColor{}, item.BaseColorID, item.Quantity); err != nil {
			return fmt.Errorf("base color %d: %w", item.BaseColorID, err)
		}
		if err := decrementStock(tx, &models.KeycapDesign{}, item.KeycapDesignID, item.Quantity); err != nil {
			return fmt.Errorf("keycap design %d: %w", item.KeycapDesignID, err)
		}
		if err := decrementStock(tx, &models.SwitchType{}, item.SwitchTypeID, item.Quantity); err != nil {
			return fmt.Errorf("switch type %d: %w", item.SwitchTypeID, err)
		}
	case models.ItemTypeOther:
		if err := decrementStock(tx, &models.OtherFidget{}, item.OtherFidgetID, item.Quantity); err != nil {
			return fmt.Errorf("other fidget %d: %w", item.OtherFidgetID, err)
		}
	}
	return nil
}

// restoreLine puts the stock an order line consumed back. Components that no
// longer exist are skipped with a warning instead of failing the cancellation.
func restoreLine(ctx context.Context, tx *gorm.DB, item *models.OrderItem) error {
	l := logging.FromContext(ctx)
	put := func(model any, id uint, what string) error {
		restored, err := restoreStock(tx, model, id, item.Quantity)
		if err != nil {
			return err
		}
		if !restored {
			l.Warn("stock restore skipped, component missing", "component", what, "id", id, "order_item", item.ID)
		}
		return nil
	}

	switch item.ItemType {
	case models.ItemTypeCustom, models.ItemTypePrebuilt:
		if err := put(&models.BaseColor{}, item.BaseColorID, "base_color"); err != nil {
			return err
		}
		if err := put(&models.KeycapDesign{}, item.KeycapDesignID, "keycap_design"); err != nil {
			return err
		}
		if err := put(&models.SwitchType{}, item.SwitchTypeID, "switch_type"); err != nil {
			return err
		}
	case models.ItemTypeOther:
		if err := put(&models.OtherFidget{}, item.OtherFidgetID, "other_fidget"); err != nil {
			return err
		}
	}
	return nil
}

// CreateOrder persists the order, its items and the stock decrements in one
// transaction. Any insufficient component rolls everything back.
func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for i := range order.Items {
			if err := decrementLine(tx, &order.Items[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GormRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, status string, offset, limit int) (int64, []models.Order, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var orders []models.Order
	if err := q.Preload("Items").Order("created_at DESC").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		return 0, nil, err
	}
	return total, orders, nil
}

// TransitionOrder moves an order through its lifecycle. The status update is
// guarded by the previously read status so a concurrent transition loses
// cleanly instead of double-applying side effects. Cancellation restores
// stock inside the same transaction.
func (r *GormRepo) TransitionOrder(ctx context.Context, id uint, to string) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, id).Error; err != nil {
			return err
		}
		if !canTransition(order.Status, to) {
			return ErrInvalidTransition
		}

		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", id, order.Status).
			Update("status", to)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidTransition
		}

		if to == models.OrderStatusCancelled {
			var items []models.OrderItem
			if err := tx.Where("order_id = ?", id).Find(&items).Error; err != nil {
				return err
			}
			for i := range items {
				if err := restoreLine(ctx, tx, &items[i]); err != nil {
					return err
				}
			}
		}

		order.Status = to
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetOrder(ctx, id)
}

// DeleteOrder removes a cancelled order and its items.
func (r *GormRepo) DeleteOrder(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, id).Error; err != nil {
			return err
		}
		if order.Status != models.OrderStatusCancelled {
			return ErrOrderNotDeletable
		}
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
}

// RecalculateProfit recomputes item and order cost/profit fields from the
// current catalog costs. Lines whose referenced items vanished keep their
// stored figures.
func (r *GormRepo) RecalculateProfit(ctx context.Context, id uint) (*models.Order, error) {
	l := logging.FromContext(ctx)
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Preload("Items").First(&order, id).Error; err != nil {
			return err
		}

		var totalCost float64
		for i := range order.Items {
			item := &order.Items[i]
			unitCost, ok, err := currentUnitCost(tx, item)
			if err != nil {
				return err
			}
			if !ok {
				l.Warn("profit recalculation skipped line, item missing", "order_item", item.ID)
				totalCost += item.TotalCost
				continue
			}
			item.UnitCost = unitCost
			item.TotalCost = unitCost * float64(item.Quantity)
			item.Profit = item.TotalPrice - item.TotalCost
			if err := tx.Save(item).Error; err != nil {
				return err
			}
			totalCost += item.TotalCost
		}

		order.TotalCost = totalCost
		order.Profit = order.Total - order.ShippingCost - totalCost
		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetOrder(ctx, id)
}

func currentUnitCost(tx *gorm.DB, item *models.OrderItem) (float64, bool, error) {
	notFound := func(err error) (float64, bool, error) {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}

	switch item.ItemType {
	case models.ItemTypeCustom, models.ItemTypePrebuilt:
		var color models.BaseColor
		if err := tx.First(&color, item.BaseColorID).Error; err != nil {
			return notFound(err)
		}
		var keycap models.KeycapDesign
		if err := tx.First(&keycap, item.KeycapDesignID).Error; err != nil {
			return notFound(err)
		}
		var sw models.SwitchType
		if err := tx.First(&sw, item.SwitchTypeID).Error; err != nil {
			return notFound(err)
		}
		return color.Cost + keycap.Cost + sw.Cost, true, nil
	case models.ItemTypeOther:
		var other models.OtherFidget
		if err := tx.First(&other, item.OtherFidgetID).Error; err != nil {
			return notFound(err)
		}
		return other.Cost, true, nil
	}
	return 0, false, nil
}
