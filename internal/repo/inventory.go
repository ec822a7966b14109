package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/hamza-boudefa/Fidgi-sub001/internal/models"
)

// Stock categories used by the inventory endpoints.
const (
	CategoryColors   = "colors"
	CategoryKeycaps  = "keycaps"
	CategorySwitches = "switches"
	CategoryOther    = "other-fidgets"
)

// StockLevel is one row of the inventory snapshot.
type StockLevel struct {
	Category string `json:"category"`
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Active   bool   `json:"active"`
}

func categoryModel(category string) any {
	switch category {
	case CategoryColors:
		return &models.BaseColor{}
	case CategoryKeycaps:
		return &models.KeycapDesign{}
	case CategorySwitches:
		return &models.SwitchType{}
	case CategoryOther:
		return &models.OtherFidget{}
	}
	return nil
}

// decrementStock issues a single guarded update. Zero rows affected means the
// row is missing or the remaining quantity is too small; the caller treats
// both as insufficient stock and rolls back.
func decrementStock(tx *gorm.DB, model any, id uint, qty int) error {
	res := tx.Model(model).
		Where("id = ? AND quantity >= ?", id, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

// restoreStock mirrors decrementStock. A missing row is reported so the
// caller can log and skip it without failing the cancellation.
func restoreStock(tx *gorm.DB, model any, id uint, qty int) (restored bool, err error) {
	res := tx.Model(model).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *GormRepo) StockLevels(ctx context.Context) ([]StockLevel, error) {
	out := make([]StockLevel, 0, 32)

	var colors []models.BaseColor
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&colors).Error; err != nil {
		return nil, err
	}
	for _, c := range colors {
		out = append(out, StockLevel{Category: CategoryColors, ID: c.ID, Name: c.Name, Quantity: c.Quantity, Active: c.Active})
	}

	var keycaps []models.KeycapDesign
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&keycaps).Error; err != nil {
		return nil, err
	}
	for _, k := range keycaps {
		out = append(out, StockLevel{Category: CategoryKeycaps, ID: k.ID, Name: k.Name, Quantity: k.Quantity, Active: k.Active})
	}

	var switches []models.SwitchType
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&switches).Error; err != nil {
		return nil, err
	}
	for _, s := range switches {
		out = append(out, StockLevel{Category: CategorySwitches, ID: s.ID, Name: s.Name, Quantity: s.Quantity, Active: s.Active})
	}

	var others []models.OtherFidget
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&others).Error; err != nil {
		return nil, err
	}
	for _, o := range others {
		out = append(out, StockLevel{Category: CategoryOther, ID: o.ID, Name: o.Name, Quantity: o.Quantity, Active: o.Active})
	}

	return out, nil
}

// LowStock returns active items at or below the threshold.
func (r *GormRepo) LowStock(ctx context.Context, threshold int) ([]StockLevel, error) {
	all, err := r.StockLevels(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]StockLevel, 0, len(all))
	for _, lvl := range all {
		if lvl.Active && lvl.Quantity <= threshold {
			out = append(out, lvl)
		}
	}
	return out, nil
}

// SetQuantity sets an absolute stock level for one item.
func (r *GormRepo) SetQuantity(ctx context.Context, category string, id uint, qty int) error {
	model := categoryModel(category)
	if model == nil {
		return gorm.ErrRecordNotFound
	}
	res := r.DB.WithContext(ctx).Model(model).Where("id = ?", id).Update("quantity", qty)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
