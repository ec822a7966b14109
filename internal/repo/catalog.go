package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/hamza-boudefa/Fidgi-sub001/internal/models"
)

// ComponentFilter narrows component listings.
type ComponentFilter struct {
	ActiveOnly bool
}

// PrebuiltFilter narrows prebuilt listings.
type PrebuiltFilter struct {
	ActiveOnly   bool
	FeaturedOnly bool
	Tag          string
}

// OtherFilter narrows other-fidget listings.
type OtherFilter struct {
	ActiveOnly   bool
	FeaturedOnly bool
	Category     string
}

func deleteByID(db *gorm.DB, model any, id uint) error {
	res := db.Delete(model, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ── Base colors ──────────────────────────────────────────────────────────

func (r *GormRepo) ListBaseColors(ctx context.Context, f ComponentFilter, offset, limit int) (int64, []models.BaseColor, error) {
	q := r.DB.WithContext(ctx).Model(&models.BaseColor{})
	if f.ActiveOnly {
		q = q.Where("active = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.BaseColor
	if err := q.Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) GetBaseColor(ctx context.Context, id uint) (*models.BaseColor, error) {
	var item models.BaseColor
	if err := r.DB.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) CreateBaseColor(ctx context.Context, item *models.BaseColor) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

func (r *GormRepo) SaveBaseColor(ctx context.Context, item *models.BaseColor) error {
	return r.DB.WithContext(ctx).Save(item).Error
}

func (r *GormRepo) DeleteBaseColor(ctx context.Context, id uint) error {
	return deleteByID(r.DB.WithContext(ctx), &models.BaseColor{}, id)
}

// ── Keycap designs ───────────────────────────────────────────────────────

func (r *GormRepo) ListKeycapDesigns(ctx context.Context, f ComponentFilter, offset, limit int) (int64, []models.KeycapDesign, error) {
	q := r.DB.WithContext(ctx).Model(&models.KeycapDesign{})
	if f.ActiveOnly {
		q = q.Where("active = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.KeycapDesign
	if err := q.Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) GetKeycapDesign(ctx context.Context, id uint) (*models.KeycapDesign, error) {
	var item models.KeycapDesign
	if err := r.DB.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) CreateKeycapDesign(ctx context.Context, item *models.KeycapDesign) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

func (r *GormRepo) SaveKeycapDesign(ctx context.Context, item *models.KeycapDesign) error {
	return r.DB.WithContext(ctx).Save(item).Error
}

func (r *GormRepo) DeleteKeycapDesign(ctx context.Context, id uint) error {
	return deleteByID(r.DB.WithContext(ctx), &models.KeycapDesign{}, id)
}

// ── Switch types ─────────────────────────────────────────────────────────

func (r *GormRepo) ListSwitchTypes(ctx context.Context, f ComponentFilter, offset, limit int) (int64, []models.SwitchType, error) {
	q := r.DB.WithContext(ctx).Model(&models.SwitchType{})
	if f.ActiveOnly {
		q = q.Where("active = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.SwitchType
	if err := q.Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) GetSwitchType(ctx context.Context, id uint) (*models.SwitchType, error) {
	var item models.SwitchType
	if err := r.DB.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) CreateSwitchType(ctx context.Context, item *models.SwitchType) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

func (r *GormRepo) SaveSwitchType(ctx context.Context, item *models.SwitchType) error {
	return r.DB.WithContext(ctx).Save(item).Error
}

func (r *GormRepo) DeleteSwitchType(ctx context.Context, id uint) error {
	return deleteByID(r.DB.WithContext(ctx), &models.SwitchType{}, id)
}

// ── Prebuilt fidgets ─────────────────────────────────────────────────────

func (r *GormRepo) ListPrebuiltFidgets(ctx context.Context, f PrebuiltFilter, offset, limit int) (int64, []models.PrebuiltFidget, error) {
	q := r.DB.WithContext(ctx).Model(&models.PrebuiltFidget{})
	if f.ActiveOnly {
		q = q.Where("active = ?", true)
	}
	if f.FeaturedOnly {
		q = q.Where("featured = ?", true)
	}
	if f.Tag != "" {
		q = q.Where("tags LIKE ?", "%"+f.Tag+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.PrebuiltFidget
	if err := q.Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) GetPrebuiltFidget(ctx context.Context, id uint) (*models.PrebuiltFidget, error) {
	var item models.PrebuiltFidget
	if err := r.DB.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) CreatePrebuiltFidget(ctx context.Context, item *models.PrebuiltFidget) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

func (r *GormRepo) SavePrebuiltFidget(ctx context.Context, item *models.PrebuiltFidget) error {
	return r.DB.WithContext(ctx).Save(item).Error
}

func (r *GormRepo) DeletePrebuiltFidget(ctx context.Context, id uint) error {
	return deleteByID(r.DB.WithContext(ctx), &models.PrebuiltFidget{}, id)
}

// ── Other fidgets ────────────────────────────────────────────────────────

func (r *GormRepo) ListOtherFidgets(ctx context.Context, f OtherFilter, offset, limit int) (int64, []models.OtherFidget, error) {
	q := r.DB.WithContext(ctx).Model(&models.OtherFidget{})
	if f.ActiveOnly {
		q = q.Where("active = ?", true)
	}
	if f.FeaturedOnly {
		q = q.Where("featured = ?", true)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.OtherFidget
	if err := q.Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) GetOtherFidget(ctx context.Context, id uint) (*models.OtherFidget, error) {
	var item models.OtherFidget
	if err := r.DB.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) CreateOtherFidget(ctx context.Context, item *models.OtherFidget) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

func (r *GormRepo) SaveOtherFidget(ctx context.Context, item *models.OtherFidget) error {
	return r.DB.WithContext(ctx).Save(item).Error
}

func (r *GormRepo) DeleteOtherFidget(ctx context.Context, id uint) error {
	return deleteByID(r.DB.WithContext(ctx), &models.OtherFidget{}, id)
}
