package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/hamza-boudefa/Fidgi-sub001/internal/models"
)

func (r *GormRepo) ListImages(ctx context.Context, ownerType string, ownerID uint) ([]models.ItemImage, error) {
	var images []models.ItemImage
	err := r.DB.WithContext(ctx).
		Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
		Order("sort_order ASC, id ASC").
		Find(&images).Error
	return images, err
}

// AddImage inserts an image entry. When the new image is primary, the
// previous primary for the same owner is demoted in the same transaction.
func (r *GormRepo) AddImage(ctx context.Context, img *models.ItemImage) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if img.IsPrimary {
			if err := tx.Model(&models.ItemImage{}).
				Where("owner_type = ? AND owner_id = ? AND is_primary = ?", img.OwnerType, img.OwnerID, true).
				Update("is_primary", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(img).Error
	})
}

func (r *GormRepo) DeleteImage(ctx context.Context, id uint) (*models.ItemImage, error) {
	var img models.ItemImage
	if err := r.DB.WithContext(ctx).First(&img, id).Error; err != nil {
		return nil, err
	}
	if err := r.DB.WithContext(ctx).Delete(&img).Error; err != nil {
		return nil, err
	}
	return &img, nil
}
