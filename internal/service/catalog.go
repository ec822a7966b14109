package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/hamza-boudefa/Fidgi-sub001/internal/events"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/logging"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/models"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/repo"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/search"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/transport"
)

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// SearchIndexer mirrors the storefront search index. Indexing is best
// effort; failures are logged and never fail the catalog mutation.
type SearchIndexer interface {
	IndexItem(ctx context.Context, doc search.Doc) error
	DeleteItem(ctx context.Context, docID string) error
}

type CatalogService struct {
	Repo     *repo.GormRepo
	Producer events.Publisher
	Indexer  SearchIndexer
}

func (s *CatalogService) publish(ctx context.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(ctx, events.TopicCatalogEvents, fmt.Sprint(event["type"]), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "error", err)
	}
}

func (s *CatalogService) index(ctx context.Context, doc search.Doc) {
	if s.Indexer == nil {
		return
	}
	if err := s.Indexer.IndexItem(ctx, doc); err != nil {
		logging.FromContext(ctx).Warn("search index error", "doc", doc.ID, "error", err)
	}
}

func (s *CatalogService) unindex(ctx context.Context, docID string) {
	if s.Indexer == nil {
		return
	}
	if err := s.Indexer.DeleteItem(ctx, docID); err != nil {
		logging.FromContext(ctx).Warn("search delete error", "doc", docID, "error", err)
	}
}

func validateComponent(name string, price, cost float64, quantity int) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if cost < 0 {
		return fmt.Errorf("%w: cost cannot be negative", ErrValidation)
	}
	if quantity < 0 {
		return fmt.Errorf("%w: quantity cannot be negative", ErrValidation)
	}
	return nil
}

func boolOrDefault(v *bool, def bool) bool {
	if v != nil {
		return *v
	}
	return def
}

// ── Base colors ──────────────────────────────────────────────────────────

func (s *CatalogService) ListBaseColors(ctx context.Context, f repo.ComponentFilter, offset, limit int) (int64, []models.BaseColor, error) {
	return s.Repo.ListBaseColors(ctx, f, offset, limit)
}

func (s *CatalogService) GetBaseColor(ctx context.Context, id uint) (*models.BaseColor, error) {
	return s.Repo.GetBaseColor(ctx, id)
}

func (s *CatalogService) CreateBaseColor(ctx context.Context, req transport.CreateComponentRequest) (*models.BaseColor, error) {
	if err := validateComponent(req.Name, req.Price, req.Cost, req.Quantity); err != nil {
		return nil, err
	}
	if !hexColorRe.MatchString(req.HexCode) {
		return nil, fmt.Errorf("%w: hex_code must match #RRGGBB", ErrValidation)
	}

	item := &models.BaseColor{
		Name:     req.Name,
		HexCode:  req.HexCode,
		Price:    req.Price,
		Cost:     req.Cost,
		Quantity: req.Quantity,
		Active:   boolOrDefault(req.Active, true),
		ImageURL: req.ImageURL,
	}
	if err := s.Repo.CreateBaseColor(ctx, item); err != nil {
		return nil, err
	}
	s.publish(ctx, map[string]any{"type": "color_created", "id": item.ID, "name": item.Name})
	return item, nil
}

func (s *CatalogService) PatchBaseColor(ctx context.Context, id uint, req transport.PatchComponentRequest) (*models.BaseColor, error) {
	item, err := s.Repo.GetBaseColor(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.HexCode != nil {
		if !hexColorRe.MatchString(*req.HexCode) {
			return nil, fmt.Errorf("%w: hex_code must match #RRGGBB", ErrValidation)
		}
		item.HexCode = *req.HexCode
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Cost != nil {
		item.Cost = *req.Cost
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.Active != nil {
		item.Active = *req.Active
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}
	if err := validateComponent(item.Name, item.Price, item.Cost, item.Quantity); err != nil {
		return nil, err
	}

	if err := s.Repo.SaveBaseColor(ctx, item); err != nil {
		return nil, err
	}
	s.publish(ctx, map[string]any{"type": "color_updated", "id": item.ID, "name": item.Name})
	return item, nil
}

func (s *CatalogService) DeleteBaseColor(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteBaseColor(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, map[string]any{"type": "color_deleted", "id": id})
	return nil
}

// ── Keycap designs ───────────────────────────────────────────────────────

func (s *CatalogService) ListKeycapDesigns(ctx context.Context, f repo.ComponentFilter, offset, limit int) (int64, []models.KeycapDesign, error) {
	return s.Repo.ListKeycapDesigns(ctx, f, offset, limit)
}

func (s *CatalogService) GetKeycapDesign(ctx context.Context, id uint) (*models.KeycapDesign, error) {
	return s.Repo.GetKeycapDesign(ctx, id)
}

func (s *CatalogService) CreateKeycapDesign(ctx context.Context, req transport.CreateComponentRequest) (*models.KeycapDesign, error) {
	if err := validateComponent(req.Name, req.Price, req.Cost, req.Quantity); err != nil {
		return nil, err
	}

	item := &models.KeycapDesign{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Cost:        req.Cost,
		Quantity:    req.Quantity,
		Active:      boolOrDefault(req.Active, true),
		ImageURL:    req.ImageURL,
	}
	if err := s.Repo.CreateKeycapDesign(ctx, item); err != nil {
		return nil, err
	}
	s.publish(ctx, map[string]any{"type": "keycap_created", "id": item.ID, "name": item.Name})
	return item, nil
}

func (s *CatalogService) PatchKeycapDesign(ctx context.Context, id uint, req transport.PatchComponentRequest) (*models.KeycapDesign, error) {
	item, err := s.Repo.GetKeycapDesign(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Cost != nil {
		item.Cost = *req.Cost
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.Active != nil {
		item.Active = *req.Active
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}
	if err := validateComponent(item.Name, item.Price, item.Cost, item.Quantity); err != nil {
		return nil, err
	}

	if err := s.Repo.SaveKeycapDesign(ctx, item); err != nil {
		return nil, err
	}
	s.publish(ctx, map[string]any{"type": "keycap_updated", "id": item.ID, "name": item.Name})
	return item, nil
}

func (s *CatalogService) DeleteKeycapDesign(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteKeycapDesign(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, map[string]any{"type": "keycap_deleted", "id": id})
	return nil
}

// ── Switch types ─────────────────────────────────────────────────────────

func (s *CatalogService) ListSwitchTypes(ctx context.Context, f repo.ComponentFilter, offset, limit int) (int64, []models.SwitchType, error) {
	return s.Repo.ListSwitchTypes(ctx, f, offset, limit)
}

func (s *CatalogService) GetSwitchType(ctx context.Context, id uint) (*models.SwitchType, error) {
	return s.Repo.GetSwitchType(ctx, id)
}

func (s *CatalogService) CreateSwitchType(ctx context.Context, req transport.CreateComponentRequest) (*models.SwitchType, error) {
	if err := validateComponent(req.Name, req.Price, req.Cost, req.Quantity); err != nil {
		return nil, err
	}

	item := &models.SwitchType{
		Name:         req.Name,
		Description:  req.Description,
		SoundProfile: req.SoundProfile,
		Price:        req.Price,
		Cost:         req.Cost,
		Quantity:     req.Quantity,
		Active:       boolOrDefault(req.Active, true),
		ImageURL:     req.ImageURL,
	}
	if err := s.Repo.CreateSwitchType(ctx, item); err != nil {
		return nil, err
	}
	s.publish(ctx, map[string]any{"type": "switch_created", "id": item.ID, "name": item.Name})
	return item, nil
}

func (s *CatalogService) PatchSwitchType(ctx context.Context, id uint, req transport.PatchComponentRequest) (*models.SwitchType, error) {
	item, err := s.Repo.GetSwitchType(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.SoundProfile != nil {
		item.SoundProfile = *req.SoundProfile
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Cost != nil {
		item.Cost = *req.Cost
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.Active != nil {
		item.Active = *req.Active
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}
	if err := validateComponent(item.Name, item.Price, item.Cost, item.Quantity); err != nil {
		return nil, err
	}

	if err := s.Repo.SaveSwitchType(ctx, item); err != nil {
		return nil, err
	}
	s.publish(ctx, map[string]any{"type": "switch_updated", "id": item.ID, "name": item.Name})
	return item, nil
}

func (s *CatalogService) DeleteSwitchType(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteSwitchType(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, map[string]any{"type": "switch_deleted", "id": id})
	return nil
}

// ── Prebuilt fidgets ─────────────────────────────────────────────────────

func (s *CatalogService) checkPrebuiltComponents(ctx context.Context, colorID, keycapID, switchID uint) error {
	if _, err := s.Repo.GetBaseColor(ctx, colorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: base color %d does not exist", ErrValidation, colorID)
		}
		return err
	}
	if _, err := s.Repo.GetKeycapDesign(ctx, keycapID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: keycap design %d does not exist", ErrValidation, keycapID)
		}
		return err
	}
	if _, err := s.Repo.GetSwitchType(ctx, switchID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: switch type %d does not exist", ErrValidation, switchID)
		}
		return err
	}
	return nil
}

func (s *CatalogService) ListPrebuiltFidgets(ctx context.Context, f repo.PrebuiltFilter, offset, limit int) (int64, []models.PrebuiltFidget, error) {
	return s.Repo.ListPrebuiltFidgets(ctx, f, offset, limit)
}

func (s *CatalogService) GetPrebuiltFidget(ctx context.Context, id uint) (*models.PrebuiltFidget, error) {
	return s.Repo.GetPrebuiltFidget(ctx, id)
}

// PrebuiltCost derives the cost of a prebuilt from its current components.
func (s *CatalogService) PrebuiltCost(ctx context.Context, p *models.PrebuiltFidget) (float64, error) {
	color, err := s.Repo.GetBaseColor(ctx, p.BaseColorID)
	if err != nil {
		return 0, err
	}
	keycap, err := s.Repo.GetKeycapDesign(ctx, p.KeycapDesignID)
	if err != nil {
		return 0, err
	}
	sw, err := s.Repo.GetSwitchType(ctx, p.SwitchTypeID)
	if err != nil {
		return 0, err
	}
	return color.Cost + keycap.Cost + sw.Cost, nil
}

func (s *CatalogService) CreatePrebuiltFidget(ctx context.Context, req transport.CreatePrebuiltRequest) (*models.PrebuiltFidget, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if req.DiscountPercent < 0 || req.DiscountPercent > 100 {
		return nil, fmt.Errorf("%w: discount_percent must be between 0 and 100", ErrValidation)
	}
	if err := s.checkPrebuiltComponents(ctx, req.BaseColorID, req.KeycapDesignID, req.SwitchTypeID); err != nil {
		return nil, err
	}

	item := &models.PrebuiltFidget{
		Name:            req.Name,
		Description:     req.Description,
		BaseColorID:     req.BaseColorID,
		KeycapDesignID:  req.KeycapDesignID,
		SwitchTypeID:    req.SwitchTypeID,
		Price:           req.Price,
		DiscountPercent: req.DiscountPercent,
		Active:          boolOrDefault(req.Active, true),
		Featured:        boolOrDefault(req.Featured, false),
		Tags:            req.Tags,
	}
	if err := s.Repo.CreatePrebuiltFidget(ctx, item); err != nil {
		return nil, err
	}
	s.publish(ctx, map[string]any{"type": "prebuilt_created", "id": item.ID, "name": item.Name})
	s.index(ctx, search.PrebuiltDoc(item))
	return item, nil
}

func (s *CatalogService) PatchPrebuiltFidget(ctx context.Context, id uint, req transport.PatchPrebuiltRequest) (*models.PrebuiltFidget, error) {
	item, err := s.Repo.GetPrebuiltFidget(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.BaseColorID != nil {
		item.BaseColorID = *req.BaseColorID
	}
	if req.KeycapDesignID != nil {
		item.KeycapDesignID = *req.KeycapDesignID
	}
	if req.SwitchTypeID != nil {
		item.SwitchTypeID = *req.SwitchTypeID
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.DiscountPercent != nil {
		item.DiscountPercent = *req.DiscountPercent
	}
	if req.Active != nil {
		item.Active = *req.Active
	}
	if req.Featured != nil {
		item.Featured = *req.Featured
	}
	if req.Tags != nil {
		item.Tags = *req.Tags
	}

	if item.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if item.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if item.DiscountPercent < 0 || item.DiscountPercent > 100 {
		return nil, fmt.Errorf("%w: discount_percent must be between 0 and 100", ErrValidation)
	}
	if err := s.checkPrebuiltComponents(ctx, item.BaseColorID, item.KeycapDesignID, item.SwitchTypeID); err != nil {
		return nil, err
	}

	if err := s.Repo.SavePrebuiltFidget(ctx, item); err != nil {
		return nil, err
	}
	s.publish(ctx, map[string]any{"type": "prebuilt_updated", "id": item.ID, "name": item.Name})
	s.index(ctx, search.PrebuiltDoc(item))
	return item, nil
}

func (s *CatalogService) DeletePrebuiltFidget(ctx context.Context, id uint) error {
	if err := s.Repo.DeletePrebuiltFidget(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, map[string]any{"type": "prebuilt_deleted", "id": id})
	s.unindex(ctx, search.DocID(models.OwnerPrebuilt, id))
	return nil
}

// ── Other fidgets ────────────────────────────────────────────────────────

func (s *CatalogService) ListOtherFidgets(ctx context.Context, f repo.OtherFilter, offset, limit int) (int64, []models.OtherFidget, error) {
	return s.Repo.ListOtherFidgets(ctx, f, offset, limit)
}

func (s *CatalogService) GetOtherFidget(ctx context.Context, id uint) (*models.OtherFidget, error) {
	return s.Repo.GetOtherFidget(ctx, id)
}

func (s *CatalogService) CreateOtherFidget(ctx context.Context, req transport.CreateOtherFidgetRequest) (*models.OtherFidget, error) {
	if err := validateComponent(req.Name, req.Price, req.Cost, req.Quantity); err != nil {
		return nil, err
	}

	item := &models.OtherFidget{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Cost:        req.Cost,
		Quantity:    req.Quantity,
		Active:      boolOrDefault(req.Active, true),
		Featured:    boolOrDefault(req.Featured, false),
	}
	if err := s.Repo.CreateOtherFidget(ctx, item); err != nil {
		return nil, err
	}
	s.publish(ctx, map[string]any{"type": "other_fidget_created", "id": item.ID, "name": item.Name})
	s.index(ctx, search.OtherDoc(item))
	return item, nil
}

func (s *CatalogService) PatchOtherFidget(ctx context.Context, id uint, req transport.PatchOtherFidgetRequest) (*models.OtherFidget, error) {
	item, err := s.Repo.GetOtherFidget(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Cost != nil {
		item.Cost = *req.Cost
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.Active != nil {
		item.Active = *req.Active
	}
	if req.Featured != nil {
		item.Featured = *req.Featured
	}
	if err := validateComponent(item.Name, item.Price, item.Cost, item.Quantity); err != nil {
		return nil, err
	}

	if err := s.Repo.SaveOtherFidget(ctx, item); err != nil {
		return nil, err
	}
	s.publish(ctx, map[string]any{"type": "other_fidget_updated", "id": item.ID, "name": item.Name})
	s.index(ctx, search.OtherDoc(item))
	return item, nil
}

func (s *CatalogService) DeleteOtherFidget(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteOtherFidget(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, map[string]any{"type": "other_fidget_deleted", "id": id})
	s.unindex(ctx, search.DocID(models.OwnerOtherFidget, id))
	return nil
}

// ── Images ───────────────────────────────────────────────────────────────

func validOwnerType(t string) bool {
	switch t {
	case models.OwnerBaseColor, models.OwnerKeycapDesign, models.OwnerSwitchType,
		models.OwnerPrebuilt, models.OwnerOtherFidget:
		return true
	}
	return false
}

func (s *CatalogService) ListImages(ctx context.Context, ownerType string, ownerID uint) ([]models.ItemImage, error) {
	if !validOwnerType(ownerType) {
		return nil, fmt.Errorf("%w: unknown owner type %q", ErrValidation, ownerType)
	}
	return s.Repo.ListImages(ctx, ownerType, ownerID)
}

func (s *CatalogService) AddImage(ctx context.Context, req transport.AddImageRequest) (*models.ItemImage, error) {
	if !validOwnerType(req.OwnerType) {
		return nil, fmt.Errorf("%w: unknown owner type %q", ErrValidation, req.OwnerType)
	}
	if req.URL == "" || req.PublicID == "" {
		return nil, fmt.Errorf("%w: url and public_id are required", ErrValidation)
	}

	img := &models.ItemImage{
		OwnerType: req.OwnerType,
		OwnerID:   req.OwnerID,
		URL:       req.URL,
		PublicID:  req.PublicID,
		IsPrimary: req.IsPrimary,
		SortOrder: req.SortOrder,
	}
	if err := s.Repo.AddImage(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}

func (s *CatalogService) DeleteImage(ctx context.Context, id uint) (*models.ItemImage, error) {
	return s.Repo.DeleteImage(ctx, id)
}

// ParseID is shared by the handlers for path parameters.
func ParseID(raw string) (uint, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", ErrValidation, raw)
	}
	return uint(id), nil
}
