package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hamza-boudefa/Fidgi-sub001/internal/events"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/logging"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/models"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/repo"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/transport"
)

type OrderService struct {
	Repo         *repo.GormRepo
	Producer     events.Publisher
	ShippingCost float64
}

func (s *OrderService) publish(ctx context.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(ctx, events.TopicOrderEvents, fmt.Sprint(event["reference"]), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "error", err)
	}
}

// priceLine resolves a requested line against the catalog and prices it.
// Custom lines sum their three components; prebuilt lines use the stored
// price (with discount) and the components' summed cost; other lines use
// the stored price and cost.
func priceLine(ctx context.Context, r *repo.GormRepo, line transport.OrderLine) (*models.OrderItem, error) {
	if line.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}

	item := &models.OrderItem{
		ItemType: line.ItemType,
		Quantity: line.Quantity,
	}

	lookupComponents := func(colorID, keycapID, switchID uint) (price, cost float64, err error) {
		color, err := r.GetBaseColor(ctx, colorID)
		if err != nil {
			return 0, 0, lineLookupErr("base color", colorID, err)
		}
		keycap, err := r.GetKeycapDesign(ctx, keycapID)
		if err != nil {
			return 0, 0, lineLookupErr("keycap design", keycapID, err)
		}
		sw, err := r.GetSwitchType(ctx, switchID)
		if err != nil {
			return 0, 0, lineLookupErr("switch type", switchID, err)
		}
		return color.Price + keycap.Price + sw.Price, color.Cost + keycap.Cost + sw.Cost, nil
	}

	switch line.ItemType {
	case models.ItemTypeCustom:
		price, cost, err := lookupComponents(line.BaseColorID, line.KeycapDesignID, line.SwitchTypeID)
		if err != nil {
			return nil, err
		}
		item.BaseColorID = line.BaseColorID
		item.KeycapDesignID = line.KeycapDesignID
		item.SwitchTypeID = line.SwitchTypeID
		item.UnitPrice = price
		item.UnitCost = cost

	case models.ItemTypePrebuilt:
		prebuilt, err := r.GetPrebuiltFidget(ctx, line.PrebuiltFidgetID)
		if err != nil {
			return nil, lineLookupErr("prebuilt fidget", line.PrebuiltFidgetID, err)
		}
		_, cost, err := lookupComponents(prebuilt.BaseColorID, prebuilt.KeycapDesignID, prebuilt.SwitchTypeID)
		if err != nil {
			return nil, err
		}
		item.PrebuiltFidgetID = prebuilt.ID
		item.BaseColorID = prebuilt.BaseColorID
		item.KeycapDesignID = prebuilt.KeycapDesignID
		item.SwitchTypeID = prebuilt.SwitchTypeID
		item.UnitPrice = prebuilt.Price * (1 - prebuilt.DiscountPercent/100)
		item.UnitCost = cost

	case models.ItemTypeOther:
		other, err := r.GetOtherFidget(ctx, line.OtherFidgetID)
		if err != nil {
			return nil, lineLookupErr("other fidget", line.OtherFidgetID, err)
		}
		item.OtherFidgetID = other.ID
		item.UnitPrice = other.Price
		item.UnitCost = other.Cost

	default:
		return nil, fmt.Errorf("%w: unknown item type %q", ErrValidation, line.ItemType)
	}

	item.TotalPrice = item.UnitPrice * float64(item.Quantity)
	item.TotalCost = item.UnitCost * float64(item.Quantity)
	item.Profit = item.TotalPrice - item.TotalCost
	return item, nil
}

func lineLookupErr(what string, id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %d does not exist", ErrValidation, what, id)
	}
	return err
}

// Create prices the requested lines, persists the order and decrements
// stock atomically.
func (s *OrderService) Create(ctx context.Context, req transport.CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: order has no items", ErrValidation)
	}
	if req.CustomerName == "" || req.Phone == "" || req.Address == "" {
		return nil, fmt.Errorf("%w: customer_name, phone and address are required", ErrValidation)
	}

	order := &models.Order{
		Reference:    uuid.NewString(),
		CustomerName: req.CustomerName,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		City:         req.City,
		Notes:        req.Notes,
		Status:       models.OrderStatusPending,
		ShippingCost: s.ShippingCost,
	}

	for _, line := range req.Items {
		item, err := priceLine(ctx, s.Repo, line)
		if err != nil {
			return nil, err
		}
		order.Items = append(order.Items, *item)
		order.Subtotal += item.TotalPrice
		order.TotalCost += item.TotalCost
	}
	order.Total = order.Subtotal + order.ShippingCost
	order.Profit = order.Subtotal - order.TotalCost

	if err := s.Repo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	s.publish(ctx, map[string]any{
		"type":      "order_created",
		"order_id":  order.ID,
		"reference": order.Reference,
		"total":     order.Total,
		"items":     len(order.Items),
	})
	return order, nil
}

func (s *OrderService) Get(ctx context.Context, id uint) (*models.Order, error) {
	return s.Repo.GetOrder(ctx, id)
}

func (s *OrderService) List(ctx context.Context, status string, offset, limit int) (int64, []models.Order, error) {
	if status != "" && !validStatus(status) {
		return 0, nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	return s.Repo.ListOrders(ctx, status, offset, limit)
}

func validStatus(s string) bool {
	switch s {
	case models.OrderStatusPending, models.OrderStatusConfirmed,
		models.OrderStatusDelivered, models.OrderStatusCancelled:
		return true
	}
	return false
}

// Transition moves an order to a new status; cancelling restores stock.
func (s *OrderService) Transition(ctx context.Context, id uint, to string) (*models.Order, error) {
	if !validStatus(to) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, to)
	}

	order, err := s.Repo.TransitionOrder(ctx, id, to)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, map[string]any{
		"type":      "order_status_changed",
		"order_id":  order.ID,
		"reference": order.Reference,
		"status":    order.Status,
	})
	return order, nil
}

func (s *OrderService) Delete(ctx context.Context, id uint) error {
	return s.Repo.DeleteOrder(ctx, id)
}

func (s *OrderService) RecalculateProfit(ctx context.Context, id uint) (*models.Order, error) {
	return s.Repo.RecalculateProfit(ctx, id)
}
