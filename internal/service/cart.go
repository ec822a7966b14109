package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hamza-boudefa/Fidgi-sub001/internal/cart"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/models"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/repo"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/transport"
)

type CartService struct {
	Store cart.Store
	Repo  *repo.GormRepo
}

// PricedLine is a stored cart line with prices recomputed from the catalog.
type PricedLine struct {
	cart.Line
	Name       string  `json:"name"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
}

type CartView struct {
	SessionID string       `json:"session_id"`
	Lines     []PricedLine `json:"lines"`
	Subtotal  float64      `json:"subtotal"`
}

func (s *CartService) price(ctx context.Context, lines []cart.Line) (*CartView, error) {
	view := &CartView{Lines: make([]PricedLine, 0, len(lines))}
	for _, ln := range lines {
		item, err := priceLine(ctx, s.Repo, transport.OrderLine{
			ItemType:         ln.ItemType,
			BaseColorID:      ln.BaseColorID,
			KeycapDesignID:   ln.KeycapDesignID,
			SwitchTypeID:     ln.SwitchTypeID,
			PrebuiltFidgetID: ln.PrebuiltFidgetID,
			OtherFidgetID:    ln.OtherFidgetID,
			Quantity:         ln.Quantity,
		})
		if err != nil {
			return nil, err
		}

		name, err := s.lineName(ctx, ln)
		if err != nil {
			return nil, err
		}

		view.Lines = append(view.Lines, PricedLine{
			Line:       ln,
			Name:       name,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
		})
		view.Subtotal += item.TotalPrice
	}
	return view, nil
}

func (s *CartService) lineName(ctx context.Context, ln cart.Line) (string, error) {
	switch ln.ItemType {
	case models.ItemTypePrebuilt:
		p, err := s.Repo.GetPrebuiltFidget(ctx, ln.PrebuiltFidgetID)
		if err != nil {
			return "", err
		}
		return p.Name, nil
	case models.ItemTypeOther:
		o, err := s.Repo.GetOtherFidget(ctx, ln.OtherFidgetID)
		if err != nil {
			return "", err
		}
		return o.Name, nil
	}
	return "Custom clicker", nil
}

func (s *CartService) Get(ctx context.Context, sessionID string) (*CartView, error) {
	lines, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	view, err := s.price(ctx, lines)
	if err != nil {
		return nil, err
	}
	view.SessionID = sessionID
	return view, nil
}

// AddLine validates the requested line against the catalog and appends it,
// merging with an identical existing line.
func (s *CartService) AddLine(ctx context.Context, sessionID string, req transport.CartLineRequest) (*CartView, error) {
	line := cart.Line{
		ID:               uuid.NewString(),
		ItemType:         req.ItemType,
		BaseColorID:      req.BaseColorID,
		KeycapDesignID:   req.KeycapDesignID,
		SwitchTypeID:     req.SwitchTypeID,
		PrebuiltFidgetID: req.PrebuiltFidgetID,
		OtherFidgetID:    req.OtherFidgetID,
		Quantity:         req.Quantity,
	}
	if line.Quantity < 1 {
		line.Quantity = 1
	}

	// Validate existence and type up front so a broken line never lands
	// in the stored cart.
	if _, err := priceLine(ctx, s.Repo, transport.OrderLine{
		ItemType:         line.ItemType,
		BaseColorID:      line.BaseColorID,
		KeycapDesignID:   line.KeycapDesignID,
		SwitchTypeID:     line.SwitchTypeID,
		PrebuiltFidgetID: line.PrebuiltFidgetID,
		OtherFidgetID:    line.OtherFidgetID,
		Quantity:         line.Quantity,
	}); err != nil {
		return nil, err
	}

	lines, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range lines {
		if sameSelection(lines[i], line) {
			lines[i].Quantity += line.Quantity
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, line)
	}

	if err := s.Store.Save(ctx, sessionID, lines); err != nil {
		return nil, err
	}
	view, err := s.price(ctx, lines)
	if err != nil {
		return nil, err
	}
	view.SessionID = sessionID
	return view, nil
}

func sameSelection(a, b cart.Line) bool {
	return a.ItemType == b.ItemType &&
		a.BaseColorID == b.BaseColorID &&
		a.KeycapDesignID == b.KeycapDesignID &&
		a.SwitchTypeID == b.SwitchTypeID &&
		a.PrebuiltFidgetID == b.PrebuiltFidgetID &&
		a.OtherFidgetID == b.OtherFidgetID
}

func (s *CartService) UpdateLine(ctx context.Context, sessionID, lineID string, quantity int) (*CartView, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}

	lines, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range lines {
		if lines[i].ID == lineID {
			lines[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: cart line %q not found", ErrValidation, lineID)
	}

	if err := s.Store.Save(ctx, sessionID, lines); err != nil {
		return nil, err
	}
	view, err := s.price(ctx, lines)
	if err != nil {
		return nil, err
	}
	view.SessionID = sessionID
	return view, nil
}

func (s *CartService) RemoveLine(ctx context.Context, sessionID, lineID string) (*CartView, error) {
	lines, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	kept := lines[:0]
	for _, ln := range lines {
		if ln.ID != lineID {
			kept = append(kept, ln)
		}
	}

	if err := s.Store.Save(ctx, sessionID, kept); err != nil {
		return nil, err
	}
	view, err := s.price(ctx, kept)
	if err != nil {
		return nil, err
	}
	view.SessionID = sessionID
	return view, nil
}

func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	return s.Store.Delete(ctx, sessionID)
}
