package repo

import (
	"errors"

	"gorm.io/gorm"
)

// Domain errors surfaced by the repositories. Handlers map these to 409.
var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrOrderNotDeletable = errors.New("only cancelled orders can be deleted")
)

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}
