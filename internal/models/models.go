package models

import (
	"time"
)

// Order statuses. Delivered and cancelled are terminal.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Order item types.
const (
	ItemTypeCustom   = "custom"
	ItemTypePrebuilt = "prebuilt"
	ItemTypeOther    = "other"
)

// Admin roles.
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

// Image owner types.
const (
	OwnerBaseColor    = "color"
	OwnerKeycapDesign = "keycap"
	OwnerSwitchType   = "switch"
	OwnerPrebuilt     = "prebuilt"
	OwnerOtherFidget  = "other"
)

type BaseColor struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"     json:"id"`
	Name      string    `gorm:"not null"                     json:"name"`
	HexCode   string    `gorm:"not null"                     json:"hex_code"`
	Price     float64   `gorm:"not null"                     json:"price"`
	Cost      float64   `gorm:"not null"                     json:"cost"`
	Quantity  int       `gorm:"not null;check:quantity >= 0" json:"quantity"`
	Active    bool      `gorm:"not null"                     json:"active"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type KeycapDesign struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"     json:"id"`
	Name        string    `gorm:"not null"                     json:"name"`
	Description string    `json:"description"`
	Price       float64   `gorm:"not null"                     json:"price"`
	Cost        float64   `gorm:"not null"                     json:"cost"`
	Quantity    int       `gorm:"not null;check:quantity >= 0" json:"quantity"`
	Active      bool      `gorm:"not null"                     json:"active"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type SwitchType struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"     json:"id"`
	Name         string    `gorm:"not null"                     json:"name"`
	Description  string    `json:"description"`
	SoundProfile string    `json:"sound_profile"`
	Price        float64   `gorm:"not null"                     json:"price"`
	Cost         float64   `gorm:"not null"                     json:"cost"`
	Quantity     int       `gorm:"not null;check:quantity >= 0" json:"quantity"`
	Active       bool      `gorm:"not null"                     json:"active"`
	ImageURL     string    `json:"image_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PrebuiltFidget is a curated combination of one base color, one keycap design
// and one switch type. Its cost is derived from the referenced components.
type PrebuiltFidget struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string    `gorm:"not null"                 json:"name"`
	Description     string    `json:"description"`
	BaseColorID     uint      `gorm:"index;not null"           json:"base_color_id"`
	KeycapDesignID  uint      `gorm:"index;not null"           json:"keycap_design_id"`
	SwitchTypeID    uint      `gorm:"index;not null"           json:"switch_type_id"`
	Price           float64   `gorm:"not null"                 json:"price"`
	DiscountPercent float64   `json:"discount_percent"`
	Active          bool      `gorm:"not null"                 json:"active"`
	Featured        bool      `gorm:"default:false"            json:"featured"`
	Tags            string    `json:"tags"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type OtherFidget struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"     json:"id"`
	Name        string    `gorm:"not null"                     json:"name"`
	Description string    `json:"description"`
	Category    string    `gorm:"index"                        json:"category"`
	Price       float64   `gorm:"not null"                     json:"price"`
	Cost        float64   `gorm:"not null"                     json:"cost"`
	Quantity    int       `gorm:"not null;check:quantity >= 0" json:"quantity"`
	Active      bool      `gorm:"not null"                     json:"active"`
	Featured    bool      `gorm:"default:false"                json:"featured"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ItemImage is one entry of the ordered image list attached to a catalog item.
// PublicID is the object-store key used for deletion.
type ItemImage struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"       json:"id"`
	OwnerType string `gorm:"index:idx_image_owner;not null" json:"owner_type"`
	OwnerID   uint   `gorm:"index:idx_image_owner;not null" json:"owner_id"`
	URL       string `gorm:"not null"                       json:"url"`
	PublicID  string `gorm:"not null"                       json:"public_id"`
	IsPrimary bool   `gorm:"default:false"                  json:"is_primary"`
	SortOrder int    `gorm:"default:0"                      json:"sort_order"`
}

type Order struct {
	ID           uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	Reference    string      `gorm:"uniqueIndex;not null"     json:"reference"`
	CustomerName string      `gorm:"not null"                 json:"customer_name"`
	Email        string      `json:"email"`
	Phone        string      `gorm:"not null"                 json:"phone"`
	Address      string      `gorm:"not null"                 json:"address"`
	City         string      `json:"city"`
	Notes        string      `json:"notes"`
	Status       string      `gorm:"index;not null;default:pending" json:"status"`
	Subtotal     float64     `json:"subtotal"`
	ShippingCost float64     `json:"shipping_cost"`
	Total        float64     `json:"total"`
	TotalCost    float64     `json:"total_cost"`
	Profit       float64     `json:"profit"`
	Items        []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID               uint    `gorm:"primaryKey;autoIncrement"    json:"id"`
	OrderID          uint    `gorm:"index;not null"              json:"order_id"`
	ItemType         string  `gorm:"not null"                    json:"item_type"`
	BaseColorID      uint    `json:"base_color_id,omitempty"`
	KeycapDesignID   uint    `json:"keycap_design_id,omitempty"`
	SwitchTypeID     uint    `json:"switch_type_id,omitempty"`
	PrebuiltFidgetID uint    `json:"prebuilt_fidget_id,omitempty"`
	OtherFidgetID    uint    `json:"other_fidget_id,omitempty"`
	Quantity         int     `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice        float64 `json:"unit_price"`
	UnitCost         float64 `json:"unit_cost"`
	TotalPrice       float64 `json:"total_price"`
	TotalCost        float64 `json:"total_cost"`
	Profit           float64 `json:"profit"`
}

type Admin struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string     `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string     `gorm:"not null"                 json:"-"`
	Name         string     `gorm:"not null"                 json:"name"`
	Role         string     `gorm:"not null;default:admin"   json:"role"`
	Active       bool       `gorm:"default:true"             json:"active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// All lists every persisted model in AutoMigrate order.
func All() []any {
	return []any{
		&BaseColor{},
		&KeycapDesign{},
		&SwitchType{},
		&PrebuiltFidget{},
		&OtherFidget{},
		&ItemImage{},
		&Order{},
		&OrderItem{},
		&Admin{},
	}
}
