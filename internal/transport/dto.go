package transport

// CreateComponentRequest covers base colors, keycap designs and switch types.
// Fields that do not apply to a given type are ignored by its handler.
type CreateComponentRequest struct {
	Name         string  `json:"name"`
	HexCode      string  `json:"hex_code"`
	Description  string  `json:"description"`
	SoundProfile string  `json:"sound_profile"`
	Price        float64 `json:"price"`
	Cost         float64 `json:"cost"`
	Quantity     int     `json:"quantity"`
	Active       *bool   `json:"active"`
	ImageURL     string  `json:"image_url"`
}

type PatchComponentRequest struct {
	Name         *string  `json:"name"`
	HexCode      *string  `json:"hex_code"`
	Description  *string  `json:"description"`
	SoundProfile *string  `json:"sound_profile"`
	Price        *float64 `json:"price"`
	Cost         *float64 `json:"cost"`
	Quantity     *int     `json:"quantity"`
	Active       *bool    `json:"active"`
	ImageURL     *string  `json:"image_url"`
}

type CreatePrebuiltRequest struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	BaseColorID     uint    `json:"base_color_id"`
	KeycapDesignID  uint    `json:"keycap_design_id"`
	SwitchTypeID    uint    `json:"switch_type_id"`
	Price           float64 `json:"price"`
	DiscountPercent float64 `json:"discount_percent"`
	Active          *bool   `json:"active"`
	Featured        *bool   `json:"featured"`
	Tags            string  `json:"tags"`
}

type PatchPrebuiltRequest struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	BaseColorID     *uint    `json:"base_color_id"`
	KeycapDesignID  *uint    `json:"keycap_design_id"`
	SwitchTypeID    *uint    `json:"switch_type_id"`
	Price           *float64 `json:"price"`
	DiscountPercent *float64 `json:"discount_percent"`
	Active          *bool    `json:"active"`
	Featured        *bool    `json:"featured"`
	Tags            *string  `json:"tags"`
}

type CreateOtherFidgetRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Cost        float64 `json:"cost"`
	Quantity    int     `json:"quantity"`
	Active      *bool   `json:"active"`
	Featured    *bool   `json:"featured"`
}

type PatchOtherFidgetRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"`
	Cost        *float64 `json:"cost"`
	Quantity    *int     `json:"quantity"`
	Active      *bool    `json:"active"`
	Featured    *bool    `json:"featured"`
}

// OrderLine is one requested line of a new order. Which ids are required
// depends on ItemType: custom needs the three component ids, prebuilt needs
// PrebuiltFidgetID, other needs OtherFidgetID.
type OrderLine struct {
	ItemType         string `json:"item_type"`
	BaseColorID      uint   `json:"base_color_id"`
	KeycapDesignID   uint   `json:"keycap_design_id"`
	SwitchTypeID     uint   `json:"switch_type_id"`
	PrebuiltFidgetID uint   `json:"prebuilt_fidget_id"`
	OtherFidgetID    uint   `json:"other_fidget_id"`
	Quantity         int    `json:"quantity"`
}

type CreateOrderRequest struct {
	Items        []OrderLine `json:"items"`
	CustomerName string      `json:"customer_name"`
	Email        string      `json:"email"`
	Phone        string      `json:"phone"`
	Address      string      `json:"address"`
	City         string      `json:"city"`
	Notes        string      `json:"notes"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type AdjustStockRequest struct {
	Quantity int `json:"quantity"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type DeleteMediaRequest struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

type AddImageRequest struct {
	OwnerType string `json:"owner_type"`
	OwnerID   uint   `json:"owner_id"`
	URL       string `json:"url"`
	PublicID  string `json:"public_id"`
	IsPrimary bool   `json:"is_primary"`
	SortOrder int    `json:"sort_order"`
}

type CartLineRequest struct {
	ItemType         string `json:"item_type"`
	BaseColorID      uint   `json:"base_color_id"`
	KeycapDesignID   uint   `json:"keycap_design_id"`
	SwitchTypeID     uint   `json:"switch_type_id"`
	PrebuiltFidgetID uint   `json:"prebuilt_fidget_id"`
	OtherFidgetID    uint   `json:"other_fidget_id"`
	Quantity         int    `json:"quantity"`
}

type UpdateCartLineRequest struct {
	Quantity int `json:"quantity"`
}
