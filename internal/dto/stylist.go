package dto

// ── Stylist DTOs ──

// CreateStylistRequest create a stylist.
type CreateStylistRequest struct {
	DisplayName string `json:"display_name" binding:"required,min=2,max=100"`
	Phone       string `json:"phone"        binding:"omitempty,max=30"`
	Color       string `json:"color"        binding:"omitempty,len=7"` // "#rrggbb"
}

// UpdateStylistRequest partial stylist update.
type UpdateStylistRequest struct {
	DisplayName *string `json:"display_name" binding:"omitempty,min=2,max=100"`
	Phone       *string `json:"phone"        binding:"omitempty,max=30"`
	Color       *string `json:"color"        binding:"omitempty,len=7"`
	IsActive    *bool   `json:"is_active"`
}

// StylistResponse stylist detail.
type StylistResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Phone       string `json:"phone,omitempty"`
	Color       string `json:"color,omitempty"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// StylistContext the conversational context served from the TTL cache.
type StylistContext struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Color       string `json:"color,omitempty"`
	IsActive    bool   `json:"is_active"`
}
