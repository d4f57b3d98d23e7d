package model

// Stylist a salon professional whose agenda is managed, maps to stylists
type Stylist struct {
	StylistID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"stylist_id"`
	DisplayName string `gorm:"type:varchar(100);not null"                     json:"display_name"`
	Phone       string `gorm:"type:varchar(30)"                               json:"phone,omitempty"`
	Color       string `gorm:"type:varchar(7)"                                json:"color,omitempty"` // dashboard calendar color, "#rrggbb"
	IsActive    bool   `gorm:"not null;default:true"                          json:"is_active"`
	SoftDeleteModel
}

// TableName table name
func (Stylist) TableName() string { return "stylists" }
