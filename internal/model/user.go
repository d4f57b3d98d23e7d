package model

// Dashboard roles.
const (
	RoleAdmin   = "admin"
	RoleStylist = "stylist"
)

// AdminUser a dashboard account, maps to admin_users
// Accounts are provisioned by migration or by an admin; there is no public
// self-registration.
type AdminUser struct {
	UserID       string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Email        string  `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string  `gorm:"type:varchar(100);not null"                     json:"-"`
	DisplayName  string  `gorm:"type:varchar(100);not null"                     json:"display_name"`
	Role         string  `gorm:"type:varchar(20);not null;default:'stylist'"    json:"role"`
	StylistID    *string `gorm:"type:uuid"                                      json:"stylist_id,omitempty"` // set when the account belongs to a stylist
	SoftDeleteModel
}

// TableName table name
func (AdminUser) TableName() string { return "admin_users" }
