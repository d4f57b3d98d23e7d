package model

// Customer a WhatsApp contact that books appointments, maps to customers
// The phone number is the WhatsApp identity and is unique per customer.
type Customer struct {
	CustomerID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"customer_id"`
	Phone      string `gorm:"type:varchar(30);not null;uniqueIndex"          json:"phone"`
	FirstName  string `gorm:"type:varchar(100);not null"                     json:"first_name"`
	LastName   string `gorm:"type:varchar(100)"                              json:"last_name,omitempty"`
	Notes      string `gorm:"type:varchar(500)"                              json:"notes,omitempty"`
	SoftDeleteModel
}

// TableName table name
func (Customer) TableName() string { return "customers" }
