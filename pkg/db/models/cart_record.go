package models

import "time"

// CartRecord is one persisted cart, addressed by record name.
type CartRecord struct {
	Name      string    `gorm:"column:name;primaryKey"`
	Payload   string    `gorm:"column:payload;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (CartRecord) TableName() string {
	return "cart_records"
}
