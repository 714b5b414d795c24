package model

import "time"

// Inventory はカート追加時の上限チェックにだけ使う（カート追加では在庫を減らさない）。
type Product struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"not null" json:"price"`
	TaxRate     float64   `gorm:"not null;default:0" json:"tax_rate"`
	Inventory   int64     `gorm:"not null;default:0" json:"inventory"`
	CategoryID  int64     `gorm:"not null;index" json:"category_id"`
	Category    *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
