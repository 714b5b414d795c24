package model

import "time"

// カートの明細
// 同一 (cart_id, product_id) は1行に集約する（追加は数量加算）。
type CartItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID    int64     `gorm:"not null;index;uniqueIndex:uq_cart_product" json:"cart_id"`
	ProductID int64     `gorm:"not null;index;uniqueIndex:uq_cart_product" json:"product_id"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
