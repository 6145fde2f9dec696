package types

import "time"

// Position is one principal deposit tracked on a single platform in a single
// asset. Catalog rows are read-only for the duration of an aggregation pass.
type Position struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Platform  string    `gorm:"not null" json:"platform"`
	Coin      string    `gorm:"not null" json:"coin"`
	Principal float64   `gorm:"not null;default:0" json:"principal"`
	Duration  string    `json:"duration"`
	Strategy  string    `json:"strategy"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Position) TableName() string {
	return "positions"
}
