package types

import "time"

// EarningEntry is one recorded daily-earnings observation for a position.
// Entries are ordered by (business date, created_at) ascending; the sequence
// may be sparse and the latest entry for a given date is the canonical one.
// NAV is an optional net-asset-value checkpoint used to derive total earnings
// by differencing.
type EarningEntry struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PositionID uint      `gorm:"not null;index" json:"position_id"`
	Date       time.Time `gorm:"column:earn_date;type:date;index" json:"date"`
	Amount     float64   `gorm:"not null;default:0" json:"amount"`
	NAV        *float64  `gorm:"column:nav" json:"nav"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (EarningEntry) TableName() string {
	return "position_earnings"
}
