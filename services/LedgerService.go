package services

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"tokennove.com/types"
)

// LedgerService reads the per-position earnings ledger. Every query failure
// is caught here, logged and degraded to a neutral default (0 or an empty
// curve) so one position's data gap cannot blank the whole portfolio.
type LedgerService struct {
	db *gorm.DB
}

func NewLedgerService(database *gorm.DB) *LedgerService {
	return &LedgerService{db: database}
}

// BusinessDate truncates t to its calendar day in UTC, the granularity the
// ledger keys earnings by.
func BusinessDate(t time.Time) time.Time {
	utc := t.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
}

// TodayEarnings returns the amount of the latest entry recorded for the
// given business date, or 0 when the date has no entry.
func (s *LedgerService) TodayEarnings(ctx context.Context, positionID uint, date time.Time) float64 {
	var entry types.EarningEntry
	err := s.db.WithContext(ctx).
		Where("position_id = ? AND earn_date = ?", positionID, BusinessDate(date)).
		Order("created_at DESC").
		First(&entry).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warnf("today earnings query failed for position %d: %v", positionID, err)
		}
		return 0
	}
	return entry.Amount
}

// EarningsCurve returns all recorded daily amounts ascending by
// (business date, created_at). Always non-nil so the JSON field stays [].
func (s *LedgerService) EarningsCurve(ctx context.Context, positionID uint) []float64 {
	amounts := []float64{}
	err := s.db.WithContext(ctx).
		Model(&types.EarningEntry{}).
		Where("position_id = ?", positionID).
		Order("earn_date ASC, created_at ASC").
		Pluck("amount", &amounts).Error
	if err != nil {
		log.Warnf("earnings curve query failed for position %d: %v", positionID, err)
		return []float64{}
	}
	return amounts
}

// NAVDelta returns the last recorded net-asset-value snapshot minus the
// earliest one, over the rows that carry a snapshot. 0 when no snapshot
// exists; a single snapshot differences to 0 on its own.
func (s *LedgerService) NAVDelta(ctx context.Context, positionID uint) float64 {
	var navs []float64
	err := s.db.WithContext(ctx).
		Model(&types.EarningEntry{}).
		Where("position_id = ? AND nav IS NOT NULL", positionID).
		Order("earn_date ASC, created_at ASC").
		Pluck("nav", &navs).Error
	if err != nil {
		log.Warnf("nav delta query failed for position %d: %v", positionID, err)
		return 0
	}
	if len(navs) == 0 {
		return 0
	}
	return navs[len(navs)-1] - navs[0]
}

// RecordCount returns the number of ledger entries for the position, the
// day-granularity proxy for how long it has been running.
func (s *LedgerService) RecordCount(ctx context.Context, positionID uint) int64 {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&types.EarningEntry{}).
		Where("position_id = ?", positionID).
		Count(&count).Error
	if err != nil {
		log.Warnf("record count query failed for position %d: %v", positionID, err)
		return 0
	}
	return count
}

// ElapsedMinutes returns the floor of the minutes between the earliest and
// the most recent entry timestamps. 0 with fewer than two entries.
func (s *LedgerService) ElapsedMinutes(ctx context.Context, positionID uint) int64 {
	var stamps []time.Time
	err := s.db.WithContext(ctx).
		Model(&types.EarningEntry{}).
		Where("position_id = ?", positionID).
		Order("created_at ASC").
		Pluck("created_at", &stamps).Error
	if err != nil {
		log.Warnf("elapsed minutes query failed for position %d: %v", positionID, err)
		return 0
	}
	if len(stamps) < 2 {
		return 0
	}
	return int64(stamps[len(stamps)-1].Sub(stamps[0]).Minutes())
}
