package cron

import (
	"os"

	"github.com/gofiber/fiber/v2/log"
	"github.com/robfig/cron/v3"

	"tokennove.com/db"
	"tokennove.com/services"
	"tokennove.com/types"
)

// StartScheduler wires the background health jobs: an hourly reachability
// probe against the price provider and a daily ledger volume log. Probe
// results are logged and discarded; nothing is cached across requests.
func StartScheduler() {
	ProbeProvider()

	c := cron.New(cron.WithSeconds())

	if _, err := c.AddFunc("0 0 * * * *", ProbeProvider); err != nil {
		log.Errorf("failed to schedule provider probe: %v", err)
	}
	if _, err := c.AddFunc("0 5 0 * * *", LogLedgerVolume); err != nil {
		log.Errorf("failed to schedule ledger volume log: %v", err)
	}

	c.Start()
}

func ProbeProvider() {
	symbols, err := services.ProbeAllMids(os.Getenv("PRICE_API_URL"))
	if err != nil {
		log.Warnf("price provider probe failed: %v", err)
		return
	}
	log.Infof("price provider reachable, %d symbols quoted", symbols)
}

func LogLedgerVolume() {
	var positions, entries int64
	db.DB.Model(&types.Position{}).Count(&positions)
	db.DB.Model(&types.EarningEntry{}).Count(&entries)
	log.Infof("ledger volume: %d positions, %d earning entries", positions, entries)
}
