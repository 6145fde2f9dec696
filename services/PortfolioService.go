package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"tokennove.com/dto"
	"tokennove.com/types"
)

const minutesPerYear = 365 * 24 * 60

const DefaultWorkerLimit = 8

// PortfolioService runs one valuation aggregation pass: catalog, per-position
// ledger reads and price resolution, then portfolio totals. Everything it
// holds is request-scoped; build one per pass and throw it away.
type PortfolioService struct {
	db          *gorm.DB
	ledger      *LedgerService
	resolver    *PriceResolver
	workerLimit int
}

func NewPortfolioService(database *gorm.DB, priceURL string, workerLimit int) *PortfolioService {
	if workerLimit < 1 {
		workerLimit = DefaultWorkerLimit
	}
	return &PortfolioService{
		db:          database,
		ledger:      NewLedgerService(database),
		resolver:    NewPriceResolver(priceURL),
		workerLimit: workerLimit,
	}
}

// ListPositions loads the full catalog ordered by id. A store error here is
// fatal for the pass: a failed read must stay distinguishable from an empty
// catalog or the totals silently collapse to zero.
func (s *PortfolioService) ListPositions(ctx context.Context) ([]types.Position, error) {
	var positions []types.Position
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&positions).Error; err != nil {
		return nil, fmt.Errorf("listing positions: %w", err)
	}
	return positions, nil
}

// BuildPortfolio produces the complete response payload. Per-position work
// fans out on a bounded worker group sized to the store's connection pool;
// results land in an index-addressed slice so the output order matches
// catalog order regardless of completion order. Workers degrade locally and
// never fail the group.
func (s *PortfolioService) BuildPortfolio(ctx context.Context) (*dto.PortfolioResponse, error) {
	positions, err := s.ListPositions(ctx)
	if err != nil {
		return nil, err
	}

	today := BusinessDate(time.Now())
	views := make([]dto.PositionView, len(positions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workerLimit)
	for i, position := range positions {
		i, position := i, position
		g.Go(func() error {
			views[i] = s.buildView(gctx, position, today)
			return nil
		})
	}
	_ = g.Wait()

	return AssemblePortfolio(views), nil
}

func (s *PortfolioService) buildView(ctx context.Context, position types.Position, today time.Time) dto.PositionView {
	earnedToday := s.ledger.TodayEarnings(ctx, position.ID, today)
	total := s.ledger.NAVDelta(ctx, position.ID)
	elapsed := s.ledger.ElapsedMinutes(ctx, position.ID)
	count := s.ledger.RecordCount(ctx, position.ID)
	curve := s.ledger.EarningsCurve(ctx, position.ID)
	price := s.resolver.Resolve(position.Coin)

	return dto.PositionView{
		ID:         position.ID,
		Platform:   position.Platform,
		Coin:       position.Coin,
		Price:      price,
		Principal:  position.Principal,
		Today:      earnedToday,
		Total:      total,
		APY:        AnnualizedYield(total, position.Principal, elapsed),
		Duration:   count,
		Strategy:   position.Strategy,
		YieldCurve: curve,
	}
}

// AnnualizedYield extrapolates the return observed over the elapsed window to
// a yearly rate, formatted to exactly two decimals. This is a simple-interest
// approximation: the per-minute rate is scaled linearly to a year, not
// compounded. "0.00" whenever principal or the elapsed window is not positive.
func AnnualizedYield(total, principal float64, elapsedMinutes int64) string {
	if principal <= 0 || elapsedMinutes <= 0 {
		return "0.00"
	}
	apy := (total / principal) * (float64(minutesPerYear) / float64(elapsedMinutes)) * 100
	return fmt.Sprintf("%.2f", toNumber(apy))
}

// toNumber is the single coercion point for values coming out of possibly
// degraded views: anything that is not a finite number counts as zero.
func toNumber(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// CalcTotals sums principal, today and total across all views, coercing any
// non-finite field to zero first. An empty input yields the zero triple.
func CalcTotals(views []dto.PositionView) dto.PortfolioTotals {
	var totals dto.PortfolioTotals
	for _, view := range views {
		totals.PrincipalTotal += toNumber(view.Principal)
		totals.TodayTotal += toNumber(view.Today)
		totals.OverallTotal += toNumber(view.Total)
	}
	return totals
}

// AssemblePortfolio merges views and totals into the response contract.
// Pure transformation, no I/O.
func AssemblePortfolio(views []dto.PositionView) *dto.PortfolioResponse {
	totals := CalcTotals(views)
	return &dto.PortfolioResponse{
		PrincipalTotal: totals.PrincipalTotal,
		TodayTotal:     totals.TodayTotal,
		OverallTotal:   totals.OverallTotal,
		Positions:      views,
		OriginalData:   views,
	}
}
