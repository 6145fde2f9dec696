package dto

// PositionView is the per-position valuation snapshot served to the table
// renderer. Price is nil when the provider could not quote the asset; the
// row is still emitted with its other fields degraded to neutral defaults.
type PositionView struct {
	ID         uint      `json:"id"`
	Platform   string    `json:"platform"`
	Coin       string    `json:"coin"`
	Price      *float64  `json:"price"`
	Principal  float64   `json:"principal"`
	Today      float64   `json:"today"`
	Total      float64   `json:"total"`
	APY        string    `json:"apy"`
	Duration   int64     `json:"duration"`
	Strategy   string    `json:"strategy"`
	YieldCurve []float64 `json:"yieldCurve"`
}

type PortfolioTotals struct {
	PrincipalTotal float64 `json:"principalTotal"`
	TodayTotal     float64 `json:"todayTotal"`
	OverallTotal   float64 `json:"overallTotal"`
}

// PortfolioResponse is the full payload of GET /api/portfolio. OriginalData
// carries the same array as Positions: the legacy renderer reads the old
// field name, newer clients read the new one.
type PortfolioResponse struct {
	PrincipalTotal float64        `json:"principalTotal"`
	TodayTotal     float64        `json:"todayTotal"`
	OverallTotal   float64        `json:"overallTotal"`
	Positions      []PositionView `json:"positions"`
	OriginalData   []PositionView `json:"originalData"`
}

// ErrorResponse is returned with status 500 when the position catalog itself
// cannot be read.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
