package types

// Config carries the startup environment, validated once in main. The
// aggregation pipeline receives these values through constructors and never
// reads the environment itself.
type Config struct {
	ListenPath      string `validate:"required"`
	PriceAPIURL     string `validate:"required,url"`
	WorkerLimit     int    `validate:"gte=1"`
	CORSAllowOrigin string `validate:"required"`
}
