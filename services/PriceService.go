package services

import (
	"encoding/json"
	"strconv"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2/log"
	"github.com/valyala/fasthttp"

	"tokennove.com/shared"
)

const DefaultPriceAPIURL = "https://api.hyperliquid.xyz/info"

// Symbols pegged to one unit of account, priced without a provider call.
var stableCoins = map[string]bool{
	"USDT": true,
	"USDC": true,
	"DAI":  true,
	"USDE": true,
}

var allMidsPayload = []byte(`{"type":"allMids"}`)

// PriceResolver maps asset symbols to current mid prices for a single
// aggregation pass. The provider is asked for all mids at most once per
// resolver; every lookup within the pass shares that result, and the whole
// resolver is discarded with the request so no price survives into the next
// pass. Safe for concurrent use by the worker pool.
type PriceResolver struct {
	baseURL string
	client  *fasthttp.Client

	once sync.Once
	mids map[string]float64
	err  error
}

func NewPriceResolver(baseURL string) *PriceResolver {
	if baseURL == "" {
		baseURL = DefaultPriceAPIURL
	}
	return &PriceResolver{
		baseURL: baseURL,
		client:  shared.HTTPClient(),
	}
}

// Resolve returns the current unit price for coin, case-insensitively. A
// stablecoin resolves to 1 with no outbound call. nil means unavailable:
// provider unreachable, malformed response or symbol not quoted. Never
// panics and never propagates a transport error.
func (r *PriceResolver) Resolve(coin string) *float64 {
	symbol := strings.ToUpper(coin)

	if stableCoins[symbol] {
		one := 1.0
		return &one
	}

	r.once.Do(r.fetchAllMids)
	if r.err != nil {
		return nil
	}

	price, ok := r.mids[symbol]
	if !ok {
		log.Warnf("price provider has no quote for %s", symbol)
		return nil
	}
	return &price
}

func (r *PriceResolver) fetchAllMids() {
	body, err := shared.PostJSON(r.client, r.baseURL, allMidsPayload)
	if err != nil {
		log.Warnf("allMids request to %s failed: %v", r.baseURL, err)
		r.err = err
		return
	}

	// The provider quotes either JSON numbers or numeric strings.
	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		log.Warnf("malformed allMids response from %s: %v", r.baseURL, err)
		r.err = err
		return
	}

	mids := make(map[string]float64, len(raw))
	for symbol, value := range raw {
		switch v := value.(type) {
		case float64:
			mids[strings.ToUpper(symbol)] = v
		case string:
			if parsed, err := strconv.ParseFloat(v, 64); err == nil {
				mids[strings.ToUpper(symbol)] = parsed
			}
		}
	}
	r.mids = mids
}

// ProbeAllMids fetches the full mid-price map once and reports how many
// symbols the provider currently quotes. Used by the scheduled health probe;
// the prices themselves are discarded.
func ProbeAllMids(baseURL string) (int, error) {
	resolver := NewPriceResolver(baseURL)
	resolver.once.Do(resolver.fetchAllMids)
	return len(resolver.mids), resolver.err
}
