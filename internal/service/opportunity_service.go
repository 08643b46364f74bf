package service

import (
	"math/rand"
	"sync"
	"time"

	"github.com/wolfbtcc/Zenithdefi/internal/models"
	"github.com/wolfbtcc/Zenithdefi/internal/ws"
)

// Profit split of an executed operation.
const (
	UserProfitShare  = 0.70
	PlatformFeeShare = 0.30
)

var DefaultPairs = []string{"ADA/USDT", "BTC/USDT", "ETH/USDT", "SOL/USDT", "XRP/USDT", "DOT/USDT"}

var DefaultExchanges = []string{"Coinbase", "Binance", "OKX", "KuCoin", "Bitstamp", "Huobi"}

// OpportunityGenerator produces the simulated spreads shown to the user.
// The randomness is presentation flavor, not a market model; tests swap in a
// fixed generator.
type OpportunityGenerator interface {
	Generate() *models.Opportunity
}

type RandomOpportunityGenerator struct {
	pairs      []string
	exchanges  []string
	minPercent float64
	maxPercent float64

	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomOpportunityGenerator(pairs, exchanges []string, minPercent, maxPercent float64) *RandomOpportunityGenerator {
	if len(pairs) == 0 {
		pairs = DefaultPairs
	}
	if len(exchanges) < 2 {
		exchanges = DefaultExchanges
	}
	return &RandomOpportunityGenerator{
		pairs:      pairs,
		exchanges:  exchanges,
		minPercent: minPercent,
		maxPercent: maxPercent,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (g *RandomOpportunityGenerator) Generate() *models.Opportunity {
	g.mu.Lock()
	defer g.mu.Unlock()

	pair := g.pairs[g.rng.Intn(len(g.pairs))]

	buy := g.exchanges[g.rng.Intn(len(g.exchanges))]
	sell := buy
	for sell == buy {
		sell = g.exchanges[g.rng.Intn(len(g.exchanges))]
	}

	// Product of two uniform draws keeps typical spreads near the low end of
	// the band.
	factor := g.rng.Float64() * g.rng.Float64()
	percentage := g.minPercent + factor*(g.maxPercent-g.minPercent)

	return &models.Opportunity{
		Pair:         pair,
		BuyExchange:  buy,
		SellExchange: sell,
		Percentage:   percentage,
		GeneratedAt:  time.Now(),
	}
}

// Quote splits the gross spread of an opportunity into the user's 70% share,
// the platform's 30% cut and the resulting total return.
func Quote(investment, percentage float64) *models.OperationQuote {
	gross := investment * percentage / 100
	userProfit := gross * UserProfitShare
	return &models.OperationQuote{
		Investment:  investment,
		Percentage:  percentage,
		GrossProfit: gross,
		UserProfit:  userProfit,
		PlatformFee: gross * PlatformFeeShare,
		TotalReturn: investment + userProfit,
	}
}

type OpportunityService interface {
	// Current returns the opportunity on offer, generating the first one on
	// demand.
	Current() *models.Opportunity
	// Refresh replaces the current opportunity and pushes it to the feed.
	Refresh() *models.Opportunity
	// Run refreshes on the configured interval until the context of the
	// process ends. Meant to run on its own goroutine.
	Run()
}

type opportunityService struct {
	generator OpportunityGenerator
	hub       *ws.Hub
	interval  time.Duration

	mu      sync.RWMutex
	current *models.Opportunity
}

func NewOpportunityService(generator OpportunityGenerator, hub *ws.Hub, interval time.Duration) OpportunityService {
	return &opportunityService{
		generator: generator,
		hub:       hub,
		interval:  interval,
	}
}

func (s *opportunityService) Current() *models.Opportunity {
	s.mu.RLock()
	current := s.current
	s.mu.RUnlock()

	if current != nil {
		return current
	}
	return s.Refresh()
}

func (s *opportunityService) Refresh() *models.Opportunity {
	opportunity := s.generator.Generate()

	s.mu.Lock()
	s.current = opportunity
	s.mu.Unlock()

	if s.hub != nil {
		s.hub.BroadcastOpportunity(opportunity)
	}
	return opportunity
}

func (s *opportunityService) Run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for range ticker.C {
		s.Refresh()
	}
}
