package mocks

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/rxtech-lab/option-regression/internal/types"
)

// DataGenerator generates daily price bars for testing and benchmarking.
type DataGenerator struct {
	rng *rand.Rand
}

// NewDataGenerator creates a new DataGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig configures how bars are generated.
type GeneratorConfig struct {
	// StartDate is the date of the first bar
	StartDate time.Time
	// Count is the number of trading days to generate
	Count int
	// InitialPrice is the starting price
	InitialPrice float64
	// Volatility controls price movement (0.01 = 1% typical daily volatility)
	Volatility float64
	// Trend is the drift factor over the whole series (-0.5 to 0.5 for bearish to bullish)
	Trend float64
	// VolumeBase is the average volume per bar
	VolumeBase float64
}

// DefaultConfig returns a year of daily bars around 100.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		StartDate:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Count:        250,
		InitialPrice: 100.0,
		Volatility:   0.01,
		Trend:        0.0,
		VolumeBase:   1_000_000,
	}
}

// Generate creates ascending daily bars following a geometric Brownian motion.
// Weekends are skipped.
func (g *DataGenerator) Generate(config GeneratorConfig) []types.PriceBar {
	bars := make([]types.PriceBar, config.Count)
	currentPrice := config.InitialPrice
	currentDate := config.StartDate

	for i := 0; i < config.Count; i++ {
		for currentDate.Weekday() == time.Saturday || currentDate.Weekday() == time.Sunday {
			currentDate = currentDate.AddDate(0, 0, 1)
		}

		open := currentPrice

		// Box-Muller transform for normal distribution
		u1 := g.rng.Float64()
		u2 := g.rng.Float64()
		z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)

		drift := config.Trend / float64(config.Count)

		closePrice := open * (1 + config.Volatility*z + drift)
		if closePrice <= 0 {
			closePrice = open * 0.99
		}

		high := math.Max(open, closePrice) + math.Abs(g.rng.Float64()*config.Volatility*open*0.5)
		low := math.Min(open, closePrice) - math.Abs(g.rng.Float64()*config.Volatility*open*0.5)
		if low <= 0 {
			low = math.Min(open, closePrice) * 0.99
		}

		volume := config.VolumeBase * (0.7 + g.rng.Float64()*0.6)

		bars[i] = types.PriceBar{
			Date:    currentDate,
			Open:    roundToDecimals(open, 2),
			Close:   roundToDecimals(closePrice, 2),
			High:    roundToDecimals(high, 2),
			Low:     roundToDecimals(low, 2),
			Volume:  fmt.Sprintf("%.2fM", volume/1_000_000),
			Percent: fmt.Sprintf("%.2f%%", (closePrice-open)/open*100),
		}

		currentPrice = bars[i].Close
		currentDate = currentDate.AddDate(0, 0, 1)
	}

	return bars
}

// ExportCSV renders bars newest first with the default Chinese headers,
// matching the layout of downloaded history files.
func ExportCSV(bars []types.PriceBar) string {
	var sb strings.Builder

	sb.WriteString("\"日期\",\"收盘\",\"开盘\",\"高\",\"低\",\"交易量\",\"涨跌幅\"\n")

	for i := len(bars) - 1; i >= 0; i-- {
		bar := bars[i]
		fmt.Fprintf(&sb, "%q,%q,%q,%q,%q,%q,%q\n",
			bar.Date.Format("2006-01-02"),
			formatPrice(bar.Close),
			formatPrice(bar.Open),
			formatPrice(bar.High),
			formatPrice(bar.Low),
			bar.Volume,
			bar.Percent,
		)
	}

	return sb.String()
}

// GenerateYear is a convenience function returning 250 daily bars with a fixed seed.
func GenerateYear() []types.PriceBar {
	return NewDataGenerator(42).Generate(DefaultConfig())
}

func formatPrice(price float64) string {
	return fmt.Sprintf("%.2f", price)
}

// roundToDecimals rounds a float64 to the specified number of decimal places.
func roundToDecimals(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))

	return math.Round(val*pow) / pow
}
