// Package report renders run results as the plain-text trade log and summary.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rxtech-lab/option-regression/internal/types"
	"github.com/rxtech-lab/option-regression/pkg/errors"
	"github.com/shopspring/decimal"
)

// Banner is printed once before any run output.
const Banner = "Option Regression!"

// DefaultPrecision is the number of decimal places numbers are rounded to.
const DefaultPrecision int32 = 4

// Writer prints run results to an output stream.
type Writer struct {
	out        io.Writer
	precision  int32
	titleStyle lipgloss.Style
	errorStyle lipgloss.Style
}

// NewWriter returns a Writer for out. A negative precision falls back to DefaultPrecision.
// Styling is only applied when out is a terminal.
func NewWriter(out io.Writer, precision int32) *Writer {
	if precision < 0 {
		precision = DefaultPrecision
	}

	renderer := lipgloss.NewRenderer(out)

	return &Writer{
		out:        out,
		precision:  precision,
		titleStyle: renderer.NewStyle().Bold(true),
		errorStyle: renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	}
}

// WriteBanner prints the program banner.
func (w *Writer) WriteBanner() error {
	_, err := fmt.Fprintln(w.out, Banner)

	return err
}

// WriteAll prints every result in order, separated by a blank line.
func (w *Writer) WriteAll(results []types.RunResult) error {
	for i, result := range results {
		if i > 0 {
			if _, err := fmt.Fprintln(w.out); err != nil {
				return err
			}
		}

		if err := w.WriteRun(result); err != nil {
			return err
		}
	}

	return nil
}

// WriteRun prints a run's title, its trade log and the summary block.
// A failed run also prints its error above the summary.
func (w *Writer) WriteRun(result types.RunResult) error {
	var sb strings.Builder

	sb.WriteString(w.titleStyle.Render(w.title(result.Config)))
	sb.WriteString("\n")

	for _, trade := range result.Trades {
		sb.WriteString(w.TradeLine(trade))
		sb.WriteString("\n")
	}

	if result.Err != nil {
		sb.WriteString(w.errorStyle.Render(FailureLine(result.Err)))
		sb.WriteString("\n")
	}

	sb.WriteString(w.Summary(result))

	_, err := io.WriteString(w.out, sb.String())

	return err
}

// TradeLine formats one trade, e.g. "Buy 300 at 9.95" or "Sell 300 at 10.05 earned 30".
func (w *Writer) TradeLine(trade types.TradeEvent) string {
	line := fmt.Sprintf("%s %d at %s", trade.Action.Label(), trade.Quantity, w.FormatNumber(trade.Price))

	if trade.Realized.IsSome() {
		line += " earned " + w.FormatNumber(trade.Realized.Unwrap())
	}

	return line
}

// Summary formats the closing summary block of a run.
func (w *Writer) Summary(result types.RunResult) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Start Money: %s\n", w.FormatNumber(result.StartMoney))
	fmt.Fprintf(&sb, "Balance: %s\n", w.FormatNumber(result.State.Balance))
	fmt.Fprintf(&sb, "Option Earned: %s\n", w.FormatNumber(result.State.OptionIncome))
	fmt.Fprintf(&sb, "Stock Earned: %s\n", w.FormatNumber(result.State.StockIncome))
	fmt.Fprintf(&sb, "Current Hold Volume: %d\n", result.State.HeldVolume)
	fmt.Fprintf(&sb, "Position: %s, Trades: %d, Closed Trades: %d\n",
		result.State.Side(), result.NumberOfTrades(), len(result.ClosedTrades()))

	return sb.String()
}

// FormatNumber rounds v to the writer's precision and drops trailing zeros.
func (w *Writer) FormatNumber(v float64) string {
	return FormatNumber(v, w.precision)
}

// FormatNumber rounds v to precision decimal places and drops trailing zeros.
// NaN and infinities are printed as is.
func FormatNumber(v float64, precision int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	return decimal.NewFromFloat(v).Round(precision).String()
}

// FailureLine describes why a run was aborted.
func FailureLine(err error) string {
	switch {
	case errors.IsInvariantViolation(err):
		return "Run failed (invariant violation): " + err.Error()
	case errors.IsConfigurationError(err):
		return "Run failed (configuration error): " + err.Error()
	default:
		return "Run failed: " + err.Error()
	}
}

func (w *Writer) title(cfg types.StrategyConfig) string {
	mode := "long only"
	if cfg.AllowShort {
		mode = "two direction"
	}

	return fmt.Sprintf("== %s (%s, period %d, premium %s) ==",
		cfg.Name, mode, cfg.Period, FormatNumber(cfg.PremiumRate, w.precision+2))
}
