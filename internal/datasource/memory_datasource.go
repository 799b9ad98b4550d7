package datasource

import (
	"iter"
	"slices"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/option-regression/internal/types"
)

// MemoryDataSource serves an already parsed bar history.
type MemoryDataSource struct {
	bars []types.PriceBar
}

// NewMemoryDataSource returns a source over a copy of bars sorted ascending by date.
func NewMemoryDataSource(bars []types.PriceBar) *MemoryDataSource {
	sorted := slices.Clone(bars)
	slices.SortStableFunc(sorted, func(a, b types.PriceBar) int {
		return a.Date.Compare(b.Date)
	})

	return &MemoryDataSource{bars: sorted}
}

// Initialize implements BarSource. The bars are supplied at construction, so path is ignored.
func (m *MemoryDataSource) Initialize(path string) error {
	return nil
}

// ReadAll implements BarSource.
func (m *MemoryDataSource) ReadAll(start optional.Option[time.Time], end optional.Option[time.Time]) iter.Seq2[types.PriceBar, error] {
	return func(yield func(types.PriceBar, error) bool) {
		for _, bar := range m.bars {
			if !inRange(bar.Date, start, end) {
				continue
			}

			if !yield(bar, nil) {
				return
			}
		}
	}
}

// Close implements BarSource.
func (m *MemoryDataSource) Close() error {
	return nil
}
