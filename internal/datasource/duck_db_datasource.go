package datasource

import (
	"database/sql"
	"fmt"
	"iter"
	"slices"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/option-regression/internal/logger"
	"github.com/rxtech-lab/option-regression/internal/types"
	"github.com/rxtech-lab/option-regression/pkg/errors"
	"go.uber.org/zap"
)

const priceBarsView = "price_bars"

type DuckDBDataSource struct {
	db          *sql.DB
	logger      *logger.Logger
	sq          squirrel.StatementBuilderType
	columns     ColumnMapping
	dateLayouts []string
}

// NewDataSource creates a new DuckDB data source backed by an in-memory database.
// Initialize() exposes a csv file as the price_bars view.
func NewDataSource(columns ColumnMapping, dateLayouts []string, log *logger.Logger) (*DuckDBDataSource, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to open duckdb", err)
	}

	if len(dateLayouts) == 0 {
		dateLayouts = DefaultDateLayouts
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &DuckDBDataSource{
		db:          db,
		logger:      log,
		sq:          squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		columns:     columns,
		dateLayouts: dateLayouts,
	}, nil
}

// Initialize implements BarSource.
func (d *DuckDBDataSource) Initialize(path string) error {
	d.logger.Debug("Initializing DuckDB data source", zap.String("path", path))

	_, err := d.db.Exec(fmt.Sprintf(`DROP VIEW IF EXISTS %s;`, priceBarsView))
	if err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to drop existing view", err)
	}

	// Every column is read as text; numbers and dates are parsed with the
	// configured layouts so exported files with separators still load.
	query := fmt.Sprintf(`
		CREATE VIEW %s AS
		SELECT * FROM read_csv(%s, header = true, all_varchar = true);
	`, priceBarsView, quoteLiteral(path))

	_, err = d.db.Exec(query)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to read csv file %s", path)
	}

	return nil
}

// ReadAll implements BarSource.
// Rows are stored newest first in the exported files; they are returned sorted
// ascending by date.
func (d *DuckDBDataSource) ReadAll(start optional.Option[time.Time], end optional.Option[time.Time]) iter.Seq2[types.PriceBar, error] {
	return func(yield func(types.PriceBar, error) bool) {
		bars, err := d.load()
		if err != nil {
			yield(types.PriceBar{}, err)

			return
		}

		for _, bar := range bars {
			if !inRange(bar.Date, start, end) {
				continue
			}

			if !yield(bar, nil) {
				return
			}
		}
	}
}

func (d *DuckDBDataSource) load() ([]types.PriceBar, error) {
	query, args, err := d.buildSelectQuery()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query price bars", err)
	}
	defer rows.Close()

	bars := make([]types.PriceBar, 0, 512)
	row := 0

	for rows.Next() {
		row++

		var date, open, closePrice, high, low, volume, percent sql.NullString

		if err := rows.Scan(&date, &open, &closePrice, &high, &low, &volume, &percent); err != nil {
			return nil, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to scan row %d", row)
		}

		bar, err := d.parseRow(date.String, open.String, closePrice.String, high.String, low.String)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeDataParseFailed, err, "failed to parse row %d", row)
		}

		bar.Volume = volume.String
		bar.Percent = percent.String
		bars = append(bars, bar)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating rows", err)
	}

	slices.SortStableFunc(bars, func(a, b types.PriceBar) int {
		return a.Date.Compare(b.Date)
	})

	d.logger.Debug("Loaded price bars", zap.Int("count", len(bars)))

	return bars, nil
}

func (d *DuckDBDataSource) parseRow(date, open, closePrice, high, low string) (types.PriceBar, error) {
	var (
		bar types.PriceBar
		err error
	)

	if bar.Date, err = parseDate(date, d.dateLayouts); err != nil {
		return bar, err
	}

	if bar.Open, err = parsePrice(open); err != nil {
		return bar, err
	}

	if bar.Close, err = parsePrice(closePrice); err != nil {
		return bar, err
	}

	if bar.High, err = parseOptionalPrice(high); err != nil {
		return bar, err
	}

	if bar.Low, err = parseOptionalPrice(low); err != nil {
		return bar, err
	}

	return bar, nil
}

func (d *DuckDBDataSource) buildSelectQuery() (string, []interface{}, error) {
	return d.sq.
		Select(
			columnExpr(d.columns.Date, "bar_date"),
			columnExpr(d.columns.Open, "bar_open"),
			columnExpr(d.columns.Close, "bar_close"),
			columnExpr(d.columns.High, "bar_high"),
			columnExpr(d.columns.Low, "bar_low"),
			columnExpr(d.columns.Volume, "bar_volume"),
			columnExpr(d.columns.Percent, "bar_percent"),
		).
		From(priceBarsView).
		ToSql()
}

// Close implements BarSource.
func (d *DuckDBDataSource) Close() error {
	return d.db.Close()
}

func columnExpr(column, alias string) string {
	if column == "" {
		return fmt.Sprintf("CAST(NULL AS VARCHAR) AS %s", alias)
	}

	return fmt.Sprintf("%s AS %s", quoteIdentifier(column), alias)
}

func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func quoteLiteral(value string) string {
	return `'` + strings.ReplaceAll(value, `'`, `''`) + `'`
}
