package datasource

import (
	"iter"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/option-regression/internal/types"
	"github.com/rxtech-lab/option-regression/pkg/errors"
)

// BarSource supplies the price history of one instrument.
type BarSource interface {
	// Initialize initializes the data source with the given data path in csv format
	Initialize(path string) error
	// ReadAll yields every bar between start and end (both inclusive when set)
	// in ascending date order
	ReadAll(start optional.Option[time.Time], end optional.Option[time.Time]) iter.Seq2[types.PriceBar, error]
	// Close closes the data source and releases any resources
	Close() error
}

// ColumnMapping maps the header names of the input file to bar fields.
// Date, Open and Close are required. An empty optional column is read as blank.
type ColumnMapping struct {
	Date    string `yaml:"date" json:"date" validate:"required" jsonschema:"title=Date column,default=日期"`
	Open    string `yaml:"open" json:"open" validate:"required" jsonschema:"title=Opening price column,default=开盘"`
	Close   string `yaml:"close" json:"close" validate:"required" jsonschema:"title=Closing price column,default=收盘"`
	High    string `yaml:"high" json:"high" jsonschema:"title=High price column,default=高"`
	Low     string `yaml:"low" json:"low" jsonschema:"title=Low price column,default=低"`
	Volume  string `yaml:"volume" json:"volume" jsonschema:"title=Volume column,default=交易量"`
	Percent string `yaml:"percent" json:"percent" jsonschema:"title=Percent change column,default=涨跌幅"`
}

// DefaultColumnMapping returns the headers used by the exported daily history files.
func DefaultColumnMapping() ColumnMapping {
	return ColumnMapping{
		Date:    "日期",
		Open:    "开盘",
		Close:   "收盘",
		High:    "高",
		Low:     "低",
		Volume:  "交易量",
		Percent: "涨跌幅",
	}
}

// DefaultDateLayouts are tried in order when parsing the date column.
var DefaultDateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006/1/2",
	"01/02/2006",
	"1/2/2006",
	"2006年1月2日",
	"2006年01月02日",
	time.RFC3339,
}

// ValidateInputPath checks that path names an existing .csv file.
func ValidateInputPath(path string) error {
	if strings.ToLower(filepath.Ext(path)) != ".csv" {
		return errors.Newf(errors.ErrCodeInvalidInputFile, "input file %q is not a .csv file", path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInputNotFound, err, "input file %q does not exist", path)
	}

	if info.IsDir() {
		return errors.Newf(errors.ErrCodeInvalidInputFile, "input file %q is a directory", path)
	}

	return nil
}

func inRange(date time.Time, start optional.Option[time.Time], end optional.Option[time.Time]) bool {
	if start.IsSome() && date.Before(start.Unwrap()) {
		return false
	}

	if end.IsSome() && date.After(end.Unwrap()) {
		return false
	}

	return true
}
