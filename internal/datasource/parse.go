package datasource

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rxtech-lab/option-regression/pkg/errors"
)

// parsePrice parses a price cell, accepting thousands separators.
func parsePrice(value string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if cleaned == "" {
		return 0, errors.New(errors.ErrCodeDataParseFailed, "empty price")
	}

	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrCodeDataParseFailed, err, "invalid price %q", value)
	}

	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, errors.Newf(errors.ErrCodeDataParseFailed, "non-finite price %q", value)
	}

	if price < 0 {
		return 0, errors.Newf(errors.ErrCodeDataParseFailed, "negative price %q", value)
	}

	return price, nil
}

// parseOptionalPrice is parsePrice that reads a blank cell as zero.
func parseOptionalPrice(value string) (float64, error) {
	if strings.TrimSpace(value) == "" {
		return 0, nil
	}

	return parsePrice(value)
}

// parseDate tries each layout in turn.
func parseDate(value string, layouts []string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)

	for _, layout := range layouts {
		date, err := time.Parse(layout, trimmed)
		if err == nil {
			return date, nil
		}
	}

	return time.Time{}, errors.Newf(errors.ErrCodeDataParseFailed, "date %q matches none of %d layouts", value, len(layouts))
}
