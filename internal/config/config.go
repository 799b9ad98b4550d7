// Package config loads the YAML configuration of the regression tool.
package config

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/option-regression/internal/datasource"
	"github.com/rxtech-lab/option-regression/internal/report"
	"github.com/rxtech-lab/option-regression/internal/resample"
	"github.com/rxtech-lab/option-regression/internal/runner"
	"github.com/rxtech-lab/option-regression/internal/types"
	"github.com/rxtech-lab/option-regression/internal/version"
	"github.com/rxtech-lab/option-regression/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DateLayout is the layout of start_date and end_date.
const DateLayout = "2006-01-02"

// Mode selects which directions a variant may open positions in.
type Mode string

const (
	ModeTwoDirection Mode = "two_direction"
	ModeLongOnly     Mode = "long_only"
)

// VariantConfig describes one strategy variant.
type VariantConfig struct {
	Name string `yaml:"name" json:"name" validate:"required" jsonschema:"title=Name,description=Label printed in the report"`
	Mode Mode   `yaml:"mode" json:"mode" validate:"required,oneof=two_direction long_only" jsonschema:"title=Mode,enum=two_direction,enum=long_only"`
	// Period is checked when the variant runs so that a bad period fails only its own run.
	Period            int     `yaml:"period" json:"period" jsonschema:"title=Period,description=Resampling period in bars,minimum=1"`
	PremiumMultiplier float64 `yaml:"premium_multiplier,omitempty" json:"premium_multiplier,omitempty" validate:"gte=0" jsonschema:"title=Premium multiplier,description=Multiplier applied to premium_rate (0 means 1),default=1"`
}

// Config is the application configuration.
type Config struct {
	Version            string                   `yaml:"version,omitempty" json:"version,omitempty" jsonschema:"title=Version,description=Configuration format version"`
	PremiumRate        float64                  `yaml:"premium_rate" json:"premium_rate" validate:"gt=0,lt=1" jsonschema:"title=Premium rate,description=Base premium as a fraction of the opening price,default=0.005"`
	TradeSize          int                      `yaml:"trade_size" json:"trade_size" validate:"gt=0" jsonschema:"title=Trade size,description=Units bought or sold per trade,default=300"`
	DecimalPrecision   int32                    `yaml:"decimal_precision" json:"decimal_precision" validate:"gte=0,lte=12" jsonschema:"title=Decimal precision,description=Decimal places printed in the report,default=4"`
	AllowLossAvoidance bool                     `yaml:"allow_loss_avoidance,omitempty" json:"allow_loss_avoidance,omitempty" jsonschema:"title=Allow loss avoidance,description=Skip closing trades that would realize a loss"`
	Parallel           bool                     `yaml:"parallel,omitempty" json:"parallel,omitempty" jsonschema:"title=Parallel,description=Run the variants concurrently"`
	StartDate          string                   `yaml:"start_date,omitempty" json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02" jsonschema:"title=Start date,format=date"`
	EndDate            string                   `yaml:"end_date,omitempty" json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02" jsonschema:"title=End date,format=date"`
	Columns            datasource.ColumnMapping `yaml:"columns" json:"columns" jsonschema:"title=Columns,description=Header names of the input file"`
	DateLayouts        []string                 `yaml:"date_layouts,omitempty" json:"date_layouts,omitempty" validate:"omitempty,dive,required" jsonschema:"title=Date layouts,description=Go time layouts tried in order for the date column"`
	Variants           []VariantConfig          `yaml:"variants" json:"variants" validate:"required,min=1,dive" jsonschema:"title=Variants"`
}

// DefaultVariantConfigs returns the five canonical variants.
func DefaultVariantConfigs() []VariantConfig {
	return []VariantConfig{
		{Name: "two-direction-daily", Mode: ModeTwoDirection, Period: resample.Daily, PremiumMultiplier: 1},
		{Name: "two-direction-weekly", Mode: ModeTwoDirection, Period: resample.Weekly, PremiumMultiplier: runner.WeeklyPremiumMultiplier},
		{Name: "long-only-daily", Mode: ModeLongOnly, Period: resample.Daily, PremiumMultiplier: 1},
		{Name: "long-only-weekly", Mode: ModeLongOnly, Period: resample.Weekly, PremiumMultiplier: runner.WeeklyPremiumMultiplier},
		{Name: "long-only-monthly", Mode: ModeLongOnly, Period: resample.Monthly, PremiumMultiplier: runner.MonthlyPremiumMultiplier},
	}
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Version:            version.ConfigVersion,
		PremiumRate:        runner.BasePremiumRate,
		TradeSize:          runner.DefaultTradeSize,
		DecimalPrecision:   report.DefaultPrecision,
		AllowLossAvoidance: false,
		Parallel:           false,
		Columns:            datasource.DefaultColumnMapping(),
		DateLayouts:        nil,
		Variants:           DefaultVariantConfigs(),
	}
}

// Load reads the YAML file at path on top of Default and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config file %s", path)
	}

	return Parse(data)
}

// Parse decodes YAML on top of Default and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks field constraints, the format version and the date range.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	if err := version.CheckConfigCompatibility(c.Version); err != nil {
		return err
	}

	start, end, err := c.DateRange()
	if err != nil {
		return err
	}

	if start.IsSome() && end.IsSome() && start.Unwrap().After(end.Unwrap()) {
		return errors.Newf(errors.ErrCodeInvalidConfiguration,
			"start_date %s is after end_date %s", c.StartDate, c.EndDate)
	}

	return nil
}

// DateRange returns the inclusive date filter. Unset bounds are None.
func (c *Config) DateRange() (optional.Option[time.Time], optional.Option[time.Time], error) {
	start, err := parseOptionalDate("start_date", c.StartDate)
	if err != nil {
		return nil, nil, err
	}

	end, err := parseOptionalDate("end_date", c.EndDate)
	if err != nil {
		return nil, nil, err
	}

	return start, end, nil
}

// Layouts returns the date layouts for the input file.
func (c *Config) Layouts() []string {
	if len(c.DateLayouts) == 0 {
		return datasource.DefaultDateLayouts
	}

	return c.DateLayouts
}

// StrategyConfigs expands the variants into engine configurations in file order.
func (c *Config) StrategyConfigs() []types.StrategyConfig {
	configs := make([]types.StrategyConfig, 0, len(c.Variants))

	for _, v := range c.Variants {
		multiplier := v.PremiumMultiplier
		if multiplier == 0 {
			multiplier = 1
		}

		configs = append(configs, types.StrategyConfig{
			Name:               v.Name,
			PremiumRate:        c.PremiumRate * multiplier,
			TradeSize:          c.TradeSize,
			AllowShort:         v.Mode == ModeTwoDirection,
			Period:             v.Period,
			AllowLossAvoidance: c.AllowLossAvoidance,
		})
	}

	return configs
}

// GenerateSchemaJSON returns the JSON schema of Config.
func GenerateSchemaJSON() (string, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = true
	schema := r.Reflect(&Config{})

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func parseOptionalDate(field, value string) (optional.Option[time.Time], error) {
	if value == "" {
		return optional.None[time.Time](), nil
	}

	date, err := time.Parse(DateLayout, value)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "invalid %s %q", field, value)
	}

	return optional.Some(date), nil
}
