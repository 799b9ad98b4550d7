package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/option-regression/pkg/errors"
)

// StrategyConfig is the immutable configuration of one strategy run.
type StrategyConfig struct {
	Name string `yaml:"name" json:"name" validate:"required"`
	// PremiumRate is the fraction of the entry open collected per option leg.
	// It already includes the scale-up for the resampling period.
	PremiumRate float64 `yaml:"premium_rate" json:"premium_rate" validate:"gt=0,lt=1"`
	TradeSize   int     `yaml:"trade_size" json:"trade_size" validate:"gt=0"`
	// AllowShort enables opening short stock (short put) positions and
	// collecting both legs while flat.
	AllowShort bool `yaml:"allow_short" json:"allow_short"`
	// Period is the number of bars per decision. Checked by the resampler.
	Period int `yaml:"period" json:"period"`
	// AllowLossAvoidance skips closes that would realize a loss. Disabled by default.
	AllowLossAvoidance bool `yaml:"allow_loss_avoidance" json:"allow_loss_avoidance"`
}

// FlatPremiumLegs is the number of premium legs credited on a flat step without a trade.
func (c StrategyConfig) FlatPremiumLegs() int {
	if c.AllowShort {
		return 2
	}

	return 1
}

// Validate validates the StrategyConfig struct.
// Trade size and premium rate failures carry their own error codes.
func (c *StrategyConfig) Validate() error {
	validate := validator.New()

	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		switch fieldErrs[0].StructField() {
		case "TradeSize":
			return errors.Wrapf(errors.ErrCodeInvalidTradeSize, err, "invalid trade size %d", c.TradeSize)
		case "PremiumRate":
			return errors.Wrapf(errors.ErrCodeInvalidPremiumRate, err, "invalid premium rate %v", c.PremiumRate)
		}
	}

	return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid strategy config", err)
}
