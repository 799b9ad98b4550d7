package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (suite *ErrorTestSuite) TestNewError() {
	err := New(ErrCodeInvalidPeriod, "invalid period")
	suite.NotNil(err)
	suite.Equal(ErrCodeInvalidPeriod, err.Code)
	suite.Equal("invalid period", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestNewfError() {
	err := Newf(ErrCodeInvalidPeriod, "invalid period: %d", 0)
	suite.NotNil(err)
	suite.Equal(ErrCodeInvalidPeriod, err.Code)
	suite.Equal("invalid period: 0", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestWrapError() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeQueryFailed, "query failed", cause)
	suite.NotNil(err)
	suite.Equal(ErrCodeQueryFailed, err.Code)
	suite.Equal("query failed", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestWrapfError() {
	cause := errors.New("underlying error")
	err := Wrapf(ErrCodeDataParseFailed, cause, "failed to parse row %d", 3)
	suite.NotNil(err)
	suite.Equal(ErrCodeDataParseFailed, err.Code)
	suite.Equal("failed to parse row 3", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestErrorString() {
	err := New(ErrCodeInvalidConfiguration, "invalid configuration")
	suite.Equal("[101] invalid configuration", err.Error())
}

func (suite *ErrorTestSuite) TestErrorStringWithCause() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInvalidInputFile, "invalid input file", cause)
	suite.Equal("[200] invalid input file: underlying error", err.Error())
}

func (suite *ErrorTestSuite) TestUnwrap() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeQueryFailed, "query failed", cause)
	suite.Equal(cause, err.Unwrap())
	suite.True(Is(err, cause))
}

func (suite *ErrorTestSuite) TestGetCodeFromWrapped() {
	inner := New(ErrCodeInvariantViolation, "held volume out of range")
	wrapped := fmt.Errorf("run failed: %w", inner)
	suite.Equal(ErrCodeInvariantViolation, GetCode(wrapped))

	var target *Error
	suite.True(As(wrapped, &target))
	suite.Equal("held volume out of range", target.Message)
}

func (suite *ErrorTestSuite) TestGetCodeUnknown() {
	suite.Equal(ErrCodeUnknown, GetCode(errors.New("plain")))
	suite.False(HasCode(errors.New("plain"), ErrCodeInvalidPeriod))
}

func (suite *ErrorTestSuite) TestCategories() {
	tests := []struct {
		name          string
		err           error
		configuration bool
		input         bool
		invariant     bool
	}{
		{"period", New(ErrCodeInvalidPeriod, "x"), true, false, false},
		{"empty bars", New(ErrCodeInsufficientData, "x"), true, false, false},
		{"trade size", New(ErrCodeInvalidTradeSize, "x"), true, false, false},
		{"premium rate", New(ErrCodeInvalidPremiumRate, "x"), true, false, false},
		{"bad row", New(ErrCodeDataParseFailed, "x"), false, true, false},
		{"missing file", New(ErrCodeInputNotFound, "x"), false, true, false},
		{"wrong extension", New(ErrCodeInvalidInputFile, "x"), false, true, false},
		{"invariant", New(ErrCodeInvariantViolation, "x"), false, false, true},
		{"plain", errors.New("x"), false, false, false},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			suite.Equal(tc.configuration, IsConfigurationError(tc.err))
			suite.Equal(tc.input, IsInputValidationError(tc.err))
			suite.Equal(tc.invariant, IsInvariantViolation(tc.err))
		})
	}
}
