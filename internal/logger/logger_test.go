package logger

import (
	"bytes"
	"testing"

	"go.uber.org/zap"

	"github.com/stretchr/testify/suite"
)

type LoggerTestSuite struct {
	suite.Suite
}

func TestLoggerSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}

func (suite *LoggerTestSuite) TestNewLoggerWithWriterLevels() {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		suite.Run(level, func() {
			logger, err := NewLoggerWithWriter(level, &bytes.Buffer{})
			suite.NoError(err)
			suite.NotNil(logger)
		})
	}
}

func (suite *LoggerTestSuite) TestNewLoggerWithInvalidLevel() {
	logger, err := NewLoggerWithWriter("loud", &bytes.Buffer{})
	suite.Error(err)
	suite.Nil(logger)
}

func (suite *LoggerTestSuite) TestNewLoggerWithWriter() {
	var buf bytes.Buffer

	logger, err := NewLoggerWithWriter("info", &buf)
	suite.Require().NoError(err)

	logger.Debug("hidden message")
	logger.Info("visible message", zap.String("path", "prices.csv"))
	suite.NoError(logger.Sync())

	out := buf.String()
	suite.NotContains(out, "hidden message")
	suite.Contains(out, "visible message")
	suite.Contains(out, `"path":"prices.csv"`)
}

func (suite *LoggerTestSuite) TestNopLogger() {
	logger := NewNopLogger()
	suite.NotNil(logger.Logger)

	// These should not panic
	logger.Info("test info message")
	logger.Debug("test debug message")
	suite.NoError(logger.Sync())
}

func (suite *LoggerTestSuite) TestLoggerSyncNilLogger() {
	logger := &Logger{Logger: nil}

	// Sync should not panic and should return nil for a nil inner logger
	err := logger.Sync()
	suite.NoError(err)
}
