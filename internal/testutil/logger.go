package testutil

import (
	"io"

	"github.com/dtroode/famgram/internal/logger"
)

func MakeNoopLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, 0)
}
