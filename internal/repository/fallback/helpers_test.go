package fallback

import (
	"io"

	"github.com/sirupsen/logrus"
)

func nopLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
