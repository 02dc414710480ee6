// Package logging builds the logrus logger shared by the halley-kart binaries.
package logging

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/gobuffalo/envy"
	"github.com/sirupsen/logrus"
)

// LevelEnv names the environment variable that overrides the log level.
const LevelEnv = "HK_LOG_LEVEL"

// New returns a logger writing to stderr. The level comes from HK_LOG_LEVEL
// (or a .env file), falling back to fallback.
func New(fallback logrus.Level) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	level := fallback
	if raw := envy.Get(LevelEnv, ""); raw != "" {
		parsed, err := logrus.ParseLevel(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing %s", LevelEnv)
		}
		level = parsed
	}
	logger.SetLevel(level)

	return logger, nil
}
