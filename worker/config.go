package worker

import (
	"io"
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/srozzo/simplesignals/internal/logger"
)

// Config is the on-disk worker configuration, e.g.
//
//	title = "mailer"
//	log_level = "debug"
//	log_file = "/var/log/mailer.log"
//	log_max_size_mb = 20
//	allow_interrupt = false
type Config struct {
	Title          string `toml:"title"`
	LogLevel       string `toml:"log_level"`
	LogFile        string `toml:"log_file"`
	LogMaxSizeMB   int    `toml:"log_max_size_mb"`
	AllowInterrupt bool   `toml:"allow_interrupt"`
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() Config {
	return Config{
		LogLevel:     "info",
		LogMaxSizeMB: 10,
	}
}

// LoadConfig reads path over DefaultConfig. A missing file yields the
// defaults; unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, errors.Wrapf(err, "load config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.Errorf("load config %s: unknown keys %v", path, undecoded)
	}
	if cfg.LogMaxSizeMB <= 0 {
		cfg.LogMaxSizeMB = DefaultConfig().LogMaxSizeMB
	}
	return cfg, nil
}

// NewLogger returns a logger at the configured level writing to LogFile, or
// to w when no file is configured. The closer is a no-op for w.
func (c Config) NewLogger(w io.Writer) (*slog.Logger, io.Closer) {
	level := logger.ParseLevel(c.LogLevel)
	if c.LogFile == "" {
		return logger.New(w, level), io.NopCloser(nil)
	}
	return logger.NewFile(c.LogFile, level, c.LogMaxSizeMB)
}
