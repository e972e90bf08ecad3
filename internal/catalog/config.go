package catalog

import "fmt"

// Mode selects the provider for a whole session.
type Mode string

const (
	ModeHTTP   Mode = "http"
	ModeStatic Mode = "static"
)

// Config holds catalog provider settings.
type Config struct {
	Mode       Mode
	Endpoint   string
	TimeoutMs  int
	MaxRetries int
	LogCalls   bool
}

// DefaultConfig returns the static catalog; there is no public endpoint to
// default to.
func DefaultConfig() Config {
	return Config{
		Mode:       ModeStatic,
		Endpoint:   "http://localhost:8080/api/catalog",
		TimeoutMs:  4000,
		MaxRetries: 1,
	}
}

func (c Config) Validate() error {
	switch c.Mode {
	case ModeStatic:
		return nil
	case ModeHTTP:
		if c.Endpoint == "" {
			return fmt.Errorf("catalog mode %q needs an endpoint", c.Mode)
		}
		if c.TimeoutMs <= 0 {
			return fmt.Errorf("catalog timeout must be positive, got %d", c.TimeoutMs)
		}
		return nil
	default:
		return fmt.Errorf("unknown catalog mode %q (want http or static)", c.Mode)
	}
}

// NewProvider builds the provider the configuration selects.
func NewProvider(cfg Config, observer Observer) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Mode == ModeHTTP {
		return NewHTTPProvider(cfg, observer), nil
	}
	return NewStaticProvider(), nil
}
