// internal/config/validate.go
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil config")
	}

	// ------------------------------------------------------------
	// FIELD RULES (struct tags)
	// ------------------------------------------------------------

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("config: %w", err)
		}

		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf(
				"%s: failed %q (value=%v)",
				fe.Namespace(),
				fe.Tag(),
				fe.Value(),
			))
		}
		return errors.New("config: " + strings.Join(msgs, " | "))
	}

	// ------------------------------------------------------------
	// CROSS-FIELD RULES
	// ------------------------------------------------------------

	if !cfg.Store.InMemory && strings.TrimSpace(cfg.Store.Path) == "" {
		return errors.New("config: store.path is required unless store.in_memory is set")
	}

	switch cfg.Adapter.Driver {
	case "airport":
		if cfg.Adapter.AirportPath == "" {
			return errors.New("config: adapter.airport_path is required for driver airport")
		}
	case "nmcli":
		if cfg.Adapter.NMCLIPath == "" {
			return errors.New("config: adapter.nmcli_path is required for driver nmcli")
		}
	}

	return nil
}
