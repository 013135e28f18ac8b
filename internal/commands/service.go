// internal/commands/service.go
package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tamzrod/wififailover/internal/adapter"
	"github.com/tamzrod/wififailover/internal/registry"
	"github.com/tamzrod/wififailover/internal/status"
	"github.com/tamzrod/wififailover/internal/vault"
)

// Reader is the adapter's read side.
type Reader interface {
	Scan(ctx context.Context) ([]adapter.VisibleNetwork, error)
	ReadActive(ctx context.Context) (adapter.Snapshot, error)
}

// Registry is the trusted set as commands use it.
type Registry interface {
	List(ctx context.Context) ([]string, error)
	Add(ctx context.Context, ssid string) error
	Remove(ctx context.Context, ssid string) error
}

// Service is the command surface exposed to UIs.
// Every error is returned to the caller; nothing is swallowed.
type Service struct {
	reader   Reader
	registry Registry
	vault    vault.Vault
	log      zerolog.Logger
}

func NewService(r Reader, reg Registry, v vault.Vault, log zerolog.Logger) *Service {
	return &Service{reader: r, registry: reg, vault: v, log: log}
}

// ListNetworks scans and annotates. With filterToTrusted only trusted
// networks other than the active one are returned.
func (s *Service) ListNetworks(ctx context.Context, filterToTrusted bool) ([]status.NetworkView, error) {
	active, err := s.reader.ReadActive(ctx)
	if err != nil {
		return nil, err
	}
	visible, err := s.reader.Scan(ctx)
	if err != nil {
		return nil, err
	}
	trusted, err := s.registry.List(ctx)
	if err != nil {
		return nil, err
	}

	views := status.Annotate(visible, active, trusted)
	if filterToTrusted {
		return status.TrustedSubset(views, active.SSID), nil
	}
	return views, nil
}

// ReadActiveSnapshot reads the currently associated network.
func (s *Service) ReadActiveSnapshot(ctx context.Context) (adapter.Snapshot, error) {
	return s.reader.ReadActive(ctx)
}

// ListTrusted returns the registry contents.
func (s *Service) ListTrusted(ctx context.Context) ([]string, error) {
	return s.registry.List(ctx)
}

// SetTrusted adds ssid with password, or removes it when password is nil.
func (s *Service) SetTrusted(ctx context.Context, ssid string, password *string) error {
	if ssid == "" {
		return registry.ErrEmptySSID
	}
	if password != nil {
		return s.add(ctx, ssid, *password)
	}
	return s.remove(ctx, ssid)
}

func (s *Service) add(ctx context.Context, ssid, password string) error {
	prior, hadPrior, err := s.priorCredential(ssid)
	if err != nil {
		return err
	}

	if err := s.vault.Set(ssid, password); err != nil {
		return err
	}

	if err := s.registry.Add(ctx, ssid); err != nil {
		s.rollback(ssid, prior, hadPrior)
		return fmt.Errorf("commands: trust %q: %w", ssid, err)
	}

	s.log.Info().Str("ssid", ssid).Msg("network trusted")
	return nil
}

func (s *Service) priorCredential(ssid string) (string, bool, error) {
	pw, err := s.vault.Get(ssid)
	switch {
	case err == nil:
		return pw, true, nil
	case errors.Is(err, vault.ErrNotFound):
		return "", false, nil
	default:
		return "", false, err
	}
}

// rollback puts the vault back the way add found it. A trusted SSID keeps
// its old credential; a new one leaves nothing behind.
func (s *Service) rollback(ssid, prior string, hadPrior bool) {
	var err error
	if hadPrior {
		err = s.vault.Set(ssid, prior)
	} else if err = s.vault.Delete(ssid); errors.Is(err, vault.ErrNotFound) {
		err = nil
	}
	if err != nil {
		s.log.Error().Err(err).Str("ssid", ssid).Msg("vault rollback failed")
	}
}

func (s *Service) remove(ctx context.Context, ssid string) error {
	if err := s.vault.Delete(ssid); err != nil && !errors.Is(err, vault.ErrNotFound) {
		return err
	}
	if err := s.registry.Remove(ctx, ssid); err != nil {
		return fmt.Errorf("commands: untrust %q: %w", ssid, err)
	}

	s.log.Info().Str("ssid", ssid).Msg("network untrusted")
	return nil
}
