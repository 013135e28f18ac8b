// internal/vault/vault.go
package vault

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// DefaultService is the keyring service every credential is filed under.
const DefaultService = "wifi_backup"

// ErrNotFound means no credential is stored for the SSID.
var ErrNotFound = errors.New("vault: credential not found")

// Vault stores one password per SSID. The SSID is the only lookup key.
type Vault interface {
	Set(ssid, password string) error
	Get(ssid string) (string, error)
	Delete(ssid string) error
}

// Error is a failed vault round-trip.
type Error struct {
	Op   string
	SSID string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("vault %s %q: %v", e.Op, e.SSID, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Keyring is a Vault backed by the OS secret store
// (Keychain, Secret Service, Windows Credential Manager).
type Keyring struct {
	Service string
}

// NewKeyring returns a Keyring for service, DefaultService if empty.
func NewKeyring(service string) *Keyring {
	if service == "" {
		service = DefaultService
	}
	return &Keyring{Service: service}
}

func (k *Keyring) Set(ssid, password string) error {
	if ssid == "" {
		return &Error{Op: "set", Err: errors.New("empty ssid")}
	}
	if err := keyring.Set(k.Service, ssid, password); err != nil {
		return &Error{Op: "set", SSID: ssid, Err: err}
	}
	return nil
}

func (k *Keyring) Get(ssid string) (string, error) {
	pw, err := keyring.Get(k.Service, ssid)
	if err != nil {
		return "", &Error{Op: "get", SSID: ssid, Err: translate(err)}
	}
	return pw, nil
}

func (k *Keyring) Delete(ssid string) error {
	if err := keyring.Delete(k.Service, ssid); err != nil {
		return &Error{Op: "delete", SSID: ssid, Err: translate(err)}
	}
	return nil
}

func translate(err error) error {
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
