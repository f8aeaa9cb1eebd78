// Package credentials keeps forum API keys in the OS keyring, one entry per
// hostname.
package credentials

import (
	"errors"
	"strings"

	"github.com/zalando/go-keyring"
)

// Service is the keyring service name entries are stored under
const Service = "dataexplorer"

// ErrNotFound is returned when no key is stored for a host
var ErrNotFound = errors.New("no API key stored for host")

// Set stores the API key for host, replacing any previous entry.
func Set(host, apiKey string) error {
	host = normalize(host)
	if host == "" {
		return errors.New("host is required")
	}
	if apiKey == "" {
		return errors.New("API key is required")
	}
	return keyring.Set(Service, host, apiKey)
}

// Get returns the API key stored for host.
func Get(host string) (string, error) {
	key, err := keyring.Get(Service, normalize(host))
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	return key, err
}

// Delete removes the entry for host. Deleting a missing entry returns ErrNotFound.
func Delete(host string) error {
	err := keyring.Delete(Service, normalize(host))
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func normalize(host string) string {
	return strings.ToLower(strings.TrimSpace(host))
}
