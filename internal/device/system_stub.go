//go:build !linux || !cgo

package device

import "errors"

// NewSystemCatalog is only implemented on Linux (ALSA) with cgo enabled.
func NewSystemCatalog() (Catalog, error) {
	return nil, errors.New("no audio backend available on this platform")
}
