//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package clipboard

import "errors"

func platformBackend() (backend, error) {
	return nil, errors.New("clipboard images are not supported on this platform")
}
