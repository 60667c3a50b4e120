//go:build !linux

package clipboard

import "errors"

const detachSupported = false

func detach(string, []string, string) (int, error) {
	return 0, errors.New("detaching is only needed on linux")
}
