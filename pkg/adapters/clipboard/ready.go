package clipboard

import (
	"errors"
	"strings"
)

// readyError turns the report of the background process into an error.
func readyError(msg string) error {
	switch msg = strings.TrimSpace(msg); msg {
	case ReadyOK:
		return nil
	case "":
		return errors.New("exited without taking the clipboard")
	default:
		return errors.New(msg)
	}
}
