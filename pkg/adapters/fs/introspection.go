package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Root      string     `json:"root"`
	Exists    bool       `json:"exists"`
	Writes    int        `json:"writes"`
	LastWrite *time.Time `json:"last_write,omitempty"`
	LastPath  string     `json:"last_path,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return StoreState{
		Root:      s.Root,
		Exists:    dirExists(s.Root),
		Writes:    s.writes,
		LastWrite: s.lastWrite,
		LastPath:  s.lastPath,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
