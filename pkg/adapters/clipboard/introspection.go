package clipboard

import "github.com/aretw0/introspection"

// SystemState exposes internal state for observability.
type SystemState struct {
	Detach      bool   `json:"detach"`
	Initialized bool   `json:"initialized"`
	InitError   string `json:"init_error,omitempty"`
	Detached    int    `json:"detached_writes"`
}

// State implements introspection.Introspectable. It never initializes the clipboard itself.
func (s *System) State() any {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := SystemState{
		Detach:      s.detach,
		Initialized: s.initialized,
		Detached:    s.detached,
	}
	if s.initErr != nil {
		state.InitError = s.initErr.Error()
	}
	return state
}

// ComponentType implements introspection.Component.
func (s *System) ComponentType() string {
	return "clipboard"
}

var _ introspection.Introspectable = (*System)(nil)
var _ introspection.Component = (*System)(nil)
