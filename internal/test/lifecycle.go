package test

import (
	"go.uber.org/fx"
)

// LifecycleRecorder collects hooks instead of running them, letting tests
// invoke OnStart and OnStop directly.
type LifecycleRecorder struct {
	Hooks []fx.Hook
}

// Append records the hook without scheduling it.
func (l *LifecycleRecorder) Append(h fx.Hook) {
	l.Hooks = append(l.Hooks, h)
}

// ShutdownerStub signals on Called whenever Shutdown is requested.
type ShutdownerStub struct {
	Called chan struct{}
}

// Shutdown signals the Called channel without blocking; extra requests past
// the channel's capacity are dropped.
func (s *ShutdownerStub) Shutdown(...fx.ShutdownOption) error {
	if s.Called == nil {
		return nil
	}
	select {
	case s.Called <- struct{}{}:
	default:
	}
	return nil
}
