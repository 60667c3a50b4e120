package clipboard

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fscs/prototool/pkg/core"
)

type fakeBackend struct {
	mu      sync.Mutex
	initErr error
	inits   int
	data    []byte
	changed chan struct{}
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{changed: make(chan struct{})}
}

func (f *fakeBackend) Init() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inits++
	return f.initErr
}

func (f *fakeBackend) Read() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data
}

func (f *fakeBackend) Write(data []byte) <-chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data = data
	return f.changed
}

func newTestSystem(b backend) *System {
	s := New(WithDetach(false))
	s.backend = b
	return s
}

func TestSystem(t *testing.T) {
	ctx := context.Background()

	t.Run("Write Then Read", func(t *testing.T) {
		b := newFakeBackend()
		s := newTestSystem(b)

		require.NoError(t, s.WriteText(ctx, "# Protokoll"))
		got, err := s.ReadText(ctx)
		require.NoError(t, err)
		assert.Equal(t, "# Protokoll", got)
		assert.Equal(t, 1, b.inits, "initialized once")
	})

	t.Run("Init Failure Is Clipboard Error", func(t *testing.T) {
		b := newFakeBackend()
		b.initErr = errors.New("no display")
		s := newTestSystem(b)

		_, err := s.ReadText(ctx)
		require.ErrorIs(t, err, core.ErrClipboard)

		err = s.WriteText(ctx, "x")
		require.ErrorIs(t, err, core.ErrClipboard)

		state := s.State().(SystemState)
		assert.True(t, state.Initialized)
		assert.Contains(t, state.InitError, "no display")
	})

	t.Run("Detached Write Fails Without Display", func(t *testing.T) {
		b := newFakeBackend()
		b.initErr = errors.New("no display")
		s := New(WithDetach(true))
		s.backend = b
		spawned := false
		s.spawn = func(string, []string, string) (int, error) {
			spawned = true
			return 1, nil
		}

		err := s.WriteText(ctx, "# Protokoll")
		require.ErrorIs(t, err, core.ErrClipboard)
		assert.Contains(t, err.Error(), "no display")
		assert.Equal(t, 1, b.inits)
		assert.False(t, spawned, "no background process without a clipboard")
	})

	t.Run("Detached Write Hands Over Text", func(t *testing.T) {
		b := newFakeBackend()
		s := New(WithDetach(true), WithDaemonArgs("clipboard-daemon", "--quiet"))
		s.backend = b
		var gotArgs []string
		var gotText string
		s.spawn = func(_ string, args []string, text string) (int, error) {
			gotArgs, gotText = args, text
			return 4242, nil
		}

		require.NoError(t, s.WriteText(ctx, "# Protokoll"))
		assert.Equal(t, []string{"clipboard-daemon", "--quiet"}, gotArgs)
		assert.Equal(t, "# Protokoll", gotText)
		assert.Nil(t, b.Read(), "the parent leaves the clipboard to the daemon")
		assert.Equal(t, 1, s.State().(SystemState).Detached)
	})

	t.Run("Daemon Failure Is Clipboard Error", func(t *testing.T) {
		s := New(WithDetach(true))
		s.backend = newFakeBackend()
		s.spawn = func(string, []string, string) (int, error) {
			return 0, readyError("clipboard: no display")
		}

		err := s.WriteText(ctx, "x")
		require.ErrorIs(t, err, core.ErrClipboard)
		assert.Contains(t, err.Error(), "no display")
	})

	t.Run("Not Detached Under Test", func(t *testing.T) {
		assert.False(t, New().detach)
	})
}

func TestServe(t *testing.T) {
	t.Run("Returns Once Superseded", func(t *testing.T) {
		b := newFakeBackend()
		done := make(chan error, 1)
		go func() {
			done <- serve(context.Background(), strings.NewReader("# Protokoll"), nil, b)
		}()

		require.Eventually(t, func() bool {
			return string(b.Read()) == "# Protokoll"
		}, time.Second, 10*time.Millisecond)

		close(b.changed)
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("serve did not return after the clipboard changed")
		}
	})

	t.Run("Returns On Cancel", func(t *testing.T) {
		b := newFakeBackend()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		require.NoError(t, serve(ctx, strings.NewReader("x"), nil, b))
		assert.Equal(t, "x", string(b.Read()))
	})

	t.Run("Init Failure", func(t *testing.T) {
		b := newFakeBackend()
		b.initErr = errors.New("no display")

		var ready bytes.Buffer
		err := serve(context.Background(), strings.NewReader("x"), &ready, b)
		require.ErrorIs(t, err, core.ErrClipboard)
		assert.Error(t, readyError(ready.String()))
		assert.Contains(t, ready.String(), "no display")
	})

	t.Run("Reports Ready", func(t *testing.T) {
		b := newFakeBackend()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var ready bytes.Buffer
		require.NoError(t, serve(ctx, strings.NewReader("x"), &ready, b))
		assert.Equal(t, ReadyOK, ready.String())
		assert.NoError(t, readyError(ready.String()))
	})
}

func TestReadyError(t *testing.T) {
	assert.NoError(t, readyError("ok\n"))
	assert.EqualError(t, readyError(""), "exited without taking the clipboard")
	assert.EqualError(t, readyError("clipboard: no display"), "clipboard: no display")
}
