package header

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	require.NotNil(t, r)

	assert.Equal(t, []string{NameContentLength, NameHost}, r.List())
	assert.True(t, r.IsRegistered(NameContentLength))
	assert.True(t, r.IsRegistered(NameHost))
	assert.False(t, r.IsRegistered(NameUserAgent))
}

func TestRegistry_Register(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(r *registry)
		header  string
		factory Factory
		wantErr error
	}{
		{
			name:    "new name",
			header:  NameUserAgent,
			factory: func() Header { return &UserAgent{} },
		},
		{
			name: "duplicate name",
			setup: func(r *registry) {
				r.MustRegister(NameUserAgent, func() Header { return &UserAgent{} })
			},
			header:  NameUserAgent,
			factory: func() Header { return &UserAgent{} },
			wantErr: ErrDuplicateHeader,
		},
		{
			name:    "other spelling of a registered name",
			header:  "content-length",
			factory: func() Header { return NewRaw("content-length", "") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry().(*registry)
			if tt.setup != nil {
				tt.setup(r)
			}

			err := r.Register(tt.header, tt.factory)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.True(t, r.IsRegistered(tt.header))
		})
	}
}

func TestRegistry_RegisterNilFactory(t *testing.T) {
	r := NewRegistry()
	assert.Error(t, r.Register("X-Nil", nil))
	assert.False(t, r.IsRegistered("X-Nil"))
}

func TestRegistry_DuplicateKeepsOriginal(t *testing.T) {
	r := NewRegistry()

	err := r.Register(NameContentLength, func() Header { return NewRaw(NameContentLength, "hijacked") })
	require.ErrorIs(t, err, ErrDuplicateHeader)

	h, err := r.Make(NameContentLength)
	require.NoError(t, err)
	_, ok := h.(*ContentLength)
	assert.True(t, ok, "original factory must stay in place")
	assert.Equal(t, []string{NameContentLength, NameHost}, r.List())
}

func TestRegistry_MustRegisterPanics(t *testing.T) {
	r := NewRegistry()
	assert.Panics(t, func() {
		r.MustRegister(NameHost, func() Header { return &Host{} })
	})
}

func TestRegistry_Make(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(NameContentType, func() Header { return &ContentType{} })

	for _, name := range r.List() {
		t.Run(name, func(t *testing.T) {
			h, err := r.Make(name)
			require.NoError(t, err)
			assert.Equal(t, name, h.Name())
		})
	}

	t.Run("unknown", func(t *testing.T) {
		h, err := r.Make("X-Unknown")
		assert.Nil(t, h)
		assert.True(t, errors.Is(err, ErrUnknownHeader))
	})

	t.Run("fresh instance per call", func(t *testing.T) {
		a, err := r.Make(NameContentLength)
		require.NoError(t, err)
		b, err := r.Make(NameContentLength)
		require.NoError(t, err)

		require.NoError(t, a.Parse("10"))
		assert.Equal(t, "0", b.Value())
	})
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("X-Header-%d", i)
			_ = r.Register(name, func() Header { return NewRaw(name, "") })
		}(i)
		go func() {
			defer wg.Done()
			_, _ = r.Make(NameHost)
			_ = r.IsRegistered(NameContentLength)
		}()
	}
	wg.Wait()

	assert.Len(t, r.List(), 18)
}

func TestRegistry_Canonical(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("X-Custom", func() Header { return NewRaw("X-Custom", "") }))

	tests := []struct {
		name     string
		input    string
		expected string
		expectOk bool
	}{
		{name: "exact", input: NameHost, expected: NameHost, expectOk: true},
		{name: "lowercase", input: "host", expected: NameHost, expectOk: true},
		{name: "uppercase", input: "CONTENT-LENGTH", expected: NameContentLength, expectOk: true},
		{name: "custom mixed case", input: "x-CUSTOM", expected: "X-Custom", expectOk: true},
		{name: "unknown", input: "x-other", expected: "", expectOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			canonical, ok := r.Canonical(tt.input)
			assert.Equal(t, tt.expectOk, ok)
			assert.Equal(t, tt.expected, canonical)
		})
	}
}
