package middleware

import (
	"testing"

	"github.com/Ne02ptzero/pistache/internal/http/header"
	"github.com/Ne02ptzero/pistache/internal/http/message"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRandom struct {
	mock.Mock
}

func (m *mockRandom) Hex(n int) (string, error) {
	args := m.Called(n)
	return args.String(0), args.Error(1)
}

func TestRequestID_HandleRequest(t *testing.T) {
	tests := []struct {
		name        string
		existing    string
		generated   string
		genErr      error
		expected    string
		expectError bool
	}{
		{
			name:      "generates id",
			generated: "0123456789abcdef",
			expected:  "0123456789abcdef",
		},
		{
			name:     "keeps client id",
			existing: "client-id",
			expected: "client-id",
		},
		{
			name:        "generator failure",
			genErr:      assert.AnError,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rnd := new(mockRandom)
			if tt.existing == "" {
				rnd.On("Hex", 8).Return(tt.generated, tt.genErr).Once()
			}

			req := message.NewRequest()
			if tt.existing != "" {
				req.Headers.Add(header.NewRaw(NameRequestID, tt.existing))
			}

			err := NewRequestID(rnd).HandleRequest(req)
			rnd.AssertExpectations(t)

			if tt.expectError {
				assert.ErrorIs(t, err, assert.AnError)
				assert.False(t, req.Headers.Has(NameRequestID))
				return
			}
			require.NoError(t, err)
			h, err := req.Headers.Get(NameRequestID)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, h.Value())
		})
	}
}
