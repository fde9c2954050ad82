package rtbhouse

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBasicAuth(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		wantErr  bool
	}{
		{
			name:     "valid credentials",
			username: "user@example.com",
			password: "secret",
			wantErr:  false,
		},
		{
			name:     "missing username",
			username: "",
			password: "secret",
			wantErr:  true,
		},
		{
			name:     "missing password",
			username: "user@example.com",
			password: "",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth, err := NewBasicAuth(tt.username, tt.password)
			if tt.wantErr {
				require.Error(t, err)
				var paramErr *ParameterError
				assert.True(t, errors.As(err, &paramErr))
				return
			}
			require.NoError(t, err)
			// user@example.com:secret
			assert.Equal(t, "Basic dXNlckBleGFtcGxlLmNvbTpzZWNyZXQ=", auth.headerValue())
		})
	}
}

func TestNewTokenAuth(t *testing.T) {
	t.Run("valid token", func(t *testing.T) {
		auth, err := NewTokenAuth("abc123")
		require.NoError(t, err)
		assert.Equal(t, "Token abc123", auth.headerValue())
	})

	t.Run("empty token rejected at construction", func(t *testing.T) {
		_, err := NewTokenAuth("")
		require.Error(t, err)
		var paramErr *ParameterError
		require.True(t, errors.As(err, &paramErr))
		assert.Equal(t, "token", paramErr.Param)
	})
}

func TestNewClientRequiresAuth(t *testing.T) {
	_, err := NewClient(nil, testLogger())
	require.Error(t, err)
	var paramErr *ParameterError
	assert.True(t, errors.As(err, &paramErr))
}
