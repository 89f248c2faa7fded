package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHasher_Hash(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "valid password", password: "securePassword123!", wantErr: false},
		{name: "empty password", password: "", wantErr: true},
	}

	hasher := NewPasswordHasher(4) // минимальная стоимость, чтобы тест был быстрым

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := hasher.Hash(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.NotEmpty(t, hash)
			assert.NotEqual(t, tt.password, hash)

			assert.NoError(t, hasher.Compare(tt.password, hash))
		})
	}
}

func TestPasswordHasher_Compare(t *testing.T) {
	hasher := NewPasswordHasher(4)

	password := "testPassword123!"
	hash, err := hasher.Hash(password)
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		wantErr  error
	}{
		{name: "matching password", password: password, hash: hash, wantErr: nil},
		{name: "wrong password", password: "wrongPassword", hash: hash, wantErr: ErrMismatchedHashAndPassword},
		{name: "garbage hash", password: password, hash: "not-a-bcrypt-hash"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := hasher.Compare(tt.password, tt.hash)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.name == "garbage hash":
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewPasswordHasher_CostFallback(t *testing.T) {
	// Стоимость вне диапазона bcrypt заменяется дефолтной, хеширование работает
	hasher := NewPasswordHasher(1000)
	hash, err := hasher.Hash("pw")
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
}
