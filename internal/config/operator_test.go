package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewOperatorConfigFromHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	t.Setenv("ADMIN_PASSWORD_HASH", string(hash))
	t.Setenv("ADMIN_PASSWORD", "")

	cfg, err := NewOperatorConfig()
	require.NoError(t, err)

	assert.True(t, cfg.VerifyPassword("hunter2"))
	assert.False(t, cfg.VerifyPassword("wrong"))
}

func TestNewOperatorConfigFromPlainPassword(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD_HASH", "")
	t.Setenv("ADMIN_PASSWORD", "hunter2")

	cfg, err := NewOperatorConfig()
	require.NoError(t, err)

	assert.NotEqual(t, "hunter2", cfg.PasswordHash, "plain password must not be stored")
	assert.True(t, cfg.VerifyPassword("hunter2"))
}

func TestNewOperatorConfigRejectsInvalidHash(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD_HASH", "not-a-bcrypt-hash")
	_, err := NewOperatorConfig()
	assert.Error(t, err)
}

func TestNewOperatorConfigRequiresCredential(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD_HASH", "")
	t.Setenv("ADMIN_PASSWORD", "")
	_, err := NewOperatorConfig()
	assert.Error(t, err)
}
