package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerify(t *testing.T) {
	m := NewManager("test-secret", 3600)

	signed, err := m.Generate("+923001234567")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	phone, err := m.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "+923001234567", phone)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	signed, err := NewManager("secret-a", 3600).Generate("+1000")
	require.NoError(t, err)

	_, err = NewManager("secret-b", 3600).Verify(signed)
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m := NewManager("test-secret", -60)

	signed, err := m.Generate("+1000")
	require.NoError(t, err)

	_, err = m.Verify(signed)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, err := NewManager("test-secret", 3600).Verify("not-a-token")
	assert.Error(t, err)
}
