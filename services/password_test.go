package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	digest, err := HashPassword("hunter22")
	assert.NoError(t, err)
	assert.NotEqual(t, "hunter22", digest)
	assert.True(t, strings.HasPrefix(digest, "$2"))

	assert.True(t, CheckPassword("hunter22", digest))
	assert.False(t, CheckPassword("hunter23", digest))
}

func TestHashPasswordSaltsDigests(t *testing.T) {
	a, err := HashPassword("same password")
	assert.NoError(t, err)
	b, err := HashPassword("same password")
	assert.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestCheckPasswordEmptyDigest(t *testing.T) {
	// federated-only accounts have no digest and never match
	assert.False(t, CheckPassword("anything", ""))
}
