package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashVerifyRoundTrip(t *testing.T) {
	h := HashPassword("s3cret")
	assert.True(t, VerifyPassword("s3cret", h))
	assert.False(t, VerifyPassword("wrong", h))
	assert.False(t, IsLegacyMD5(h))
}

func TestLegacyMD5Accepted(t *testing.T) {
	legacy := MD5Hex("oldpass")
	assert.True(t, IsLegacyMD5(legacy))
	assert.True(t, VerifyPassword("oldpass", legacy))
	assert.False(t, VerifyPassword("other", legacy))
}

func TestVerifyGarbageStored(t *testing.T) {
	assert.False(t, VerifyPassword("x", ""))
	assert.False(t, VerifyPassword("x", "plaintext"))
}
