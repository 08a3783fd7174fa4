package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint(t *testing.T) {
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		Fingerprint(nil))
	assert.Equal(t, Fingerprint([]byte("a")), Fingerprint([]byte("a")))
	assert.NotEqual(t, Fingerprint([]byte("a")), Fingerprint([]byte("b")))
}
