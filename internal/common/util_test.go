package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWipeByteArray(t *testing.T) {
	password := []byte("password1")
	WipeByteArray(password)
	assert.Equal(t, make([]byte, 9), password)

	assert.NotPanics(t, func() { WipeByteArray(nil) })
}
