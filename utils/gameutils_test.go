package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetRandomRoomId(t *testing.T) {
	pattern := regexp.MustCompile(`^[a-z]{6}$`)
	for i := 0; i < 100; i++ {
		assert.Regexp(t, pattern, GetRandomRoomId(6))
	}
}
