package utils

import (
	"math/rand"
)

// GetRandomRoomId returns size lowercase letters. Callers check for
// collisions.
func GetRandomRoomId(size int) string {
	r := make([]byte, size)
	for i := 0; i < size; i += 1 {
		offset := rand.Intn(26)
		r[i] = byte(97 + offset)
	}
	return string(r)
}
