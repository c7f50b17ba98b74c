package utils

import rndm "math/rand"

// Shuffle reorders s in place.
func Shuffle[T any](s []T) {
	rndm.Shuffle(len(s), func(i, j int) {
		s[i], s[j] = s[j], s[i]
	})
}
