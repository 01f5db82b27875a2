package util

import (
	"math/rand"
	"strings"
)

const (
	letterBytes   = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	letterIdxBits = 6                    // 6 bits to represent a letter index
	letterIdxMask = 1<<letterIdxBits - 1 // All 1-bits, as many as letterIdxBits
	letterIdxMax  = 63 / letterIdxBits   // # of letter indices fitting in 63 bits
)

// RandString returns n random letters drawn from rnd
func RandString(rnd *rand.Rand, n int) string {
	sb := strings.Builder{}
	sb.Grow(n)
	// A rnd.Int63() generates 63 random bits, enough for letterIdxMax characters!
	for i, cache, remain := n-1, rnd.Int63(), letterIdxMax; i >= 0; {
		if remain == 0 {
			cache, remain = rnd.Int63(), letterIdxMax
		}
		if idx := int(cache & letterIdxMask); idx < len(letterBytes) {
			sb.WriteByte(letterBytes[idx])
			i--
		}
		cache >>= letterIdxBits
		remain--
	}
	return sb.String()
}

// RandKeys returns count distinct keys of length n. The same seed always
// yields the same keys in the same order. The caller must ask for no more
// keys than n letters can spell.
func RandKeys(seed int64, count, n int) []string {
	rnd := rand.New(rand.NewSource(seed))
	keys := make([]string, 0, count)
	seen := make(map[string]struct{}, count)
	for len(keys) < count {
		k := RandString(rnd, n)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys
}
