package hash

import (
	"math/rand"
	"net/netip"

	"github.com/pkg/errors"
)

// IPHasher hashes dotted IPv4 addresses with the weighted sum
// (a1*x1 + a2*x2 + a3*x3 + a4*x4) mod n, where the coefficients are drawn
// once, at construction, from a seeded source.
type IPHasher struct {
	coefficients [4]int
}

// NewIPHasher draws four coefficients in the range [1, capacity]
func NewIPHasher(seed int64, capacity int) *IPHasher {
	rnd := rand.New(rand.NewSource(seed))
	h := new(IPHasher)
	for i := range h.coefficients {
		h.coefficients[i] = rnd.Intn(bound(capacity)) + 1
	}
	return h
}

// Coefficients returns a copy of the weights in octet order
func (h *IPHasher) Coefficients() [4]int {
	return h.coefficients
}

// Sum returns the bucket index for ip in a table of the given capacity
func (h *IPHasher) Sum(ip string, capacity int) (int, error) {
	addr, err := netip.ParseAddr(ip)
	if err != nil || !addr.Is4() {
		return 0, errors.Wrapf(ErrInvalidIPv4, "%q", ip)
	}
	var sum int
	for i, octet := range addr.As4() {
		sum += h.coefficients[i] * int(octet)
	}
	return sum % bound(capacity), nil
}
