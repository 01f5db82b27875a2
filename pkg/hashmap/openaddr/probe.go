package openaddr

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/scottcagno/hashtable/pkg/hashmap"
)

// Probe selects the sequence of slots visited after a collision
type Probe int

const (
	Quadratic Probe = iota
	Linear
)

// ParseProbe converts a config name into a Probe. An empty name is Quadratic.
func ParseProbe(name string) (Probe, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", hashmap.ProbeQuadratic:
		return Quadratic, nil
	case hashmap.ProbeLinear:
		return Linear, nil
	}
	return Quadratic, errors.Wrapf(hashmap.ErrBadConfig, "unknown probe %q", name)
}

func (p Probe) String() string {
	switch p {
	case Quadratic:
		return hashmap.ProbeQuadratic
	case Linear:
		return hashmap.ProbeLinear
	}
	return "unknown"
}

// next returns the index visited at step k (k >= 1) given the index
// visited at step k-1
func (p Probe) next(i, k, capacity int) int {
	if p == Linear {
		i++
		if i >= capacity {
			i = 0
		}
		return i
	}
	return (i + 2*k - 1) % capacity
}
