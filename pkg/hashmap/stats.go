package hashmap

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Stats is a point in time summary of a table
type Stats struct {
	Entries    int     `json:"entries"`
	Capacity   int     `json:"capacity"`
	Load       float64 `json:"load"`
	Tombstones int     `json:"tombstones,omitempty"`
	Resizes    int     `json:"resizes"`
	Collisions int     `json:"collisions"`
}

func (s *Stats) String() string {
	var ss []string
	ss = append(ss, fmt.Sprintf("%T", s))
	ss = append(ss, fmt.Sprintf("\tEntries: %v", s.Entries))
	ss = append(ss, fmt.Sprintf("\tCapacity: %v", s.Capacity))
	ss = append(ss, fmt.Sprintf("\tLoad: %.2f", s.Load))
	ss = append(ss, fmt.Sprintf("\tTombstones: %v", s.Tombstones))
	ss = append(ss, fmt.Sprintf("\tResizes: %v", s.Resizes))
	ss = append(ss, fmt.Sprintf("\tCollisions: %v", s.Collisions))
	return strings.Join(ss, "\n")
}

func (s *Stats) JSON() (string, error) {
	dat, err := json.MarshalIndent(s, "", "\t")
	if err != nil {
		return "", err
	}
	return string(dat), nil
}
