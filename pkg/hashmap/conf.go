package hashmap

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/scottcagno/hashtable/pkg/hash"
	"go.uber.org/zap"
)

const (
	ProbeQuadratic = "quadratic"
	ProbeLinear    = "linear"

	// an open addressed table needs empty slots to stop a probe
	maxLoadAllowed = 0.95
)

// default config
var defaultConfig = Config{
	InitialCapacity: DefaultCapacity,
	MaxLoad:         DefaultMaxLoad,
	MinLoad:         DefaultMinLoad,
	Hash:            hash.NamePolynomial,
	Probe:           ProbeQuadratic,
}

// Config holds the tuning settings for a hash table instance
type Config struct {
	InitialCapacity int         `yaml:"initial_capacity" toml:"initial_capacity"` // capacity before the first resize
	MaxLoad         float64     `yaml:"max_load" toml:"max_load"`                 // grow once count/capacity reaches this
	MinLoad         float64     `yaml:"min_load" toml:"min_load"`                 // shrink once count/capacity falls to this
	Hash            string      `yaml:"hash" toml:"hash"`                         // sum, polynomial or xxhash
	Probe           string      `yaml:"probe" toml:"probe"`                       // quadratic or linear (open addressing only)
	Logger          *zap.Logger `yaml:"-" toml:"-"`                               // logger
}

// DefaultConfig returns a copy of the default settings
func DefaultConfig() *Config {
	conf := defaultConfig
	return &conf
}

func (conf *Config) String() string {
	var sb strings.Builder
	sb.WriteString("InitialCapacity: ")
	sb.WriteString(strconv.Itoa(conf.InitialCapacity))
	sb.WriteString("\n")
	sb.WriteString("MaxLoad: ")
	sb.WriteString(strconv.FormatFloat(conf.MaxLoad, 'f', 2, 64))
	sb.WriteString("\n")
	sb.WriteString("MinLoad: ")
	sb.WriteString(strconv.FormatFloat(conf.MinLoad, 'f', 2, 64))
	sb.WriteString("\n")
	sb.WriteString("Hash: ")
	sb.WriteString(conf.Hash)
	sb.WriteString("\n")
	sb.WriteString("Probe: ")
	sb.WriteString(conf.Probe)
	return sb.String()
}

// HashFunc resolves the configured hash function
func (conf *Config) HashFunc() (hash.Func, error) {
	fn, err := hash.ByName(conf.Hash)
	if err != nil {
		return nil, errors.Wrap(ErrBadConfig, err.Error())
	}
	return fn, nil
}

// CheckConfig returns a copy of conf with missing or out of range options
// replaced by defaults. Names that cannot be resolved are an error.
func CheckConfig(conf *Config) (*Config, error) {
	if conf == nil {
		conf = &defaultConfig
	}
	c := *conf
	if c.InitialCapacity <= 0 {
		c.InitialCapacity = DefaultCapacity
	}
	if c.MaxLoad <= 0 || c.MaxLoad > maxLoadAllowed {
		c.MaxLoad = DefaultMaxLoad
	}
	// a grow must not land at or under the min load, and a shrink
	// must not land at or over the max load
	if c.MinLoad <= 0 || c.MinLoad >= c.MaxLoad/2 {
		c.MinLoad = DefaultMinLoad
		if c.MinLoad >= c.MaxLoad/2 {
			c.MinLoad = c.MaxLoad / 4
		}
	}
	if c.Hash == "" {
		c.Hash = defaultConfig.Hash
	}
	if _, err := c.HashFunc(); err != nil {
		return nil, err
	}
	c.Probe = strings.ToLower(strings.TrimSpace(c.Probe))
	switch c.Probe {
	case "":
		c.Probe = defaultConfig.Probe
	case ProbeQuadratic, ProbeLinear:
	default:
		return nil, errors.Wrapf(ErrBadConfig, "unknown probe %q", conf.Probe)
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return &c, nil
}
