package config

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/scottcagno/hashtable/pkg/hashmap"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnsupportedFormat = errors.New("config: unsupported file extension")
	ErrUnknownField      = errors.New("config: unknown field")
)

type format int

const (
	formatYAML format = iota
	formatTOML
)

func formatOf(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML, nil
	case ".toml":
		return formatTOML, nil
	}
	return 0, errors.Wrapf(ErrUnsupportedFormat, "%q", path)
}

// Load reads a table config from path on fs. Options missing from the
// file keep their defaults and the result has been through
// hashmap.CheckConfig.
func Load(fs afero.Fs, path string) (*hashmap.Config, error) {
	f, err := formatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrap(err, "config: read")
	}
	conf := hashmap.DefaultConfig()
	switch f {
	case formatYAML:
		err = decodeYAML(data, conf)
	case formatTOML:
		err = decodeTOML(data, conf)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "config: decode %s", path)
	}
	return hashmap.CheckConfig(conf)
}

// LoadFile is Load on the os filesystem
func LoadFile(path string) (*hashmap.Config, error) {
	return Load(afero.NewOsFs(), path)
}

// Save writes conf to path on fs, picking the encoding from the extension
func Save(fs afero.Fs, path string, conf *hashmap.Config) error {
	f, err := formatOf(path)
	if err != nil {
		return err
	}
	var data []byte
	switch f {
	case formatYAML:
		data, err = yaml.Marshal(conf)
	case formatTOML:
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(conf)
		data = buf.Bytes()
	}
	if err != nil {
		return errors.Wrapf(err, "config: encode %s", path)
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "config: mkdir")
	}
	return errors.Wrap(afero.WriteFile(fs, path, data, 0644), "config: write")
}

func decodeYAML(data []byte, conf *hashmap.Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	err := dec.Decode(conf)
	if err == io.EOF {
		// empty document
		return nil
	}
	var te *yaml.TypeError
	if errors.As(err, &te) {
		for _, msg := range te.Errors {
			// KnownFields reports "field x not found in type y"
			if strings.Contains(msg, "not found in type") {
				return errors.Wrap(ErrUnknownField, msg)
			}
		}
	}
	return err
}

func decodeTOML(data []byte, conf *hashmap.Config) error {
	md, err := toml.Decode(string(data), conf)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.Wrapf(ErrUnknownField, "%s", undecoded[0])
	}
	return nil
}
