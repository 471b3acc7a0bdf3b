package tmd

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// A configuration for reading and assembling documents.
type Conf struct {
	MaxDepth    int  `yaml:"max_depth"`    // Maximum list nesting depth
	FrontMatter bool `yaml:"front_matter"` // Decode front matter into Root.Meta
	Normalize   bool `yaml:"normalize"`    // NFC-normalize the source text
}

var DefaultConf = Conf{
	MaxDepth:  256,
	Normalize: true,
}

// Returns a Conf limiting list nesting to depth levels.
func (c Conf) WithMaxDepth(depth int) Conf {
	c.MaxDepth = depth
	return c
}

func (c Conf) WithFrontMatter(on bool) Conf {
	c.FrontMatter = on
	return c
}

func (c Conf) WithNormalize(on bool) Conf {
	c.Normalize = on
	return c
}

func (c Conf) withDefaults() Conf {
	if c.MaxDepth <= 0 {
		c.MaxDepth = DefaultConf.MaxDepth
	}
	return c
}

// ParseConf decodes a YAML configuration. Keys missing from data keep their
// DefaultConf values.
func ParseConf(data []byte) (Conf, error) {
	conf := DefaultConf
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return Conf{}, errors.Wrap(err, "decoding configuration")
	}
	return conf.withDefaults(), nil
}

// LoadConf reads a YAML configuration file.
func LoadConf(path string) (Conf, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Conf{}, errors.Wrapf(err, "reading configuration %s", path)
	}
	conf, err := ParseConf(data)
	if err != nil {
		return Conf{}, errors.Wrapf(err, "in %s", path)
	}
	tracer().Infof("configuration loaded from %s", path)
	return conf, nil
}
