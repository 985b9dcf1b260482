package conf

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Conf holds the parser settings read from a YAML file, e.g.
//
//	system: hat
//	view_min: -2
//	view_max: 2
//	compress: true
//	left_first: false
//	max_steps: 0
//	workers: 4
type Conf struct {
	System    string `yaml:"system"`
	ViewMin   int    `yaml:"view_min"`
	ViewMax   int    `yaml:"view_max"`
	Compress  bool   `yaml:"compress"`
	LeftFirst bool   `yaml:"left_first"`
	MaxSteps  int    `yaml:"max_steps"`
	Workers   int    `yaml:"workers"`
}

const (
	DEFAULT_SYSTEM    = "hat"
	DEFAULT_VIEW_MIN  = -2
	DEFAULT_VIEW_MAX  = 2
	// 0 lets the driver size the step budget by sentence length
	DEFAULT_MAX_STEPS = 0
)

func Default() *Conf {
	return &Conf{
		System:   DEFAULT_SYSTEM,
		ViewMin:  DEFAULT_VIEW_MIN,
		ViewMax:  DEFAULT_VIEW_MAX,
		MaxSteps: DEFAULT_MAX_STEPS,
		Workers:  1,
	}
}

// Validate rejects settings no transition system can run with
func (c *Conf) Validate() error {
	switch c.System {
	case "simple", "hat", "wholehat":
	default:
		return fmt.Errorf("unknown transition system %q", c.System)
	}
	if c.ViewMin > 0 || c.ViewMax < 0 {
		return fmt.Errorf("view window [%d, %d] must contain 0", c.ViewMin, c.ViewMax)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("max_steps must not be negative, got %d", c.MaxSteps)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	return nil
}

// Read decodes YAML over the defaults; absent keys keep their default
func Read(reader io.Reader) (*Conf, error) {
	c := Default()
	dec := yaml.NewDecoder(reader)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func ReadFile(filename string) (*Conf, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Read(file)
}

func (c *Conf) String() string {
	out, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("%#v", *c)
	}
	return string(out)
}
