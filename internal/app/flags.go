package app

import (
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config represents the command-line parameters for the application. Values
// can also come from a YAML file named by -config; flags override the file.
type Config struct {
	Sim      string `yaml:"sim"`
	Scale    int    `yaml:"scale"`
	TPS      int    `yaml:"tps"`
	GPS      int    `yaml:"gps"`
	Seed     int64  `yaml:"seed"`
	HUDWidth int    `yaml:"hud_width"`
	Paused   bool   `yaml:"paused"`

	// Params is handed to the sim factory, e.g. rule, step, pattern, w, h.
	Params map[string]string `yaml:"params"`

	File string `yaml:"-"`
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "life", Scale: 3, TPS: 60, GPS: 15, Seed: 42, HUDWidth: 220, Params: map[string]string{}}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.File, "config", c.File, "YAML configuration file")
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.GPS, "gps", c.GPS, "simulation steps per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "parameter panel width in pixels, 0 to hide")
	fs.BoolVar(&c.Paused, "paused", c.Paused, "start paused")
	for _, key := range []string{"rule", "step", "pattern", "w", "h", "zoom", "density"} {
		fs.Func(key, "sim parameter "+key, func(v string) error {
			c.Params[key] = v
			return nil
		})
	}
	fs.Func("set", "sim parameter as key=value, repeatable", func(v string) error {
		key, value, ok := strings.Cut(v, "=")
		if !ok || key == "" {
			return errors.Errorf("expected key=value, got %q", v)
		}
		c.Params[key] = value
		return nil
	})
}

// LoadFile merges the YAML file at path into c.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.Wrapf(err, "parsing %s", path)
	}
	if c.Params == nil {
		c.Params = map[string]string{}
	}
	return nil
}

// Load parses args, applying the -config file first when one is given.
func Load(name string, args []string) (*Config, error) {
	c := NewConfig()
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	c.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.File == "" {
		return c, nil
	}

	file := c.File
	c = NewConfig()
	if err := c.LoadFile(file); err != nil {
		return nil, err
	}
	fs = flag.NewFlagSet(name, flag.ContinueOnError)
	c.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

// SimConfig returns the parameters passed to the sim factory.
func (c *Config) SimConfig() map[string]string {
	out := make(map[string]string, len(c.Params))
	for k, v := range c.Params {
		out[k] = v
	}
	if _, ok := out["seed"]; !ok {
		out["seed"] = strconv.FormatInt(c.Seed, 10)
	}
	return out
}
