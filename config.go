package main

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"wasmfixtures/fixtures"
	"wasmfixtures/rt/wasm"
)

// Config holds the driver configuration.
type Config struct {
	Variant  string `yaml:"variant"`
	Out      string `yaml:"out"`
	LogLevel string `yaml:"log_level"`

	// Imported i32 globals keyed by "module.name"; a bare name lives in
	// module "env".
	Globals map[string]int32 `yaml:"globals"`
}

func DefaultConfig() *Config {
	return &Config{
		Variant:  string(fixtures.VariantC),
		Out:      "out.wast",
		LogLevel: "info",
		Globals:  map[string]int32{},
	}
}

// LoadConfig reads a YAML config on top of the defaults. An empty path or
// a missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if err := cfg.normalizeGlobals(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// normalizeGlobals rekeys Globals by qualified name. Two keys naming the
// same import, such as "global2" and "env.global2", are an error.
func (c *Config) normalizeGlobals() error {
	globals := make(map[string]int32, len(c.Globals))
	for _, name := range c.GlobalNames() {
		q, err := wasm.QualifiedName(name)
		if err != nil {
			return err
		}
		if _, dup := globals[q]; dup {
			return fmt.Errorf("import %s is configured more than once", q)
		}
		globals[q] = c.Globals[name]
	}
	c.Globals = globals
	return nil
}

// SetGlobal sets an imported global, replacing any value already
// configured for the same import.
func (c *Config) SetGlobal(name string, v int32) error {
	q, err := wasm.QualifiedName(name)
	if err != nil {
		return err
	}
	if c.Globals == nil {
		c.Globals = map[string]int32{}
	}
	c.Globals[q] = v
	return nil
}

func (c *Config) Validate() error {
	if _, err := fixtures.ParseVariant(c.Variant); err != nil {
		return err
	}
	for name := range c.Globals {
		if _, _, err := wasm.SplitName(name); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) ParsedVariant() fixtures.Variant {
	v, err := fixtures.ParseVariant(c.Variant)
	if err != nil {
		return fixtures.VariantC
	}
	return v
}

// ImportGlobals returns the configured globals keyed by their fully
// qualified name.
func (c *Config) ImportGlobals() (wasm.MapGlobals, error) {
	g := make(wasm.MapGlobals, len(c.Globals))
	for name, v := range c.Globals {
		q, err := wasm.QualifiedName(name)
		if err != nil {
			return nil, err
		}
		if _, dup := g[q]; dup {
			return nil, fmt.Errorf("import %s is configured more than once", q)
		}
		g[q] = v
	}
	return g, nil
}

func (c *Config) GlobalNames() []string {
	names := make([]string, 0, len(c.Globals))
	for name := range c.Globals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
