package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"

	"github.com/MacroPower/xamlscale/pkg/walk"
	"github.com/MacroPower/xamlscale/pkg/xaml"
	"github.com/MacroPower/xamlscale/pkg/xamlerrors"
)

// Config is the content of a configuration file.
type Config struct {
	// Extension of the files rescaled in folder mode.
	Extension string `json:"extension,omitempty" yaml:"extension,omitempty" jsonschema:"default=.xaml,example=.xaml"`
	// Additional patterns matching elements with OffsetX and OffsetY attributes.
	Positions []xaml.Pattern `json:"positions,omitempty" yaml:"positions,omitempty"`
	// Additional patterns matching elements with a Rectangle attribute.
	Regions []xaml.Pattern `json:"regions,omitempty" yaml:"regions,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{Extension: walk.DefaultExtension}
}

// Load reads the configuration file at path. An empty path returns
// [Default].
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", xamlerrors.ErrInvalidConfig, path, err)
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}

	return c, nil
}

// Decode reads a configuration from r. Unknown fields are rejected.
func Decode(r io.Reader) (*Config, error) {
	c := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", xamlerrors.ErrInvalidConfig, err)
	}

	if c.Extension == "" {
		c.Extension = walk.DefaultExtension
	}

	if _, err := c.Catalog(); err != nil {
		return nil, fmt.Errorf("%w: %w", xamlerrors.ErrInvalidConfig, err)
	}

	return c, nil
}

// Catalog returns the built-in catalog extended with the configured patterns.
func (c *Config) Catalog() (xaml.Catalog, error) {
	cat, err := xaml.DefaultCatalog().With(c.Positions, c.Regions)
	if err != nil {
		return xaml.Catalog{}, fmt.Errorf("build catalog: %w", err)
	}

	return cat, nil
}

// Schema returns the JSON schema of the configuration file.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{
		DoNotReference: true,
	}

	s := r.Reflect(&Config{})
	s.Title = "xamlscale configuration"

	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return nil, fmt.Errorf("indent schema: %w", err)
	}

	return buf.Bytes(), nil
}
