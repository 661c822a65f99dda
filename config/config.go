// Package config loads pipeline settings from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/vitalvas/reqschema/pipeline"
	"github.com/vitalvas/reqschema/schema"
)

// EnvPrefix prefixes the environment variables Load reads. A double
// underscore separates nested keys: REQSCHEMA_SERVER__ADDR sets server.addr.
const EnvPrefix = "REQSCHEMA_"

// ErrInvalidConfig is returned when loaded values are inconsistent.
var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Server       ServerConfig   `koanf:"server"`
	Strict       bool           `koanf:"strict"`
	MaxBodyBytes int64          `koanf:"max_body_bytes"`
	SchemaFile   string         `koanf:"schema_file"`
	Schema       map[string]any `koanf:"schema"`
}

type ServerConfig struct {
	Addr string `koanf:"addr"`
}

// Load reads path, if it exists, then overrides it with environment
// variables. A missing file is not an error.
//
// Parameter names in the inline schema are kept as written, dots included.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	var inline map[string]any

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("config: load %s: %w", path, err)
			}
		} else {
			section, err := inlineSchema(path)
			if err != nil {
				return nil, err
			}
			inline = section
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}

	if !k.Exists("server.addr") {
		k.Set("server.addr", ":8080")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if inline != nil {
		cfg.Schema = inline
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// inlineSchema returns the schema section of the file at path before koanf
// splits its keys on the delimiter.
func inlineSchema(path string) (map[string]any, error) {
	b, err := file.Provider(path).ReadBytes()
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}

	raw, err := yaml.Parser().Unmarshal(b)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}

	section, _ := raw["schema"].(map[string]any)

	return section, nil
}

// Validate checks values that cannot be checked by decoding alone.
func (c *Config) Validate() error {
	if c.MaxBodyBytes < 0 {
		return fmt.Errorf("%w: max_body_bytes must not be negative", ErrInvalidConfig)
	}

	if c.SchemaFile != "" && c.Schema != nil {
		return fmt.Errorf("%w: schema and schema_file are mutually exclusive", ErrInvalidConfig)
	}

	return nil
}

// Descriptor returns the inline schema, or the one read from SchemaFile.
// It returns nil when neither is set.
func (c *Config) Descriptor() (schema.Descriptor, error) {
	if c.SchemaFile != "" {
		return schema.LoadDescriptorFile(c.SchemaFile)
	}

	if c.Schema == nil {
		return nil, nil
	}

	return schema.Descriptor(c.Schema), nil
}

// PipelineConfig converts c into a pipeline.Config. Fields that have no
// file representation, such as Params or OnError, are left for the caller.
func (c *Config) PipelineConfig() (pipeline.Config, error) {
	d, err := c.Descriptor()
	if err != nil {
		return pipeline.Config{}, err
	}

	return pipeline.Config{
		Schema:       d,
		Strict:       c.Strict,
		MaxBodyBytes: c.MaxBodyBytes,
	}, nil
}
