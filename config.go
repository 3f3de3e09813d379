package jsonext

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// Output formats accepted by Config.Output.Format
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Number modes accepted by Config.Parse.Numbers
const (
	NumbersModeFloat   = "float"
	NumbersModeDecimal = "decimal"
)

var (
	bracedEnvVar = regexp.MustCompile(`\$\{([^}]+)\}`)
	bareEnvVar   = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// Config represents the jsonext command configuration
type Config struct {
	Indent string       `yaml:"indent" json:"indent" toml:"indent"`
	Output OutputConfig `yaml:"output" json:"output" toml:"output"`
	Parse  ParseConfig  `yaml:"parse" json:"parse" toml:"parse"`
}

// OutputConfig controls how decoded documents are printed
type OutputConfig struct {
	Format string `yaml:"format" json:"format" toml:"format"`
	Color  *bool  `yaml:"color" json:"color" toml:"color"` // Pointer to distinguish between unset and false
}

// ParseConfig controls how documents are parsed
type ParseConfig struct {
	Numbers string `yaml:"numbers" json:"numbers" toml:"numbers"`
}

// ColorEnabled returns true unless color output is explicitly disabled
func (c *Config) ColorEnabled() bool {
	return c.Output.Color == nil || *c.Output.Color
}

// ParseOptions converts the parse section into options for ParseWithOptions
func (c *Config) ParseOptions() ParseOptions {
	if c.Parse.Numbers == NumbersModeDecimal {
		return ParseOptions{Numbers: NumbersDecimal}
	}

	return ParseOptions{Numbers: NumbersFloat}
}

// LoadConfig loads configuration from the specified file.
// A missing file yields the default configuration. Files ending in .json or
// .jsonext are read as JSONext, so they may carry comments, files ending in
// .toml as TOML, and anything else as strict YAML.
func LoadConfig(configPath string) (*Config, error) {
	// Load .env files first
	err := loadEnvFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	if !fileExists(configPath) {
		return getDefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config

	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".json", ".jsonext":
		err = Unmarshal(data, &config)
	case ".toml":
		err = unmarshalTOML(data, &config)
	default:
		// Strict mode detects unknown fields
		err = yaml.UnmarshalWithOptions(data, &config, yaml.Strict())
	}

	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	expandConfigEnvVars(&config)

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	applyDefaults(&config)

	return &config, nil
}

// unmarshalTOML decodes TOML, rejecting unknown keys like the YAML path does
func unmarshalTOML(data []byte, config *Config) error {
	metadata, err := toml.Decode(string(data), config)
	if err != nil {
		return err
	}

	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown field %q", undecoded[0].String())
	}

	return nil
}

func validateConfig(config *Config) error {
	if strings.Trim(config.Indent, " \t") != "" {
		return fmt.Errorf("%w: invalid indent %q: only spaces and tabs are allowed", ErrConfigValidation, config.Indent)
	}

	switch config.Output.Format {
	case "", FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("%w: invalid output.format '%s': must be one of text, json, yaml", ErrConfigValidation, config.Output.Format)
	}

	switch config.Parse.Numbers {
	case "", NumbersModeFloat, NumbersModeDecimal:
	default:
		return fmt.Errorf("%w: invalid parse.numbers '%s': must be one of float, decimal", ErrConfigValidation, config.Parse.Numbers)
	}

	return nil
}

func getDefaultConfig() *Config {
	config := &Config{}
	applyDefaults(config)

	return config
}

func applyDefaults(config *Config) {
	if config.Indent == "" {
		config.Indent = Indent(2)
	}

	if config.Output.Format == "" {
		config.Output.Format = FormatText
	}

	if config.Output.Color == nil {
		enabled := true
		config.Output.Color = &enabled
	}

	if config.Parse.Numbers == "" {
		config.Parse.Numbers = NumbersModeFloat
	}
}

func loadEnvFiles() error {
	// Try to load .env file from current directory
	if fileExists(".env") {
		err := godotenv.Load(".env")
		if err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

// expandEnvVars replaces ${VAR} and $VAR with environment values
func expandEnvVars(s string) string {
	s = bracedEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})

	return bareEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[1:])
	})
}

func expandConfigEnvVars(config *Config) {
	config.Indent = expandEnvVars(config.Indent)
	config.Output.Format = expandEnvVars(config.Output.Format)
	config.Parse.Numbers = expandEnvVars(config.Parse.Numbers)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
