package hunkgrep

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var (
	ErrNoPattern     = errors.New("no pattern specified: set --added and/or --removed")
	ErrInvalidMode   = errors.New("invalid mode")
	ErrInvalidEngine = errors.New("invalid engine")
)

type Config struct {
	Mode       string `yaml:"mode" validate:"omitempty,oneof=one all"`
	Added      string `yaml:"added"`
	Removed    string `yaml:"removed"`
	InputPath  string `yaml:"-"`
	Engine     string `yaml:"engine" validate:"omitempty,oneof=re2 backtrack"`
	IgnoreCase bool   `yaml:"ignore_case"`
	Clipboard  bool   `yaml:"clipboard"`
	Markdown   bool   `yaml:"markdown"`
	Stats      bool   `yaml:"stats"`
	LogLevel   string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error disabled"`
	LogFormat  string `yaml:"log_format" validate:"omitempty,oneof=console json"`
}

func NewDefaultConfig() *Config {
	return &Config{
		Mode:      ModeOne.String(),
		Engine:    string(EngineRE2),
		LogLevel:  "warn",
		LogFormat: "console",
	}
}

// LoadConfigFile reads YAML defaults from path on top of NewDefaultConfig.
func LoadConfigFile(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		var c Config
		switch cv := sl.Current().Interface().(type) {
		case Config:
			c = cv
		case *Config:
			c = *cv
		}
		if c.Added == "" && c.Removed == "" {
			sl.ReportError(c.Added, "Added", "Added", "pattern", "")
		}
	}, Config{})
	return v
}

// Validate checks the configuration before any input is read.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}
	for _, fe := range verrs {
		switch {
		case fe.Tag() == "pattern":
			return ErrNoPattern
		case fe.Field() == "Mode":
			return fmt.Errorf("%w: %q", ErrInvalidMode, c.Mode)
		case fe.Field() == "Engine":
			return fmt.Errorf("%w: %q", ErrInvalidEngine, c.Engine)
		}
	}
	return fmt.Errorf("invalid config: %w", verrs)
}

// Filter compiles the configured patterns.
func (c *Config) Filter() (Filter, error) {
	mode, err := ParseMode(c.Mode)
	if err != nil {
		return Filter{}, err
	}
	engine, err := ParseEngine(c.Engine)
	if err != nil {
		return Filter{}, err
	}

	added, err := CompilePattern(c.Added, engine, c.IgnoreCase)
	if err != nil {
		return Filter{}, fmt.Errorf("added pattern: %w", err)
	}
	removed, err := CompilePattern(c.Removed, engine, c.IgnoreCase)
	if err != nil {
		return Filter{}, fmt.Errorf("removed pattern: %w", err)
	}
	return Filter{Added: added, Removed: removed, Mode: mode}, nil
}
