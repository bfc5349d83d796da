package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/Shivam0504-hash/rcc-documentation/internal/model"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Broken link policies.
const (
	BrokenLinksThrow  = "throw"
	BrokenLinksWarn   = "warn"
	BrokenLinksIgnore = "ignore"
)

// EnvPrefix is prepended to every environment variable override.
const EnvPrefix = "RCC"

type Config struct {
	SiteTitle     string `mapstructure:"siteTitle"`
	Description   string `mapstructure:"description"`
	BaseURL       string `mapstructure:"baseURL"`
	DocsDir       string `mapstructure:"docsDir"`
	StaticDir     string `mapstructure:"staticDir"`
	OutputDir     string `mapstructure:"outputDir"`
	SidebarFile   string `mapstructure:"sidebarFile"`
	OnBrokenLinks string `mapstructure:"onBrokenLinks"`
	Port          int    `mapstructure:"port"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("siteTitle", "RCC Documentation")
	v.SetDefault("description", "Description will go into a meta tag in <head />")
	v.SetDefault("baseURL", "/")
	v.SetDefault("docsDir", "docs")
	v.SetDefault("staticDir", "static")
	v.SetDefault("outputDir", "build")
	v.SetDefault("sidebarFile", "")
	v.SetDefault("onBrokenLinks", BrokenLinksThrow)
	v.SetDefault("port", 3000)
}

// New returns a viper instance with defaults and RCC_ env overrides applied.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// Decode unmarshals v into a Config and validates it.
func Decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var problems []string
	if c.OutputDir == "" {
		problems = append(problems, "outputDir must not be empty")
	}
	if c.DocsDir == "" {
		problems = append(problems, "docsDir must not be empty")
	}
	if !strings.HasPrefix(c.BaseURL, "/") {
		problems = append(problems, fmt.Sprintf("baseURL %q must start with '/'", c.BaseURL))
	}
	switch c.OnBrokenLinks {
	case BrokenLinksThrow, BrokenLinksWarn, BrokenLinksIgnore:
	default:
		problems = append(problems, fmt.Sprintf("onBrokenLinks %q must be one of throw, warn, ignore", c.OnBrokenLinks))
	}
	if c.Port < 0 || c.Port > 65535 {
		problems = append(problems, fmt.Sprintf("port %d out of range", c.Port))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// Site is the metadata handed to page renderers.
func (c Config) Site() model.SiteConfig {
	return model.SiteConfig{
		Title:       c.SiteTitle,
		Description: c.Description,
		BaseURL:     c.BaseURL,
	}
}
