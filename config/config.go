// Package config loads the application settings from a TOML or YAML file
// with environment overrides for secrets.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"hotelorders/pivot"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "HOTELORDERS_"

// DefaultFontFile is used for Telugu names when no font is configured and
// the file sits in the working directory.
const DefaultFontFile = "NotoSansTelugu.ttf"

// Config is the whole application configuration.
type Config struct {
	Source SourceConfig `toml:"source" yaml:"source"`
	Report ReportConfig `toml:"report" yaml:"report"`
	Render RenderConfig `toml:"render" yaml:"render"`
	Server ServerConfig `toml:"server" yaml:"server"`
	Log    LogConfig    `toml:"log" yaml:"log"`
}

// SourceConfig selects where the order sheet comes from.
type SourceConfig struct {
	Kind            string   `toml:"kind" yaml:"kind"`
	SpreadsheetID   string   `toml:"spreadsheet_id" yaml:"spreadsheet_id"`
	Range           string   `toml:"range" yaml:"range"`
	CredentialsFile string   `toml:"credentials_file" yaml:"credentials_file"`
	Path            string   `toml:"path" yaml:"path"`
	Sheet           string   `toml:"sheet" yaml:"sheet"`
	CacheTTL        Duration `toml:"cache_ttl" yaml:"cache_ttl"`
	// Watch invalidates the cache when a file source changes on disk.
	Watch           bool     `toml:"watch" yaml:"watch"`
	// SeedDemo fills an empty order_rows collection with a demo day when
	// the server starts.
	SeedDemo        bool     `toml:"seed_demo" yaml:"seed_demo"`
}

// ReportConfig tunes aggregation.
type ReportConfig struct {
	PreferredHotels     []string            `toml:"preferred_hotels" yaml:"preferred_hotels"`
	HotelAliases        map[string][]string `toml:"hotel_aliases" yaml:"hotel_aliases"`
	DateLayout          string              `toml:"date_layout" yaml:"date_layout"`
	Timeout             Duration            `toml:"timeout" yaml:"timeout"`
	Workers             int                 `toml:"workers" yaml:"workers"`
	IncludeAbsentHotels bool                `toml:"include_absent_hotels" yaml:"include_absent_hotels"`
}

// RenderConfig configures document output.
type RenderConfig struct {
	SecondaryLanguage string `toml:"secondary_language" yaml:"secondary_language"`
	SecondaryLabel    string `toml:"secondary_label" yaml:"secondary_label"`
	// Fonts maps a language tag to a TrueType file.
	Fonts map[string]string `toml:"fonts" yaml:"fonts"`
}

// ServerConfig configures the web surface.
type ServerConfig struct {
	// AccessCode gates every page; empty disables the gate.
	AccessCode  string `toml:"access_code" yaml:"access_code"`
	PreviewRows int    `toml:"preview_rows" yaml:"preview_rows"`
}

// LogConfig configures zap.
type LogConfig struct {
	Development bool   `toml:"development" yaml:"development"`
	Level       string `toml:"level" yaml:"level"`
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() *Config {
	aliases := make(map[string][]string, len(pivot.DefaultHotelAliases))
	for k, v := range pivot.DefaultHotelAliases {
		aliases[k] = append([]string(nil), v...)
	}
	return &Config{
		Source: SourceConfig{
			Kind:     "pocketbase",
			Range:    "LIST_CREATION!A:L",
			CacheTTL: Duration(5 * time.Minute),
		},
		Report: ReportConfig{
			PreferredHotels:     append([]string(nil), pivot.DefaultPreferredHotels...),
			HotelAliases:        aliases,
			DateLayout:          pivot.DateLayout,
			Timeout:             Duration(30 * time.Second),
			Workers:             4,
			IncludeAbsentHotels: true,
		},
		Render: RenderConfig{
			SecondaryLanguage: "te",
			SecondaryLabel:    "Telugu Name",
			Fonts:             map[string]string{},
		},
		Server: ServerConfig{
			PreviewRows: 50,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path uses defaults and environment only.
// The format follows the extension: .toml, .yaml or .yml.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".toml":
			err = toml.Unmarshal(data, cfg)
		case ".yaml", ".yml":
			err = yaml.Unmarshal(data, cfg)
		default:
			return nil, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	cfg.Render.applyDefaultFont()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides lets secrets and deployment paths come from the
// environment instead of the file.
func (c *Config) applyEnvOverrides() {
	overrides := []struct {
		name string
		dst  *string
	}{
		{"SOURCE_KIND", &c.Source.Kind},
		{"SPREADSHEET_ID", &c.Source.SpreadsheetID},
		{"CREDENTIALS_FILE", &c.Source.CredentialsFile},
		{"SOURCE_PATH", &c.Source.Path},
		{"ACCESS_CODE", &c.Server.AccessCode},
		{"LOG_LEVEL", &c.Log.Level},
	}
	for _, o := range overrides {
		if v, ok := os.LookupEnv(EnvPrefix + o.name); ok && v != "" {
			*o.dst = v
		}
	}
}

func (r *RenderConfig) applyDefaultFont() {
	if _, ok := r.Fonts["te"]; ok {
		return
	}
	if _, err := os.Stat(DefaultFontFile); err != nil {
		return
	}
	if r.Fonts == nil {
		r.Fonts = map[string]string{}
	}
	r.Fonts["te"] = DefaultFontFile
}

// Validate implements validation.Validatable.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Source),
		validation.Field(&c.Report),
		validation.Field(&c.Render),
		validation.Field(&c.Server),
		validation.Field(&c.Log),
	)
}

// Validate implements validation.Validatable.
func (s SourceConfig) Validate() error {
	fileKind := s.Kind == "xlsx" || s.Kind == "csv"
	return validation.ValidateStruct(&s,
		validation.Field(&s.Kind, validation.Required, validation.In("sheets", "xlsx", "csv", "pocketbase")),
		validation.Field(&s.SpreadsheetID, validation.When(s.Kind == "sheets", validation.Required)),
		validation.Field(&s.Path, validation.When(fileKind, validation.Required)),
		validation.Field(&s.CacheTTL, validation.Min(Duration(0))),
		validation.Field(&s.Watch, validation.By(func(interface{}) error {
			if s.Watch && !fileKind {
				return errors.New("needs an xlsx or csv source")
			}
			return nil
		})),
		validation.Field(&s.SeedDemo, validation.By(func(interface{}) error {
			if s.SeedDemo && s.Kind != "pocketbase" {
				return errors.New("needs the pocketbase source")
			}
			return nil
		})),
	)
}

// Validate implements validation.Validatable.
func (r ReportConfig) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PreferredHotels, validation.Each(validation.Required)),
		validation.Field(&r.DateLayout, validation.Required),
		validation.Field(&r.Timeout, validation.Required, validation.Min(Duration(time.Second))),
		validation.Field(&r.Workers, validation.Required, validation.Min(1), validation.Max(64)),
	)
}

// Validate implements validation.Validatable.
func (r RenderConfig) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SecondaryLanguage, validation.Required, validation.By(isLanguageTag)),
	)
}

// Validate implements validation.Validatable.
func (s ServerConfig) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.PreviewRows, validation.Min(0), validation.Max(1000)),
	)
}

// Validate implements validation.Validatable.
func (l LogConfig) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.In("debug", "info", "warn", "error")),
	)
}

func isLanguageTag(value interface{}) error {
	s, _ := value.(string)
	if _, err := language.Parse(s); err != nil {
		return fmt.Errorf("not a language tag: %w", err)
	}
	return nil
}

// Hotels builds the hotel registry from the preferred order and aliases.
func (r ReportConfig) Hotels() *pivot.HotelRegistry {
	return pivot.NewHotelRegistry(r.PreferredHotels, r.HotelAliases)
}

// Language returns the parsed secondary language, Telugu when unset or
// malformed.
func (r RenderConfig) Language() language.Tag {
	tag, err := language.Parse(r.SecondaryLanguage)
	if err != nil {
		return language.Telugu
	}
	return tag
}
