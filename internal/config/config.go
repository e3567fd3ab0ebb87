package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/dgallion1/docnav/internal/navtree"
	"github.com/dgallion1/docnav/internal/render"
)

// EnvPrefix prefixes every environment override, e.g. DOCNAV_DOCUMENT_URL.
const EnvPrefix = "DOCNAV_"

type Config struct {
	Port string `koanf:"port"`

	// Document source: URL wins over path.
	DocumentURL      string        `koanf:"document_url"`
	DocumentPath     string        `koanf:"document_path"`
	CacheBustParam   string        `koanf:"cache_bust_param"`
	FetchTimeout     time.Duration `koanf:"fetch_timeout"`
	MaxDocumentBytes int64         `koanf:"max_document_bytes"`

	// Segmentation and navigation
	SectionSeparator string `koanf:"section_separator"`
	PrimaryLevel     int    `koanf:"primary_level"`
	SecondaryLevel   int    `koanf:"secondary_level"`
	PanelMarker      string `koanf:"panel_marker"`
	PanelGroupTitle  string `koanf:"panel_group_title"`

	// Scroll tracking
	ScrollLookahead float64       `koanf:"scroll_lookahead"`
	ScrollDebounce  time.Duration `koanf:"scroll_debounce"`

	// Rendering
	Renderer  string `koanf:"renderer"`
	CodeStyle string `koanf:"code_style"`
	SiteTitle string `koanf:"site_title"`

	// HTTP
	ReloadToken    string   `koanf:"reload_token"`
	AllowedOrigins []string `koanf:"allowed_origins"`
}

func DefaultConfig() Config {
	return Config{
		Port: "8090",

		CacheBustParam:   "v",
		FetchTimeout:     30 * time.Second,
		MaxDocumentBytes: 10 << 20, // 10MB

		SectionSeparator: "---",
		PrimaryLevel:     2,
		SecondaryLevel:   4,
		PanelMarker:      "Step 7",
		PanelGroupTitle:  "Dashboard Panels",

		ScrollLookahead: 150,
		ScrollDebounce:  100 * time.Millisecond,

		Renderer:  "markdown",
		CodeStyle: "monokai",
		SiteTitle: "Document",

		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
	}
}

// Load reads configuration from the optional YAML file at path, then
// overlays DOCNAV_* environment variables. A missing file is not an error.
func Load(path string) (Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return cfg, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return cfg, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshalling config: %w", err)
	}

	cfg.applyFallbacks()
	return cfg, nil
}

func (c *Config) applyFallbacks() {
	def := DefaultConfig()
	if c.Port == "" {
		c.Port = def.Port
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = def.FetchTimeout
	}
	if c.MaxDocumentBytes <= 0 {
		c.MaxDocumentBytes = def.MaxDocumentBytes
	}
	if c.SectionSeparator == "" {
		c.SectionSeparator = def.SectionSeparator
	}
	if c.PrimaryLevel <= 0 {
		c.PrimaryLevel = def.PrimaryLevel
	}
	if c.SecondaryLevel <= 0 {
		c.SecondaryLevel = def.SecondaryLevel
	}
	if c.ScrollLookahead < 0 {
		c.ScrollLookahead = def.ScrollLookahead
	}
	if c.ScrollDebounce <= 0 {
		c.ScrollDebounce = def.ScrollDebounce
	}
	if c.Renderer == "" {
		c.Renderer = def.Renderer
	}
}

func (c Config) Validate() error {
	if c.DocumentURL == "" && c.DocumentPath == "" {
		return fmt.Errorf("document_url or document_path is required")
	}
	if c.PrimaryLevel < 1 || c.PrimaryLevel > 6 {
		return fmt.Errorf("primary_level must be between 1 and 6, got %d", c.PrimaryLevel)
	}
	if c.SecondaryLevel < 1 || c.SecondaryLevel > 6 {
		return fmt.Errorf("secondary_level must be between 1 and 6, got %d", c.SecondaryLevel)
	}
	if c.PrimaryLevel == c.SecondaryLevel {
		return fmt.Errorf("primary_level and secondary_level must differ")
	}
	if !render.Supported[strings.ToLower(c.Renderer)] {
		return fmt.Errorf("invalid renderer %q: must be one of markdown, html", c.Renderer)
	}
	return nil
}

// Nav returns the navigation projection settings.
func (c Config) Nav() navtree.Config {
	return navtree.Config{
		PrimaryLevel:   c.PrimaryLevel,
		SecondaryLevel: c.SecondaryLevel,
		Marker:         c.PanelMarker,
		GroupTitle:     c.PanelGroupTitle,
	}
}
