package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"shoulu/internal/domain"
)

const FileName = "shoulu.yml"

// Config models shoulu.yml.
type Config struct {
	Registry struct {
		Key             string `yaml:"key" json:"key"`
		UnnamedDisciple string `yaml:"unnamed_disciple" json:"unnamed_disciple"`
	} `yaml:"registry" json:"registry"`
	Report struct {
		NamePlaceholder string `yaml:"name_placeholder" json:"name_placeholder"`
		DefaultMode     string `yaml:"default_mode" json:"default_mode"`
		CleanDuty       bool   `yaml:"clean_duty" json:"clean_duty"`
		ShortMarshals   bool   `yaml:"short_marshals" json:"short_marshals"`
	} `yaml:"report" json:"report"`
	Defaults Defaults `yaml:"defaults" json:"defaults"`
	Server   struct {
		Addr     string `yaml:"addr" json:"addr"`
		BasePath string `yaml:"base_path" json:"base_path"`
	} `yaml:"server" json:"server"`
}

// Defaults pre-fill the input surface.
type Defaults struct {
	Year     int    `yaml:"year" json:"year"`
	Month    int    `yaml:"month" json:"month"`
	Day      int    `yaml:"day" json:"day"`
	Hour     string `yaml:"hour" json:"hour"`
	Gender   string `yaml:"gender" json:"gender"`
	Level    string `yaml:"level" json:"level"`
	Vocation string `yaml:"vocation" json:"vocation"`
}

// Input converts the defaults into a domain input.
func (d Defaults) Input() (domain.Input, error) {
	hour, ok := domain.ParseBranch(d.Hour)
	if !ok {
		return domain.Input{}, fmt.Errorf("defaults.hour %q is not an earthly branch", d.Hour)
	}
	gender, ok := domain.ParseGender(d.Gender)
	if !ok {
		return domain.Input{}, fmt.Errorf("defaults.gender %q is not a gender", d.Gender)
	}
	level, ok := domain.ParseLevel(d.Level)
	if !ok {
		return domain.Input{}, fmt.Errorf("defaults.level %q is not an ordination level", d.Level)
	}
	vocation, ok := domain.ParseVocation(d.Vocation)
	if !ok {
		return domain.Input{}, fmt.Errorf("defaults.vocation %q is not a vocation", d.Vocation)
	}
	in := domain.Input{Year: d.Year, Month: d.Month, Day: d.Day, Hour: hour, Gender: gender, Level: level, Vocation: vocation}
	if err := in.Validate(); err != nil {
		return domain.Input{}, fmt.Errorf("defaults: %w", err)
	}
	return in, nil
}

// Validate ensures the config meets required structure.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Registry.Key) == "" {
		return fmt.Errorf("config.registry.key is required")
	}
	if strings.TrimSpace(c.Registry.UnnamedDisciple) == "" {
		return fmt.Errorf("config.registry.unnamed_disciple is required")
	}
	if strings.TrimSpace(c.Report.NamePlaceholder) == "" {
		return fmt.Errorf("config.report.name_placeholder is required")
	}
	switch c.Report.DefaultMode {
	case "", "general", "combat":
	default:
		return fmt.Errorf("config.report.default_mode must be general, combat or empty")
	}
	if _, err := c.Defaults.Input(); err != nil {
		return err
	}
	if c.Server.BasePath != "" && !strings.HasPrefix(c.Server.BasePath, "/") {
		return fmt.Errorf("config.server.base_path must start with /")
	}
	return nil
}

// Path returns the config file path for a workspace.
func Path(workspace string) string {
	if workspace == "" {
		workspace = "."
	}
	return filepath.Join(workspace, FileName)
}

// Load reads and validates config from workspace.
func Load(workspace string) (*Config, error) {
	path := Path(workspace)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config %s not found; create one with sl config init", path)
		}
		return nil, err
	}
	return FromYAML(data)
}

// LoadOptional falls back to Default when the file does not exist.
func LoadOptional(workspace string) (*Config, error) {
	data, err := os.ReadFile(Path(workspace))
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	return FromYAML(data)
}

// GenerateDefault returns the default config YAML.
func GenerateDefault() string {
	return defaultTemplate
}

// Default returns the default Config.
func Default() *Config {
	var cfg Config
	if err := yaml.Unmarshal([]byte(defaultTemplate), &cfg); err != nil {
		panic(fmt.Sprintf("default config: %v", err))
	}
	return &cfg
}

// FromYAML parses and validates config from raw YAML bytes. Missing sections
// keep their default values.
func FromYAML(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid config yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

const defaultTemplate = `registry:
  key: ordination_personnel
  unnamed_disciple: 未具名弟子

report:
  name_placeholder: "[姓名]"
  # general, combat, or empty to follow the vocation
  default_mode: ""
  clean_duty: true
  short_marshals: false

defaults:
  year: 76
  month: 4
  day: 10
  hour: 申
  gender: 男
  level: 初授
  vocation: general

server:
  addr: 127.0.0.1:8080
  base_path: /v0
`
