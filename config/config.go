// Package config holds the application and desktop entry tables used by
// both commands. The built-in tables are embedded from defaults.yaml; a
// file with the same shape can replace them section by section.
package config

import (
	_ "embed"
	"io/ioutil"
	"regexp"
	"sort"
	"strings"

	"github.com/go-yaml/yaml"
	"github.com/pkg/errors"

	"github.com/gofish-bot/hostkeeper/models"
)

//go:embed defaults.yaml
var defaults []byte

type Config struct {
	Apps    []models.AppSpec               `yaml:"apps"`
	Modes   map[string]string              `yaml:"modes"`
	Desktop []models.DesktopFileUpdateRule `yaml:"desktop"`
}

// ErrUnknownApp is returned by App for names missing from the table.
var ErrUnknownApp = errors.New("unsupported app")

// Default returns the built-in tables.
func Default() (*Config, error) {
	c := &Config{}
	if err := yaml.Unmarshal(defaults, c); err != nil {
		return nil, errors.Wrap(err, "Unmarshal built-in config")
	}
	return c, c.validate()
}

// Load returns the built-in tables, with every section present in the
// file at path replacing its built-in counterpart. An empty path loads
// only the built-in tables.
func Load(path string) (*Config, error) {
	c := &Config{}
	if err := yaml.Unmarshal(defaults, c); err != nil {
		return nil, errors.Wrap(err, "Unmarshal built-in config")
	}

	if path != "" {
		content, err := ioutil.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "Read config %s", path)
		}
		override := Config{}
		if err := yaml.Unmarshal(content, &override); err != nil {
			return nil, errors.Wrapf(err, "Unmarshal config %s", path)
		}
		if len(override.Apps) > 0 {
			c.Apps = override.Apps
		}
		if len(override.Modes) > 0 {
			c.Modes = override.Modes
		}
		if len(override.Desktop) > 0 {
			c.Desktop = override.Desktop
		}
	}

	return c, c.validate()
}

func (c *Config) validate() error {
	seen := map[string]bool{}
	for _, app := range c.Apps {
		if app.Name == "" {
			return errors.New("app without a name")
		}
		if seen[app.Name] {
			return errors.Errorf("app %s is listed twice", app.Name)
		}
		seen[app.Name] = true
		if app.Owner == "" || app.Repo == "" {
			return errors.Errorf("app %s needs owner and repo", app.Name)
		}
		if app.Binary == "" {
			return errors.Errorf("app %s needs a binary", app.Name)
		}
		if _, err := regexp.Compile(app.VersionRegex); err != nil {
			return errors.Wrapf(err, "app %s has a bad version regex", app.Name)
		}
	}

	for i, rule := range c.Desktop {
		flags, ok := c.Modes[rule.Mode]
		if !ok {
			return errors.Errorf("desktop entry %s uses unknown mode %q", rule.App, rule.Mode)
		}
		if strings.TrimSpace(flags) == "" {
			return errors.Errorf("mode %q has no flags", rule.Mode)
		}
		c.Desktop[i].Flags = flags
	}
	return nil
}

// App looks up an application by name.
func (c *Config) App(name string) (models.AppSpec, error) {
	for _, app := range c.Apps {
		if app.Name == name {
			return app, nil
		}
	}
	return models.AppSpec{}, errors.Wrapf(ErrUnknownApp, "%s (known: %s)", name, strings.Join(c.AppNames(), ", "))
}

// AppNames returns the sorted names of all configured applications.
func (c *Config) AppNames() []string {
	names := make([]string, 0, len(c.Apps))
	for _, app := range c.Apps {
		names = append(names, app.Name)
	}
	sort.Strings(names)
	return names
}
