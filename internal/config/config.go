// Package config loads the settings of a prototool run into one immutable value.
//
// Sources, lowest to highest precedence: built-in defaults, the user config file, the
// project config file, PROTOTOOL_* environment variables, explicitly set flags.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/fscs/prototool/pkg/adapters/pad"
	"github.com/fscs/prototool/pkg/attendance"
)

// EnvPrefix prefixes every environment variable, e.g. PROTOTOOL_ENDPOINT_URL.
const EnvPrefix = "PROTOTOOL"

// ProjectFile is looked up in the working directory.
const ProjectFile = ".prototool.yaml"

// Config is the resolved configuration. It is passed by value.
type Config struct {
	EndpointURL      string `mapstructure:"endpoint_url"`
	Lang             string `mapstructure:"lang"`
	ContentDir       string `mapstructure:"content_dir"`
	Role             string `mapstructure:"role"`
	Timezone         string `mapstructure:"timezone"`
	AttendancePolicy string `mapstructure:"attendance_policy"`
	PadURLTemplate   string `mapstructure:"pad_url_template"`
	TemplatePath     string `mapstructure:"template_path"`
	Editor           string `mapstructure:"editor"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		EndpointURL:      "https://fscs.hhu.de/",
		Lang:             "de",
		ContentDir:       "content",
		Role:             "Rat",
		Timezone:         "Local",
		AttendancePolicy: string(attendance.PolicyNobodyPresent),
		PadURLTemplate:   pad.DefaultURLTemplate,
	}
}

// flagKeys maps config keys to the flag names bound to them.
var flagKeys = map[string]string{
	"endpoint_url":      "endpoint-url",
	"lang":              "lang",
	"content_dir":       "content-dir",
	"role":              "role",
	"timezone":          "timezone",
	"attendance_policy": "attendance-policy",
	"pad_url_template":  "pad-url-template",
	"template_path":     "template",
	"editor":            "editor",
}

// DefaultFiles are the config files consulted when Load is given none: the user file
// under the OS config directory, then ProjectFile in the working directory.
func DefaultFiles() []string {
	var files []string
	if dir, err := os.UserConfigDir(); err == nil {
		files = append(files, filepath.Join(dir, "prototool", "config.yaml"))
	}
	return append(files, ProjectFile)
}

// Load resolves the configuration. Missing files are skipped; flags may be nil.
// Later files override earlier ones.
func Load(flags *pflag.FlagSet, files ...string) (Config, error) {
	v := viper.New()

	defaults := Defaults()
	v.SetDefault("endpoint_url", defaults.EndpointURL)
	v.SetDefault("lang", defaults.Lang)
	v.SetDefault("content_dir", defaults.ContentDir)
	v.SetDefault("role", defaults.Role)
	v.SetDefault("timezone", defaults.Timezone)
	v.SetDefault("attendance_policy", defaults.AttendancePolicy)
	v.SetDefault("pad_url_template", defaults.PadURLTemplate)
	v.SetDefault("template_path", "")
	v.SetDefault("editor", "")

	for _, file := range files {
		if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
			continue
		}
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.MergeInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", file, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("failed to bind flag --%s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	if cfg.Editor == "" {
		cfg.Editor = os.Getenv("EDITOR")
	}

	return cfg, cfg.Validate()
}

// Validate checks every field that can be checked without I/O.
func (c Config) Validate() error {
	u, err := url.Parse(c.EndpointURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid endpoint_url %q", c.EndpointURL)
	}
	if c.Lang == "" {
		return errors.New("lang must not be empty")
	}
	if c.ContentDir == "" {
		return errors.New("content_dir must not be empty")
	}
	if c.Role == "" {
		return errors.New("role must not be empty")
	}
	if _, err := attendance.ParsePolicy(c.AttendancePolicy); err != nil {
		return err
	}
	if !strings.Contains(c.PadURLTemplate, "{date}") {
		return fmt.Errorf("pad_url_template %q lacks {date}", c.PadURLTemplate)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone; "Local" and "" mean the system zone.
func (c Config) Location() (*time.Location, error) {
	switch c.Timezone {
	case "", "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Policy returns the parsed attendance policy.
func (c Config) Policy() attendance.Policy {
	p, err := attendance.ParsePolicy(c.AttendancePolicy)
	if err != nil {
		return attendance.PolicyNobodyPresent
	}
	return p
}
