// Package config loads zellij-nvim configuration and holds the live copy.
//
// Precedence (highest to lowest):
//  1. setup() calls from the editor
//  2. Environment variables (ZELLIJ_NVIM_*)
//  3. Config file
//  4. Built-in defaults
//
// Config file search order:
//  1. $ZELLIJ_NVIM_CONFIG
//  2. .zellij-nvim.yaml in current directory
//  3. $XDG_CONFIG_HOME/zellij-nvim/config.yaml (or config.toml),
//     falling back to ~/.config
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/timvw/zellij-nvim/internal/model"
)

// Config holds all zellij-nvim configuration. Every field has a concrete value.
type Config struct {
	// Shell runs pane commands. Empty falls back to $SHELL, then /bin/sh.
	Shell string
	// Binary is the zellij executable.
	Binary string

	Defaults      model.Defaults
	Notifications Notifications

	// LogFile overrides the default log location.
	LogFile string
	Debug   bool

	// OTEL
	OTELEndpoint string
	OTELHeaders  string // Comma-separated key=value pairs

	// ConfigFile is the path to the config file that was loaded (empty if none).
	ConfigFile string
}

// Notifications controls which outcomes reach the user.
type Notifications struct {
	Enabled   bool
	OnSuccess bool
	OnError   bool
}

// Defaults returns a Config with all default values.
func Defaults() Config {
	return Config{
		Binary:   "zellij",
		Defaults: model.Defaults{Floating: true},
		Notifications: Notifications{
			Enabled: true,
			OnError: true,
		},
	}
}

// Partial is a sparse Config. Nil fields are left alone by Merge, so an
// explicit false is distinguishable from "not given".
type Partial struct {
	Shell         *string               `yaml:"shell" toml:"shell"`
	Binary        *string               `yaml:"binary" toml:"binary"`
	Defaults      *PartialDefaults      `yaml:"defaults" toml:"defaults"`
	Notifications *PartialNotifications `yaml:"notifications" toml:"notifications"`
	LogFile       *string               `yaml:"log_file" toml:"log_file"`
	Debug         *bool                 `yaml:"debug" toml:"debug"`
	OTELEndpoint  *string               `yaml:"otel_endpoint" toml:"otel_endpoint"`
	OTELHeaders   *string               `yaml:"otel_headers" toml:"otel_headers"`
}

type PartialDefaults struct {
	Floating       *bool `yaml:"floating" toml:"floating"`
	CloseOnExit    *bool `yaml:"close_on_exit" toml:"close_on_exit"`
	StartSuspended *bool `yaml:"start_suspended" toml:"start_suspended"`
}

type PartialNotifications struct {
	Enabled   *bool `yaml:"enabled" toml:"enabled"`
	OnSuccess *bool `yaml:"on_success" toml:"on_success"`
	OnError   *bool `yaml:"on_error" toml:"on_error"`
}

// Merge returns base with every non-nil field of p applied, nested records
// included. base is not modified.
func Merge(base Config, p Partial) Config {
	out := base
	setString(&out.Shell, p.Shell)
	setString(&out.Binary, p.Binary)
	setString(&out.LogFile, p.LogFile)
	setBool(&out.Debug, p.Debug)
	setString(&out.OTELEndpoint, p.OTELEndpoint)
	setString(&out.OTELHeaders, p.OTELHeaders)
	if d := p.Defaults; d != nil {
		setBool(&out.Defaults.Floating, d.Floating)
		setBool(&out.Defaults.CloseOnExit, d.CloseOnExit)
		setBool(&out.Defaults.StartSuspended, d.StartSuspended)
	}
	if n := p.Notifications; n != nil {
		setBool(&out.Notifications.Enabled, n.Enabled)
		setBool(&out.Notifications.OnSuccess, n.OnSuccess)
		setBool(&out.Notifications.OnError, n.OnError)
	}
	return out
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// Load reads configuration from file and environment variables.
// Environment variables always override file values.
func Load() (Config, error) {
	cfg := Defaults()

	path, data, err := findConfigFile()
	if err == nil {
		fileCfg, err := ParseFile(path, data)
		if err != nil {
			return Config{}, err
		}
		cfg = Merge(cfg, fileCfg)
		cfg.ConfigFile = path
	} else if !errors.Is(err, errNoConfigFile) {
		return Config{}, err
	}

	envCfg, err := fromEnv(os.Getenv)
	if err != nil {
		return Config{}, err
	}
	return Merge(cfg, envCfg), nil
}

// ParseFile decodes a config file. The format follows the extension:
// .toml is TOML, anything else YAML.
func ParseFile(path string, data []byte) (Partial, error) {
	var p Partial
	var err error
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &p)
	} else {
		err = yaml.Unmarshal(data, &p)
	}
	if err != nil {
		return Partial{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return p, nil
}

var errNoConfigFile = errors.New("no config file found")

// findConfigFile searches for a config file and returns its path and contents.
func findConfigFile() (string, []byte, error) {
	// An explicit path must exist.
	if path := os.Getenv("ZELLIJ_NVIM_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", nil, fmt.Errorf("reading config file: %w", err)
		}
		return path, data, nil
	}

	for _, path := range searchPaths() {
		if data, err := os.ReadFile(path); err == nil {
			return path, data, nil
		}
	}
	return "", nil, errNoConfigFile
}

func searchPaths() []string {
	paths := []string{".zellij-nvim.yaml"}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return paths
		}
		dir = filepath.Join(home, ".config")
	}
	base := filepath.Join(dir, "zellij-nvim")
	return append(paths,
		filepath.Join(base, "config.yaml"),
		filepath.Join(base, "config.toml"),
	)
}

// fromEnv collects ZELLIJ_NVIM_* overrides. Unset and empty variables are skipped.
func fromEnv(getenv func(string) string) (Partial, error) {
	var p Partial
	str := func(key string) *string {
		if v := getenv(key); v != "" {
			return &v
		}
		return nil
	}
	var errs []error
	boolean := func(key string) *bool {
		v := getenv(key)
		if v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: invalid boolean %q", key, v))
			return nil
		}
		return &b
	}

	p.Shell = str("ZELLIJ_NVIM_SHELL")
	p.Binary = str("ZELLIJ_NVIM_BINARY")
	p.LogFile = str("ZELLIJ_NVIM_LOG_FILE")
	p.Debug = boolean("ZELLIJ_NVIM_DEBUG")
	p.OTELEndpoint = str("OTEL_EXPORTER_OTLP_ENDPOINT")
	p.OTELHeaders = str("OTEL_EXPORTER_OTLP_HEADERS")

	d := PartialDefaults{
		Floating:       boolean("ZELLIJ_NVIM_FLOATING"),
		CloseOnExit:    boolean("ZELLIJ_NVIM_CLOSE_ON_EXIT"),
		StartSuspended: boolean("ZELLIJ_NVIM_START_SUSPENDED"),
	}
	if d != (PartialDefaults{}) {
		p.Defaults = &d
	}
	n := PartialNotifications{
		Enabled:   boolean("ZELLIJ_NVIM_NOTIFY"),
		OnSuccess: boolean("ZELLIJ_NVIM_NOTIFY_ON_SUCCESS"),
		OnError:   boolean("ZELLIJ_NVIM_NOTIFY_ON_ERROR"),
	}
	if n != (PartialNotifications{}) {
		p.Notifications = &n
	}

	if err := errors.Join(errs...); err != nil {
		return Partial{}, fmt.Errorf("environment: %w", err)
	}
	return p, nil
}
