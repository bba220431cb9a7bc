package store

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config carries the settings shared by every worldsync command.
type Config interface {
	// BasePath is the diskv directory holding imported events.
	BasePath() string
	WeekStart() time.Weekday
	DefaultView() string
	// CatalogPath optionally replaces the embedded filter catalog.
	CatalogPath() string
	Listen() string
}

// LoadConfig reads .worldsync.yaml from $WORLDSYNC_CONFIG_PATH, the working
// directory or $HOME, layered under WORLDSYNC_* environment variables.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", "~/.worldsync.db")
	v.SetDefault("week_start", "sunday")
	v.SetDefault("view", "month")
	v.SetDefault("catalog", "")
	v.SetDefault("listen", "127.0.0.1:8080")
	v.SetConfigName(".worldsync") // .yaml is implicit
	v.SetEnvPrefix("WORLDSYNC")
	v.AutomaticEnv()

	if override := os.Getenv("WORLDSYNC_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config file: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	start, err := ParseWeekday(v.GetString("week_start"))
	if err != nil {
		return nil, err
	}
	catalog := v.GetString("catalog")
	if catalog != "" {
		if catalog, err = homedir.Expand(catalog); err != nil {
			return nil, fmt.Errorf("store: expand catalog: %w", err)
		}
	}

	return &fileConfig{
		Path:    path,
		Start:   start,
		View:    v.GetString("view"),
		Catalog: catalog,
		Addr:    v.GetString("listen"),
	}, nil
}

// ParseWeekday accepts sunday or monday (or their three letter forms).
func ParseWeekday(s string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sun", "sunday":
		return time.Sunday, nil
	case "mon", "monday":
		return time.Monday, nil
	}
	return time.Sunday, fmt.Errorf("store: week_start must be sunday or monday, got %q", s)
}

type fileConfig struct {
	Path    string       `json:"path"`
	Start   time.Weekday `json:"week_start"`
	View    string       `json:"view"`
	Catalog string       `json:"catalog,omitempty"`
	Addr    string       `json:"listen"`
}

func (f *fileConfig) BasePath() string        { return f.Path }
func (f *fileConfig) WeekStart() time.Weekday { return f.Start }
func (f *fileConfig) DefaultView() string     { return f.View }
func (f *fileConfig) CatalogPath() string     { return f.Catalog }
func (f *fileConfig) Listen() string          { return f.Addr }

// StaticConfig is a Config with fixed values, used by tests and embedders.
type StaticConfig struct {
	Path    string
	Start   time.Weekday
	View    string
	Catalog string
	Addr    string
}

func (s StaticConfig) BasePath() string        { return s.Path }
func (s StaticConfig) WeekStart() time.Weekday { return s.Start }
func (s StaticConfig) CatalogPath() string     { return s.Catalog }

func (s StaticConfig) DefaultView() string {
	if s.View == "" {
		return "month"
	}
	return s.View
}

func (s StaticConfig) Listen() string {
	if s.Addr == "" {
		return "127.0.0.1:8080"
	}
	return s.Addr
}
