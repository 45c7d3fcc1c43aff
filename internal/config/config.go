package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "taskpilot.db"
	DefaultLogName        = "taskpilot.log"
	DefaultProxyURL       = "http://localhost:3000"

	StorageSQLite = "sqlite"
	StorageRedis  = "redis"

	appDirName = "taskpilot"
)

type Keymap struct {
	Quit         string `toml:"quit"`
	Add          string `toml:"add"`
	Up           string `toml:"up"`
	Down         string `toml:"down"`
	Toggle       string `toml:"toggle"`
	Delete       string `toml:"delete"`
	Reminder     string `toml:"reminder"`
	ReminderTime string `toml:"reminder_time"`
	ClearDone    string `toml:"clear_done"`
	Generate     string `toml:"generate"`
	Suggestions  string `toml:"suggestions"`
	Select       string `toml:"select"`
	AddSelected  string `toml:"add_selected"`
	ClearSuggest string `toml:"clear_suggestions"`
	Theme        string `toml:"theme"`
	Confirm      string `toml:"confirm"`
	Cancel       string `toml:"cancel"`
}

type Config struct {
	DBPath        string `toml:"db_path"`
	Storage       string `toml:"storage"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	ProxyURL      string `toml:"proxy_url"`
	LogFile       string `toml:"log_file"`
	LogLevel      string `toml:"log_level"`
	Keys          Keymap `toml:"keys"`
}

// ResolveConfigPath picks $TASKPILOT_CONFIG, then the XDG config dir,
// then ~/.config.
func ResolveConfigPath() string {
	if p := os.Getenv("TASKPILOT_CONFIG"); p != "" {
		return p
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDirName, DefaultConfigFileName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(home, ".config", appDirName, DefaultConfigFileName)
}

// LoadOrCreate reads the config at path, writing the defaults first when
// the file does not exist. Relative db and log paths resolve against the
// config file's directory.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.resolve(filepath.Dir(path)), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.fillDefaults()
	return cfg.resolve(filepath.Dir(path)), nil
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *Config) fillDefaults() {
	def := defaultConfig()
	if c.DBPath == "" {
		c.DBPath = def.DBPath
	}
	if c.Storage == "" {
		c.Storage = def.Storage
	}
	if c.ProxyURL == "" {
		c.ProxyURL = def.ProxyURL
	}
	if c.LogFile == "" {
		c.LogFile = def.LogFile
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	c.Keys.fillFrom(def.Keys)
}

func (c Config) resolve(dir string) Config {
	if !filepath.IsAbs(c.DBPath) {
		c.DBPath = filepath.Join(dir, c.DBPath)
	}
	if !filepath.IsAbs(c.LogFile) {
		c.LogFile = filepath.Join(dir, c.LogFile)
	}
	return c
}

// fillFrom keeps user bindings and takes def for anything left blank,
// so older config files pick up new actions.
func (k *Keymap) fillFrom(def Keymap) {
	fields := []struct {
		dst *string
		src string
	}{
		{&k.Quit, def.Quit},
		{&k.Add, def.Add},
		{&k.Up, def.Up},
		{&k.Down, def.Down},
		{&k.Toggle, def.Toggle},
		{&k.Delete, def.Delete},
		{&k.Reminder, def.Reminder},
		{&k.ReminderTime, def.ReminderTime},
		{&k.ClearDone, def.ClearDone},
		{&k.Generate, def.Generate},
		{&k.Suggestions, def.Suggestions},
		{&k.Select, def.Select},
		{&k.AddSelected, def.AddSelected},
		{&k.ClearSuggest, def.ClearSuggest},
		{&k.Theme, def.Theme},
		{&k.Confirm, def.Confirm},
		{&k.Cancel, def.Cancel},
	}
	for _, f := range fields {
		if *f.dst == "" {
			*f.dst = f.src
		}
	}
}

func defaultConfig() Config {
	return Config{
		DBPath:   DefaultDBName,
		Storage:  StorageSQLite,
		ProxyURL: DefaultProxyURL,
		LogFile:  DefaultLogName,
		LogLevel: "info",
		Keys: Keymap{
			Quit:         "q",
			Add:          "a",
			Up:           "k",
			Down:         "j",
			Toggle:       " ",
			Delete:       "d",
			Reminder:     "r",
			ReminderTime: "t",
			ClearDone:    "c",
			Generate:     "g",
			Suggestions:  "s",
			Select:       " ",
			AddSelected:  "enter",
			ClearSuggest: "x",
			Theme:        "T",
			Confirm:      "enter",
			Cancel:       "esc",
		},
	}
}
