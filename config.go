package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Player struct {
		BusName       string `mapstructure:"bus_name"`
		LaunchCommand string `mapstructure:"launch_command"`
	} `mapstructure:"player"`
	Icons struct {
		Player   string `mapstructure:"player"`
		Play     string `mapstructure:"play"`
		Pause    string `mapstructure:"pause"`
		Stop     string `mapstructure:"stop"`
		Backward string `mapstructure:"backward"`
		Forward  string `mapstructure:"forward"`
		Error    string `mapstructure:"error"`
	} `mapstructure:"icons"`
	UI struct {
		InfoColor   string `mapstructure:"info_color"`
		ColorMode   string `mapstructure:"color_mode"`
		AccentColor string `mapstructure:"accent_color"`
		MaxWidth    int    `mapstructure:"max_width"`
	} `mapstructure:"ui"`
	Artwork struct {
		Enabled         bool   `mapstructure:"enabled"`
		Width           int    `mapstructure:"width"`
		CacheDir        string `mapstructure:"cache_dir"`
		FallbackBaseURL string `mapstructure:"fallback_base_url"`
	} `mapstructure:"artwork"`
	HTTP struct {
		TimeoutMs int `mapstructure:"timeout_ms"`
		RetryMax  int `mapstructure:"retry_max"`
	} `mapstructure:"http"`
	Timing struct {
		UIRefreshMs int `mapstructure:"ui_refresh_ms"`
		DataFetchMs int `mapstructure:"data_fetch_ms"`
	} `mapstructure:"timing"`
}

// statusIcon maps a playback status to its configured icon name.
func (c Config) statusIcon(status PlaybackStatus) string {
	switch status {
	case StatusPlaying:
		return c.Icons.Play
	case StatusPaused:
		return c.Icons.Pause
	default:
		return c.Icons.Stop
	}
}

// SafeConfig wraps Config with thread-safe access
type SafeConfig struct {
	mu  sync.RWMutex
	cfg Config
}

// Get returns a copy of the current config (thread-safe read)
func (sc *SafeConfig) Get() Config {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.cfg
}

// Set updates the config (thread-safe write)
func (sc *SafeConfig) Set(cfg Config) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.cfg = cfg
}

var config = &SafeConfig{}

// Config file changed notification
type configReloadMsg struct{}

var configChangeChan = make(chan struct{}, 1)

// watchConfigCmd blocks until the config file changes on disk, then wakes
// the watch TUI so it can pick up the new values.
func watchConfigCmd() tea.Cmd {
	return func() tea.Msg {
		<-configChangeChan
		return configReloadMsg{}
	}
}

func defaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "spotargos", "artwork")
	}
	return filepath.Join(base, "spotargos", "artwork")
}

func initConfig() {
	// Set defaults
	viper.SetDefault("player.bus_name", "org.mpris.MediaPlayer2.spotify")
	viper.SetDefault("player.launch_command", "spotify")
	viper.SetDefault("icons.player", "spotify-client")
	viper.SetDefault("icons.play", "media-playback-start")
	viper.SetDefault("icons.pause", "media-playback-pause")
	viper.SetDefault("icons.stop", "media-playback-stop")
	viper.SetDefault("icons.backward", "media-skip-backward")
	viper.SetDefault("icons.forward", "media-skip-forward")
	viper.SetDefault("icons.error", "dialog-warning")
	viper.SetDefault("ui.info_color", "#888888")
	viper.SetDefault("ui.color_mode", "fixed")
	viper.SetDefault("ui.accent_color", "")
	viper.SetDefault("ui.max_width", 45)
	viper.SetDefault("artwork.enabled", true)
	viper.SetDefault("artwork.width", 400)
	viper.SetDefault("artwork.cache_dir", defaultCacheDir())
	viper.SetDefault("artwork.fallback_base_url", "https://i.scdn.co/image/")
	viper.SetDefault("http.timeout_ms", 5000)
	viper.SetDefault("http.retry_max", 2)
	viper.SetDefault("timing.ui_refresh_ms", 100)
	viper.SetDefault("timing.data_fetch_ms", 1000)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if configFlag != "" {
		viper.SetConfigFile(configFlag)
	} else {
		// Check XDG_CONFIG_HOME first, fallback to ~/.config
		configHome := os.Getenv("XDG_CONFIG_HOME")
		if configHome == "" {
			homeDir, err := os.UserHomeDir()
			if err == nil {
				configHome = filepath.Join(homeDir, ".config")
			}
		}
		if configHome != "" {
			viper.AddConfigPath(filepath.Join(configHome, "spotargos"))
		}
	}

	// Environment variable support with SPOTARGOS_ prefix
	viper.SetEnvPrefix("SPOTARGOS")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file (ignore error if not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Warning: Error reading config file: %v\n", err)
		}
	}

	// Command-line flags take precedence
	if colorFlag != "" {
		viper.Set("ui.accent_color", colorFlag)
		viper.Set("ui.color_mode", "fixed")
	}
	if noArtworkFlag {
		viper.Set("artwork.enabled", false)
	}
	if busNameFlag != "" {
		viper.Set("player.bus_name", busNameFlag)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Error parsing config: %v\n", err)
	}
	if errs := validateConfig(&cfg); len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintf(os.Stderr, "Warning: config: %v\n", err)
		}
	}
	config.Set(cfg)

	// Watch for config file changes and live reload (used by watch mode)
	viper.OnConfigChange(func(e fsnotify.Event) {
		var newCfg Config
		if err := viper.Unmarshal(&newCfg); err == nil && len(validateConfig(&newCfg)) == 0 {
			config.Set(newCfg)
			select {
			case configChangeChan <- struct{}{}:
			default:
				// Channel full, skip notification
			}
		}
	})
	viper.WatchConfig()
}

// validateConfig sanity-checks values and repairs the ones that would break
// rendering, returning a description of each problem found.
func validateConfig(cfg *Config) []error {
	var errs []error

	if cfg.Player.BusName == "" {
		errs = append(errs, fmt.Errorf("player.bus_name must not be empty"))
		cfg.Player.BusName = "org.mpris.MediaPlayer2.spotify"
	}
	if cfg.UI.InfoColor != "" && !isValidColor(cfg.UI.InfoColor) {
		errs = append(errs, fmt.Errorf("ui.info_color %q is not a hex color or color name", cfg.UI.InfoColor))
		cfg.UI.InfoColor = "#888888"
	}
	if cfg.UI.AccentColor != "" && !isValidColor(cfg.UI.AccentColor) {
		errs = append(errs, fmt.Errorf("ui.accent_color %q is not a hex color or color name", cfg.UI.AccentColor))
		cfg.UI.AccentColor = ""
	}
	switch cfg.UI.ColorMode {
	case "fixed", "album":
	default:
		errs = append(errs, fmt.Errorf("ui.color_mode %q must be \"fixed\" or \"album\"", cfg.UI.ColorMode))
		cfg.UI.ColorMode = "fixed"
	}
	if cfg.UI.MaxWidth < 30 || cfg.UI.MaxWidth > 200 {
		errs = append(errs, fmt.Errorf("ui.max_width %d out of range 30..200", cfg.UI.MaxWidth))
		cfg.UI.MaxWidth = 45
	}
	if cfg.Artwork.Width < 50 || cfg.Artwork.Width > 2000 {
		errs = append(errs, fmt.Errorf("artwork.width %d out of range 50..2000", cfg.Artwork.Width))
		cfg.Artwork.Width = 400
	}
	if cfg.HTTP.TimeoutMs <= 0 {
		errs = append(errs, fmt.Errorf("http.timeout_ms must be positive"))
		cfg.HTTP.TimeoutMs = 5000
	}
	if cfg.HTTP.RetryMax < 0 || cfg.HTTP.RetryMax > 10 {
		errs = append(errs, fmt.Errorf("http.retry_max %d out of range 0..10", cfg.HTTP.RetryMax))
		cfg.HTTP.RetryMax = 2
	}
	if cfg.Timing.UIRefreshMs < 16 {
		errs = append(errs, fmt.Errorf("timing.ui_refresh_ms %d too small", cfg.Timing.UIRefreshMs))
		cfg.Timing.UIRefreshMs = 100
	}
	if cfg.Timing.DataFetchMs < 100 {
		errs = append(errs, fmt.Errorf("timing.data_fetch_ms %d too small", cfg.Timing.DataFetchMs))
		cfg.Timing.DataFetchMs = 1000
	}

	return errs
}

// isValidColor accepts #RGB / #RRGGBB hex colors and simple color names,
// which is what the markup host understands.
func isValidColor(c string) bool {
	if c == "" {
		return false
	}
	if c[0] == '#' {
		if len(c) != 4 && len(c) != 7 {
			return false
		}
		for i := 1; i < len(c); i++ {
			ch := c[i]
			if !((ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')) {
				return false
			}
		}
		return true
	}
	// Color names: letters only
	for i := 0; i < len(c); i++ {
		ch := c[i]
		if !((ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')) {
			return false
		}
	}
	return true
}
