package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/voicenotes/internal/audiofiles"
	"github.com/llehouerou/voicenotes/internal/effect"
)

// EnvPrefix prefixes environment overrides. A double underscore separates
// sections: VOICENOTES_SERVER__ADDR sets server.addr.
const EnvPrefix = "VOICENOTES_"

// Engine kinds.
const (
	EngineStream = "stream"
	EngineBuffer = "buffer"
)

type Config struct {
	AudioDir     string   `koanf:"audio_dir"`     // directory listed by the API and read by the board
	URLPrefix    string   `koanf:"url_prefix"`    // path prefix of listed files (default: /audio)
	Extensions   []string `koanf:"extensions"`    // allow-list (default: .mp3 .wav .m4a)
	DefaultFiles []string `koanf:"default_files"` // clips used when discovery fails
	Engine       string   `koanf:"engine"`        // "stream" or "buffer"

	Server ServerConfig  `koanf:"server"`
	Board  BoardConfig   `koanf:"board"`
	Audio  AudioConfig   `koanf:"audio"`
	Log    LogConfig     `koanf:"log"`
	Effect effect.Params `koanf:"effects"`

	Notifications *bool `koanf:"notifications"` // desktop notifications on clip errors (default: true)
	MPRIS         *bool `koanf:"mpris"`         // expose the board over MPRIS (default: true)
}

// ServerConfig configures the audio-files API.
type ServerConfig struct {
	Addr            string        `koanf:"addr"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// BoardConfig configures the board client.
type BoardConfig struct {
	APIURL           string        `koanf:"api_url"` // e.g. "http://localhost:8080"
	ProgressInterval time.Duration `koanf:"progress_interval"`
	LoadTimeout      time.Duration `koanf:"load_timeout"`
	MaxClipSize      string        `koanf:"max_clip_size"` // largest fetched clip, e.g. "64 MiB"
}

// AudioConfig configures the output device.
type AudioConfig struct {
	SampleRate int `koanf:"sample_rate"`
}

// LogConfig configures the log sink.
type LogConfig struct {
	File  string `koanf:"file"`  // default: $XDG_STATE_HOME/voicenotes/voicenotes.log
	Level string `koanf:"level"` // debug, info, warn, error
}

// Load reads the config files in priority order, then environment overrides.
func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom reads the given TOML files (missing ones are skipped, last wins)
// and then VOICENOTES_ environment overrides.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, err
	}

	cfg := &Config{
		Effect: effect.DefaultParams(),
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.AudioDir = expandPath(cfg.AudioDir)
	cfg.Log.File = expandPath(cfg.Log.File)
	cfg.Board.APIURL = strings.TrimSuffix(cfg.Board.APIURL, "/")

	return cfg, nil
}

// envKey maps VOICENOTES_SERVER__ADDR to server.addr.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/voicenotes/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "voicenotes", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetAudioDir returns the audio directory (default: ./public/audio).
func (c *Config) GetAudioDir() string {
	if c.AudioDir == "" {
		return filepath.Join("public", "audio")
	}
	return c.AudioDir
}

// GetURLPrefix returns the listing path prefix.
func (c *Config) GetURLPrefix() string {
	if c.URLPrefix == "" {
		return audiofiles.DefaultPrefix
	}
	return "/" + strings.Trim(c.URLPrefix, "/")
}

// GetExtensions returns the extension allow-list.
func (c *Config) GetExtensions() []string {
	if len(c.Extensions) == 0 {
		return audiofiles.DefaultExtensions
	}
	return c.Extensions
}

// GetEngine returns the engine kind, "stream" unless "buffer" is configured.
func (c *Config) GetEngine() string {
	if strings.EqualFold(c.Engine, EngineBuffer) {
		return EngineBuffer
	}
	return EngineStream
}

// GetServerConfig returns the server configuration with defaults applied.
func (c *Config) GetServerConfig() ServerConfig {
	cfg := c.Server
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 5 * time.Second
	}
	return cfg
}

// GetBoardConfig returns the board configuration with defaults applied.
func (c *Config) GetBoardConfig() BoardConfig {
	cfg := c.Board
	if cfg.ProgressInterval <= 0 {
		cfg.ProgressInterval = 100 * time.Millisecond
	}
	if cfg.LoadTimeout <= 0 {
		cfg.LoadTimeout = 30 * time.Second
	}
	return cfg
}

// GetMaxClipBytes returns the fetched clip size limit (default: 64 MiB).
func (c *Config) GetMaxClipBytes() int64 {
	const fallback = 64 << 20
	if c.Board.MaxClipSize == "" {
		return fallback
	}
	n, err := humanize.ParseBytes(c.Board.MaxClipSize)
	if err != nil || n == 0 || n > 1<<40 {
		slog.Warn("invalid max_clip_size, using default", "value", c.Board.MaxClipSize)
		return fallback
	}
	return int64(n)
}

// GetSampleRate returns the output sample rate (default: 44100).
func (c *Config) GetSampleRate() int {
	if c.Audio.SampleRate < 8000 || c.Audio.SampleRate > 192000 {
		return 44100
	}
	return c.Audio.SampleRate
}

// GetEffectParams returns the effect tuning, falling back to the stock value
// for any parameter that cannot work.
func (c *Config) GetEffectParams() effect.Params {
	p := c.Effect
	def := effect.DefaultParams()
	if p.Bass.ShelfFreq <= 0 {
		p.Bass.ShelfFreq = def.Bass.ShelfFreq
	}
	if p.Bass.PeakFreq <= 0 {
		p.Bass.PeakFreq = def.Bass.PeakFreq
	}
	if p.Bass.PeakQ <= 0 {
		p.Bass.PeakQ = def.Bass.PeakQ
	}
	if p.Bass.Makeup <= 0 {
		p.Bass.Makeup = def.Bass.Makeup
	}
	if p.Chop.Period <= 0 {
		p.Chop.Period = def.Chop.Period
	}
	if p.Chop.Duty <= 0 || p.Chop.Duty > 1 {
		p.Chop.Duty = def.Chop.Duty
	}
	return p
}

// GetLogLevel parses the configured level (default: info).
func (c *Config) GetLogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// NotificationsEnabled reports whether desktop notifications are on.
func (c *Config) NotificationsEnabled() bool {
	return c.Notifications == nil || *c.Notifications
}

// MPRISEnabled reports whether the MPRIS adapter is on.
func (c *Config) MPRISEnabled() bool {
	return c.MPRIS == nil || *c.MPRIS
}
