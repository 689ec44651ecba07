//go:build !ios && !android && (amd64 || arm64)

// Package config loads settings for the ffswscale command from a config
// file, FFSWSCALE_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kkyr/fig"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/obinnaokechukwu/ffswscale"
)

// EnvPrefix prefixes environment overrides, e.g. FFSWSCALE_MODE or
// FFSWSCALE_LOG_LEVEL.
const EnvPrefix = "FFSWSCALE"

// DefaultFile is looked up in the working directory when no config path is
// given.
const DefaultFile = "ffswscale.yaml"

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid configuration")

// Mode selects the frame operation.
type Mode string

const (
	ModeConvert   Mode = "convert"
	ModeLetterbox Mode = "letterbox"
)

// Config is the raw, string-valued configuration.
type Config struct {
	Mode         string `fig:"mode"`
	Input        string `fig:"input"`
	Output       string `fig:"output"`
	Size         string `fig:"size"`
	Target       string `fig:"target"`
	InputFormat  string `fig:"input_format"`
	OutputFormat string `fig:"output_format"`
	Algorithm    string `fig:"algorithm"`
	Log          struct {
		Level       string `fig:"level"`
		FFmpegLevel string `fig:"ffmpeg_level"`
	} `fig:"log"`
}

// setting ties one Config field to its flag, its fig key and its default.
type setting struct {
	flag  string
	key   string
	def   string
	usage string
	field func(*Config) *string
}

var settings = []setting{
	{"mode", "mode", "letterbox", "operation: convert or letterbox", func(c *Config) *string { return &c.Mode }},
	{"input", "input", "-", "input file, - for stdin", func(c *Config) *string { return &c.Input }},
	{"output", "output", "-", "output file, - for stdout", func(c *Config) *string { return &c.Output }},
	{"size", "size", "", "source frame size WxH", func(c *Config) *string { return &c.Size }},
	{"target", "target", "", "letterbox canvas WxH, or output size in convert mode", func(c *Config) *string { return &c.Target }},
	{"input-format", "input_format", "I420", "source pixel format", func(c *Config) *string { return &c.InputFormat }},
	{"output-format", "output_format", "I420", "destination pixel format", func(c *Config) *string { return &c.OutputFormat }},
	{"algorithm", "algorithm", "", "convert mode filter: fast_bilinear, bilinear, bicubic, lanczos or point (default bicubic)", func(c *Config) *string { return &c.Algorithm }},
	{"log-level", "log.level", "info", "log level", func(c *Config) *string { return &c.Log.Level }},
	{"ffmpeg-log-level", "log.ffmpeg_level", "error", "FFmpeg log level", func(c *Config) *string { return &c.Log.FFmpegLevel }},
}

// envKey matches fig's naming: log.level -> FFSWSCALE_LOG_LEVEL.
func (s setting) envKey() string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(s.key, ".", "_"))
}

// Load reads path (YAML, JSON or TOML by extension) and applies
// environment overrides. An empty path tries DefaultFile and falls back to
// the environment alone when it does not exist.
func Load(path string) (*Config, error) {
	var c Config
	file, dir := DefaultFile, "."
	if path != "" {
		file, dir = filepath.Base(path), filepath.Dir(path)
	}

	err := fig.Load(&c, fig.File(file), fig.Dirs(dir), fig.UseEnv(EnvPrefix))
	switch {
	case err == nil:
	case path == "" && errors.Is(err, fig.ErrFileNotFound):
		// fig stops before reading the environment when there is no file.
		c.loadEnv()
	default:
		return nil, fmt.Errorf("config: loading %q: %w", path, err)
	}
	c.setDefaults()
	return &c, nil
}

func (c *Config) loadEnv() {
	for _, s := range settings {
		if v, ok := os.LookupEnv(s.envKey()); ok {
			*s.field(c) = v
		}
	}
}

func (c *Config) setDefaults() {
	for _, s := range settings {
		if p := s.field(c); *p == "" {
			*p = s.def
		}
	}
}

// Flags are the command-line flags. Only flags the user sets override the
// loaded configuration.
type Flags struct {
	ConfigPath string

	fs     *pflag.FlagSet
	values map[string]*string
}

// AddFlags registers the flags on fs.
func AddFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs, values: make(map[string]*string, len(settings))}
	fs.StringVarP(&f.ConfigPath, "config", "c", "", "config file (yaml, json or toml), default ./"+DefaultFile+" if present")
	for _, s := range settings {
		usage := s.usage
		if s.def != "" {
			usage += " (default " + s.def + ")"
		}
		f.values[s.flag] = fs.String(s.flag, "", usage)
	}
	return f
}

// Apply copies explicitly set flags onto c.
func (f *Flags) Apply(c *Config) {
	f.fs.Visit(func(fl *pflag.Flag) {
		for _, s := range settings {
			if s.flag == fl.Name {
				*s.field(c) = *f.values[fl.Name]
			}
		}
	})
}

// Job is a validated configuration.
type Job struct {
	Mode         Mode
	Input        string
	Output       string
	Size         ffswscale.Resolution
	Target       ffswscale.Resolution
	InputFormat  string
	OutputFormat string
	Algorithm    ffswscale.Algorithm

	LogLevel       logrus.Level
	FFmpegLogLevel ffswscale.LogLevel
}

// Validate checks c and resolves it into a Job.
func (c *Config) Validate() (Job, error) {
	var j Job
	switch Mode(c.Mode) {
	case ModeConvert, ModeLetterbox:
		j.Mode = Mode(c.Mode)
	default:
		return Job{}, fmt.Errorf("%w: mode %q, want %q or %q", ErrInvalid, c.Mode, ModeConvert, ModeLetterbox)
	}

	if c.Input == "" || c.Output == "" {
		return Job{}, fmt.Errorf("%w: input and output are required", ErrInvalid)
	}
	j.Input, j.Output = c.Input, c.Output

	var err error
	if j.Size, err = ffswscale.ParseResolution(c.Size); err != nil {
		return Job{}, fmt.Errorf("%w: size: %w", ErrInvalid, err)
	}

	switch {
	case c.Target != "":
		if j.Target, err = ffswscale.ParseResolution(c.Target); err != nil {
			return Job{}, fmt.Errorf("%w: target: %w", ErrInvalid, err)
		}
	case j.Mode == ModeLetterbox:
		return Job{}, fmt.Errorf("%w: letterbox mode needs a target", ErrInvalid)
	default:
		j.Target = j.Size
	}

	for _, name := range []string{c.InputFormat, c.OutputFormat} {
		if _, err := ffswscale.ParsePixelFormat(name); err != nil {
			return Job{}, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
	}
	if j.Mode == ModeLetterbox && (c.InputFormat != "I420" || c.OutputFormat != "I420") {
		return Job{}, fmt.Errorf("%w: letterbox mode only handles I420, got %s -> %s",
			ErrInvalid, c.InputFormat, c.OutputFormat)
	}
	j.InputFormat, j.OutputFormat = c.InputFormat, c.OutputFormat

	if j.Algorithm, err = ffswscale.ParseAlgorithm(c.Algorithm); err != nil {
		return Job{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if j.Mode == ModeLetterbox && j.Algorithm != 0 {
		return Job{}, fmt.Errorf("%w: letterbox mode always scales bilinear, got algorithm %s", ErrInvalid, j.Algorithm)
	}

	if j.LogLevel, err = logrus.ParseLevel(c.Log.Level); err != nil {
		return Job{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if j.FFmpegLogLevel, err = ffswscale.ParseLogLevel(c.Log.FFmpegLevel); err != nil {
		return Job{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return j, nil
}
