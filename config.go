package countdown

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	DefaultBucketSeconds = 60
	DefaultFrames        = 60
	DefaultLabel         = "Sale ends in"
	DefaultAccent        = "#22d3ee"
	DefaultBackground    = "#0f172a"
	DefaultText          = "#ffffff"

	// MaxFrames caps the animation length.
	MaxFrames = 120
	// MaxFrameDelayCS caps an explicit per-frame delay, in centiseconds.
	MaxFrameDelayCS = 10000
	// MaxBucketSeconds caps the cache window at one year.
	MaxBucketSeconds = 365 * 24 * 60 * 60
	// MaxCanvas caps each canvas dimension in pixels.
	MaxCanvas = 4096
)

// Config is the deployment configuration, read once at startup.
//
// Zero values of numeric fields select their defaults; see DefaultConfig.
type Config struct {
	// AllowAnimation permits GIF output. When false, animated requests are
	// served as static PNG without error.
	AllowAnimation bool `yaml:"allow_animation"`

	// BucketSeconds is the cache window width.
	BucketSeconds int `yaml:"bucket_seconds"`

	// CacheHeader, when set, replaces the computed Cache-Control value.
	CacheHeader string `yaml:"cache_header"`

	// Frames is the number of animation frames (1..MaxFrames).
	Frames int `yaml:"frames"`

	// FrameDelayCS is an explicit per-frame delay in centiseconds.
	// Zero derives the delay so one loop spans one bucket.
	FrameDelayCS int `yaml:"frame_delay_cs"`

	// AnimationTimeout bounds GIF assembly. When exceeded, a static PNG is
	// served instead. Zero disables the deadline.
	AnimationTimeout time.Duration `yaml:"animation_timeout"`

	// Workers is the number of goroutines rendering animation frames.
	// Zero uses GOMAXPROCS.
	Workers int `yaml:"workers"`

	// Backend names the surface backend frames are drawn with.
	// Empty selects the highest-priority registered backend.
	Backend string `yaml:"backend"`

	// FontPath and FontFamily register a custom font that replaces the
	// built-in families. A missing or unreadable file is logged and ignored.
	FontPath   string `yaml:"font_path"`
	FontFamily string `yaml:"font_family"`

	Label  string       `yaml:"default_label"`
	Colors ColorConfig  `yaml:"colors"`
	Layout LayoutConfig `yaml:"layout"`
}

// ColorConfig holds the fallback colors used when a request omits a color
// or supplies an invalid one.
type ColorConfig struct {
	Accent     string `yaml:"accent"`
	Background string `yaml:"background"`
	Text       string `yaml:"text"`
}

// LayoutConfig is the canonical layout parameterization.
// All distances are in pixels.
type LayoutConfig struct {
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	Padding      float64 `yaml:"padding"`
	AccentHeight float64 `yaml:"accent_height"`

	LabelSize float64 `yaml:"label_size"`
	ValueSize float64 `yaml:"value_size"`
	UnitSize  float64 `yaml:"unit_size"`
	SubSize   float64 `yaml:"sub_size"`

	// LabelGap separates the label from the segment row.
	LabelGap float64 `yaml:"label_gap"`
	// UnitGap separates a segment value from its unit word.
	UnitGap float64 `yaml:"unit_gap"`
	// SegmentGap separates adjacent segments.
	SegmentGap float64 `yaml:"segment_gap"`
	// SubGap separates the segment row from the sub-label; SubExtra is added
	// when positioning the sub-label only, not when centering the block.
	SubGap   float64 `yaml:"sub_gap"`
	SubExtra float64 `yaml:"sub_extra"`

	LabelFamily string `yaml:"label_family"`
	ValueFamily string `yaml:"value_family"`

	Units UnitLabels `yaml:"units"`
}

// UnitLabels are the words drawn under each segment value.
type UnitLabels struct {
	Days    string `yaml:"days"`
	Hours   string `yaml:"hours"`
	Minutes string `yaml:"minutes"`
	Seconds string `yaml:"seconds"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	c := Config{AllowAnimation: true}
	c.defaults()
	return c
}

// DefaultLayout returns the default layout parameterization.
func DefaultLayout() LayoutConfig {
	var l LayoutConfig
	l.defaults()
	return l
}

func (c *Config) defaults() {
	if c.BucketSeconds <= 0 {
		c.BucketSeconds = DefaultBucketSeconds
	}
	c.BucketSeconds = min(c.BucketSeconds, MaxBucketSeconds)
	if c.Frames <= 0 {
		c.Frames = DefaultFrames
	}
	c.Frames = min(c.Frames, MaxFrames)
	if c.FrameDelayCS < 0 {
		c.FrameDelayCS = 0
	}
	c.FrameDelayCS = min(c.FrameDelayCS, MaxFrameDelayCS)
	if c.AnimationTimeout < 0 {
		c.AnimationTimeout = 0
	}
	if c.Workers < 0 {
		c.Workers = 0
	}
	if c.Label == "" {
		c.Label = DefaultLabel
	}
	c.Colors.Accent = PickColor(c.Colors.Accent, DefaultAccent)
	c.Colors.Background = PickColor(c.Colors.Background, DefaultBackground)
	c.Colors.Text = PickColor(c.Colors.Text, DefaultText)
	c.Layout.defaults()
}

func (l *LayoutConfig) defaults() {
	if l.Width <= 0 {
		l.Width = 600
	}
	if l.Height <= 0 {
		l.Height = 220
	}
	l.Width = min(l.Width, MaxCanvas)
	l.Height = min(l.Height, MaxCanvas)
	setDefault(&l.Padding, 24)
	setDefault(&l.AccentHeight, 6)
	setDefault(&l.LabelSize, 26)
	setDefault(&l.ValueSize, 56)
	setDefault(&l.UnitSize, 20)
	setDefault(&l.SubSize, 18)
	setDefault(&l.LabelGap, 24)
	setDefault(&l.UnitGap, 8)
	setDefault(&l.SegmentGap, 24)
	setDefault(&l.SubGap, 24)
	setDefault(&l.SubExtra, 4)
	if l.Units.Days == "" {
		l.Units.Days = "days"
	}
	if l.Units.Hours == "" {
		l.Units.Hours = "hours"
	}
	if l.Units.Minutes == "" {
		l.Units.Minutes = "minutes"
	}
	if l.Units.Seconds == "" {
		l.Units.Seconds = "seconds"
	}
}

func setDefault(v *float64, def float64) {
	if *v <= 0 {
		*v = def
	}
}

// CacheControl returns the Cache-Control value for rendered images.
func (c *Config) CacheControl() string {
	if c.CacheHeader != "" {
		return c.CacheHeader
	}
	return fmt.Sprintf("public, max-age=0, s-maxage=%d, stale-while-revalidate=30", max(1, c.BucketSeconds))
}

// FrameDelay returns the per-frame delay in centiseconds. Without an
// explicit delay it is derived so that Frames × delay ≈ BucketSeconds,
// capped at MaxFrameDelayCS.
func (c *Config) FrameDelay() int {
	if c.FrameDelayCS > 0 {
		return c.FrameDelayCS
	}
	return frameDelay(c.BucketSeconds, c.Frames)
}

func frameDelay(bucketSeconds, frames int) int {
	num := min(max(1, bucketSeconds), MaxBucketSeconds) * 100
	den := max(1, frames)
	// round half up
	return min(max(1, (2*num+den)/(2*den)), MaxFrameDelayCS)
}

// LoadConfigFile reads a YAML config file on top of DefaultConfig.
// Keys absent from the file keep their defaults.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("countdown: parse %s: %w", path, err)
	}
	cfg.defaults()
	return &cfg, nil
}

// envVars are the variables ApplyEnv reads, in the order it reads them.
var envVars = []string{
	"ALLOW_GIF",
	"BUCKET_SECONDS",
	"CACHE_HEADER",
	"GIF_FRAMES",
	"GIF_DELAY_CS",
	"ANIMATION_TIMEOUT",
	"RENDER_WORKERS",
	"RENDER_BACKEND",
	"FONT_PATH",
	"FONT_FAMILY",
}

// EnvVars returns the names of the environment variables ApplyEnv reads.
func EnvVars() []string {
	return append([]string(nil), envVars...)
}

// ApplyEnv overrides c from environment variables read through lookup
// (usually os.LookupEnv):
//
//	ALLOW_GIF          "false" disables animation, any other value enables it
//	BUCKET_SECONDS     positive integer, capped at MaxBucketSeconds
//	CACHE_HEADER       explicit Cache-Control value
//	GIF_FRAMES         positive integer, capped at MaxFrames
//	GIF_DELAY_CS       positive integer, capped at MaxFrameDelayCS
//	ANIMATION_TIMEOUT  Go duration, e.g. "2s"
//	RENDER_WORKERS     positive integer
//	RENDER_BACKEND     surface backend name, e.g. "raster"
//	FONT_PATH          custom font file
//	FONT_FAMILY        family name for FONT_PATH
//
// Malformed numbers keep the current value.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("ALLOW_GIF"); ok {
		c.AllowAnimation = v != "false"
	}
	if v, ok := lookup("BUCKET_SECONDS"); ok {
		c.BucketSeconds = parsePositiveInt(v, c.BucketSeconds, MaxBucketSeconds)
	}
	if v, ok := lookup("CACHE_HEADER"); ok {
		c.CacheHeader = strings.TrimSpace(v)
	}
	if v, ok := lookup("GIF_FRAMES"); ok {
		c.Frames = parsePositiveInt(v, c.Frames, MaxFrames)
	}
	if v, ok := lookup("GIF_DELAY_CS"); ok {
		c.FrameDelayCS = parsePositiveInt(v, 0, MaxFrameDelayCS)
	}
	if v, ok := lookup("ANIMATION_TIMEOUT"); ok {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			c.AnimationTimeout = d
		}
	}
	if v, ok := lookup("RENDER_WORKERS"); ok {
		c.Workers = parsePositiveInt(v, c.Workers, 0)
	}
	if v, ok := lookup("RENDER_BACKEND"); ok {
		c.Backend = strings.TrimSpace(v)
	}
	if v, ok := lookup("FONT_PATH"); ok {
		c.FontPath = v
	}
	if v, ok := lookup("FONT_FAMILY"); ok {
		c.FontFamily = v
	}
	c.defaults()
}

// parsePositiveInt parses v as a positive integer, returning fallback for
// anything else. A positive limit caps the result.
func parsePositiveInt(v string, fallback, limit int) int {
	n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n < 1 {
		return fallback
	}
	if limit > 0 && n > float64(limit) {
		return limit
	}
	return int(n)
}
