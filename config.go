package scalegesture

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Defaults calibrated for a 160 dpi display.
const (
	DefaultMinSpan       = 170 // 27mm
	DefaultSpanSlop      = 16  // twice the touch slop
	DefaultTouchMinMajor = 48
	DefaultDisplayXDPI   = 160.0

	DefaultStep              = 8 * time.Millisecond
	DefaultMaxInterval       = time.Second
	DefaultProcessNoise      = 0.1
	DefaultMeasurementNoise  = 5.0
	DefaultInitialCovariance = 0.7
	DefaultDeltaSmoothing    = 5.0
	DefaultMotionDiscount    = 12.0 * 160.0
	DefaultDragScaleFactor   = 0.5

	maxConfigSize = 1 << 20
)

// Tuning holds the resampling and filter constants. Zero fields take their
// defaults in New, so start from DefaultTuning to change a single value.
type Tuning struct {
	// Step is the resampling grid period.
	Step time.Duration `yaml:"step"`
	// MaxInterval is the largest gap between samples that is interpolated;
	// anything longer restarts filtering.
	MaxInterval time.Duration `yaml:"max_interval"`

	ProcessNoise      float64 `yaml:"process_noise"`     // Q
	MeasurementNoise  float64 `yaml:"measurement_noise"` // R
	InitialCovariance float64 `yaml:"initial_covariance"`
	DeltaSmoothing    float64 `yaml:"delta_smoothing"` // W
	// MotionDiscount scales how fast R shrinks as motion (inches per step)
	// grows.
	MotionDiscount float64 `yaml:"motion_discount"`

	// DragScaleFactor damps the scale factor reported in drag-to-scale mode.
	DragScaleFactor float64 `yaml:"drag_scale_factor"`
}

// Config is supplied to New and treated as fixed for the detector's
// lifetime. Values are in pixels unless noted.
type Config struct {
	// MinSpan is the span below which no gesture is recognised.
	MinSpan int `yaml:"min_span"`
	// SpanSlop is the span change needed to begin, and the minimum span in
	// drag-to-scale mode.
	SpanSlop int `yaml:"span_slop"`
	// TouchMinMajor inflates every pointer's deviation by 0.7x this value.
	TouchMinMajor int `yaml:"touch_min_major"`
	// DisplayXDPI converts pixel motion to inches for the adaptive filter.
	DisplayXDPI float64 `yaml:"display_xdpi"`
	// DragScaleEnabled allows BeginDragScale to enter drag-to-scale mode.
	DragScaleEnabled bool `yaml:"drag_scale_enabled"`

	Tuning Tuning `yaml:"tuning"`
}

// DefaultTuning returns the stock filter constants.
func DefaultTuning() Tuning {
	return Tuning{
		Step:              DefaultStep,
		MaxInterval:       DefaultMaxInterval,
		ProcessNoise:      DefaultProcessNoise,
		MeasurementNoise:  DefaultMeasurementNoise,
		InitialCovariance: DefaultInitialCovariance,
		DeltaSmoothing:    DefaultDeltaSmoothing,
		MotionDiscount:    DefaultMotionDiscount,
		DragScaleFactor:   DefaultDragScaleFactor,
	}
}

// DefaultConfig returns a Config for a 160 dpi touch screen.
func DefaultConfig() Config {
	return Config{
		MinSpan:          DefaultMinSpan,
		SpanSlop:         DefaultSpanSlop,
		TouchMinMajor:    DefaultTouchMinMajor,
		DisplayXDPI:      DefaultDisplayXDPI,
		DragScaleEnabled: true,
		Tuning:           DefaultTuning(),
	}
}

// LoadConfig reads a YAML config file. Fields absent from the file keep
// their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	cleanPath := filepath.Clean(path)
	info, err := os.Stat(cleanPath)
	if err != nil {
		return Config{}, fmt.Errorf("stat config: %w", err)
	}
	if info.Size() > maxConfigSize {
		return Config{}, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigSize)
	}
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML (or JSON) over DefaultConfig and validates the
// result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports values the detector cannot work with. New does not call
// it; the detector substitutes defaults for the worst offenders instead.
func (c Config) Validate() error {
	switch {
	case c.MinSpan < 0:
		return fmt.Errorf("%w: min_span %d < 0", ErrInvalidConfig, c.MinSpan)
	case c.SpanSlop < 0:
		return fmt.Errorf("%w: span_slop %d < 0", ErrInvalidConfig, c.SpanSlop)
	case c.TouchMinMajor < 0:
		return fmt.Errorf("%w: touch_min_major %d < 0", ErrInvalidConfig, c.TouchMinMajor)
	case c.DisplayXDPI <= 0:
		return fmt.Errorf("%w: display_xdpi %v must be positive", ErrInvalidConfig, c.DisplayXDPI)
	case c.Tuning.Step <= 0:
		return fmt.Errorf("%w: tuning.step %v must be positive", ErrInvalidConfig, c.Tuning.Step)
	case c.Tuning.MaxInterval < c.Tuning.Step:
		return fmt.Errorf("%w: tuning.max_interval %v shorter than step %v",
			ErrInvalidConfig, c.Tuning.MaxInterval, c.Tuning.Step)
	case c.Tuning.MeasurementNoise < 0 || c.Tuning.ProcessNoise < 0:
		return fmt.Errorf("%w: noise constants must not be negative", ErrInvalidConfig)
	case c.Tuning.DeltaSmoothing < 0:
		return fmt.Errorf("%w: tuning.delta_smoothing %v < 0", ErrInvalidConfig, c.Tuning.DeltaSmoothing)
	}
	return nil
}

// normalized replaces values that would stall the resampler or poison the
// filter with defaults. Unset tuning fields take their defaults one by one,
// so a Tuning literal naming only Step still filters.
func (c Config) normalized() Config {
	if c.DisplayXDPI <= 0 {
		c.DisplayXDPI = DefaultDisplayXDPI
	}
	t := &c.Tuning
	def := DefaultTuning()
	if t.Step <= 0 {
		t.Step = def.Step
	}
	if t.MaxInterval <= 0 {
		t.MaxInterval = def.MaxInterval
	}
	orDefault(&t.ProcessNoise, def.ProcessNoise)
	orDefault(&t.MeasurementNoise, def.MeasurementNoise)
	orDefault(&t.InitialCovariance, def.InitialCovariance)
	orDefault(&t.DeltaSmoothing, def.DeltaSmoothing)
	orDefault(&t.MotionDiscount, def.MotionDiscount)
	orDefault(&t.DragScaleFactor, def.DragScaleFactor)
	return c
}

// orDefault replaces a zero or negative *v with def.
func orDefault(v *float64, def float64) {
	if *v <= 0 {
		*v = def
	}
}
