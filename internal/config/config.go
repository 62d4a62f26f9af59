// Package config handles evaluator configuration loading and management.
package config

// Config holds all rigtool settings.
type Config struct {
	Animation AnimationConfig `yaml:"animation"`
	Camera    CameraConfig    `yaml:"camera"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// AnimationConfig holds evaluation settings.
type AnimationConfig struct {
	MaxBones         int     `yaml:"max_bones"`         // Bone slots per transform set
	Loop             bool    `yaml:"loop"`              // Wrap frames into each clip's length
	FrameRate        float32 `yaml:"frame_rate"`        // Frames per second for time based input
	ApplyConstraints bool    `yaml:"apply_constraints"` // Run the helper bone pass
}

// CameraConfig holds fallback values for camera clips.
type CameraConfig struct {
	FovY     float32 `yaml:"fov_y"` // Radians
	NearClip float32 `yaml:"near_clip"`
	FarClip  float32 `yaml:"far_clip"`
	Aspect   float32 `yaml:"aspect"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`  // debug, info, warn or error
	Format  string `yaml:"format"` // console or json
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Animation: AnimationConfig{
			MaxBones:         512,
			Loop:             true,
			FrameRate:        60,
			ApplyConstraints: true,
		},
		Camera: CameraConfig{
			FovY:     0.5,
			NearClip: 1,
			FarClip:  100000,
			Aspect:   16.0 / 9.0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			Format:  "console",
			LogFile: "",
		},
	}
}

// FrameAt converts a time in seconds to a frame position.
func (a AnimationConfig) FrameAt(seconds float64) float64 {
	return seconds * float64(a.FrameRate)
}
