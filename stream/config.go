package stream

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v2"
)

// Config is the YAML configuration of a render.
type Config struct {
	Video struct {
		Duration  float64 `yaml:"duration"`
		FPS       int     `yaml:"fps"`
		Width     int     `yaml:"width"`
		Height    int     `yaml:"height"`
		Output    string  `yaml:"output"`
		QueueSize int     `yaml:"queueSize"`
	} `yaml:"video"`
	Encoder struct {
		Path        string `yaml:"path"`
		Codec       string `yaml:"codec"`
		PixelFormat string `yaml:"pixelFormat"`
		ShowOutput  bool   `yaml:"showOutput"`
	} `yaml:"encoder"`
	Typst struct {
		Path string `yaml:"path"`
	} `yaml:"typst"`
	Scene string `yaml:"scene"`
	Mqtt  struct {
		URL           string `yaml:"url"`
		ClientID      string `yaml:"clientId"`
		Username      string `yaml:"username"`
		Password      string `yaml:"password"`
		ProgressEvery int    `yaml:"progressEvery"`
		Topics        struct {
			Progress string `yaml:"progress"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`
	API struct {
		Listen string `yaml:"listen"`
	} `yaml:"api"`
}

// ReadConfig decodes YAML from r and fills in defaults.
func ReadConfig(r io.Reader) (Config, error) {
	var c Config
	if err := yaml.NewDecoder(r).Decode(&c); err != nil && err != io.EOF {
		return c, fmt.Errorf("config: %w", err)
	}
	c.ApplyDefaults()
	return c, c.Validate()
}

// LoadConfig reads the YAML file at path.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	return ReadConfig(f)
}

// ApplyDefaults sets every unset field to its default.
func (c *Config) ApplyDefaults() {
	if c.Video.Duration == 0 {
		c.Video.Duration = 15
	}
	if c.Video.FPS == 0 {
		c.Video.FPS = 60
	}
	if c.Video.Width == 0 {
		c.Video.Width = 1800
	}
	if c.Video.Height == 0 {
		c.Video.Height = 1000
	}
	if c.Video.Output == "" {
		c.Video.Output = "output.mp4"
	}
	if c.Video.QueueSize == 0 {
		c.Video.QueueSize = DefaultQueueSize
	}
	if c.Encoder.Path == "" {
		c.Encoder.Path = "ffmpeg"
	}
	if c.Encoder.Codec == "" {
		c.Encoder.Codec = "libx264"
	}
	if c.Encoder.PixelFormat == "" {
		c.Encoder.PixelFormat = "yuv420p"
	}
	if c.Typst.Path == "" {
		c.Typst.Path = "typst"
	}
	if c.Scene == "" {
		c.Scene = "axes"
	}
	if c.Mqtt.ClientID == "" {
		c.Mqtt.ClientID = "framecast"
	}
	if c.Mqtt.ProgressEvery == 0 {
		c.Mqtt.ProgressEvery = c.Video.FPS
	}
	if c.Mqtt.Topics.Progress == "" {
		c.Mqtt.Topics.Progress = "framecast/progress"
	}
}

// Validate checks the video section describes a renderable video.
func (c *Config) Validate() error {
	if c.Video.Width <= 0 || c.Video.Height <= 0 {
		return fmt.Errorf("config: invalid frame size %dx%d", c.Video.Width, c.Video.Height)
	}
	if c.Video.FPS <= 0 || c.Video.Duration <= 0 {
		return fmt.Errorf("config: invalid duration %gs at %d fps", c.Video.Duration, c.Video.FPS)
	}
	if frames := c.Video.Duration * float64(c.Video.FPS); frames != float64(int(frames)) {
		return fmt.Errorf("config: %w", ErrFractionalFrameCount)
	}
	return nil
}

// NewEncoder returns the ffmpeg encoder described by the encoder section.
func (c *Config) NewEncoder() *FFmpeg {
	e := NewFFmpeg()
	e.Path = c.Encoder.Path
	e.Codec = c.Encoder.Codec
	e.PixelFormat = c.Encoder.PixelFormat
	e.ShowOutput = c.Encoder.ShowOutput
	return e
}

// RendererOptions maps the video and encoder sections onto Options.
func (c *Config) RendererOptions() Options {
	return Options{
		DurationSecs: c.Video.Duration,
		FPS:          c.Video.FPS,
		Width:        c.Video.Width,
		Height:       c.Video.Height,
		OutputPath:   c.Video.Output,
		QueueSize:    c.Video.QueueSize,
		Encoder:      c.NewEncoder(),
	}
}
