package config

import (
	"fmt"
	"time"

	"github.com/sighpp/sightview/pkg/display"
	"github.com/spf13/pflag"
)

type ViewerConfig struct {
	Debug bool
	// Console switches the log to a human-readable writer.
	Console    bool
	Display    Display
	Source     Source
	Monitoring Monitoring
}

type Display struct {
	ShowDepth bool
	ShowColor bool
	// Backend is one of display.Names().
	Backend string
}

// Source configures the synthetic frame source.
type Source struct {
	Width   int
	Height  int
	Fps     int
	Objects int
}

func DefaultViewerConfig() ViewerConfig {
	return ViewerConfig{
		Display: Display{ShowDepth: true, ShowColor: true, Backend: display.OpenCV},
		Source:  Source{Width: 640, Height: 480, Fps: 30, Objects: 3},
		Monitoring: Monitoring{
			Port:          6602,
			URLPrefix:     "/viewer",
			MetricEnabled: false,
		},
	}
}

// NewViewerConfig builds the config from defaults, the config file,
// SIGHTVIEW_ environment variables and then the command line, in that
// order of precedence from lowest to highest.
func NewViewerConfig(args []string) (conf ViewerConfig, err error) {
	var path string
	pre := pflag.NewFlagSet("viewer", pflag.ContinueOnError)
	pre.ParseErrorsWhitelist.UnknownFlags = true
	pre.Usage = func() {}
	pre.StringVarP(&path, "conf", "c", "", "")
	_ = pre.Parse(args)

	conf = DefaultViewerConfig()
	if err = LoadConfig(&conf, path); err != nil {
		return conf, fmt.Errorf("config: %w", err)
	}

	fs := pflag.NewFlagSet("viewer", pflag.ContinueOnError)
	fs.StringVarP(&path, "conf", "c", path, "Set custom configuration directory")
	conf.WithFlags(fs)
	if err = fs.Parse(args); err != nil {
		return conf, err
	}
	return conf, conf.Validate()
}

// WithFlags defines flags with the current values as defaults.
func (c *ViewerConfig) WithFlags(fs *pflag.FlagSet) *ViewerConfig {
	fs.BoolVarP(&c.Debug, "debug", "d", c.Debug, "Enable debug logging")
	fs.BoolVar(&c.Console, "console", c.Console, "Human-readable log output")
	fs.BoolVar(&c.Display.ShowDepth, "display.depth", c.Display.ShowDepth, "Show the depth window")
	fs.BoolVar(&c.Display.ShowColor, "display.color", c.Display.ShowColor, "Show the color window")
	fs.StringVarP(&c.Display.Backend, "display.backend", "b", c.Display.Backend, fmt.Sprintf("Display backend %v", display.Names()))
	fs.IntVar(&c.Source.Width, "source.width", c.Source.Width, "Frame width")
	fs.IntVar(&c.Source.Height, "source.height", c.Source.Height, "Frame height")
	fs.IntVar(&c.Source.Fps, "source.fps", c.Source.Fps, "Frames per second")
	fs.IntVar(&c.Source.Objects, "source.objects", c.Source.Objects, "Number of simulated objects")
	fs.BoolVarP(&c.Monitoring.MetricEnabled, "monitoring.metric", "m", c.Monitoring.MetricEnabled, "Enable prometheus metric for server")
	fs.BoolVarP(&c.Monitoring.ProfilingEnabled, "monitoring.pprof", "p", c.Monitoring.ProfilingEnabled, "Enable golang pprof for server")
	fs.IntVar(&c.Monitoring.Port, "monitoring.port", c.Monitoring.Port, "Monitoring server port")
	fs.StringVar(&c.Monitoring.URLPrefix, "monitoring.prefix", c.Monitoring.URLPrefix, "Monitoring server url prefix")
	return c
}

func (c *ViewerConfig) Validate() error {
	known := false
	for _, n := range display.Names() {
		if c.Display.Backend == n {
			known = true
		}
	}
	if !known {
		return fmt.Errorf("unknown display backend %q, want one of %v", c.Display.Backend, display.Names())
	}
	if c.Source.Width <= 0 || c.Source.Height <= 0 {
		return fmt.Errorf("bad frame size %vx%v", c.Source.Width, c.Source.Height)
	}
	if c.Source.Fps <= 0 {
		return fmt.Errorf("bad fps %v", c.Source.Fps)
	}
	if c.Source.Objects < 0 {
		return fmt.Errorf("bad object count %v", c.Source.Objects)
	}
	return nil
}

// FrameTime is the pause between two synthetic frames.
func (s Source) FrameTime() time.Duration { return time.Second / time.Duration(s.Fps) }
