package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofrs/uuid"
	"github.com/sighpp/sightview/pkg/config"
	"github.com/sighpp/sightview/pkg/display"
	"github.com/sighpp/sightview/pkg/display/headless"
	"github.com/sighpp/sightview/pkg/display/opencv"
	"github.com/sighpp/sightview/pkg/display/sdlwin"
	"github.com/sighpp/sightview/pkg/frame"
	"github.com/sighpp/sightview/pkg/logger"
	"github.com/sighpp/sightview/pkg/monitoring"
	"github.com/sighpp/sightview/pkg/renderer"
	"github.com/sighpp/sightview/pkg/service"
	"github.com/sighpp/sightview/pkg/source"
	"github.com/sighpp/sightview/pkg/thread"
	"github.com/spf13/pflag"
)

var Version = "?"

func run() {
	conf, err := config.NewViewerConfig(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log := logger.New(conf.Debug)
	if conf.Console {
		log = logger.NewConsole(conf.Debug, "view", false)
	}
	log = log.Extend(log.With().Str("session", uuid.Must(uuid.NewV4()).String()))
	log.Info().Msgf("version %s", Version)
	log.Debug().Msgf("conf: %+v", conf)

	backend, err := open(conf.Display.Backend, log)
	if err != nil {
		log.Fatal().Err(err).Msg("no display")
	}

	services := service.Group{}
	if conf.Monitoring.IsEnabled() {
		services.Add(monitoring.New(conf.Monitoring, log))
	}
	services.Start()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := services.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	r := renderer.New(backend, renderer.Options{ShowDepth: conf.Display.ShowDepth, ShowColor: conf.Display.ShowColor}, log)
	defer func() {
		if err := r.Close(); err != nil {
			log.Error().Err(err).Msg("display close")
		}
	}()

	pump(r, source.NewSynthetic(conf.Source.Width, conf.Source.Height, conf.Source.Objects), conf.Source.FrameTime(), log)
}

func open(name string, log *logger.Logger) (display.Backend, error) {
	switch name {
	case display.OpenCV:
		return opencv.New(log), nil
	case display.SDL:
		b, err := sdlwin.New(log)
		if err != nil {
			return nil, err
		}
		return b, nil
	case display.Headless:
		return headless.New(), nil
	}
	return nil, fmt.Errorf("unknown display backend %q", name)
}

// pump feeds one tick per frame time until the renderer asks to stop or
// the process gets a signal.
func pump(r *renderer.Renderer, src *source.Synthetic, every time.Duration, log *logger.Logger) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for r.ShouldReceiveNewFrames() {
		select {
		case sig := <-signals:
			log.Info().Msgf("Shutting down [os:%v]", sig)
			return
		case <-ticker.C:
		}

		tick := src.Next()
		depth, err := frame.Adapt(tick.Depth)
		if err != nil {
			log.Error().Err(err).Uint64("frame", tick.Depth.FrameN).Msg("bad depth frame")
			continue
		}
		if err = r.StreamToWindows(tick.Depth, depth, tick.Color, tick.Groups); err != nil {
			log.Warn().Err(err).Uint64("frame", tick.Depth.FrameN).Msg("frame was not shown")
		}
	}
	log.Info().Uint64("frames", src.FrameN()).Msg("display closed")
}

func main() {
	thread.MainWrapMaybe(run)
}
