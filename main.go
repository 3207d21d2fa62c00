package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/dollhouse/house"
	"github.com/milk9111/dollhouse/internal/log"
	"github.com/milk9111/dollhouse/media/gocvsource"
	"github.com/milk9111/dollhouse/prefabs"
	"github.com/milk9111/dollhouse/sound/speaker"
	"github.com/milk9111/dollhouse/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.design/x/clipboard"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	scene := flag.String("scene", prefabs.DefaultHouse, "scene prefab in prefabs/")
	scriptName := flag.String("script", "", "automation script in prefabs/scripts/ (basename, .tengo optional)")
	metricsAddr := flag.String("metrics-addr", "", "serve prometheus metrics on this address")
	video := flag.String("video", "", "override the TV video source")
	mute := flag.Bool("mute", false, "start with sound disabled")
	flag.Parse()

	level := *logLevel
	if *debug {
		level = "debug"
	}
	log.Init(level)

	if err := run(*scene, *scriptName, *metricsAddr, *video, *mute, *debug, *baseMonitor); err != nil {
		log.Error("dollhouse: exit", "err", err)
		os.Exit(1)
	}
}

func run(scene, scriptName, metricsAddr, video string, mute, debug, baseMonitor bool) error {
	l := log.L()

	spec, err := prefabs.LoadHouseSpec(scene)
	if err != nil {
		return err
	}

	opts := []house.Option{
		house.WithLogger(l),
		house.WithSource(gocvsource.New(l)),
		house.WithMediaURI(video),
	}

	audio, err := speaker.Open(speaker.DefaultSampleRate)
	if err != nil {
		l.Warn("speaker: audio disabled", "err", err)
	} else {
		defer audio.Close()
		opts = append(opts, house.WithAudio(audio))
	}

	if metricsAddr != "" {
		metrics := telemetry.NewMetrics()
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		if err := metrics.Register(reg); err != nil {
			return err
		}
		opts = append(opts, house.WithObserver(metrics))

		srv := &http.Server{Addr: metricsAddr, Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{})}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				l.Error("metrics: serve", "addr", metricsAddr, "err", err)
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	engine, err := house.New(spec, opts...)
	if err != nil {
		return err
	}
	defer engine.Close()
	if mute {
		engine.SetSoundEnabled(false)
	}

	watcher, err := prefabs.NewWatcher("prefabs", "prefabs/scripts")
	if err != nil {
		l.Debug("prefabs: hot reload disabled", "err", err)
	} else {
		defer watcher.Close()
	}

	clipboardOK := clipboard.Init() == nil

	if baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("dollhouse")

	game := NewGame(engine, gameConfig{
		debug:       debug,
		scene:       scene,
		script:      scriptName,
		clipboardOK: clipboardOK,
		watcher:     watcher,
	}, l)
	return ebiten.RunGame(game)
}
