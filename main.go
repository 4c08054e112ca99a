package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/gogpu/gg"
	"github.com/matt-g-everett/framecast/api"
	"github.com/matt-g-everett/framecast/scene"
	"github.com/matt-g-everett/framecast/stream"
	"github.com/matt-g-everett/framecast/typst"
)

type app struct {
	Config   stream.Config
	Client   mqtt.Client
	Api      *api.Api
	Renderer *stream.Renderer
}

func newApp() *app {
	a := new(app)
	return a
}

func (a *app) readConfig(configPath string) {
	if configPath == "" {
		a.Config.ApplyDefaults()
		return
	}

	c, err := stream.LoadConfig(configPath)
	if err != nil {
		panic(err)
	}
	a.Config = c
}

func (a *app) connectMqtt() {
	if a.Config.Mqtt.URL == "" {
		return
	}

	options := mqtt.NewClientOptions().
		AddBroker(a.Config.Mqtt.URL).
		SetClientID(a.Config.Mqtt.ClientID).
		SetUsername(a.Config.Mqtt.Username).
		SetPassword(a.Config.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second)
	client := mqtt.NewClient(options)

	if token := client.Connect(); token.Wait() && token.Error() != nil {
		slog.Warn("mqtt unavailable, progress will not be published", "broker", a.Config.Mqtt.URL, "err", token.Error())
		return
	}
	slog.Info("connected", "broker", a.Config.Mqtt.URL)
	a.Client = client
}

func (a *app) reporters() []stream.ProgressReporter {
	var reporters []stream.ProgressReporter
	if a.Client != nil {
		reporters = append(reporters, stream.NewMQTTReporter(a.Client, a.Config.Mqtt.Topics.Progress, a.Config.Mqtt.ProgressEvery))
	}
	if a.Api != nil {
		reporters = append(reporters, a.Api)
	}
	return reporters
}

func (a *app) serveApi() {
	if a.Config.API.Listen == "" {
		return
	}
	a.Api = api.NewApi(a.Config.API.Listen, filepath.Dir(a.Config.Video.Output))
	go func() {
		if err := a.Api.Serve(); err != nil {
			slog.Error("api stopped", "err", err)
		}
	}()
}

// run renders the configured scene and reports whether the encoder succeeded.
func (a *app) run(ctx context.Context) (bool, error) {
	opts := a.Config.RendererOptions()
	opts.Reporters = a.reporters()

	r, err := stream.NewRenderer(opts)
	if err != nil {
		return false, err
	}
	a.Renderer = r
	defer r.Close()

	compiler := &typst.Compiler{Path: a.Config.Typst.Path}
	s, err := scene.New(a.Config.Scene, r, scene.Options{Ctx: ctx, Compiler: compiler, Seed: time.Now().UnixNano()})
	if err != nil {
		return false, err
	}

	clock := time.Now()
	err = r.Run(func(f *stream.Frame, t float64) error {
		if err := s.Draw(f, t); err != nil {
			return err
		}
		fmt.Printf("\rFrame: %d/%d", f.Index()+1, r.TotalFrameCount())
		return nil
	})
	if err != nil {
		return false, err
	}
	renderTime := time.Since(clock)

	ok, err := r.Finish()
	fmt.Printf("\rFinished              \n    avg. frame time: %v\n    total time: %v\n",
		renderTime/time.Duration(r.TotalFrameCount()),
		time.Since(clock))
	return ok, err
}

func main() {
	configPath := flag.String("config", "config.yaml", "YAML config file, empty for defaults.")
	sceneName := flag.String("scene", "", fmt.Sprintf("Scene to render (%s), overrides the config.", strings.Join(scene.Names(), ", ")))
	output := flag.String("o", "", "Output file, overrides the config.")
	verbose := flag.Bool("v", false, "Verbose logging.")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	stream.SetLogger(logger)
	gg.SetLogger(logger)

	a := newApp()
	a.readConfig(*configPath)
	if *sceneName != "" {
		a.Config.Scene = *sceneName
	}
	if *output != "" {
		a.Config.Video.Output = *output
	}
	slog.Debug("config", "config", fmt.Sprintf("%+v", a.Config))

	a.connectMqtt()
	a.serveApi()

	ok, err := a.run(context.Background())

	if a.Client != nil {
		a.Client.Disconnect(250)
	}
	if a.Api != nil {
		_ = a.Api.Shutdown(context.Background())
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	if !ok {
		os.Exit(1)
	}
}
