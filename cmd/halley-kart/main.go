package main

import (
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/halley-kart/halley-kart/audio"
	"github.com/halley-kart/halley-kart/config"
	"github.com/halley-kart/halley-kart/graphics"
	"github.com/halley-kart/halley-kart/graphics/vulkan"
	"github.com/halley-kart/halley-kart/graphics/window"
	"github.com/halley-kart/halley-kart/logging"
	"github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
)

func init() {
	runtime.LockOSThread()
}

func run(log logrus.FieldLogger) error {
	cfg, err := config.Load(log)
	if err != nil {
		return err
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return errors.Wrap(err, "failed to initialize SDL")
	}
	defer sdl.Quit()

	output, err := audio.Create(cfg.Audio, audio.Hosts(), log)
	if err != nil {
		return err
	}
	defer func() {
		if err := output.Close(); err != nil {
			log.WithError(err).Warn("Failed to close the audio output")
		}
	}()

	win, err := window.Build(cfg.Graphics.Window, log)
	if err != nil {
		return err
	}
	defer win.Destroy()

	ctx, err := vulkan.Setup(cfg.Graphics.Vulkan, win, log)
	if err != nil {
		return err
	}
	defer ctx.Destroy()

	win.Show()
	return graphics.Run(graphics.SDLEvents{}, ctx, win, log)
}

func main() {
	log, err := logging.New(logrus.InfoLevel)
	if err != nil {
		logrus.Fatalf("%+v", err)
	}

	if err := run(log); err != nil {
		log.Fatalf("%+v", err)
	}
}
