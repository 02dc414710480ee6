package main

import (
	"context"
	"fmt"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/halley-kart/halley-kart/input"
	"github.com/halley-kart/halley-kart/logging"
	"github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/sync/errgroup"
)

const (
	title      = "HK Dump Input"
	width      = 800
	height     = 600
	pollMillis = 100
)

func init() {
	runtime.LockOSThread()
}

// printLines writes every line received on lines to stdout until lines is
// closed.
func printLines(prefix string, lines <-chan string) error {
	for line := range lines {
		if _, err := fmt.Println(prefix + line); err != nil {
			return errors.Wrap(err, "failed to write event")
		}
	}
	return nil
}

// dispatcher routes SDL events to the printers. It runs on the main thread.
type dispatcher struct {
	ctx         context.Context
	log         logrus.FieldLogger
	window      chan string
	gamepad     chan string
	controllers map[sdl.JoystickID]*sdl.GameController
}

func (d *dispatcher) send(lines chan<- string, line string) bool {
	select {
	case lines <- line:
		return true
	case <-d.ctx.Done():
		return false
	}
}

func (d *dispatcher) track(event *sdl.ControllerDeviceEvent) {
	switch event.Type {
	case sdl.CONTROLLERDEVICEADDED:
		controller := sdl.GameControllerOpen(int(event.Which))
		if controller == nil {
			d.log.WithField("index", event.Which).Warn("Failed to open game controller")
			return
		}
		d.controllers[controller.Joystick().InstanceID()] = controller
	case sdl.CONTROLLERDEVICEREMOVED:
		if controller, ok := d.controllers[event.Which]; ok {
			controller.Close()
			delete(d.controllers, event.Which)
		}
	}
}

// dispatch handles one event and reports whether to keep going.
func (d *dispatcher) dispatch(event sdl.Event) bool {
	switch input.Classify(event) {
	case input.Quit:
		d.send(d.window, input.Describe(event))
		return false
	case input.Window:
		return d.send(d.window, input.Describe(event))
	case input.Gamepad:
		if device, ok := event.(*sdl.ControllerDeviceEvent); ok {
			d.track(device)
		}
		return d.send(d.gamepad, input.Describe(event))
	}
	return true
}

func (d *dispatcher) close() {
	close(d.window)
	close(d.gamepad)
	for _, controller := range d.controllers {
		controller.Close()
	}
}

func run(log logrus.FieldLogger) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS | sdl.INIT_GAMECONTROLLER); err != nil {
		return errors.Wrap(err, "failed to initialize SDL")
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow(title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		width, height,
		sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE)
	if err != nil {
		return errors.Wrap(err, "failed to create window")
	}
	defer window.Destroy()

	g, ctx := errgroup.WithContext(context.Background())
	d := &dispatcher{
		ctx:         ctx,
		log:         log,
		window:      make(chan string, 64),
		gamepad:     make(chan string, 64),
		controllers: map[sdl.JoystickID]*sdl.GameController{},
	}
	g.Go(func() error { return printLines("[window] ", d.window) })
	g.Go(func() error { return printLines("[gamepad] ", d.gamepad) })

	// Controllers already connected report an added event on their own.
	for running := true; running; {
		event := sdl.WaitEventTimeout(pollMillis)
		if event == nil {
			running = ctx.Err() == nil
			continue
		}
		running = d.dispatch(event)
	}
	d.close()

	return g.Wait()
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
