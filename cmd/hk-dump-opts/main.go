package main

import (
	"flag"
	"fmt"
	"reflect"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/halley-kart/halley-kart/audio"
	"github.com/halley-kart/halley-kart/graphics/vulkan"
	"github.com/halley-kart/halley-kart/input"
	"github.com/halley-kart/halley-kart/logging"
	"github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
)

var verbose = flag.Bool("verbose", false, "also print the features of each physical device")

func init() {
	runtime.LockOSThread()
}

func dumpAudio(hosts []audio.Host) {
	fmt.Println("Audio hosts:")
	for _, host := range hosts {
		if err := host.Init(); err != nil {
			fmt.Printf("* %s (unavailable)\n", host.Name())
			continue
		}
		fmt.Printf("* %s\n", host.Name())

		devices, err := host.OutputDevices()
		if err != nil {
			fmt.Printf("  Failed to enumerate output devices: %v\n", err)
		}
		def, _ := host.DefaultOutputDevice()
		for _, device := range devices {
			if device == def {
				fmt.Printf("  - %s (default)\n", device)
			} else {
				fmt.Printf("  - %s\n", device)
			}
		}
		host.Close()
	}
}

// enabledFeatures lists the names of the boolean fields set in a feature
// struct.
func enabledFeatures(features interface{}) []string {
	v := reflect.Indirect(reflect.ValueOf(features))
	if v.Kind() != reflect.Struct {
		return nil
	}

	var names []string
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if field.Kind() == reflect.Bool && field.Bool() {
			names = append(names, v.Type().Field(i).Name)
		}
	}
	return names
}

func queueCaps(family vulkan.QueueFamilyInfo) string {
	caps := ""
	add := func(ok bool, name string) {
		if !ok {
			return
		}
		if caps != "" {
			caps += ", "
		}
		caps += name
	}
	add(family.Graphics, "graphics")
	add(family.Compute, "compute")
	add(family.Transfer, "transfer")
	if caps == "" {
		caps = "none"
	}
	return caps
}

func dumpVulkan(log logrus.FieldLogger) error {
	inventory, err := vulkan.QueryInventory(log)
	if err != nil {
		return err
	}

	fmt.Println("Vulkan instance layers:")
	for _, layer := range inventory.Layers {
		fmt.Printf("* %s: %s\n", layer.Name, layer.Description)
	}

	fmt.Println("Vulkan instance extensions:")
	for _, extension := range inventory.Extensions {
		fmt.Printf("* %s\n", extension)
	}

	fmt.Println("Vulkan physical devices:")
	for _, device := range inventory.Devices {
		fmt.Printf("* %s\n", device.PhysicalDeviceInfo)
		fmt.Printf("  Type: %s\n", device.Type)
		fmt.Printf("  API version: %s\n", device.APIVersion)
		fmt.Printf("  Driver version: %s\n", device.DriverVersion)
		fmt.Printf("  Vendor ID: 0x%04x, device ID: 0x%04x\n", device.VendorID, device.DeviceID)

		fmt.Println("  Extensions:")
		for _, extension := range device.Extensions {
			fmt.Printf("  - %s\n", extension)
		}

		if *verbose && device.Features != nil {
			fmt.Println("  Features:")
			for _, feature := range enabledFeatures(device.Features) {
				fmt.Printf("  - %s\n", feature)
			}
		}

		fmt.Println("  Queue families:")
		for _, family := range device.QueueFamilies {
			fmt.Printf("  - #%d: %d queue(s), %s\n", family.Index, family.QueueCount, queueCaps(family))
		}
	}
	return nil
}

func dumpGamepads() {
	gamepads, controllers := input.Gamepads()
	defer func() {
		for _, controller := range controllers {
			controller.Close()
		}
	}()

	fmt.Println("Game controllers:")
	for _, gamepad := range gamepads {
		fmt.Printf("* %s (UUID: %s)\n", gamepad.Name, gamepad.UUID)
		fmt.Printf("  Power: %s\n", gamepad.Power)
		if *verbose {
			fmt.Printf("  Mapping: %s\n", gamepad.Mapping)
		}
	}
}

func run(log logrus.FieldLogger) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS | sdl.INIT_GAMECONTROLLER); err != nil {
		return errors.Wrap(err, "failed to initialize SDL")
	}
	defer sdl.Quit()

	dumpAudio(audio.Hosts())
	if err := dumpVulkan(log); err != nil {
		return err
	}
	dumpGamepads()
	return nil
}

func main() {
	flag.Parse()

	log, err := logging.New(logrus.WarnLevel)
	if err != nil {
		logrus.Fatalf("%+v", err)
	}

	if err := run(log); err != nil {
		log.Fatalf("%+v", err)
	}
}
