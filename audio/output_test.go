package audio

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

type fakeStream struct{ closed bool }

func (s *fakeStream) Close() error {
	s.closed = true
	return nil
}

type fakeHost struct {
	name       string
	initErr    error
	devices    []string
	devicesErr error
	openErr    error

	initialized bool
	closed      bool
	opened      string
	stream      *fakeStream
}

func (h *fakeHost) Name() string { return h.name }

func (h *fakeHost) Init() error {
	if h.initErr != nil {
		return h.initErr
	}
	h.initialized = true
	return nil
}

func (h *fakeHost) OutputDevices() ([]string, error) { return h.devices, h.devicesErr }

func (h *fakeHost) DefaultOutputDevice() (string, bool) {
	if len(h.devices) == 0 {
		return "", false
	}
	return h.devices[0], true
}

func (h *fakeHost) Open(device string) (Stream, error) {
	if h.openErr != nil {
		return nil, h.openErr
	}
	h.opened = device
	h.stream = &fakeStream{}
	return h.stream, nil
}

func (h *fakeHost) Close() { h.closed = true }

func warnings(hook *test.Hook) []*logrus.Entry {
	var entries []*logrus.Entry
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			entries = append(entries, entry)
		}
	}
	return entries
}

func TestCreateFallsBackWhenHostIsMissing(t *testing.T) {
	alsa := &fakeHost{name: "alsa", devices: []string{"hw:0", "hw:1"}}
	pulse := &fakeHost{name: "pulseaudio", devices: []string{"Built-in Audio"}}
	log, hook := test.NewNullLogger()

	cfg := Config{Host: "jack"}
	output, err := Create(cfg, []Host{alsa, pulse}, log)
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if output == nil || output.Host != "alsa" || output.Device != "hw:0" {
		t.Fatalf("output = %+v, want alsa on hw:0", output)
	}

	warned := warnings(hook)
	if len(warned) != 1 || warned[0].Data["host"] != "jack" {
		t.Errorf("warnings = %v, want one about jack", warned)
	}
}

func TestCreateFallsBackWhenHostFailsToInit(t *testing.T) {
	jack := &fakeHost{name: "jack", initErr: errors.New("jackd is not running"), devices: []string{"system"}}
	alsa := &fakeHost{name: "alsa", devices: []string{"hw:0"}}
	log, hook := test.NewNullLogger()

	output, err := Create(Config{Host: "jack"}, []Host{jack, alsa}, log)
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if output.Host != "alsa" {
		t.Errorf("host = %s, want alsa", output.Host)
	}
	if len(warnings(hook)) != 1 {
		t.Errorf("want one warning, got %v", hook.AllEntries())
	}
}

func TestCreateUsesConfiguredDevice(t *testing.T) {
	pulse := &fakeHost{name: "pulseaudio", devices: []string{"Built-in Audio", "USB Headset"}}
	log, hook := test.NewNullLogger()

	cfg := Config{
		Host: "pulseaudio",
		Hosts: map[string]HostConfig{
			"pulseaudio": {OutputDevice: "USB Headset"},
		},
	}
	output, err := Create(cfg, []Host{pulse}, log)
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if output.Device != "USB Headset" || pulse.opened != "USB Headset" {
		t.Errorf("opened %q, want USB Headset", pulse.opened)
	}
	if len(warnings(hook)) != 0 {
		t.Errorf("unexpected warnings: %v", warnings(hook))
	}

	if err := output.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !pulse.stream.closed || !pulse.closed {
		t.Error("close should release the stream and the host")
	}
}

func TestCreateFallsBackToDefaultDevice(t *testing.T) {
	tests := []struct {
		name string
		host *fakeHost
	}{
		{"missing device", &fakeHost{name: "alsa", devices: []string{"hw:0"}}},
		{"enumeration failure", &fakeHost{name: "alsa", devices: []string{"hw:0"}, devicesErr: errors.New("busy")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, hook := test.NewNullLogger()
			cfg := Config{Hosts: map[string]HostConfig{"alsa": {OutputDevice: "hw:9"}}}

			output, err := Create(cfg, []Host{tt.host}, log)
			if err != nil {
				t.Fatalf("unexpected error: %+v", err)
			}
			if output.Device != "hw:0" {
				t.Errorf("device = %s, want hw:0", output.Device)
			}
			if len(warnings(hook)) != 1 {
				t.Errorf("want one warning, got %v", hook.AllEntries())
			}
		})
	}
}

func TestCreateDisablesAudio(t *testing.T) {
	tests := []struct {
		name  string
		hosts []Host
	}{
		{"no hosts", nil},
		{"no host initializes", []Host{&fakeHost{name: "alsa", initErr: errors.New("no sound card")}}},
		{"no output device", []Host{&fakeHost{name: "alsa"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, hook := test.NewNullLogger()
			output, err := Create(DefaultConfig(), tt.hosts, log)
			if err != nil || output != nil {
				t.Fatalf("got %v, %v; want audio disabled", output, err)
			}
			if entry := hook.LastEntry(); entry == nil || entry.Level != logrus.ErrorLevel {
				t.Errorf("last entry = %v, want an error", entry)
			}
			if err := output.Close(); err != nil {
				t.Errorf("closing disabled audio: %v", err)
			}
		})
	}
}

func TestCreateStreamFailure(t *testing.T) {
	alsa := &fakeHost{name: "alsa", devices: []string{"hw:0"}, openErr: errors.New("device busy")}
	log, _ := test.NewNullLogger()

	if _, err := Create(DefaultConfig(), []Host{alsa}, log); err == nil {
		t.Fatal("expected an error")
	}
	if !alsa.closed {
		t.Error("host should be closed after a failed open")
	}
}

func TestSelectOutputDeviceNone(t *testing.T) {
	log, _ := test.NewNullLogger()
	_, err := selectOutputDevice(&fakeHost{name: "alsa"}, "", log)
	if !errors.Is(err, ErrNoOutputDevice) {
		t.Errorf("got %v, want ErrNoOutputDevice", err)
	}
}

func TestSilence(t *testing.T) {
	buf := []byte{1, 2, 3, 4}
	n, err := silence{}.Read(buf)
	if n != 4 || err != nil {
		t.Fatalf("read %d, %v", n, err)
	}
	for i, b := range buf {
		if b != 0 {
			t.Errorf("byte %d = %d, want 0", i, b)
		}
	}
}
