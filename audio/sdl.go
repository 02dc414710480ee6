package audio

import (
	"github.com/cockroachdb/errors"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	sampleRate   = 48000
	channelCount = 2
	bufferFrames = 1024
)

// sdlHost is an SDL audio driver such as alsa, pulseaudio or jack.
type sdlHost struct {
	driver string
}

func (h *sdlHost) Name() string {
	return h.driver
}

func (h *sdlHost) Init() error {
	if err := sdl.AudioInit(h.driver); err != nil {
		return errors.Wrapf(err, "initializing SDL audio driver %s", h.driver)
	}
	return nil
}

func (h *sdlHost) OutputDevices() ([]string, error) {
	count := sdl.GetNumAudioDevices(false)
	if count < 0 {
		return nil, errors.Wrap(sdl.GetError(), "counting output devices")
	}

	devices := make([]string, 0, count)
	for i := 0; i < count; i++ {
		devices = append(devices, sdl.GetAudioDeviceName(i, false))
	}
	return devices, nil
}

func (h *sdlHost) DefaultOutputDevice() (string, bool) {
	devices, err := h.OutputDevices()
	if err != nil || len(devices) == 0 {
		return "", false
	}
	return devices[0], true
}

func (h *sdlHost) Open(device string) (Stream, error) {
	spec := sdl.AudioSpec{
		Freq:     sampleRate,
		Format:   sdl.AUDIO_F32,
		Channels: channelCount,
		Samples:  bufferFrames,
	}

	// Without a callback SDL plays silence whenever the queue is empty.
	id, err := sdl.OpenAudioDevice(device, false, &spec, nil, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "opening output device %s", device)
	}
	sdl.PauseAudioDevice(id, false)
	return &sdlStream{id: id}, nil
}

func (h *sdlHost) Close() {
	sdl.AudioQuit()
}

type sdlStream struct {
	id sdl.AudioDeviceID
}

func (s *sdlStream) Close() error {
	sdl.CloseAudioDevice(s.id)
	return nil
}

// sdlHosts lists the audio drivers compiled into SDL.
func sdlHosts() []Host {
	var hosts []Host
	for i := 0; i < sdl.GetNumAudioDrivers(); i++ {
		hosts = append(hosts, &sdlHost{driver: sdl.GetAudioDriver(i)})
	}
	return hosts
}
