package audio

import (
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

// Hosts returns every audio host this build supports, in order of
// preference.
func Hosts() []Host {
	return append(sdlHosts(), otoHost{})
}

// selectHost initializes the requested host, or the first host that
// initializes when it cannot be used.
func selectHost(requested string, hosts []Host, log logrus.FieldLogger) (Host, error) {
	if requested != "" {
		entry := log.WithField("host", requested)
		if host, ok := FindHost(hosts, requested); !ok {
			entry.Warn("Requested audio host does not exist on this platform, falling back to the default host")
		} else if err := host.Init(); err != nil {
			entry.WithError(err).Warn("Requested audio host is not available, falling back to the default host")
		} else {
			return host, nil
		}
	}

	for _, host := range hosts {
		if host.Name() == requested {
			continue
		}
		if err := host.Init(); err != nil {
			log.WithField("host", host.Name()).WithError(err).Debug("Audio host is not available")
			continue
		}
		return host, nil
	}
	return nil, ErrNoHost
}

// selectOutputDevice returns the requested device if the host has it, or
// the host's default device.
func selectOutputDevice(host Host, requested string, log logrus.FieldLogger) (string, error) {
	if requested != "" {
		entry := log.WithField("device", requested)
		devices, err := host.OutputDevices()
		if err != nil {
			entry.WithError(err).Warn("Failed to enumerate audio output devices, falling back to the default device")
		} else {
			for _, device := range devices {
				if device == requested {
					return device, nil
				}
			}
			entry.Warn("Requested audio output device is not available, falling back to the default device")
		}
	}

	device, ok := host.DefaultOutputDevice()
	if !ok {
		return "", ErrNoOutputDevice
	}
	return device, nil
}

// Output is a silent output stream kept open for the life of the game.
type Output struct {
	Host   string
	Device string

	host   Host
	stream Stream
}

// Create opens an output stream as configured. When there is nothing to
// play on it logs an error and returns nil: the game runs without audio.
func Create(cfg Config, hosts []Host, log logrus.FieldLogger) (*Output, error) {
	host, err := selectHost(cfg.Host, hosts, log)
	if err != nil {
		log.WithError(err).Error("No audio host is available, game audio will be disabled")
		return nil, nil
	}
	log.WithField("host", host.Name()).Info("Using audio host")

	device, err := selectOutputDevice(host, cfg.Hosts[host.Name()].OutputDevice, log)
	if err != nil {
		log.WithError(err).Error("No audio output devices are available, game audio will be disabled")
		host.Close()
		return nil, nil
	}
	log.WithField("device", device).Info("Using audio output device")

	stream, err := host.Open(device)
	if err != nil {
		host.Close()
		return nil, errors.Wrap(err, "failed to create audio output stream")
	}

	return &Output{Host: host.Name(), Device: device, host: host, stream: stream}, nil
}

// Close stops the stream and releases the host. It is safe on a nil
// Output.
func (o *Output) Close() error {
	if o == nil {
		return nil
	}
	err := o.stream.Close()
	o.host.Close()
	return err
}
