// Package audio selects an audio host and output device and keeps an
// output stream open on it.
package audio

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrNoHost is returned when no audio host can be initialized.
	ErrNoHost = errors.New("no audio host is available")
	// ErrNoOutputDevice is returned when a host has no output device.
	ErrNoOutputDevice = errors.New("no audio output device is available")
)

// Host is one audio backend.
type Host interface {
	Name() string
	// Init makes the host usable. It fails when the backend is compiled
	// in but not running.
	Init() error
	OutputDevices() ([]string, error)
	DefaultOutputDevice() (string, bool)
	// Open starts a silent output stream on the named device.
	Open(device string) (Stream, error)
	Close()
}

// Stream is an open output stream.
type Stream interface {
	Close() error
}

// FindHost looks a host up by name.
func FindHost(hosts []Host, name string) (Host, bool) {
	for _, host := range hosts {
		if host.Name() == name {
			return host, true
		}
	}
	return nil, false
}
