package audio

// HostConfig is the `audio.hosts.<name>` section.
type HostConfig struct {
	// OutputDevice is a device name, empty for the host's default.
	OutputDevice string
}

// Config is the `audio` section.
type Config struct {
	// Host is a host name, empty to pick the default host.
	Host  string
	Hosts map[string]HostConfig
}

func DefaultConfig() Config {
	return Config{Hosts: map[string]HostConfig{}}
}
