package config

// Listen address defaults.
const (
	DefaultPort = 9000
	DefaultHost = "localhost"
)
