// Package constants defines application-wide constants and version information.
package constants

import "runtime"

// Version holds the application version information
const Version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

// Defaults for the model parameters, matching the laboratory sand-tank setup
const (
	DefaultAquiferWidth              = 0.025 // m
	DefaultPorosity                  = 0.488
	DefaultExtractionCutoffElevation = 0.1 // m
)

// Defaults for the HTTP server
const (
	DefaultListenAddr     = "0.0.0.0"
	DefaultHTTPPort       = 8080
	DefaultMaxUploadBytes = 10 << 20
)
