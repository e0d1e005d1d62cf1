// Package config loads and stores the settings of the saltwedge service: the model
// parameters shared by both conditions and the HTTP server options.
package config

import (
	"errors"

	"github.com/chrissnell/saltwedge/pkg/intrusion"
)

// ErrReadOnly is returned by providers that cannot persist changes
var ErrReadOnly = errors.New("configuration provider is read-only")

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	// Model parameters used when a request does not supply its own
	GetParameters() (intrusion.Parameters, error)
	UpdateParameters(p intrusion.Parameters) error

	IsReadOnly() bool
	Close() error
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Parameters intrusion.Parameters `json:"parameters"`
	RESTServer RESTServerData       `json:"rest"`
}

// RESTServerData holds the HTTP server options. Zero values are replaced by defaults
// when the server starts.
type RESTServerData struct {
	Cert           string `json:"cert,omitempty"`
	Key            string `json:"key,omitempty"`
	Port           int    `json:"port,omitempty"`
	ListenAddr     string `json:"listen_addr,omitempty"`
	MaxUploadBytes int64  `json:"max_upload_bytes,omitempty"`
}
