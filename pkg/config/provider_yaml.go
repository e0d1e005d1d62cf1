package config

import (
	"fmt"
	"os"

	"github.com/chrissnell/saltwedge/pkg/intrusion"
	"gopkg.in/yaml.v2"
)

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
}

// ParametersYAML uses pointers so that omitted keys keep their defaults
type ParametersYAML struct {
	AquiferWidth              *float64 `yaml:"aquifer-width,omitempty"`
	Porosity                  *float64 `yaml:"porosity,omitempty"`
	ExtractionCutoffElevation *float64 `yaml:"extraction-cutoff-elevation,omitempty"`
}

type RESTServerYAML struct {
	Cert           string `yaml:"cert,omitempty"`
	Key            string `yaml:"key,omitempty"`
	Port           int    `yaml:"port,omitempty"`
	ListenAddr     string `yaml:"listen-addr,omitempty"`
	MaxUploadBytes int64  `yaml:"max-upload-bytes,omitempty"`
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadConfig loads the complete configuration from YAML file
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	var yamlConfig struct {
		Parameters ParametersYAML `yaml:"parameters,omitempty"`
		REST       RESTServerYAML `yaml:"rest,omitempty"`
	}

	if err := yaml.UnmarshalStrict(cfgFile, &yamlConfig); err != nil {
		return nil, err
	}

	params := intrusion.DefaultParameters()
	if v := yamlConfig.Parameters.AquiferWidth; v != nil {
		params.AquiferWidth = *v
	}
	if v := yamlConfig.Parameters.Porosity; v != nil {
		params.Porosity = *v
	}
	if v := yamlConfig.Parameters.ExtractionCutoffElevation; v != nil {
		params.ExtractionCutoffElevation = *v
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", y.filename, err)
	}

	return &ConfigData{
		Parameters: params,
		RESTServer: RESTServerData{
			Cert:           yamlConfig.REST.Cert,
			Key:            yamlConfig.REST.Key,
			Port:           yamlConfig.REST.Port,
			ListenAddr:     yamlConfig.REST.ListenAddr,
			MaxUploadBytes: yamlConfig.REST.MaxUploadBytes,
		},
	}, nil
}

// GetParameters returns the model parameters from the YAML file
func (y *YAMLProvider) GetParameters() (intrusion.Parameters, error) {
	cfg, err := y.LoadConfig()
	if err != nil {
		return intrusion.Parameters{}, err
	}
	return cfg.Parameters, nil
}

// UpdateParameters always fails; edit the YAML file instead
func (y *YAMLProvider) UpdateParameters(intrusion.Parameters) error {
	return ErrReadOnly
}

// IsReadOnly returns true for YAML provider
func (y *YAMLProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op for YAML provider
func (y *YAMLProvider) Close() error {
	return nil
}
