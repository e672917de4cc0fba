package aeat

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/facturaIA/verifactu-go/records"
)

// Config holds the client settings loaded from a YAML file
type Config struct {
	// Production selects the production endpoint; false targets the
	// AEAT pre-production environment
	Production bool `yaml:"production"`

	// Debug enables logging of request and response XML
	Debug bool `yaml:"debug"`

	Certificate struct {
		Path     string `yaml:"path"`
		Password string `yaml:"password"`
	} `yaml:"certificate"`

	Taxpayer struct {
		Name string `yaml:"name"`
		NIF  string `yaml:"nif"`
	} `yaml:"taxpayer"`

	Representative struct {
		Name string `yaml:"name"`
		NIF  string `yaml:"nif"`
	} `yaml:"representative"`

	System ComputerSystem `yaml:"system"`
}

// LoadConfig reads a YAML config file, applying VERIFACTU_* environment
// overrides
func LoadConfig(path string) (*Config, error) {
	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	var config Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables if present
	if env := os.Getenv("VERIFACTU_PRODUCTION"); env != "" {
		config.Production = env == "true"
	}
	if env := os.Getenv("VERIFACTU_DEBUG"); env != "" {
		config.Debug = env == "true"
	}
	if path := os.Getenv("VERIFACTU_CERT_PATH"); path != "" {
		config.Certificate.Path = path
	}
	if password := os.Getenv("VERIFACTU_CERT_PASSWORD"); password != "" {
		config.Certificate.Password = password
	}
	if name := os.Getenv("VERIFACTU_TAXPAYER_NAME"); name != "" {
		config.Taxpayer.Name = name
	}
	if nif := os.Getenv("VERIFACTU_TAXPAYER_NIF"); nif != "" {
		config.Taxpayer.NIF = nif
	}

	return &config, nil
}

// NewClient builds a client from the configuration, loading the
// certificate when a path is set
func (c *Config) NewClient() (*Client, error) {
	taxpayer := records.NewFiscalIdentifier(c.Taxpayer.Name, c.Taxpayer.NIF)
	client, err := NewClient(c.System, taxpayer)
	if err != nil {
		return nil, err
	}
	client.SetProduction(c.Production).SetDebug(c.Debug)

	if c.Representative.NIF != "" {
		rep := records.NewFiscalIdentifier(c.Representative.Name, c.Representative.NIF)
		client.SetRepresentative(&rep)
	}
	if c.Certificate.Path != "" {
		if err := client.SetCertificate(c.Certificate.Path, c.Certificate.Password); err != nil {
			return nil, err
		}
	}
	return client, nil
}
