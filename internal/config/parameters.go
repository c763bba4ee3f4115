// Package config provides a centralized entrypoint for the application parameters.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

// Runtime modes accepted by the root command.
const (
	ModeIngest   = "ingest"
	ModeService  = "service"
	ModeLambda   = "lambda"
	ModeGenerate = "generate"
)

// Collector authentication modes.
const (
	AuthModeToken = "token"
	AuthModeSSM   = "ssm"
)

var (
	// Global is a struct that contains the global configuration.
	Global global
	// Collector is a struct that contains the configuration for the Splunk HEC collector.
	Collector collector
	// Ingest is a struct that contains the configuration for the batch ingest mode.
	Ingest ingest
	// Service is a struct that contains the configuration for the service mode.
	Service service
	// Generate is a struct that contains the configuration for the generate mode.
	Generate generate
)

type global struct {
	// Mode is the runtime mode of the application.
	Mode string `yaml:"mode,omitempty" default:"ingest"`
	// Logging is a struct that contains the logging configuration.
	Logging struct {
		// Verbosity is the verbosity level of the application. It represents slog levels.
		Verbosity int `yaml:"verbosity,omitempty"`
		// CallerTrace is a flag that enables the caller trace in the logger.
		CallerTrace bool `yaml:"callerTrace,omitempty"`
	} `yaml:"logging,omitempty"`
}

type collector struct {
	// URL is the full HEC endpoint, e.g. https://splunk.example.com:8088/services/collector/event.
	URL string `yaml:"url,omitempty"`
	// Token is the HEC token presented in the Authorization header. Required in token auth mode.
	Token string `yaml:"token,omitempty"`
	// AuthMode selects how the HEC token is sourced. Supported values are 'token' and 'ssm'.
	AuthMode string `yaml:"authMode,omitempty" default:"token"`
	// SSMKey is the SSM parameter holding the HEC token when AuthMode is 'ssm'.
	SSMKey string `yaml:"ssmKey,omitempty"`
	// Index is the target Splunk index. An empty value omits the field from the payload.
	Index string `yaml:"index,omitempty" default:"cloud_security"`
	// SourceType is the Splunk sourcetype. An empty value omits the field from the payload.
	SourceType string `yaml:"sourceType,omitempty" default:"json"`
	// Timeout bounds each delivery request.
	Timeout time.Duration `yaml:"timeout,omitempty" default:"10s"`
	// InsecureSkipVerify disables TLS certificate verification. Lab collectors only.
	InsecureSkipVerify bool `yaml:"insecureSkipVerify,omitempty"`
}

type ingest struct {
	// Input is the record source: a local path, s3://bucket/key, or kafka://topic.
	Input string `yaml:"input,omitempty"`
	// Delay is the pacing delay between deliveries.
	Delay time.Duration `yaml:"delay,omitempty" default:"200ms"`
	// Kafka is a struct that contains the configuration for the kafka input scheme.
	Kafka struct {
		Brokers []string `yaml:"brokers,omitempty" default:"[\"localhost:9092\"]"`
		GroupID string   `yaml:"groupId,omitempty" default:"trailpipe"`
		// IdleTimeout bounds the drain: reading stops once no message arrives within it.
		IdleTimeout time.Duration `yaml:"idleTimeout,omitempty" default:"5s"`
	} `yaml:"kafka,omitempty"`
}

type service struct {
	Path    string        `yaml:"path,omitempty" default:"/"`
	Addr    string        `yaml:"addr,omitempty"`
	Port    string        `yaml:"port,omitempty" default:"8080"`
	Timeout time.Duration `yaml:"timeout,omitempty" default:"5s"`
}

type generate struct {
	// Count is the number of synthetic events to emit.
	Count int `yaml:"count,omitempty" default:"20"`
	// Delay is the pacing delay between deliveries.
	Delay time.Duration `yaml:"delay,omitempty" default:"200ms"`
}

// SetDefaults sets the default values for the configuration.
func SetDefaults() error {
	return errors.Join(
		defaults.Set(&Global),
		defaults.Set(&Collector),
		defaults.Set(&Ingest),
		defaults.Set(&Service),
		defaults.Set(&Generate),
	)
}

// LoadFromFile loads the configuration from a file.
func LoadFromFile(path string) error {
	if len(path) == 0 {
		return nil
	}
	fstat, err := os.Stat(path)
	if err != nil {
		return nil //nolint:nilerr // If the file does not exist, we ignore it.
	}
	if fstat.IsDir() {
		return fmt.Errorf("configuration file %s is a directory", path)
	}
	if !fstat.Mode().IsRegular() {
		return fmt.Errorf("configuration file %s is not a regular file", path)
	}

	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to read configuration file %s: %w", path, err)
	}
	type all struct {
		Global    global    `yaml:"global,omitempty"`
		Collector collector `yaml:"collector,omitempty"`
		Ingest    ingest    `yaml:"ingest,omitempty"`
		Service   service   `yaml:"service,omitempty"`
		Generate  generate  `yaml:"generate,omitempty"`
	}
	var a all
	if err = yaml.Unmarshal(content, &a); err != nil {
		return fmt.Errorf("failed to unmarshal configuration file %s: %w", path, err)
	}
	Global = a.Global
	Collector = a.Collector
	Ingest = a.Ingest
	Service = a.Service
	Generate = a.Generate

	return nil
}
