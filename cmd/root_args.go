package cmd

import (
	"time"

	"github.com/vigilix/trailpipe/internal/config"
	"github.com/vigilix/trailpipe/internal/helpers"
)

var envMapString = map[*string]boundEnvVar[string]{
	&config.Global.Mode: {
		Name:        "mode",
		Description: "The application runtime mode. Possible values are 'ingest', 'service', 'lambda' and 'generate'",
		Short:       helpers.Ptr("m"),
	},
	&config.Collector.URL: {
		Name:        "collector-url",
		Description: "The Splunk HEC endpoint to deliver events to",
		Env:         helpers.Ptr("SPLUNK_HEC_URL"),
	},
	&config.Collector.Token: {
		Name:        "collector-token",
		Description: "The Splunk HEC token presented in the Authorization header",
		Env:         helpers.Ptr("SPLUNK_HEC_TOKEN"),
	},
	&config.Collector.AuthMode: {
		Name:        "collector-auth-mode",
		Description: "Collector credentials provider. Supported values are 'token' and 'ssm'",
		Short:       helpers.Ptr("A"),
	},
	&config.Collector.SSMKey: {
		Name:        "collector-token-ssm-key",
		Description: "The SSM parameter key to use when fetching the collector token",
	},
	&config.Collector.Index: {
		Name:        "collector-index",
		Description: "The Splunk index stamped on delivered events. An empty value lets the collector decide",
	},
	&config.Collector.SourceType: {
		Name:        "collector-source-type",
		Description: "The Splunk sourcetype stamped on delivered events",
	},
}

var envMapBool = map[*bool]boundEnvVar[bool]{
	&config.Global.Logging.CallerTrace: {
		Name:        "verbosity-caller-trace",
		Description: "Enable caller trace in logs",
		Short:       helpers.Ptr("V"),
	},
	&config.Collector.InsecureSkipVerify: {
		Name:        "collector-insecure-skip-verify",
		Description: "Skip TLS certificate verification when delivering to the collector. Lab collectors only",
	},
}

var envMapCount = map[*int]boundEnvVar[int]{
	&config.Global.Logging.Verbosity: {
		Name:        "verbosity",
		Description: "Increase logger verbosity (default WarnLevel)",
		Short:       helpers.Ptr("v"),
	},
}

var envMapDuration = map[*time.Duration]boundEnvVar[time.Duration]{
	&config.Collector.Timeout: {
		Name:        "collector-timeout",
		Description: "The timeout for collector delivery requests",
	},
}
