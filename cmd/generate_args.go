package cmd

import (
	"time"

	"github.com/vigilix/trailpipe/internal/config"
)

var genEnvMapDuration = map[*time.Duration]boundEnvVar[time.Duration]{
	&config.Generate.Delay: {
		Name:        "generate-delay",
		Description: "The pause between synthetic event deliveries",
	},
}
