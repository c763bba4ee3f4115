package helpers

import (
	"time"

	"golang.org/x/time/rate"
)

// OnceAMinute throttles noisy log paths. Wrap the log call in Do and it
// fires at most once per minute, process-wide.
var OnceAMinute = onceAMinute()

func onceAMinute() rate.Sometimes {
	return rate.Sometimes{
		Interval: time.Minute,
	}
}
