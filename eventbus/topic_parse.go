package eventbus

import (
	"strings"
	"time"
)

// ParseRetryDelayFromTopicName extracts the retry delay encoded in a
// retry topic name. Supported format: "<base>.retry.<duration>", e.g.
// "unitedwerise.post.events.retry.1m0s".
// Returns (delay, ok).
func ParseRetryDelayFromTopicName(name string) (time.Duration, bool) {
	idx := strings.LastIndex(name, ".retry.")
	if idx == -1 || idx+7 >= len(name) {
		return 0, false
	}
	d, err := time.ParseDuration(name[idx+7:])
	if err != nil {
		return 0, false
	}
	return d, true
}
