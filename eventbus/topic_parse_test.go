package eventbus

import (
	"testing"
)

func TestRetryTopicNamesRoundTrip(t *testing.T) {
	topic := NewTopic("unitedwerise.post.events")
	names := topic.GetRetryTopics()
	if len(names) != len(RetryDelays) {
		t.Fatalf("want %d retry topics, got %d", len(RetryDelays), len(names))
	}
	for i, name := range names {
		delay, ok := ParseRetryDelayFromTopicName(name)
		if !ok {
			t.Fatalf("failed to parse %s", name)
		}
		if delay != RetryDelays[i] {
			t.Fatalf("topic %s parsed to %v, want %v", name, delay, RetryDelays[i])
		}
	}
}

func TestParseRetryDelayRejectsGarbage(t *testing.T) {
	for _, name := range []string{
		"unitedwerise.post.events",
		"unitedwerise.post.events.dlq",
		"unitedwerise.post.events.retry.",
		"unitedwerise.post.events.retry.soon",
	} {
		if _, ok := ParseRetryDelayFromTopicName(name); ok {
			t.Fatalf("%s must not parse as a retry topic", name)
		}
	}
}

func TestGetRetryTopicBounds(t *testing.T) {
	topic := NewTopic("unitedwerise.engagement.events")
	if _, err := topic.GetRetryTopic(0); err != ErrMaxRetryExceeded {
		t.Fatalf("attempt 0 must exceed, got %v", err)
	}
	if _, err := topic.GetRetryTopic(len(RetryDelays) + 1); err != ErrMaxRetryExceeded {
		t.Fatalf("attempt past the last delay must exceed, got %v", err)
	}
	name, err := topic.GetRetryTopic(1)
	if err != nil || name != "unitedwerise.engagement.events.retry.10s" {
		t.Fatalf("unexpected first retry topic %q (%v)", name, err)
	}
}
