package eventbus

// Global topic declarations: one base topic per event family, managed in
// one place so they can be swapped for per-environment names if needed.

var (
	TopicPostEvents       = NewTopic("unitedwerise.post.events")
	TopicEngagementEvents = NewTopic("unitedwerise.engagement.events")
	TopicReputationEvents = NewTopic("unitedwerise.reputation.events")
)

var AllTopics = []Topic{
	TopicPostEvents,
	TopicEngagementEvents,
	TopicReputationEvents,
}
