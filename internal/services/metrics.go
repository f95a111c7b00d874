package services

import "github.com/prometheus/client_golang/prometheus"

var (
	// voteRejections counts vote changes refused because the count would
	// drop below zero, by entity kind.
	voteRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_vote_rejections_total",
			Help: "Vote updates rejected by the non-negative floor.",
		},
		[]string{"kind"},
	)

	// eventPublishFailures counts domain events the publisher failed to deliver.
	eventPublishFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_event_publish_failures_total",
			Help: "Domain events that could not be published.",
		},
		[]string{"type"},
	)
)

func init() {
	prometheus.MustRegister(voteRejections, eventPublishFailures)
}
