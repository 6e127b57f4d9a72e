// Package metrics exposes prometheus counters for the dating simulation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the simulation counters. A nil *Metrics records nothing.
type Metrics struct {
	swipes   *prometheus.CounterVec
	matches  prometheus.Counter
	messages prometheus.Counter
	reseeds  *prometheus.CounterVec
}

// New creates the counters and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		swipes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "datingsim",
			Name:      "swipes_total",
			Help:      "Swipes recorded, by outcome.",
		}, []string{"outcome"}),
		matches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "datingsim",
			Name:      "matches_created_total",
			Help:      "Matches created by a first like.",
		}),
		messages: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "datingsim",
			Name:      "messages_appended_total",
			Help:      "Chat messages appended by users.",
		}),
		reseeds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "datingsim",
			Name:      "reseeds_total",
			Help:      "Seeded collections found empty and rewritten, by collection.",
		}, []string{"collection"}),
	}
	reg.MustRegister(m.swipes, m.matches, m.messages, m.reseeds)
	return m
}

// Swipe outcome labels
const (
	OutcomeDisliked = "disliked"
	OutcomeMatched  = "matched"
	OutcomeIgnored  = "ignored"
)

// Reseed collection labels
const (
	CollectionCandidates = "candidates"
	CollectionPresetChat = "preset_chat"
)

// Swipe counts a swipe with the given outcome label
func (m *Metrics) Swipe(outcome string) {
	if m == nil {
		return
	}
	m.swipes.WithLabelValues(outcome).Inc()
}

// MatchCreated counts a newly created match
func (m *Metrics) MatchCreated() {
	if m == nil {
		return
	}
	m.matches.Inc()
}

// MessageAppended counts a message sent by the user
func (m *Metrics) MessageAppended() {
	if m == nil {
		return
	}
	m.messages.Inc()
}

// Reseeded counts a seeded collection rewritten after it was found empty
func (m *Metrics) Reseeded(collection string) {
	if m == nil {
		return
	}
	m.reseeds.WithLabelValues(collection).Inc()
}
