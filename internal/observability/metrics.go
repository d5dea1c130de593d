// Package observability provides Prometheus metrics and OpenTelemetry tracing.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// Signups counts successful account registrations.
	Signups = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ripple_signups_total",
		Help: "Total number of successful registrations",
	})

	// Logins counts login attempts by outcome.
	Logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_logins_total",
		Help: "Total number of login attempts by outcome",
	}, []string{"outcome"})

	// PostsCreated counts created posts.
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ripple_posts_created_total",
		Help: "Total number of posts created",
	})

	// ModerationActions counts privileged admin/moderation operations by action.
	ModerationActions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_moderation_actions_total",
		Help: "Total number of admin and moderation actions by action type",
	}, []string{"action"})
)
