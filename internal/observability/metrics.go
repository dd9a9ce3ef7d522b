// Package observability provides application-level Prometheus metrics.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PostsCreated counts posts created over the lifetime of the process.
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_posts_created_total",
		Help: "Total number of posts created",
	})

	// CommentsCreated counts comments created.
	CommentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_comments_created_total",
		Help: "Total number of comments created",
	})

	// LikesCreated counts likes recorded.
	LikesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_likes_created_total",
		Help: "Total number of likes recorded",
	})

	// Logins counts login attempts by outcome.
	Logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_logins_total",
		Help: "Total number of login attempts by outcome",
	}, []string{"outcome"})

	// AuthorizationDenials counts denied mutations by rule.
	AuthorizationDenials = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_authorization_denials_total",
		Help: "Total number of denied mutations by rule",
	}, []string{"rule"})
)
