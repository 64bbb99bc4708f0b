// Package metrics registers the prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_book_http_requests_total",
			Help: "Total HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipe_book_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	RecipeOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_book_recipe_operations_total",
			Help: "Recipe writes by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	IngredientsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipe_book_ingredients_created_total",
			Help: "Ingredients inserted through the ingredient endpoint.",
		},
	)

	FavoriteOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_book_favorite_operations_total",
			Help: "Favorite list changes by operation.",
		},
		[]string{"operation"},
	)

	MailsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_book_mails_sent_total",
			Help: "Outgoing mails by outcome.",
		},
		[]string{"outcome"},
	)
)

// Outcome turns an error into a metric label.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
