package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 指標名稱
const (
	namespace = "recipe_ranker"

	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelKind    = "kind"
	LabelRisk    = "risk"
	LabelOutcome = "outcome"
)

// HTTPLatencyBuckets HTTP 延遲分桶（秒）
var HTTPLatencyBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

// HTTP 指標
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Current number of HTTP requests being served",
		},
	)
)

// 引擎指標
var (
	MatchOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "match_outcomes_total",
			Help:      "Ingredient match outcomes by tier",
		},
		[]string{LabelKind},
	)

	RecipesVetoed = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recipes_vetoed_total",
			Help:      "Recipes vetoed because an allergen was present",
		},
	)

	WasteAssessments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "waste_assessments_total",
			Help:      "Pantry waste-risk assessments by risk category",
		},
		[]string{LabelRisk},
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recommend_duration_seconds",
			Help:      "Duration of the recommend pipeline",
			Buckets:   HTTPLatencyBuckets,
		},
	)

	RecommendCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommend_cache_total",
			Help:      "Recommend cache lookups by outcome",
		},
		[]string{LabelOutcome},
	)

	RecipeSourceRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recipe_source_requests_total",
			Help:      "Requests to the external recipe search service",
		},
		[]string{LabelOutcome},
	)
)
