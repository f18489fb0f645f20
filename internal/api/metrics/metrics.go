// Package metrics defines and registers all custom Prometheus metrics for
// the StackIt API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register themselves with the default registry via promauto at
// package init; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "stackit"

// ── Composer metrics ──────────────────────────────────────────────────────────

// QuestionsCreatedTotal counts successfully submitted questions.
var QuestionsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "questions_created_total",
		Help:      "Total number of questions created.",
	},
)

// TagsCreatedTotal counts tags created lazily by submissions introducing a
// new name.
var TagsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tags_created_total",
		Help:      "Total number of tag records created on first use.",
	},
)

// AttachmentsUploadedTotal counts object-store uploads.
// Labels:
//   - kind: "image", "video", or "raw"
//   - result: "ok" or "error"
var AttachmentsUploadedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "attachments_uploaded_total",
		Help:      "Total number of attachment uploads, by kind and result.",
	},
	[]string{"kind", "result"},
)

// AttachmentUploadDuration measures one upload end-to-end.
var AttachmentUploadDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "attachment_upload_duration_seconds",
		Help:      "Duration of a single object-store upload.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"kind"},
)

// ── Thread metrics ────────────────────────────────────────────────────────────

// AnswersPostedTotal counts persisted answers.
var AnswersPostedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "answers_posted_total",
		Help:      "Total number of answers posted.",
	},
)

// CommentsPostedTotal counts persisted comments.
var CommentsPostedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_posted_total",
		Help:      "Total number of comments posted.",
	},
)

// VotesCastTotal counts vote increments.
// Labels:
//   - target: "question" or "answer"
//   - direction: "up" or "down"
var VotesCastTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "votes_cast_total",
		Help:      "Total number of votes cast, by target and direction.",
	},
	[]string{"target", "direction"},
)

// ── View pipeline metrics ─────────────────────────────────────────────────────

// ViewEventsQueueDepth tracks pending view-count increments per dispatcher
// worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ViewEventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "view_events_queue_depth",
		Help:      "Current number of view events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ViewEventsDroppedTotal counts view increments that failed to persist.
var ViewEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "view_events_dropped_total",
		Help:      "Total number of view-count increments that failed to persist.",
	},
)
