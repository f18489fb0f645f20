package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/stackit-hq/stackit-api/internal/api/metrics"
	"github.com/stackit-hq/stackit-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// ViewDispatcher applies view-count increments asynchronously. Events are
// routed to a fixed set of workers by consistent hashing on the question id,
// so increments for one question apply in order.
type ViewDispatcher struct {
	workers   []chan string
	questions ports.QuestionRepository
	log       zerolog.Logger
}

// NewViewDispatcher creates a dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewViewDispatcher(numWorkers int, questions ports.QuestionRepository, log zerolog.Logger) *ViewDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &ViewDispatcher{
		workers:   make([]chan string, numWorkers),
		questions: questions,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *ViewDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues one view increment for the question. Non-blocking up to
// channelBuffer capacity.
func (d *ViewDispatcher) Record(questionID string) {
	idx := d.shardIndex(questionID)
	d.workers[idx] <- questionID
	metrics.ViewEventsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a question id deterministically to a worker index.
func (d *ViewDispatcher) shardIndex(questionID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(questionID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *ViewDispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case questionID, ok := <-ch:
			if !ok {
				return
			}
			if err := d.questions.IncrementViews(ctx, questionID); err != nil {
				metrics.ViewEventsDroppedTotal.Inc()
				d.log.Error().Err(err).
					Str("question_id", questionID).
					Int("worker_id", id).
					Msg("view increment failed")
			}
			metrics.ViewEventsQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		}
	}
}
