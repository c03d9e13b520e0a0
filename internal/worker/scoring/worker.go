package scoringworker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pitchlab/salestrainer/internal/persona"
	"github.com/pitchlab/salestrainer/internal/scoring"
	"github.com/pitchlab/salestrainer/pkg/logging"
)

// ErrWorkerClosed indicates the worker is no longer accepting jobs.
var ErrWorkerClosed = errors.New("scoringworker: worker closed")

// Scorer is the transcript-grading dependency.
type Scorer interface {
	Score(ctx context.Context, turns []scoring.Turn, callType persona.CallType) (*scoring.CallScore, error)
}

// Archiver persists finished reports. Optional; nil means score-and-return
// without storage.
type Archiver interface {
	Save(ctx context.Context, sessionID string, score *scoring.CallScore) error
}

type result struct {
	score *scoring.CallScore
	err   error
}

const (
	defaultWorkers     = 2
	defaultReceiveWait = 2 // seconds
	defaultReceiveMax  = 5 // messages
)

type workerConfig struct {
	workers          int
	receiveWaitSecs  int
	receiveBatchSize int
}

// Option configures the worker pool.
type Option func(*workerConfig)

// WithWorkerCount overrides the number of queue polling goroutines.
func WithWorkerCount(workers int) Option {
	return func(cfg *workerConfig) {
		if workers > 0 {
			cfg.workers = workers
		}
	}
}

// WithReceiveWaitSeconds sets the long-poll wait for each Receive call.
func WithReceiveWaitSeconds(seconds int) Option {
	return func(cfg *workerConfig) {
		if seconds >= 0 {
			cfg.receiveWaitSecs = seconds
		}
	}
}

// WithReceiveBatchSize overrides how many jobs each poll may return.
func WithReceiveBatchSize(size int) Option {
	return func(cfg *workerConfig) {
		if size > 0 {
			cfg.receiveBatchSize = size
		}
	}
}

// Worker drains scoring jobs off a queue, grades them, and archives the
// reports. Callers can fire-and-forget with Enqueue or block for the report
// with ScoreCall; either way the actual grading happens on the pool.
type Worker struct {
	scorer  Scorer
	archive Archiver
	queue   queueClient
	logger  *logging.Logger

	cfg workerConfig

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	pending sync.Map // jobID -> chan result
}

// NewWorker starts the polling goroutines immediately.
func NewWorker(scorer Scorer, queue queueClient, archive Archiver, logger *logging.Logger, opts ...Option) *Worker {
	if scorer == nil {
		panic("scoringworker: scorer cannot be nil")
	}
	if queue == nil {
		panic("scoringworker: queue cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}

	cfg := workerConfig{
		workers:          defaultWorkers,
		receiveWaitSecs:  defaultReceiveWait,
		receiveBatchSize: defaultReceiveMax,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Worker{
		scorer:  scorer,
		archive: archive,
		queue:   queue,
		logger:  logger,
		cfg:     cfg,
		ctx:     ctx,
		cancel:  cancel,
	}

	for i := 0; i < cfg.workers; i++ {
		w.wg.Add(1)
		go w.run(i + 1)
	}
	return w
}

// Enqueue submits a job without waiting for the report. The returned ID can
// be used to find the archived score later.
func (w *Worker) Enqueue(ctx context.Context, job Job) (string, error) {
	job, body, err := encodeJob(job)
	if err != nil {
		return "", err
	}
	if err := w.queue.Send(ctx, body); err != nil {
		return "", fmt.Errorf("scoringworker: enqueue job: %w", err)
	}
	return job.ID, nil
}

// ScoreCall submits a job and blocks until the pool has graded it.
func (w *Worker) ScoreCall(ctx context.Context, job Job) (*scoring.CallScore, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	job, body, err := encodeJob(job)
	if err != nil {
		return nil, err
	}

	resultCh := make(chan result, 1)
	w.pending.Store(job.ID, resultCh)
	defer w.pending.Delete(job.ID)

	if err := w.queue.Send(ctx, body); err != nil {
		return nil, fmt.Errorf("scoringworker: enqueue job: %w", err)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-resultCh:
		return res.score, res.err
	}
}

// Shutdown stops the pool and notifies blocked callers.
func (w *Worker) Shutdown(ctx context.Context) error {
	w.cancel()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
	}

	w.pending.Range(func(key, value any) bool {
		if ch, ok := value.(chan result); ok {
			select {
			case ch <- result{err: ErrWorkerClosed}:
			default:
			}
		}
		w.pending.Delete(key)
		return true
	})
	return nil
}

func (w *Worker) run(workerID int) {
	defer w.wg.Done()
	w.logger.Debug("scoring worker started", "worker_id", workerID)

	backoff := time.Second
	for {
		select {
		case <-w.ctx.Done():
			w.logger.Debug("scoring worker stopping", "worker_id", workerID)
			return
		default:
		}

		messages, err := w.queue.Receive(w.ctx, w.cfg.receiveBatchSize, w.cfg.receiveWaitSecs)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			w.logger.Error("failed to receive scoring jobs", "error", err, "worker_id", workerID)
			time.Sleep(backoff)
			if backoff < 5*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		for _, msg := range messages {
			w.handleMessage(msg)
		}
	}
}

func (w *Worker) handleMessage(msg queueMessage) {
	var job Job
	if err := json.Unmarshal([]byte(msg.Body), &job); err != nil {
		w.logger.Error("dropping undecodable scoring job", "error", err, "message_id", msg.ID)
		w.deleteMessage(msg)
		return
	}

	score, err := w.scorer.Score(w.ctx, scoring.NormalizeAll(job.Transcript), job.CallType)
	if err == nil && w.archive != nil && job.SessionID != "" {
		if saveErr := w.archive.Save(w.ctx, job.SessionID, score); saveErr != nil {
			w.logger.Error("failed to archive call score", "error", saveErr, "session_id", job.SessionID)
		}
	}
	if err != nil {
		w.logger.Error("scoring job failed", "error", err, "job_id", job.ID, "session_id", job.SessionID)
	}

	if ch, ok := w.pending.Load(job.ID); ok {
		if resultCh, ok := ch.(chan result); ok {
			select {
			case resultCh <- result{score: score, err: err}:
			default:
			}
		}
	}
	w.deleteMessage(msg)
}

func (w *Worker) deleteMessage(msg queueMessage) {
	if err := w.queue.Delete(w.ctx, msg.ReceiptHandle); err != nil {
		w.logger.Warn("failed to delete scoring job message", "error", err, "message_id", msg.ID)
	}
}
