package notify

import (
	"context"
	"sync"
	"time"

	"github.com/aussiebroadwan/neurohealth/pkg/slogx"
)

type QueueConfig struct {
	Size        int
	Workers     int
	SendTimeout time.Duration
}

type job struct {
	ctx context.Context
	msg Message
}

// Queue hands messages to a pool of workers so that callers never wait on
// the mail transport. Each message is passed to the wrapped Notifier exactly
// once; failures are logged and dropped.
type Queue struct {
	next    Notifier
	timeout time.Duration
	jobs    chan job

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewQueue starts the workers. Call Close to drain and stop them.
func NewQueue(next Notifier, cfg QueueConfig) *Queue {
	if cfg.Size <= 0 {
		cfg.Size = 100
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 2
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = 30 * time.Second
	}

	q := &Queue{
		next:    next,
		timeout: cfg.SendTimeout,
		jobs:    make(chan job, cfg.Size),
	}

	q.wg.Add(cfg.Workers)
	for range cfg.Workers {
		go q.work()
	}
	return q
}

// Send enqueues msg and returns immediately. The request context is detached
// so the message outlives the request, but its logger is kept.
func (q *Queue) Send(ctx context.Context, msg Message) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.jobs <- job{ctx: context.WithoutCancel(ctx), msg: msg}:
		return nil
	default:
		slogx.FromContext(ctx).Error("notification queue full, dropping message",
			"message_id", msg.ID,
			"to", msg.To,
		)
		return ErrQueueFull
	}
}

func (q *Queue) work() {
	defer q.wg.Done()
	for j := range q.jobs {
		q.deliver(j)
	}
}

func (q *Queue) deliver(j job) {
	ctx, cancel := context.WithTimeout(j.ctx, q.timeout)
	defer cancel()

	log := slogx.FromContext(ctx)
	defer func() {
		if r := recover(); r != nil {
			log.Error("panic sending email", "message_id", j.msg.ID, "panic", r)
		}
	}()

	if err := q.next.Send(ctx, j.msg); err != nil {
		log.Error("failed to send email",
			"message_id", j.msg.ID,
			"to", j.msg.To,
			"subject", j.msg.Subject,
			"error", err,
		)
	}
}

// Close stops accepting messages, delivers what is already queued and waits
// for the workers or for ctx to expire.
func (q *Queue) Close(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
