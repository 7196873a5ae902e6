package notify

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"eventreg/internal/domain"
	"eventreg/internal/mailer"
	"eventreg/internal/models"

	"github.com/rs/zerolog"
)

var (
	ErrQueueFull = errors.New("notification queue is full")
	ErrStopped   = errors.New("notification pool stopped")
)

// Job is one email to deliver. Kind tags the delivery log entry.
type Job struct {
	Kind string `json:"kind"`
	mailer.Message
}

// Dispatcher hands a job off for delivery without waiting for it.
type Dispatcher interface {
	Dispatch(ctx context.Context, job Job) error
}

// Recorder persists delivery outcomes.
type Recorder interface {
	Create(ctx context.Context, n *models.Notification) error
}

// Pool delivers jobs from a bounded queue with a fixed number of workers.
type Pool struct {
	mailer      mailer.Mailer
	recorder    Recorder
	log         *zerolog.Logger
	jobs        chan Job
	workers     int
	sendTimeout time.Duration

	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

func NewPool(m mailer.Mailer, rec Recorder, workers, queueSize int, log *zerolog.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	return &Pool{
		mailer:      m,
		recorder:    rec,
		log:         log,
		jobs:        make(chan Job, queueSize),
		workers:     workers,
		sendTimeout: 30 * time.Second,
	}
}

func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.work()
	}
	p.log.Info().Int("workers", p.workers).Int("queue", cap(p.jobs)).Msg("notification pool started")
}

// Dispatch queues job and returns immediately. A full queue drops the job.
func (p *Pool) Dispatch(ctx context.Context, job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrStopped
	}
	select {
	case p.jobs <- job:
		return nil
	default:
		p.log.Error().Str("kind", job.Kind).Strs("to", job.To).Msg("notification queue full, job dropped")
		return ErrQueueFull
	}
}

// Stop closes the queue and waits for queued jobs to drain.
func (p *Pool) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.jobs)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pool) work() {
	defer p.wg.Done()
	for job := range p.jobs {
		p.deliver(job)
	}
}

func (p *Pool) deliver(job Job) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error().Interface("panic", r).Str("kind", job.Kind).Msg("mail delivery panicked")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), p.sendTimeout)
	err := p.mailer.Send(ctx, job.Message)
	cancel()

	n := &models.Notification{
		Kind:      job.Kind,
		Recipient: strings.Join(job.To, ","),
		Subject:   job.Subject,
		Status:    domain.DeliverySent,
	}
	if err != nil {
		n.Status = domain.DeliveryFailed
		n.Error = truncate(err.Error(), 512)
		p.log.Error().Err(err).Str("kind", job.Kind).Strs("to", job.To).Msg("mail delivery failed")
	} else {
		p.log.Debug().Str("kind", job.Kind).Strs("to", job.To).Msg("mail delivered")
	}
	if p.recorder == nil {
		return
	}
	if err := p.recorder.Create(context.Background(), n); err != nil {
		p.log.Warn().Err(err).Msg("failed to record notification")
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
