package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// task is one submitted unit of work waiting for a free slot.
type task struct {
	name    string
	fn      Work[any]
	ctx     context.Context
	out     chan Result[any]
	release func()
}

// Stats is a point-in-time view of the pool.
type Stats struct {
	Slots     int
	Running   int
	Queued    int
	Completed int
}

// Scheduler runs work on at most a fixed number of goroutines. Work beyond
// that waits in FIFO order. A single dispatcher goroutine owns the backlog.
type Scheduler struct {
	slots    int
	submit   chan task
	finished chan struct{}
	closing  chan struct{}
	closed   chan struct{}

	ctx      context.Context
	cancel   context.CancelFunc
	inflight sync.WaitGroup
	once     sync.Once

	running   atomic.Int64
	queued    atomic.Int64
	completed atomic.Int64

	log *zap.SugaredLogger
}

func NewScheduler(slots int) *Scheduler {
	if slots <= 0 {
		slots = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		slots:    slots,
		submit:   make(chan task),
		finished: make(chan struct{}, slots),
		closing:  make(chan struct{}),
		closed:   make(chan struct{}),
		ctx:      ctx,
		cancel:   cancel,
		log:      zap.S().Named("scheduler"),
	}
	go s.loop()
	return s
}

// AddWork queues w under name. The context passed to w is cancelled when ctx
// is done, when the future is stopped or when the scheduler closes.
func (s *Scheduler) AddWork(ctx context.Context, name string, w Work[any]) *Future[Result[any]] {
	out := make(chan Result[any], 1)
	workCtx, cancel := context.WithCancel(s.ctx)
	stop := context.AfterFunc(ctx, cancel)
	release := func() {
		stop()
		cancel()
	}

	if err := ctx.Err(); err != nil {
		release()
		out <- Result[any]{Err: err}
		return NewFuture[Result[any]](out, release)
	}

	select {
	case <-s.ctx.Done():
		release()
		out <- Result[any]{Err: context.Canceled}
	case <-ctx.Done():
		release()
		out <- Result[any]{Err: ctx.Err()}
	case s.submit <- task{name: name, fn: w, ctx: workCtx, out: out, release: release}:
	}

	return NewFuture[Result[any]](out, release)
}

// Submit queues typed work.
func Submit[T any](ctx context.Context, s *Scheduler, name string, w Work[T]) *Future[Result[any]] {
	return s.AddWork(ctx, name, func(ctx context.Context) (any, error) {
		return w(ctx)
	})
}

func (s *Scheduler) Stats() Stats {
	return Stats{
		Slots:     s.slots,
		Running:   int(s.running.Load()),
		Queued:    int(s.queued.Load()),
		Completed: int(s.completed.Load()),
	}
}

// Close cancels queued and running work and waits for running work to
// return. It is safe to call more than once.
func (s *Scheduler) Close() {
	s.once.Do(func() {
		s.cancel()
		close(s.closing)
		<-s.closed
	})
}

func (s *Scheduler) loop() {
	defer close(s.closed)

	free := s.slots
	var backlog []task

	for {
		select {
		case t := <-s.submit:
			backlog = append(backlog, t)
			s.queued.Add(1)
		case <-s.finished:
			free++
		case <-s.closing:
			for _, t := range backlog {
				t.release()
				t.out <- Result[any]{Err: context.Canceled}
			}
			s.queued.Store(0)
			s.inflight.Wait()
			return
		}

		for free > 0 && len(backlog) > 0 {
			t := backlog[0]
			backlog[0] = task{}
			backlog = backlog[1:]
			free--
			s.queued.Add(-1)
			s.start(t)
		}
	}
}

func (s *Scheduler) start(t task) {
	s.running.Add(1)
	s.inflight.Add(1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				s.log.Errorw("work panicked", "name", t.name, "panic", rec)
				t.out <- Result[any]{Err: fmt.Errorf("worker panicked: %v", rec)}
			}
			t.release()
			s.running.Add(-1)
			s.completed.Add(1)
			s.finished <- struct{}{}
			s.inflight.Done()
		}()

		v, err := t.fn(t.ctx)
		if err != nil {
			s.log.Debugw("work failed", "name", t.name, "error", err)
		}
		t.out <- Result[any]{Data: v, Err: err}
	}()
}
