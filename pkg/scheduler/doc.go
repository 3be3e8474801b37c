// Package scheduler implements a bounded worker pool returning futures.
//
// The table service uses it to run the rows query and the count query of a
// server-driven table concurrently while capping the number of queries the
// process issues at once.
//
// # Architecture Overview
//
//	  AddWork(ctx, name, fn) / Submit
//	               │
//	               ▼
//	┌─────────────────────────────┐        ┌──────────────────────────┐
//	│ loop (single goroutine)     │ start  │ goroutine per task       │
//	│                             ├───────►│ at most `slots` at once  │
//	│  backlog: FIFO of tasks     │        └────────────┬─────────────┘
//	│  free:    idle slot count   │◄────────────────────┘
//	└─────────────────────────────┘        finished (buffered, slots)
//
// The loop owns the backlog and the free slot count, so neither needs a lock.
// A finished task gives its slot back through a channel buffered to the slot
// count, which never blocks.
//
// # Futures
//
// AddWork returns a Future immediately:
//
//   - C() receives exactly one Result when the work completes.
//   - Stop() cancels the work's context.
//
// Submit wraps typed work. Await collects several futures in submission
// order and stops the remaining ones on the first error:
//
//	rows := scheduler.Submit(ctx, sched, "candidates.list", func(ctx context.Context) ([]models.Candidate, error) {
//	    return st.Candidate().List(ctx, opts...)
//	})
//	count := scheduler.Submit(ctx, sched, "candidates.count", func(ctx context.Context) (int, error) {
//	    return st.Candidate().Count(ctx, filters...)
//	})
//	results, err := scheduler.Await(ctx, rows, count)
//
// The name only labels log lines.
//
// # Cancellation
//
//	┌──────────────────────┬──────────────────────────────────────────┐
//	│ Event                │ Effect                                   │
//	├──────────────────────┼──────────────────────────────────────────┤
//	│ caller ctx done      │ the one task                             │
//	│ future.Stop()        │ the one task                             │
//	│ scheduler.Close()    │ every queued and running task            │
//	└──────────────────────┴──────────────────────────────────────────┘
//
// Work submitted with a context already done, or after Close, is never
// queued; its future receives the context error. Tasks still in the backlog
// at Close receive context.Canceled without running.
//
// # Panic Recovery
//
// A panic in a work function is logged, recovered and delivered as
// "worker panicked: ..." on the future. The slot is returned.
//
// # Stats
//
// Stats reports the slot count and the running, queued and completed task
// counts. The counters are read without stopping the loop.
package scheduler
