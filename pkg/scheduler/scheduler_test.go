package scheduler_test

import (
	"context"
	"errors"
	"runtime"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gctalent/talent-backoffice/pkg/scheduler"
)

var _ = Describe("Scheduler", func() {
	var s *scheduler.Scheduler

	AfterEach(func() {
		if s != nil {
			s.Close()
		}
	})

	Describe("AddWork", func() {
		It("should add work and return a future", func() {
			s = scheduler.NewScheduler(1)

			work := func(ctx context.Context) (any, error) {
				return "done", nil
			}

			future := s.AddWork(context.Background(), "test", work)
			Expect(future).NotTo(BeNil())

			var result scheduler.Result[any]
			Eventually(future.C(), 2*time.Second).Should(Receive(&result))
			Expect(result.Data).To(Equal("done"))
		})
	})

	Describe("Run work", func() {
		It("should execute multiple work items", func() {
			s = scheduler.NewScheduler(2)

			results := make(chan int, 3)
			for i := range 3 {
				idx := i
				work := func(ctx context.Context) (any, error) {
					results <- idx
					return idx, nil
				}
				s.AddWork(context.Background(), "test", work)
			}

			Eventually(func() int {
				return len(results)
			}, 2*time.Second, 100*time.Millisecond).Should(Equal(3))
		})
	})

	Describe("Cancel work", func() {
		It("should cancel work via future.Stop()", func() {
			s = scheduler.NewScheduler(1)

			cancelled := make(chan bool, 1)
			work := func(ctx context.Context) (any, error) {
				select {
				case <-ctx.Done():
					cancelled <- true
					return nil, ctx.Err()
				case <-time.After(5 * time.Second):
					return "completed", nil
				}
			}

			future := s.AddWork(context.Background(), "test", work)
			time.Sleep(100 * time.Millisecond)
			future.Stop()

			Eventually(cancelled, 2*time.Second).Should(Receive(BeTrue()))
		})

		It("should cancel work when scheduler is closed", func() {
			s = scheduler.NewScheduler(1)

			cancelled := make(chan bool, 1)
			work := func(ctx context.Context) (any, error) {
				select {
				case <-ctx.Done():
					cancelled <- true
					return nil, ctx.Err()
				case <-time.After(5 * time.Second):
					return "completed", nil
				}
			}

			s.AddWork(context.Background(), "test", work)
			time.Sleep(100 * time.Millisecond)
			s.Close()
			s = nil // prevent AfterEach from closing again

			Eventually(cancelled, 2*time.Second).Should(Receive(BeTrue()))
		})
	})

	Describe("Goroutine cleanup", func() {
		It("should not leak goroutines after Close under load", func() {
			base := runtime.NumGoroutine()
			s = scheduler.NewScheduler(4)

			work := func(ctx context.Context) (any, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			}

			for i := 0; i < 200; i++ {
				s.AddWork(context.Background(), "test", work)
			}

			time.Sleep(100 * time.Millisecond)
			s.Close()
			s = nil // prevent AfterEach from closing again

			Eventually(func() int {
				return runtime.NumGoroutine()
			}, 5*time.Second, 100*time.Millisecond).Should(BeNumerically("<=", base+10))
		})
	})

	Describe("Close behavior", func() {
		It("should return canceled when AddWork is called after Close", func() {
			s = scheduler.NewScheduler(1)
			s.Close()

			future := s.AddWork(context.Background(), "test", func(ctx context.Context) (any, error) {
				return "done", nil
			})

			var result scheduler.Result[any]
			Eventually(future.C(), 1*time.Second).Should(Receive(&result))
			Expect(result.Err).To(MatchError(context.Canceled))
		})

		It("should wait for in-flight work to finish on Close", func() {
			s = scheduler.NewScheduler(1)

			started := make(chan struct{})
			unblock := make(chan struct{})
			work := func(ctx context.Context) (any, error) {
				close(started)
				<-unblock
				return "done", nil
			}

			s.AddWork(context.Background(), "test", work)
			Eventually(started, 1*time.Second).Should(BeClosed())

			closeDone := make(chan struct{})
			go func() {
				s.Close()
				close(closeDone)
			}()

			Consistently(closeDone, 200*time.Millisecond).ShouldNot(BeClosed())
			close(unblock)
			Eventually(closeDone, 1*time.Second).Should(BeClosed())
			s = nil // prevent AfterEach from closing again
		})
	})
	Describe("Request context", func() {
		It("should cancel work when the caller context is done", func() {
			s = scheduler.NewScheduler(1)

			ctx, cancel := context.WithCancel(context.Background())
			cancelled := make(chan bool, 1)
			s.AddWork(ctx, "test", func(ctx context.Context) (any, error) {
				<-ctx.Done()
				cancelled <- true
				return nil, ctx.Err()
			})

			time.Sleep(50 * time.Millisecond)
			cancel()

			Eventually(cancelled, 2*time.Second).Should(Receive(BeTrue()))
		})

		It("should not queue work for a context already done", func() {
			s = scheduler.NewScheduler(1)

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			future := s.AddWork(ctx, "test", func(ctx context.Context) (any, error) {
				return "done", nil
			})

			var result scheduler.Result[any]
			Eventually(future.C(), time.Second).Should(Receive(&result))
			Expect(result.Err).To(MatchError(context.Canceled))
		})
	})

	Describe("Await", func() {
		It("should collect typed results in submission order", func() {
			s = scheduler.NewScheduler(2)
			ctx := context.Background()

			slow := scheduler.Submit(ctx, s, "test", func(ctx context.Context) ([]string, error) {
				time.Sleep(50 * time.Millisecond)
				return []string{"a", "b"}, nil
			})
			fast := scheduler.Submit(ctx, s, "test", func(ctx context.Context) (int, error) {
				return 2, nil
			})

			results, err := scheduler.Await(ctx, slow, fast)

			Expect(err).NotTo(HaveOccurred())
			Expect(results[0]).To(Equal([]string{"a", "b"}))
			Expect(results[1]).To(Equal(2))
		})

		It("should return the first error and stop the rest", func() {
			s = scheduler.NewScheduler(2)
			ctx := context.Background()

			stopped := make(chan bool, 1)
			failing := s.AddWork(ctx, "test", func(ctx context.Context) (any, error) {
				return nil, errors.New("count failed")
			})
			blocked := s.AddWork(ctx, "test", func(ctx context.Context) (any, error) {
				<-ctx.Done()
				stopped <- true
				return nil, ctx.Err()
			})

			_, err := scheduler.Await(ctx, failing, blocked)

			Expect(err).To(MatchError("count failed"))
			Eventually(stopped, 2*time.Second).Should(Receive(BeTrue()))
		})

		It("should report a panic as an error", func() {
			s = scheduler.NewScheduler(1)
			ctx := context.Background()

			future := s.AddWork(ctx, "test", func(ctx context.Context) (any, error) {
				panic("boom")
			})

			_, err := scheduler.Await(ctx, future)

			Expect(err).To(MatchError(ContainSubstring("worker panicked: boom")))
		})
	})

	Describe("Wait", func() {
		It("should stop the work when the context ends first", func() {
			s = scheduler.NewScheduler(1)

			stopped := make(chan bool, 1)
			future := s.AddWork(context.Background(), "slow", func(ctx context.Context) (any, error) {
				<-ctx.Done()
				stopped <- true
				return nil, ctx.Err()
			})

			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()
			_, err := future.Wait(ctx)

			Expect(err).To(MatchError(context.DeadlineExceeded))
			Eventually(stopped, 2*time.Second).Should(Receive(BeTrue()))
		})
	})

	Describe("Ordering", func() {
		It("should start queued work in submission order", func() {
			s = scheduler.NewScheduler(1)
			ctx := context.Background()

			gate := make(chan struct{})
			order := make(chan int, 3)
			s.AddWork(ctx, "gate", func(ctx context.Context) (any, error) {
				<-gate
				return nil, nil
			})
			var futures []*scheduler.Future[scheduler.Result[any]]
			for i := range 3 {
				idx := i
				futures = append(futures, s.AddWork(ctx, "ordered", func(ctx context.Context) (any, error) {
					order <- idx
					return idx, nil
				}))
			}

			close(gate)
			_, err := scheduler.Await(ctx, futures...)

			Expect(err).NotTo(HaveOccurred())
			Expect(<-order).To(Equal(0))
			Expect(<-order).To(Equal(1))
			Expect(<-order).To(Equal(2))
		})
	})

	Describe("Stats", func() {
		It("should report running, queued and completed work", func() {
			s = scheduler.NewScheduler(1)
			ctx := context.Background()

			unblock := make(chan struct{})
			first := s.AddWork(ctx, "blocking", func(ctx context.Context) (any, error) {
				<-unblock
				return nil, nil
			})
			second := s.AddWork(ctx, "queued", func(ctx context.Context) (any, error) {
				return nil, nil
			})

			Eventually(s.Stats, time.Second).Should(Equal(scheduler.Stats{Slots: 1, Running: 1, Queued: 1}))

			close(unblock)
			_, err := scheduler.Await(ctx, first, second)

			Expect(err).NotTo(HaveOccurred())
			Eventually(func() int { return s.Stats().Completed }, time.Second).Should(Equal(2))
		})

		It("should cancel queued work on Close", func() {
			s = scheduler.NewScheduler(1)
			ctx := context.Background()

			s.AddWork(ctx, "blocking", func(ctx context.Context) (any, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			})
			queued := s.AddWork(ctx, "queued", func(ctx context.Context) (any, error) {
				return "ran", nil
			})
			Eventually(func() int { return s.Stats().Queued }, time.Second).Should(Equal(1))

			s.Close()
			s = nil // prevent AfterEach from closing again

			var result scheduler.Result[any]
			Eventually(queued.C(), time.Second).Should(Receive(&result))
			Expect(result.Err).To(MatchError(context.Canceled))
		})
	})
})
