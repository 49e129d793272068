package notify

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var ErrPoolClosed = errors.New("worker pool closed")

type Task func() error

// WorkerPool runs tasks on a fixed set of goroutines. Close waits for queued
// tasks to finish.
type WorkerPool struct {
	pool   chan Task
	group  errgroup.Group
	mu     sync.RWMutex
	closed bool
}

func NewWorkerPool(size, queue int) *WorkerPool {
	wp := &WorkerPool{pool: make(chan Task, queue)}
	for i := 0; i < size; i++ {
		wp.group.Go(wp.worker)
	}
	return wp
}

func (wp *WorkerPool) worker() error {
	for task := range wp.pool {
		if err := task(); err != nil {
			zap.L().Error("task execution failed", zap.Error(err))
		}
	}
	return nil
}

func (wp *WorkerPool) AddTask(ctx context.Context, task Task) error {
	wp.mu.RLock()
	defer wp.mu.RUnlock()
	if wp.closed {
		return ErrPoolClosed
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case wp.pool <- task:
		return nil
	}
}

func (wp *WorkerPool) Close() {
	wp.mu.Lock()
	if wp.closed {
		wp.mu.Unlock()
		return
	}
	wp.closed = true
	close(wp.pool)
	wp.mu.Unlock()

	_ = wp.group.Wait()
}
