package ace

import (
	"github.com/grindlemire/go-ace/internal/debug"
)

// TaskType selects the queue a task runs on.
type TaskType uint8

const (
	TaskTypeUI TaskType = iota
	TaskTypePlatform
)

func (t TaskType) String() string {
	if t == TaskTypePlatform {
		return "platform"
	}
	return "ui"
}

// Task is deferred work. It receives the pipeline it was posted to.
type Task func(ctx *Pipeline)

type postedTask struct {
	fn  Task
	typ TaskType
}

// TaskExecutor queues tasks from any goroutine for the pipeline's UI
// goroutine.
type TaskExecutor struct {
	queue chan postedTask
}

func newTaskExecutor(size int) *TaskExecutor {
	return &TaskExecutor{queue: make(chan postedTask, size)}
}

// PostTask enqueues fn. It reports false if the queue is full.
// Safe to call from any goroutine.
func (e *TaskExecutor) PostTask(fn Task, typ TaskType) bool {
	if fn == nil {
		return false
	}
	select {
	case e.queue <- postedTask{fn: fn, typ: typ}:
		return true
	default:
		debug.Warn("task queue full, dropping task", "type", typ)
		return false
	}
}

// Pending returns the number of queued tasks.
func (e *TaskExecutor) Pending() int {
	return len(e.queue)
}

// drain removes every queued task, UI tasks first.
func (e *TaskExecutor) drain() (ui, platform []Task) {
	for {
		select {
		case t := <-e.queue:
			if t.typ == TaskTypePlatform {
				platform = append(platform, t.fn)
			} else {
				ui = append(ui, t.fn)
			}
		default:
			return ui, platform
		}
	}
}
