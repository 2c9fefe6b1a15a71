package ace

import (
	"fmt"
	"time"
)

// PipelineOption is a functional option for configuring a Pipeline.
type PipelineOption func(*Pipeline) error

// WithConfig applies cfg. Its frame rate replaces the default.
func WithConfig(cfg Config) PipelineOption {
	return func(p *Pipeline) error {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		p.config = cfg
		p.frameDuration = time.Second / time.Duration(cfg.FrameRate)
		return nil
	}
}

// WithClock sets the time source for animations. Tests use a manual clock.
func WithClock(clock Clock) PipelineOption {
	return func(p *Pipeline) error {
		if clock == nil {
			return fmt.Errorf("clock must not be nil")
		}
		p.clock = clock
		return nil
	}
}

// WithFrameRate sets the target frame rate. Valid range is 1-240 fps.
func WithFrameRate(fps int) PipelineOption {
	return func(p *Pipeline) error {
		if fps < 1 {
			return fmt.Errorf("frame rate must be at least 1 fps")
		}
		if fps > 240 {
			return fmt.Errorf("frame rate cannot exceed 240 fps")
		}
		p.config.FrameRate = fps
		p.frameDuration = time.Second / time.Duration(fps)
		return nil
	}
}

// WithTaskQueueSize sets the capacity of the task queue. Default is 256.
func WithTaskQueueSize(size int) PipelineOption {
	return func(p *Pipeline) error {
		if size < 1 {
			return fmt.Errorf("task queue size must be at least 1")
		}
		p.taskQueueSize = size
		return nil
	}
}

// WithInstanceID sets the container instance id used in logs.
func WithInstanceID(id int32) PipelineOption {
	return func(p *Pipeline) error {
		p.instanceID = id
		return nil
	}
}

// WithRegister shares an element register between pipelines.
func WithRegister(reg *ElementRegister) PipelineOption {
	return func(p *Pipeline) error {
		if reg == nil {
			return fmt.Errorf("register must not be nil")
		}
		p.register = reg
		return nil
	}
}
