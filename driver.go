package trellis

import (
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
)

// Presenter is the windowing side of the frame loop: it paces frames and
// hands out the Renderer each frame draws into.
type Presenter interface {
	// ShouldClose is polled once per iteration; true ends the loop.
	ShouldClose() bool
	BeginFrame() Renderer
	EndFrame()
	// FrameTime returns the elapsed time of the last frame in seconds.
	FrameTime() float64
	Close() error
}

// DriverOption configures NewDriver.
type DriverOption func(*Driver)

// WithInput sets the driver's input mapper.
func WithInput(in *Input) DriverOption {
	return func(d *Driver) { d.Input = in }
}

// WithProfiler enables frame profiling.
func WithProfiler(p *Profiler) DriverOption {
	return func(d *Driver) { d.profiler = p }
}

// Driver runs the per-frame sequence against the active Scene.
//
// The active scene is held by the driver, not by a global. Activate may be
// called from another goroutine, for example one that built the next level
// in the background; everything else must run on the frame thread.
type Driver struct {
	current atomic.Pointer[Scene]

	// Input is updated once per frame before the scene steps.
	Input *Input

	profiler *Profiler
	runner   *TestRunner
	frames   int64
}

// NewDriver creates a driver with no active scene.
func NewDriver(opts ...DriverOption) *Driver {
	d := &Driver{}
	for _, opt := range opts {
		opt(d)
	}
	if d.Input == nil {
		d.Input = NewInput(nil)
	}
	return d
}

// Activate makes s the active scene and returns the one it replaced, which
// the caller now owns and should Close. Passing nil deactivates.
func (d *Driver) Activate(s *Scene) *Scene {
	prev := d.current.Swap(s)
	if s != nil {
		s.emit(EventSceneActivated, nil)
		logger.Debug("scene activated", zap.Int("entities", s.Len()))
	}
	return prev
}

// Scene returns the active scene, or nil.
func (d *Driver) Scene() *Scene { return d.current.Load() }

// SetTestRunner attaches a scripted input runner, stepped every frame
// before input is updated. Pass nil to detach.
func (d *Driver) SetTestRunner(r *TestRunner) { d.runner = r }

// Profiler returns the frame profiler, or nil when profiling is off.
func (d *Driver) Profiler() *Profiler { return d.profiler }

// Frames returns the number of frames run.
func (d *Driver) Frames() int64 { return d.frames }

// Frame runs one frame of the active scene into r:
//
//	camera → clear → input → physics step → entity protocol → end camera
func (d *Driver) Frame(r Renderer, dt float64) error {
	s := d.Scene()
	if s == nil {
		return ErrNoScene
	}
	if s.closed {
		return ErrSceneClosed
	}
	p := d.profiler
	if p != nil {
		p.BeginFrame()
	}

	if s.Camera != nil {
		s.Camera.update(float32(dt), s)
	}
	r.BeginCamera(s.Camera)
	r.Clear(s.Background)

	if p != nil {
		p.StartPhase(PhaseInput)
	}
	if d.runner != nil {
		d.runner.step(d.Input)
	}
	d.Input.update()

	if p != nil {
		p.StartPhase(PhasePhysics)
	}
	s.stepPhysics(dt)

	if p != nil {
		p.StartPhase(PhaseEntities)
	}
	s.updateEntities(dt, r)

	r.EndCamera()
	if p != nil {
		p.EndFrame()
	}
	d.frames++
	return nil
}

// Run loops until the presenter asks to close, then shuts down the active
// scene and closes the presenter. Teardown always runs; its errors are
// joined with any frame error.
func (d *Driver) Run(p Presenter) error {
	var frameErr error
	for !p.ShouldClose() {
		r := p.BeginFrame()
		frameErr = d.Frame(r, p.FrameTime())
		p.EndFrame()
		if frameErr != nil {
			frameErr = fmt.Errorf("frame %d: %w", d.frames, frameErr)
			break
		}
	}
	return errors.Join(frameErr, d.Shutdown(), p.Close())
}

// Shutdown deactivates and closes the active scene.
func (d *Driver) Shutdown() error {
	s := d.current.Swap(nil)
	if s == nil {
		return nil
	}
	defer Timer("scene shutdown")()
	if d.profiler != nil {
		d.profiler.LogSummary()
	}
	return s.Close()
}

// --- Headless ---

// HeadlessPresenter runs a fixed number of frames with a fixed time step
// into a CommandBuffer. Useful for tests, servers and batch runs.
type HeadlessPresenter struct {
	// Frames is the number of frames to run before ShouldClose reports true.
	Frames int
	// DT is the time step reported by FrameTime. Defaults to 1/60.
	DT float64
	// OnFrame, if set, receives each frame's commands after EndFrame.
	OnFrame func(frame int, buf *CommandBuffer)

	buf    *CommandBuffer
	count  int
	closed bool
}

// ShouldClose reports whether Frames frames have run.
func (h *HeadlessPresenter) ShouldClose() bool { return h.count >= h.Frames }

// BeginFrame returns a reset command buffer.
func (h *HeadlessPresenter) BeginFrame() Renderer {
	if h.buf == nil {
		h.buf = NewCommandBuffer(64)
	}
	h.buf.Reset()
	return h.buf
}

// EndFrame counts the frame and reports it to OnFrame.
func (h *HeadlessPresenter) EndFrame() {
	h.count++
	if h.OnFrame != nil {
		h.OnFrame(h.count, h.buf)
	}
}

// FrameTime returns DT, or 1/60 when DT is not positive.
func (h *HeadlessPresenter) FrameTime() float64 {
	if h.DT <= 0 {
		return 1.0 / 60
	}
	return h.DT
}

// Close marks the presenter closed.
func (h *HeadlessPresenter) Close() error {
	h.closed = true
	return nil
}

// Count returns the number of frames run.
func (h *HeadlessPresenter) Count() int { return h.count }

// Closed reports whether Close ran.
func (h *HeadlessPresenter) Closed() bool { return h.closed }
