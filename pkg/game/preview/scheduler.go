// Package preview keeps a decorative, periodically replaced map behind the
// main menu.
//
// A Scheduler generates maps in the background, hands each finished map to
// the interactive thread, fades it in over the previous one and starts over
// after a delay. Stopping it cancels whatever is in flight; a cancelled map
// is never shown and never schedules another.
package preview

import (
	"context"
	"log"
	"sync"
	"time"

	"frontier/pkg/engine/task"
	"frontier/pkg/engine/world"
	"frontier/pkg/game/assets"
	"frontier/pkg/game/mapgen"
	"frontier/pkg/game/ruleset"
)

// Timings, in seconds.
const (
	FirstFadeTime = 0.3
	FadeTime      = 1.3
	ReplaceDelay  = 15.0
)

// JobName is the task name background generation runs under.
const JobName = "ShowMapBackground"

// State is where the scheduler is in its cycle.
type State int

// Scheduler states
const (
	StateIdle State = iota
	StateGenerating
	StateDisplayed
)

func (s State) String() string {
	switch s {
	case StateGenerating:
		return "generating"
	case StateDisplayed:
		return "displayed"
	default:
		return "idle"
	}
}

// Config wires a scheduler to its collaborators.
type Config struct {
	Runner     *task.Runner
	Dispatcher *task.Dispatcher
	Rulesets   *ruleset.Cache
	Generator  mapgen.Generator
	Images     *assets.Images
	Stack      *Stack

	// Viewport returns the render surface size in pixels.
	Viewport func() (width, height int)
	// EasterEggs reports whether occasion rulesets may be used.
	EasterEggs func() bool
	// Now defaults to time.Now.
	Now func() time.Time
}

// Scheduler runs the background preview cycle. Start, Stop and Update must be
// called from the interactive thread.
type Scheduler struct {
	cfg Config

	job       *task.Job
	state     State
	restartIn float64
	restart   bool
	shownOnce bool

	mu            sync.Mutex
	easterEgg     *ruleset.Ruleset
	holiday       ruleset.Holiday
	easterChecked bool
}

// NewScheduler creates an idle scheduler.
func NewScheduler(cfg Config) *Scheduler {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.EasterEggs == nil {
		cfg.EasterEggs = func() bool { return false }
	}
	return &Scheduler{cfg: cfg}
}

// State returns the current state.
func (s *Scheduler) State() State {
	return s.state
}

// Running reports whether a generation job is live.
func (s *Scheduler) Running() bool {
	return s.job != nil
}

// RestartPending reports whether a replacement is scheduled.
func (s *Scheduler) RestartPending() bool {
	return s.restart
}

// Start cancels any running generation and starts a new one sized to the
// current viewport.
func (s *Scheduler) Start() {
	s.Stop()

	vw, vh := s.cfg.Viewport()
	width, height, scale := PreviewSize(vw, vh)

	var job *task.Job
	job = s.cfg.Runner.Run(JobName, func(ctx context.Context) error {
		rs, grid, err := s.generate(ctx, width, height)
		if err != nil {
			return err
		}
		s.cfg.Dispatcher.Post(func() { s.commit(job, rs, grid, scale) })
		return nil
	})
	s.job = job
	s.state = StateGenerating
	job.InvokeOnCompletion(func(j *task.Job) {
		s.cfg.Dispatcher.Post(func() { s.finished(j) })
	})
}

// Stop cancels the running generation and any pending replacement.
// It is safe to call at any time.
func (s *Scheduler) Stop() {
	s.restart = false
	s.restartIn = 0
	s.state = StateIdle
	job := s.job
	if job == nil {
		return
	}
	s.job = nil
	job.Cancel()
}

// Update advances the replacement timer by dt seconds.
func (s *Scheduler) Update(dt float64) {
	if !s.restart {
		return
	}
	s.restartIn -= dt
	if s.restartIn <= 0 {
		s.restart = false
		s.Start()
	}
}

// EasterEggRuleset returns the occasion ruleset found by the first
// generation, or nil.
func (s *Scheduler) EasterEggRuleset() *ruleset.Ruleset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.easterEgg
}

// ClearEasterEgg forgets the cached occasion ruleset.
func (s *Scheduler) ClearEasterEgg() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.easterEgg = nil
	s.easterChecked = false
}

// occasion composes today's occasion ruleset on first use.
func (s *Scheduler) occasion(base *ruleset.Ruleset) (*ruleset.Ruleset, ruleset.Holiday) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.easterChecked {
		s.easterChecked = true
		if mod, h, ok := s.cfg.Rulesets.TodayEasterEgg(s.cfg.Now()); ok {
			rs, err := s.cfg.Rulesets.Complex(base, []string{mod.Name})
			if err != nil {
				log.Printf("[Preview] Cannot compose %s ruleset: %v", mod.Name, err)
			} else {
				s.easterEgg, s.holiday = rs, h
			}
		}
	}
	return s.easterEgg, s.holiday
}

// generate runs on the task goroutine.
func (s *Scheduler) generate(ctx context.Context, width, height int) (*ruleset.Ruleset, *world.Grid, error) {
	base := s.cfg.Rulesets.Vanilla()
	egg, holiday := s.occasion(base)

	params := mapgen.Parameters{
		Shape:                  mapgen.ShapeRectangular,
		Type:                   mapgen.TypePangaea,
		Width:                  width,
		Height:                 height,
		TemperatureExtremeness: 0.7,
		WaterThreshold:         -0.1,
	}
	rs := base
	if egg != nil && s.cfg.EasterEggs() {
		rs = egg
		params.ModifyForEasterEgg(holiday)
	}

	grid, err := s.cfg.Generator.Generate(ctx, rs, params)
	if err != nil {
		return nil, nil, err
	}
	return rs, grid, nil
}

// commit shows a finished map. Runs on the interactive thread.
func (s *Scheduler) commit(job *task.Job, rs *ruleset.Ruleset, grid *world.Grid, scale float64) {
	if job.IsCancelled() || job != s.job {
		return
	}
	s.cfg.Images.SetRuleset(rs)

	stack := s.cfg.Stack
	for len(stack.MapLayers()) >= 2 {
		stack.RemoveOldestMap()
	}
	layer := stack.AddMap(grid, scale)
	if s.shownOnce {
		stack.FadeIn(layer, FadeTime, func() {
			if len(stack.MapLayers()) > 1 {
				stack.RemoveOldestMap()
			}
		})
	} else {
		s.shownOnce = true
		stack.FadeIn(layer, FirstFadeTime, nil)
	}
	s.state = StateDisplayed
}

// finished runs on the interactive thread after any commit of j.
func (s *Scheduler) finished(j *task.Job) {
	if j.IsCancelled() || j != s.job {
		return
	}
	s.job = nil
	if j.Err() != nil {
		if len(s.cfg.Stack.MapLayers()) > 0 {
			s.state = StateDisplayed
		} else {
			s.state = StateIdle
		}
		return
	}
	s.restart = true
	s.restartIn = ReplaceDelay
}
