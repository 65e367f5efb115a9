package keepalive

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/stigoleg/keep-moving/internal/motion"
	"github.com/stigoleg/keep-moving/internal/platform"
)

// SimulationHealth represents the runtime health of cursor simulation
type SimulationHealth int32

const (
	SimulationHealthUnknown SimulationHealth = iota
	SimulationHealthOK
	SimulationHealthNoScreen
)

func (h SimulationHealth) String() string {
	switch h {
	case SimulationHealthOK:
		return "ok"
	case SimulationHealthNoScreen:
		return "no screen"
	default:
		return "unknown"
	}
}

const (
	defaultStopTimeout = 5 * time.Second
	noScreenLogEvery   = time.Minute
)

// Options configures a Keeper. The zero value drives the real desktop with a
// time-seeded random source and no global hotkeys.
type Options struct {
	Display      platform.Display
	Seed         int64
	Clock        func() time.Time
	TickInterval time.Duration
	Hotkeys      *platform.Hotkeys

	// PauseChance overrides the engine's automatic pause probability.
	PauseChance *float64

	// OnExpire runs after a timed session stops on its own.
	OnExpire func()
}

// Status is a point-in-time view of the keeper for display.
type Status struct {
	Running   bool
	Remaining time.Duration
	Health    SimulationHealth
	Motion    motion.State
}

// Keeper runs the motion engine on a fixed tick and applies pause and quit
// events between ticks.
type Keeper struct {
	running bool
	mu      sync.Mutex
	timer   *time.Timer
	engine  *motion.Engine
	opts    Options
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	endTime time.Time

	quit     chan struct{}
	quitOnce sync.Once

	// skippedTicks counts ticks without an active screen (atomic)
	skippedTicks int64
	health       int32
	noScreenLog  rate.Sometimes
}

// New creates a keeper. The engine is built lazily on first use and lives for
// the keeper's lifetime, so motion continues where it left off after a
// stop and start.
func New(opts Options) *Keeper {
	return &Keeper{opts: opts}
}

// IsRunning returns whether the tick loop is active
func (k *Keeper) IsRunning() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.running
}

// StartIndefinite starts moving the cursor until stopped
func (k *Keeper) StartIndefinite() error {
	return k.start(0)
}

// StartTimed starts moving the cursor for the specified duration
func (k *Keeper) StartTimed(d time.Duration) error {
	if d <= 0 {
		return errors.New("duration must be positive")
	}
	return k.start(d)
}

func (k *Keeper) start(d time.Duration) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.running {
		return errors.New("keep-alive already running")
	}

	k.ensureEngineLocked()

	if d > 0 {
		k.ctx, k.cancel = context.WithTimeout(context.Background(), d)
	} else {
		k.ctx, k.cancel = context.WithCancel(context.Background())
	}

	if err := preventDisplaySleep(); err != nil {
		log.Printf("keeper: could not prevent display sleep: %v", err)
	}

	k.startLoopLocked()
	k.startHotkeysLocked()

	k.running = true
	if d > 0 {
		k.endTime = time.Now().Add(d)
		k.timer = time.AfterFunc(d, k.expire)
		log.Printf("keeper: started (timed=%s)", d)
	} else {
		k.endTime = time.Time{}
		log.Printf("keeper: started (indefinite)")
	}
	return nil
}

func (k *Keeper) ensureEngineLocked() {
	if k.engine != nil {
		return
	}

	display := k.opts.Display
	if display == nil {
		display = platform.NewDesktop()
	}

	seed := k.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	k.engine = motion.New(motion.Options{
		Screen:      &probedScreen{Screen: display, keeper: k},
		Cursor:      display,
		Rand:        rand.New(rand.NewSource(seed)),
		Clock:       k.opts.Clock,
		PauseChance: k.opts.PauseChance,
	})
	k.noScreenLog.Interval = noScreenLogEvery
}

func (k *Keeper) startLoopLocked() {
	interval := k.opts.TickInterval
	if interval <= 0 {
		interval = motion.TickInterval
	}

	ctx := k.ctx
	ticker := time.NewTicker(interval)

	k.wg.Add(1)
	go func() {
		defer k.wg.Done()
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				k.step(ctx)
			}
		}
	}()
}

func (k *Keeper) startHotkeysLocked() {
	if k.opts.Hotkeys == nil {
		return
	}

	ctx := k.ctx
	hotkeys := *k.opts.Hotkeys

	k.wg.Add(1)
	go func() {
		defer k.wg.Done()
		hotkeys.Listen(ctx, k.TogglePause, func() {
			// Quit waits for this listener to exit, so it cannot run on the
			// hook's own goroutine.
			go k.Quit()
		})
	}()
}

// step runs one engine tick. It holds the lock for the whole tick so control
// events never observe a half-applied update.
func (k *Keeper) step(ctx context.Context) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if ctx.Err() != nil {
		return
	}
	k.engine.Tick()
}

func (k *Keeper) expire() {
	if err := k.Stop(); err != nil {
		log.Printf("keeper: error stopping timed session: %v", err)
	}
	log.Printf("keeper: timed session finished")
	if k.opts.OnExpire != nil {
		k.opts.OnExpire()
	}
}

// Stop stops moving the cursor
func (k *Keeper) Stop() error {
	return k.StopWithTimeout(0)
}

// StopWithTimeout stops the tick loop and waits up to timeout for it and the
// hotkey listener to exit. An in-flight tick always completes.
func (k *Keeper) StopWithTimeout(timeout time.Duration) error {
	k.mu.Lock()
	if !k.running {
		k.mu.Unlock()
		return nil
	}

	if timeout <= 0 {
		timeout = defaultStopTimeout
	}

	if k.timer != nil {
		k.timer.Stop()
		k.timer = nil
	}

	if k.cancel != nil {
		k.cancel()
		k.cancel = nil
	}
	k.running = false
	k.mu.Unlock()

	if err := allowDisplaySleep(); err != nil {
		log.Printf("keeper: could not restore display sleep: %v", err)
	}

	done := make(chan struct{})
	go func() {
		k.wg.Wait()
		close(done)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	select {
	case <-done:
		log.Printf("keeper: stopped")
		return nil
	case <-ctx.Done():
		log.Printf("keeper: stop timeout exceeded after %v", timeout)
		return ctx.Err()
	}
}

// Quit stops the keeper and signals Done. It is safe to call more than once.
func (k *Keeper) Quit() {
	if err := k.Stop(); err != nil {
		log.Printf("keeper: error stopping on quit: %v", err)
	}
	k.quitOnce.Do(func() {
		k.mu.Lock()
		if k.quit == nil {
			k.quit = make(chan struct{})
		}
		close(k.quit)
		k.mu.Unlock()
		log.Printf("keeper: quit requested")
	})
}

// Done is closed once Quit has been called.
func (k *Keeper) Done() <-chan struct{} {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.quit == nil {
		k.quit = make(chan struct{})
	}
	return k.quit
}

// TogglePause pauses movement immediately or resumes it.
func (k *Keeper) TogglePause() {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.ensureEngineLocked()
	k.engine.TogglePause()
	if k.engine.IsPaused() {
		log.Printf("keeper: paused")
	} else {
		log.Printf("keeper: resumed")
	}
}

// IsPaused reports whether movement is halted, either manually or by an
// automatic pause.
func (k *Keeper) IsPaused() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.engine != nil && k.engine.IsPaused()
}

// Snapshot returns the current status.
func (k *Keeper) Snapshot() Status {
	k.mu.Lock()
	defer k.mu.Unlock()

	s := Status{
		Running:   k.running,
		Remaining: k.timeRemainingLocked(),
		Health:    k.GetSimulationHealth(),
	}
	if k.engine != nil {
		s.Motion = k.engine.State()
	}
	return s
}

// TimeRemaining returns the remaining duration for timed mode
func (k *Keeper) TimeRemaining() time.Duration {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.timeRemainingLocked()
}

func (k *Keeper) timeRemainingLocked() time.Duration {
	if !k.running || k.endTime.IsZero() {
		return 0
	}

	remaining := time.Until(k.endTime)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// GetSimulationHealth returns the health observed on the most recent tick
func (k *Keeper) GetSimulationHealth() SimulationHealth {
	return SimulationHealth(atomic.LoadInt32(&k.health))
}

// SkippedTicks returns how many ticks found no active screen
func (k *Keeper) SkippedTicks() int64 {
	return atomic.LoadInt64(&k.skippedTicks)
}

func (k *Keeper) recordScreen(ok bool) {
	if ok {
		atomic.StoreInt32(&k.health, int32(SimulationHealthOK))
		return
	}
	atomic.StoreInt32(&k.health, int32(SimulationHealthNoScreen))
	atomic.AddInt64(&k.skippedTicks, 1)
	k.noScreenLog.Do(func() {
		log.Printf("keeper: no active screen; skipping movement")
	})
}

// probedScreen reports each bounds query back to the keeper's health counters.
type probedScreen struct {
	motion.Screen
	keeper *Keeper
}

func (s *probedScreen) Bounds() (motion.Size, bool) {
	size, ok := s.Screen.Bounds()
	s.keeper.recordScreen(ok)
	return size, ok
}
