package ecs

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/lixenwraith/ecsframe/ecs/ecsmetrics"
)

// Plugin installs a reusable chunk of App configuration: stages, systems,
// and resources, without the caller needing to know App's internals. The
// original has no direct equivalent (its composition happens through
// Schedule calls in client code); Plugin is adopted here because the
// domain-stack survey found it a common, idiomatic shape across
// plugin-style Go frameworks in the pack for bundling setup steps.
type Plugin interface {
	Build(app *App)
}

// PluginFunc adapts a plain function to the Plugin interface.
type PluginFunc func(app *App)

func (f PluginFunc) Build(app *App) { f(app) }

// Runner is the function Run hands the app to once invoked (spec §6:
// set_runner(fn)/run()). The default runner ticks the schedule exactly
// once; TickerRunner provides the perpetual fixed-interval loop this
// module used to hardcode into Run itself.
type Runner func(app *App)

// TickerRunner returns a Runner that ticks the schedule at the app's
// configured interval until Stop is called — the original default
// behavior of Run, ported from the teacher's ClockScheduler
// (engine/clock_scheduler.go): a ticker plus a stop channel and an
// atomic running flag. Pass it to WithRunner/SetRunner to opt back into
// a continuously-running app.
func TickerRunner() Runner {
	return func(a *App) {
		a.running.Store(true)
		defer a.running.Store(false)

		ticker := time.NewTicker(a.tickInterval)
		defer ticker.Stop()

		for {
			select {
			case <-a.stopChan:
				return
			case <-ticker.C:
				a.Tick()
			}
		}
	}
}

// App composes a World, a Schedule, and the ambient services (logger,
// metrics), which App holds itself (Logger, Metrics); they are not inserted
// into the World's resource store.
// Ported in spirit from the teacher's ClockScheduler (engine/clock_scheduler.go):
// a fixed-interval tick loop driven by a stop channel and WaitGroup,
// generalized from that file's pause-aware, FSM-routed game loop to a
// plain labelled-stage schedule.
type App struct {
	world    *World
	schedule *Schedule
	logger   *zap.Logger
	metrics  *ecsmetrics.Metrics

	tickInterval time.Duration
	runner       Runner

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
	tickNum  atomic.Uint64
}

// AppOption configures an App at construction time.
type AppOption func(*App)

// WithLogger overrides the default no-op logger.
func WithLogger(logger *zap.Logger) AppOption {
	return func(a *App) { a.logger = logger }
}

// WithMetrics attaches a metrics bundle and registers it against reg. A
// nil reg skips registration, letting callers register elsewhere (or in
// tests, not at all).
func WithMetrics(m *ecsmetrics.Metrics, reg prometheus.Registerer) AppOption {
	return func(a *App) {
		a.metrics = m
		if reg != nil {
			m.MustRegister(reg)
		}
	}
}

// WithTickInterval sets the fixed duration TickerRunner waits between
// schedule passes. Defaults to 1/60s.
func WithTickInterval(d time.Duration) AppOption {
	return func(a *App) { a.tickInterval = d }
}

// WithRunner overrides the runner Run hands the app to. Defaults to a
// single Tick (spec §6: "run update once").
func WithRunner(r Runner) AppOption {
	return func(a *App) { a.runner = r }
}

// Drainer is satisfied by *asset.Daemon (and anything else shaped like
// it). Declared here rather than imported from the asset package so App
// can host the asset subsystem's built-in drain system without ecs
// importing asset.
type Drainer interface {
	Drain()
}

// WithAssetDaemon registers a built-in system on StagePreUpdate that
// drains d once per tick, freeing any asset whose last strong handle was
// released (spec §6/§9: "a built-in system drains free events each tick
// in the PreUpdate stage").
func WithAssetDaemon(d Drainer) AppOption {
	return func(a *App) {
		a.schedule.AddSystemToStage(StagePreUpdate, NewSystem("asset-daemon-drain",
			func(world *World, cmd *CommandBuffer) { d.Drain() }))
	}
}

// NewApp returns an App with an empty world and schedule, the standard
// stage pipeline (Begin, Startup, PreUpdate, Update, PostUpdate, End)
// already registered, and a no-op logger until overridden by WithLogger.
func NewApp(opts ...AppOption) *App {
	a := &App{
		world:        NewWorld(),
		schedule:     NewSchedule(),
		logger:       zap.NewNop(),
		tickInterval: time.Second / 60,
		stopChan:     make(chan struct{}),
	}
	a.runner = func(app *App) { app.Tick() }

	a.schedule.AddStage(StageBegin, NewSequenceStage())
	a.schedule.AddStage(StageStartup, NewSequenceOnceStage())
	a.schedule.AddStage(StagePreUpdate, NewSequenceStage())
	a.schedule.AddStage(StageUpdate, NewSequenceStage())
	a.schedule.AddStage(StagePostUpdate, NewSequenceStage())
	a.schedule.AddStage(StageEnd, NewSequenceStage())

	for _, opt := range opts {
		opt(a)
	}
	return a
}

// World returns the app's world.
func (a *App) World() *World { return a.world }

// Schedule returns the app's schedule, for registering additional stages
// or systems beyond AddSystem's standard-stage shortcut.
func (a *App) Schedule() *Schedule { return a.schedule }

// Logger returns the app's configured logger.
func (a *App) Logger() *zap.Logger { return a.logger }

// Metrics returns the app's metrics bundle, or nil if WithMetrics was never
// passed to NewApp.
func (a *App) Metrics() *ecsmetrics.Metrics { return a.metrics }

// AddSystem registers system on the named standard stage.
func (a *App) AddSystem(label StageLabel, system *System) *App {
	a.schedule.AddSystemToStage(label, system)
	return a
}

// AddPlugin runs plugin.Build against this app and returns the app for
// chaining.
func (a *App) AddPlugin(plugin Plugin) *App {
	plugin.Build(a)
	return a
}

// AddResource inserts value as the singleton instance of type T (spec §6:
// add_resource). A free function, not a method, because Go methods cannot
// carry their own type parameters.
func AddResource[T any](app *App, value T) *App {
	InsertResource(app.world.Resources(), value)
	return app
}

// AddEvent registers an Events[T] singleton resource (if one is not
// already present) and a built-in system that calls its Update once per
// tick on StageBegin, before any other stage runs (spec §4.9/§6:
// add_event<T> — "swap on update, invoked by a built-in system at a
// chosen stage"). Running the swap first means a reader anywhere in this
// tick's stages still sees every event sent during the previous tick,
// one update cycle before that buffer is cleared.
func AddEvent[T any](app *App) *App {
	rs := app.world.Resources()
	if !HasResource[Events[T]](rs) {
		InsertResource(rs, *NewEvents[T]())
	}

	var lastCount int
	label := "events-update:" + typeOf[T]().String()
	system := NewSystem(label, func(world *World, cmd *CommandBuffer) {
		mut := WriteResource[Events[T]](world.Resources())
		ev := mut.Get()
		if app.metrics != nil {
			if delta := ev.count - lastCount; delta > 0 {
				app.metrics.EventsSent.Add(float64(delta))
			}
		}
		lastCount = ev.count
		ev.Update()
		mut.Release()
	})
	app.schedule.AddSystemToStage(StageBegin, system)
	return app
}

// Tick runs exactly one schedule pass: Schedule.Run followed by metrics
// bookkeeping, if configured.
func (a *App) Tick() {
	start := time.Now()
	a.schedule.Run(a.world)
	a.tickNum.Add(1)

	if a.metrics != nil {
		a.metrics.TickDuration.Observe(time.Since(start).Seconds())
		a.metrics.TickCount.Inc()
		a.metrics.EntityCount.Set(float64(a.world.Allocator().LiveBits().Count()))
	}
}

// TickCount returns the number of completed ticks.
func (a *App) TickCount() uint64 { return a.tickNum.Load() }

// SetRunner overrides the runner Run hands the app to, after construction.
func (a *App) SetRunner(r Runner) { a.runner = r }

// Run takes the configured runner out of the app — a second Run finds no
// runner and falls back to a single Tick rather than running the same
// runner twice — and calls it with the app (spec §6: run() "takes the runner out and
// calls it with the app"). The default runner (set by NewApp, restored by
// SetRunner(nil)) ticks the schedule exactly once; pass TickerRunner() to
// WithRunner/SetRunner for a continuously-running app.
func (a *App) Run() {
	runner := a.runner
	a.runner = nil
	if runner == nil {
		runner = func(app *App) { app.Tick() }
	}
	runner(a)
}

// Stop signals Run's loop to return. Safe to call multiple times and from
// any goroutine.
func (a *App) Stop() {
	a.stopOnce.Do(func() { close(a.stopChan) })
}

// Running reports whether Run's loop is currently executing.
func (a *App) Running() bool { return a.running.Load() }
