// Package app wires the daemon together: config, logging, the clock
// service, and the optional tick journal.
package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"clockd/internal/clock"
	"clockd/internal/config"
	"clockd/internal/eventbus"
	"clockd/internal/journal"
	logx "clockd/pkg/logx"
)

type App struct {
	cm     *config.Manager
	logsvc *logx.Service
	log    logx.Logger
	clk    *clock.Clock
	store  journal.Store

	mu      sync.Mutex
	lastCfg *config.Config

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(cfgPath string) (*App, error) {
	cm := config.NewManager(cfgPath)
	cfg, err := cm.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := validateConfig(context.Background(), cfg); err != nil {
		return nil, err
	}

	logsvc, log := logx.New(cfg.Logging.Logx())
	cm.SetLogger(log.With(logx.String("comp", "config")))
	cm.SetValidator(validateConfig)

	opts, err := clockOptions(cfg.Clock, log.With(logx.String("comp", "clock")))
	if err != nil {
		_ = logsvc.Close()
		return nil, err
	}
	clk, err := clock.New(opts)
	if err != nil {
		_ = logsvc.Close()
		return nil, err
	}

	store, err := openJournal(cfg.Journal, log.With(logx.String("comp", "journal")))
	if err != nil {
		clk.Dispose()
		_ = logsvc.Close()
		return nil, err
	}

	a := &App{
		cm:      cm,
		logsvc:  logsvc,
		log:     log,
		clk:     clk,
		store:   store,
		lastCfg: cfg,
	}
	a.attachSubscribers()
	return a, nil
}

// Clock exposes the running tick service.
func (a *App) Clock() *clock.Clock { return a.clk }

// Start launches the config watcher and the reload loop. It returns
// immediately; the clock itself has been ticking since New.
func (a *App) Start(ctx context.Context) error {
	wctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		_ = a.cm.Watch(wctx)
	}()

	ch := a.cm.Subscribe(1)
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		for {
			select {
			case <-wctx.Done():
				return
			case cfg, ok := <-ch:
				if !ok {
					return
				}
				a.apply(cfg)
			}
		}
	}()

	a.log.Info("clockd started",
		logx.String("tz", a.clk.GetTimeZone()),
		logx.Bool("journal", a.store != nil),
	)
	return nil
}

// Stop shuts everything down: watcher goroutines, the clock, journal, sinks.
func (a *App) Stop(ctx context.Context) error {
	if a.cancel != nil {
		a.cancel()
	}
	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		// best-effort
	}

	a.clk.Dispose()
	if a.store != nil {
		_ = a.store.Close()
	}
	a.log.Info("clockd stopped")
	return a.logsvc.Close()
}

// apply reacts to a hot-reloaded config. Logging retunes in place; a
// timezone edit funnels through SetTimeZone. Structural clock settings
// (align, drift threshold, visibility) need a process restart and are only
// reported.
func (a *App) apply(cfg *config.Config) {
	a.mu.Lock()
	prev := a.lastCfg
	a.lastCfg = cfg
	a.mu.Unlock()

	changed, attrs := config.SummarizeConfigChange(prev, cfg)
	if len(changed) == 0 {
		return
	}
	a.log.Info("config reloaded", append(attrs, logx.String("sections", strings.Join(changed, ",")))...)

	a.logsvc.Apply(cfg.Logging.Logx())

	if effectiveTZ(cfg.Clock) != effectiveTZ(prev.Clock) {
		if err := a.clk.SetTimeZone(effectiveTZ(cfg.Clock), clock.PreserveWallClock); err != nil {
			a.log.Warn("timezone change rejected", logx.Err(err))
		}
	}
	if cfg.Clock.Align != prev.Clock.Align ||
		cfg.Clock.DriftThreshold != prev.Clock.DriftThreshold ||
		!boolPtrEqual(cfg.Clock.VisibilityAware, prev.Clock.VisibilityAware) {
		a.log.Warn("align/drift/visibility changes take effect on restart")
	}
}

func (a *App) attachSubscribers() {
	tickLog := a.log.With(logx.String("comp", "tick"))

	logTick := func(kind eventbus.Kind) eventbus.Listener {
		return func(p any) {
			t, ok := p.(time.Time)
			if !ok {
				return
			}
			tickLog.Debug("tick", logx.String("kind", string(kind)), logx.Time("at", t))
		}
	}
	record := func(kind eventbus.Kind) eventbus.Listener {
		return func(p any) {
			t, ok := p.(time.Time)
			if !ok {
				return
			}
			a.append(journal.Entry{
				At:   t,
				Kind: string(kind),
				Zone: a.clk.GetTimeZone(),
				Wall: t.Format("2006-01-02T15:04:05"),
			})
		}
	}

	for _, k := range []eventbus.Kind{clock.KindSecond, clock.KindMinute, clock.KindHour} {
		a.clk.On(k, logTick(k))
		if a.store != nil {
			a.clk.On(k, record(k))
		}
	}

	a.clk.On(clock.KindTimezoneChange, func(p any) {
		tc, ok := p.(clock.TimezoneChange)
		if !ok {
			return
		}
		if a.store != nil {
			a.append(journal.Entry{
				At:   a.clk.Now(),
				Kind: string(clock.KindTimezoneChange),
				Zone: tc.To,
				Wall: fmt.Sprintf("%s -> %s (%s)", tc.From, tc.To, tc.Mode),
			})
		}
	})
}

func (a *App) append(e journal.Entry) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := a.store.Append(ctx, e); err != nil {
		a.log.Warn("journal append failed", logx.Err(err))
	}
}

// ---- config plumbing ----

func clockOptions(c config.ClockConfig, log logx.Logger) (clock.Options, error) {
	align, err := clock.ParseAlignMode(c.Align)
	if err != nil {
		return clock.Options{}, err
	}
	opts := clock.Options{
		Timezone:        strings.TrimSpace(c.Timezone),
		Align:           align,
		VisibilityAware: c.VisibilityAware,
		Logger:          log,
	}
	if strings.TrimSpace(c.DriftThreshold) != "" {
		d, err := config.ParseDurationField("clock.drift_threshold", c.DriftThreshold)
		if err != nil {
			return clock.Options{}, err
		}
		opts.DriftThreshold = &d
	}
	return opts, nil
}

func openJournal(jc *config.JournalConfig, log logx.Logger) (journal.Store, error) {
	if jc == nil {
		return nil, nil
	}
	busy, err := config.ParseDurationField("journal.busy_timeout", jc.BusyTimeout)
	if err != nil {
		return nil, err
	}
	return journal.Open(journal.Config{
		Driver:      jc.Driver,
		Path:        jc.Path,
		BusyTimeout: busy,
	}, log)
}

func validateConfig(ctx context.Context, cfg *config.Config) error {
	_ = ctx
	if _, err := clock.ParseAlignMode(cfg.Clock.Align); err != nil {
		return err
	}
	if _, err := config.ParseDurationField("clock.drift_threshold", cfg.Clock.DriftThreshold); err != nil {
		return err
	}
	if tz := strings.TrimSpace(cfg.Clock.Timezone); tz != "" {
		if _, err := time.LoadLocation(tz); err != nil {
			return fmt.Errorf("clock.timezone: %w", err)
		}
	}
	return nil
}

func effectiveTZ(c config.ClockConfig) string {
	if tz := strings.TrimSpace(c.Timezone); tz != "" {
		return tz
	}
	return clock.DefaultTimezone
}

func boolPtrEqual(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
