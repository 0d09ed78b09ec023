//go:build !js

package desktop

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"fireworks/internal/audio"
	"fireworks/internal/config"
	"fireworks/internal/fx"
)

// Run opens the overlay window and runs the fireworks engine until the
// window is closed (Esc) or ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if logger == nil {
		logger = slog.Default()
	}

	win, err := Open(Options{Width: cfg.WindowWidth, Height: cfg.WindowHeight, Logger: logger})
	if err != nil {
		return err
	}
	defer win.Destroy()

	events := fx.NewEventBus()
	if cfg.Sound {
		player, err := audio.New(cfg.Volume)
		if err != nil {
			logger.WarnContext(ctx, "audio init failed (continuing without sound)", "err", err)
		} else {
			events.Subscribe(fx.EventBurst, func(ev fx.Event) {
				w, _ := win.ViewportSize()
				player.PlayBurst(audio.Pan(ev.X, w))
			})
		}
	}

	engine, err := fx.New(fx.Config{
		Host:      win,
		Scheduler: win,
		System:    cfg.NewSystem(uint64(time.Now().UnixNano())),
		Events:    events,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	win.Bind(engine)

	if err := engine.Run(ctx); err != nil {
		return fmt.Errorf("fireworks: %w", err)
	}
	st := engine.Stats()
	logger.InfoContext(ctx, "fireworks closed",
		"frames", st.Frames, "bursts", st.Bursts, "paint_failures", st.PaintFailures)
	return nil
}
