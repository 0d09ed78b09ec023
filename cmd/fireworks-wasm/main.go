//go:build js && wasm

// Command fireworks-wasm attaches the fireworks overlay to the page it is
// loaded into. Calling stopFireworks() from the page ends the loop.
package main

import (
	"context"
	"log/slog"
	"syscall/js"
	"time"

	"fireworks/internal/config"
	"fireworks/internal/fx"
	"fireworks/internal/web"
)

func main() {
	cfg := config.DefaultConfig()
	logger := slog.Default()

	host := web.NewHost()
	defer host.Close()

	engine, err := fx.New(fx.Config{
		Host:      host,
		Scheduler: host,
		System:    cfg.NewSystem(uint64(time.Now().UnixNano())),
		Logger:    logger,
	})
	if err != nil {
		logger.Error("fireworks disabled", "err", err)
		return
	}
	host.Bind(engine)

	stop := js.FuncOf(func(this js.Value, args []js.Value) any {
		engine.Stop()
		return nil
	})
	defer stop.Release()
	js.Global().Set("stopFireworks", stop)
	defer js.Global().Delete("stopFireworks")

	if err := engine.Run(context.Background()); err != nil {
		logger.Error("fireworks stopped", "err", err)
		return
	}
	st := engine.Stats()
	logger.Info("fireworks stopped", "frames", st.Frames, "bursts", st.Bursts)
}
