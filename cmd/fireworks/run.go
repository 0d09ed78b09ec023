package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"fireworks/internal/desktop"
)

var (
	runWidth  int
	runHeight int
	runSound  bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the desktop overlay (Esc closes it)",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		exitOnError(err)

		if cmd.Flags().Changed("width") {
			cfg.WindowWidth = runWidth
		}
		if cmd.Flags().Changed("height") {
			cfg.WindowHeight = runHeight
		}
		if cmd.Flags().Changed("sound") {
			cfg.Sound = runSound
		}
		exitOnError(cfg.Validate())

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		exitOnError(desktop.Run(ctx, cfg, newLogger(cfg)))
	},
}

func init() {
	runCmd.Flags().IntVar(&runWidth, "width", 0, "overlay width in pixels (0 = monitor)")
	runCmd.Flags().IntVar(&runHeight, "height", 0, "overlay height in pixels (0 = monitor)")
	runCmd.Flags().BoolVar(&runSound, "sound", false, "play a pop on each burst")
	rootCmd.AddCommand(runCmd)
}
