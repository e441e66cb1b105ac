package main

import (
	"fmt"
	"os"
	"path/filepath"

	"eyecare/internal/platform"

	"github.com/spf13/cobra"
)

const (
	appName = "EyeCare"
	appID   = "com.eyecare.app"
)

type options struct {
	configDir string
	noSound   bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:          "eyecare",
		Short:        "Tray reminder to rest your eyes every few minutes",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runApp(opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configDir, "config-dir", "", "directory for settings, timer state and break journal")
	rootCmd.Flags().BoolVar(&opts.noSound, "no-sound", false, "never play break sounds")

	rootCmd.AddCommand(newStatusCmd(opts))
	rootCmd.AddCommand(newResetStateCmd(opts))
	return rootCmd
}

func resolveConfigDir(opts *options) (string, error) {
	if opts.configDir == "" {
		return platform.AppDir(platform.NewService(), appName)
	}
	dir, err := filepath.Abs(opts.configDir)
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	return dir, nil
}
