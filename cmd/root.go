package cmd

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/registrar/internal/config"
	"github.com/zjrosen/registrar/internal/log"
	"github.com/zjrosen/registrar/internal/shell"
)

func init() {
	// Query the terminal background before any Bubble Tea program starts so
	// the OSC 11 reply cannot leak into the prompt input.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version    = "dev"
	cfgFile    string
	configPath string
	configErr  error
	debugFlag  bool
	cfg        config.Config
)

var rootCmd = &cobra.Command{
	Use:   "registrar",
	Short: "An interactive course enrollment and grade book",
	Long: `registrar keeps students, courses, enrollments and grades in memory and
exposes them through an interactive administrator menu.

A roster file (YAML or XLSX) can seed the session with --roster and be
re-applied on every save with --watch.`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runShell,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return configErr
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .registrar/config.yaml, then ~/.config/registrar/config.yaml)")
	rootCmd.PersistentFlags().StringP("roster", "r", "",
		"roster file to load at startup (.yaml, .yml or .xlsx)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs (also REGISTRAR_DEBUG=1)")
	rootCmd.Flags().Bool("watch", false,
		"re-apply the roster file whenever it changes")
}

// initConfig builds a fresh viper per invocation so nothing read by a
// previous Execute leaks into the next one.
func initConfig() {
	v := viper.New()
	_ = v.BindPFlag("roster", rootCmd.PersistentFlags().Lookup("roster"))
	_ = v.BindPFlag("watch", rootCmd.Flags().Lookup("watch"))
	configPath, cfg, configErr = loadConfig(v, cfgFile)
}

func runShell(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	rt, err := newRuntime(ctx, cfg, debugEnabled())
	if err != nil {
		return err
	}
	defer rt.Close()

	if cfg.Roster != "" {
		if _, err := rt.loadRoster(ctx, cfg.Roster); err != nil {
			return err
		}
		if cfg.Watch {
			if err := rt.watchRoster(ctx, cfg.Roster); err != nil {
				return err
			}
		}
	}

	var opts []shell.Option
	if listener := log.NewListener(ctx); listener != nil {
		opts = append(opts, shell.WithLogListener(listener))
	}
	model := shell.New(ctx, rt.svc, shell.Config{
		MaxAttempts:   cfg.Shell.MaxAttempts,
		ShowActivity:  cfg.Shell.ShowActivity,
		ActivityLines: cfg.Shell.ActivityLines,
	}, opts...)

	zone.NewGlobal()
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

func debugEnabled() bool {
	return debugFlag || os.Getenv("REGISTRAR_DEBUG") != ""
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
