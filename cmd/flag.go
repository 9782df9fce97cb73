package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/registrar/internal/config"
	"github.com/zjrosen/registrar/internal/flags"
)

var flagCmd = &cobra.Command{
	Use:   "flag [name] [on|off]",
	Short: "List or toggle feature flags",
	Long: fmt.Sprintf(`Without arguments, list every feature flag and its current value.
With a name and on/off, update the flag in the active config file, keeping
its comments.

Known flags: %s

Examples:
  registrar flag
  registrar flag allow-reenroll on
  registrar flag legacy-grade-history off`, strings.Join(flags.Known(), ", ")),
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 2 {
			return fmt.Errorf("expected no arguments or a name and on/off, got %d", len(args))
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			registry := flags.New(cfg.Flags)
			names := flags.Known()
			slices.Sort(names)
			for _, name := range names {
				state := "off"
				if registry.Enabled(name) {
					state = "on"
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-22s %s\n", name, state); err != nil {
					return err
				}
			}
			return nil
		}

		enabled, err := parseSwitch(args[1])
		if err != nil {
			return err
		}
		if err := config.SetFlag(configPath, args[0], enabled); err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s set to %s in %s\n", args[0], args[1], configPath)
		return err
	},
}

func init() {
	rootCmd.AddCommand(flagCmd)
}

func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid value %q: use on or off", s)
	}
}
