package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/xvierd/pomo/internal/config"
	"github.com/xvierd/pomo/internal/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change haptics, notification, and journal settings",
	Long: `Show the effective configuration. Interval lengths are fixed at 25 minutes
of work and 5 minutes of break and cannot be configured.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showConfig(cmd.OutOrStdout(), app.config)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showConfig(cmd.OutOrStdout(), app.config)
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Change one setting and save the config file",
	Long:  "Change one setting and save the config file.\n\nKeys:\n" + settingKeysHelp(),
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := applySetting(app.config, args[0], args[1]); err != nil {
			return err
		}
		if err := config.Save(app.config); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  %s = %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSetCmd)
}

func showConfig(w io.Writer, cfg *config.Config) error {
	if jsonOutput {
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Current configuration:")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "    Work interval:         %s (fixed)\n", formatSeconds(domain.WorkTargetSeconds))
	fmt.Fprintf(w, "    Break:                 %s (fixed)\n", formatSeconds(domain.BreakTargetSeconds))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "    Haptics:               %s\n", onOff(cfg.Haptics.Enabled))
	fmt.Fprintf(w, "    Sound:                 %s\n", onOff(cfg.Haptics.Sound))
	fmt.Fprintf(w, "    Short pulse:           %s\n", cfg.Haptics.ShortPulse)
	fmt.Fprintf(w, "    Long pulse:            %s\n", cfg.Haptics.LongPulse)
	fmt.Fprintf(w, "    Notifications:         %s\n", onOff(cfg.Notifications.Enabled))
	fmt.Fprintf(w, "    Journal:               %s\n", cfg.Journal.Path)
	fmt.Fprintf(w, "    MCP realtime:          %s\n", onOff(cfg.MCP.Realtime))
	fmt.Fprintf(w, "    Debug log:             %s\n", cfg.Log.File)
	fmt.Fprintln(w)
	return nil
}

// settings maps config keys to setters.
var settings = map[string]func(cfg *config.Config, value string) error{
	"haptics.enabled":       boolSetting(func(c *config.Config) *bool { return &c.Haptics.Enabled }),
	"haptics.sound":         boolSetting(func(c *config.Config) *bool { return &c.Haptics.Sound }),
	"haptics.short_pulse":   durationSetting(func(c *config.Config) *config.Duration { return &c.Haptics.ShortPulse }),
	"haptics.long_pulse":    durationSetting(func(c *config.Config) *config.Duration { return &c.Haptics.LongPulse }),
	"notifications.enabled": boolSetting(func(c *config.Config) *bool { return &c.Notifications.Enabled }),
	"mcp.realtime":          boolSetting(func(c *config.Config) *bool { return &c.MCP.Realtime }),
	"journal.path":          stringSetting(func(c *config.Config) *string { return &c.Journal.Path }),
	"log.file":              stringSetting(func(c *config.Config) *string { return &c.Log.File }),
}

func applySetting(cfg *config.Config, key, value string) error {
	set, ok := settings[key]
	if !ok {
		return fmt.Errorf("unknown setting %q", key)
	}
	if err := set(cfg, value); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return nil
}

func settingKeysHelp() string {
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var s string
	for _, k := range keys {
		s += "  " + k + "\n"
	}
	return s
}

func boolSetting(field func(*config.Config) *bool) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		switch value {
		case "on":
			*field(cfg) = true
			return nil
		case "off":
			*field(cfg) = false
			return nil
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		*field(cfg) = b
		return nil
	}
}

func durationSetting(field func(*config.Config) *config.Duration) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		if d < 0 {
			return fmt.Errorf("duration must not be negative")
		}
		*field(cfg) = config.Duration(d)
		return nil
	}
}

func stringSetting(field func(*config.Config) *string) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		*field(cfg) = value
		return nil
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// formatSeconds renders a whole number of seconds as "25m" or "1m30s".
func formatSeconds(seconds int) string {
	d := time.Duration(seconds) * time.Second
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	if s == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dm%ds", m, s)
}
