package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pders01/hatut/internal/config"
	"github.com/pders01/hatut/internal/debuglog"
	"github.com/pders01/hatut/internal/source"
	"github.com/pders01/hatut/internal/tui"
)

// Version is the version of the application, set at build time
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:           "hatut",
	Short:         "Terminal story reader",
	Long:          "hatut lists the stories matching a filter word and keeps track of what you have read.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runReader,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("hatut %s\n", Version)
		fmt.Println("Story reader")
		fmt.Println("github.com/pders01/hatut")
	},
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to configuration file")
	rootCmd.Flags().StringP("filter", "f", "", "Initial filter word (overrides config)")
	rootCmd.Flags().StringP("source", "s", "", "Story source: fixture, http or catalog (overrides config)")
	rootCmd.Flags().BoolP("quiet", "q", false, "Skip startup banner")

	rootCmd.AddCommand(versionCmd, configCmd, catalogCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config named by --config, or the default location.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func runReader(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if filter, _ := cmd.Flags().GetString("filter"); filter != "" {
		cfg.App.InitialFilter = filter
	}
	if mode, _ := cmd.Flags().GetString("source"); mode != "" {
		cfg.Source.Mode = mode
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	if err := debuglog.Configure(cfg.Log.Level, cfg.Log.File); err != nil {
		return err
	}
	defer debuglog.Close()

	src, err := source.New(cfg)
	if err != nil {
		return err
	}
	if closer, ok := src.(source.Closer); ok {
		defer closer.Close()
	}

	if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
		tui.ShowBanner(Version)
	}

	tui.ApplyTheme(cfg.UI.Colors)
	debuglog.Infof("starting: source=%s filter=%q", cfg.Source.Mode, cfg.App.InitialFilter)

	p := tea.NewProgram(tui.NewApp(cfg, src), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running reader: %w", err)
	}
	return nil
}
