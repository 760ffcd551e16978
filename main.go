// Package main provides the entry point for the simkit CLI application.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/simfoundry/simkit/ui"
	"github.com/simfoundry/simkit/utils"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string
	mouse      bool
	noHistory  bool
	muted      bool
	chime      bool
	speech     bool
	exportDir  string

	rootCmd = &cobra.Command{
		Use:   "simkit",
		Short: "Accessible simulation widgets in the terminal",
		Long: paragraph(
			fmt.Sprintf("\nRun the %s demo: terminal widgets for educational simulations where every change is announced.", keyword("thermal lab")),
		),
		SilenceErrors:    false,
		SilenceUsage:     true,
		TraverseChildren: true,
		Args:             cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return validateOptions()
		},
		RunE: func(*cobra.Command, []string) error {
			return runTUI()
		},
	}
)

func validateOptions() error {
	mouse = viper.GetBool("mouse")
	noHistory = !viper.GetBool("history")
	muted = viper.GetBool("alert.muted")
	chime = viper.GetBool("alert.chime")
	speech = viper.GetBool("alert.speech.enabled")
	exportDir = viper.GetString("export_dir")
	return nil
}

// buildConfig assembles the TUI configuration: environment overlay
// first, then the viper-managed file and flag values on top.
func buildConfig() (ui.Config, error) {
	cfg, err := env.ParseAs[ui.Config]()
	if err != nil {
		return ui.Config{}, fmt.Errorf("error parsing config from environment: %w", err)
	}

	cfg.EnableMouse = mouse
	cfg.ShowHistory = !noHistory
	if exportDir != "" {
		cfg.ExportDir = utils.ExpandPath(exportDir)
	}
	if style := viper.GetString("style"); style != "" {
		cfg.GlamourStyle = style
	}

	if d := viper.GetDuration("alert.interval"); d > 0 {
		cfg.Alert.Interval = d
	}
	cfg.Alert.Muted = muted
	cfg.Alert.Chime = chime
	cfg.Alert.Speech.Enabled = speech
	if cmd := viper.GetString("alert.speech.command"); cmd != "" {
		cfg.Alert.Speech.Command = cmd
	}
	if args := viper.GetStringSlice("alert.speech.args"); len(args) > 0 {
		cfg.Alert.Speech.Args = args
	}
	if d := viper.GetDuration("alert.speech.timeout"); d > 0 {
		cfg.Alert.Speech.Timeout = d
	}
	if rate := viper.GetFloat64("alert.rate_limit"); rate > 0 {
		cfg.Alert.RateLimit = rate
	}

	if err := cfg.Alert.Validate(); err != nil {
		return ui.Config{}, err
	}
	return cfg, nil
}

func runTUI() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("the thermal lab needs a terminal to run in")
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p := ui.NewProgram(cfg)

	stopWatcher := watchConfig(p)
	defer stopWatcher()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("unable to run tui program: %w", err)
	}
	return nil
}

// watchConfig watches the config file in use and live-applies the
// reloadable settings to the running program. Returns a stop function.
func watchConfig(p *tea.Program) func() {
	path := viper.ConfigFileUsed()
	if path == "" {
		return func() {}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Warn("config watching disabled", "error", err)
		return func() {}
	}

	// Watch the directory: editors replace files rather than write
	// in place, which drops the watch on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		log.Warn("config watching disabled", "path", path, "error", err)
		watcher.Close() //nolint:errcheck
		return func() {}
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != path || !event.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}
				if err := viper.ReadInConfig(); err != nil {
					log.Warn("could not re-read config", "error", err)
					continue
				}
				log.Debug("config file changed", "path", path)
				p.Send(ui.ConfigReloadedMsg{
					Interval: viper.GetDuration("alert.interval"),
					Muted:    viper.GetBool("alert.muted"),
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn("config watcher error", "error", err)
			}
		}
	}()

	return func() { watcher.Close() } //nolint:errcheck
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.Flags().BoolVarP(&mouse, "mouse", "m", false, "enable mouse wheel")
	rootCmd.Flags().BoolVar(&noHistory, "no-history", false, "hide the announcement history pane")
	rootCmd.Flags().BoolVar(&muted, "muted", false, "start with announcements muted")
	rootCmd.Flags().BoolVar(&chime, "chime", false, "play a chime on every announcement")
	rootCmd.Flags().BoolVar(&speech, "speech", false, "speak announcements through the configured command")
	rootCmd.Flags().StringVar(&exportDir, "export-dir", "", "directory history exports are written to")

	// Config bindings
	_ = viper.BindPFlag("mouse", rootCmd.Flags().Lookup("mouse"))
	_ = viper.BindPFlag("alert.muted", rootCmd.Flags().Lookup("muted"))
	_ = viper.BindPFlag("alert.chime", rootCmd.Flags().Lookup("chime"))
	_ = viper.BindPFlag("alert.speech.enabled", rootCmd.Flags().Lookup("speech"))
	_ = viper.BindPFlag("export_dir", rootCmd.Flags().Lookup("export-dir"))

	viper.SetDefault("style", "auto")
	viper.SetDefault("mouse", false)
	viper.SetDefault("history", true)
	viper.SetDefault("export_dir", "")

	// Alert defaults
	viper.SetDefault("alert.interval", "500ms")
	viper.SetDefault("alert.muted", false)
	viper.SetDefault("alert.chime", false)
	viper.SetDefault("alert.rate_limit", 0.0)
	viper.SetDefault("alert.speech.enabled", false)
	viper.SetDefault("alert.speech.command", "espeak-ng")
	viper.SetDefault("alert.speech.timeout", "10s")

	rootCmd.AddCommand(configCmd, manCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "simkit")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "simkit")}, dirs...)
	}

	if c := os.Getenv("SIMKIT_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("simkit")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("simkit")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", viper.ConfigFileUsed())
		return
	}

	if viper.ConfigFileUsed() == "" {
		configFile = filepath.Join(dirs[0], "simkit.yml")
	}
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
	}
}
