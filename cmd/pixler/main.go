package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/example/pixler/internal/config"
	"github.com/example/pixler/internal/notify"
	"github.com/example/pixler/internal/theme"
	"github.com/example/pixler/internal/tools"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs          *flag.FlagSet
	program     string
	out         io.Writer
	notifier    *notify.Notifier
	config      *config.Config
	configPath  string
	verbose     bool
	saveAlerts  bool
	copyAlerts  bool
	grabAlerts  bool
	themeName   string
	activeTheme *theme.Theme
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func (r *root) stdout() io.Writer {
	if r == nil || r.out == nil {
		return os.Stdout
	}
	return r.out
}

func (r *root) subcommand(name string) string {
	return strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
}

func newRoot() *root {
	r := &root{
		fs:      flag.NewFlagSet("pixler", flag.ExitOnError),
		program: "pixler",
		out:     os.Stdout,
	}
	r.fs.StringVar(&r.configPath, "config", configPathOverride, "path to the configuration file")
	r.fs.BoolVar(&r.verbose, "v", false, "log engine activity to stderr")
	r.fs.BoolVar(&r.saveAlerts, "notify-save", false, "show a desktop notification after saving a sprite")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", false, "show a desktop notification after copying to the clipboard")
	r.fs.BoolVar(&r.grabAlerts, "notify-grab", false, "show a desktop notification after grabbing pixels from the screen")

	// Precedence: CLI > Env > Config > Default
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use (default, dark, light, solarized)")
	r.fs.Usage = usageFunc(r)
	return r
}

// loadConfig reads the configuration and lets notify flags that were set
// explicitly override it.
func (r *root) loadConfig() {
	loader := config.NewLoader(version, r.configPath)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}
	r.config = cfg
	r.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "notify-save":
			cfg.Notify.Save = r.saveAlerts
		case "notify-copy":
			cfg.Notify.Copy = r.copyAlerts
		case "notify-grab":
			cfg.Notify.Grab = r.grabAlerts
		}
	})
	r.notifier = notify.New(cfg)
}

func (r *root) loadTheme() *theme.Theme {
	themeName := r.themeName
	if themeName == "" {
		themeName = os.Getenv("PIXLER_THEME")
	}
	if themeName == "" {
		themeName = r.config.Theme
	}
	if t, ok := r.config.Themes[themeName]; ok {
		return t
	}
	t, err := theme.NewLoader().Load(themeName)
	if err != nil {
		if themeName != "" && themeName != "default" {
			fmt.Fprintf(os.Stderr, "warning: failed to load theme '%s': %v. using default.\n", themeName, err)
		}
		return theme.Default()
	}
	return t
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.verbose {
		tools.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	r.loadConfig()
	r.activeTheme = r.loadTheme()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "edit":
		cmd, err = parseEditCmd(subArgs, r)
	case "tui":
		cmd, err = parseTuiCmd(subArgs, r)
	case "apply":
		cmd, err = parseApplyCmd(subArgs, r)
	case "replay":
		cmd, err = parseReplayCmd(subArgs, r)
	case "sessions":
		cmd, err = parseSessionsCmd(subArgs, r)
	case "grab":
		cmd, err = parseGrabCmd(subArgs, r)
	case "new":
		cmd, err = parseNewCmd(subArgs, r)
	case "inks":
		cmd, err = parseInksCmd(subArgs, r)
	case "colors":
		cmd, err = parseColorsCmd(subArgs, r)
	case "themes":
		cmd, err = parseThemesCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{root: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
