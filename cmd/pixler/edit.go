package main

import (
	"fmt"
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/example/pixler/internal/appstate"
	"github.com/example/pixler/internal/raster"
	"github.com/example/pixler/internal/termview"
)

// spriteFlags are shared by the interactive editors.
type spriteFlags struct {
	file          string
	output        string
	journal       string
	width         int
	height        int
	fromClipboard bool
	toClipboard   bool
}

func (s *spriteFlags) register(c *command) {
	c.fs.StringVar(&s.file, "file", "", "sprite to edit; created when missing")
	c.fs.StringVar(&s.output, "output", "", "output file path (defaults to -file)")
	c.fs.StringVar(&s.journal, "journal", "", "record the session into this journal database")
	c.fs.IntVar(&s.width, "w", 32, "width of a new sprite")
	c.fs.IntVar(&s.height, "h", 32, "height of a new sprite")
	c.fs.BoolVar(&s.fromClipboard, "from-clipboard", false, "start from the image on the clipboard")
	c.fs.BoolVar(&s.fromClipboard, "from-clip", false, "start from the image on the clipboard (alias)")
	c.fs.BoolVar(&s.toClipboard, "to-clipboard", false, "copy the sprite to the clipboard when saving")
	c.fs.BoolVar(&s.toClipboard, "to-clip", false, "copy the sprite to the clipboard when saving (alias)")
}

func (s *spriteFlags) validate() error {
	if s.width < 1 || s.height < 1 {
		return fmt.Errorf("sprite size must be positive, got %dx%d", s.width, s.height)
	}
	if s.output == "" {
		s.output = s.file
	}
	return nil
}

type editCmd struct {
	command
	spriteFlags
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	e := &editCmd{command: newCommand(r, "edit")}
	e.fs.Usage = usageFunc(e)
	e.register(&e.command)
	if err := e.fs.Parse(args); err != nil {
		return nil, err
	}
	if e.fs.NArg() != 0 {
		return nil, &UsageError{of: e}
	}
	if err := e.validate(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *editCmd) Run() error {
	b, err := loadSprite(e.file, e.fromClipboard, e.width, e.height)
	if err != nil {
		return fmt.Errorf("edit: %w", err)
	}
	store, session, err := openJournal(e.journal, b, sessionNote("edit", e.file))
	if err != nil {
		return fmt.Errorf("edit: %w", err)
	}
	if store != nil {
		defer store.Close()
	}
	env, tb, err := e.prepare(b, session)
	if err != nil {
		return fmt.Errorf("edit: %w", err)
	}

	opts := []appstate.Option{
		appstate.WithToolbox(tb),
		appstate.WithTheme(e.theme()),
		appstate.WithOutput(e.output),
		appstate.WithNotifier(e.notifier),
		appstate.WithOnClose(func() { log.Printf("editor closed") }),
	}
	if session != nil {
		opts = append(opts, appstate.WithSession(session))
	}
	appstate.New(env, opts...).Run()
	if e.toClipboard {
		return e.writeSprite(flatten(env, tb), "", true)
	}
	return nil
}

type tuiCmd struct {
	command
	spriteFlags
}

var newScreenFn = tcell.NewScreen

func parseTuiCmd(args []string, r *root) (*tuiCmd, error) {
	t := &tuiCmd{command: newCommand(r, "tui")}
	t.fs.Usage = usageFunc(t)
	t.register(&t.command)
	if err := t.fs.Parse(args); err != nil {
		return nil, err
	}
	if t.fs.NArg() != 0 {
		return nil, &UsageError{of: t}
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *tuiCmd) Run() error {
	b, err := loadSprite(t.file, t.fromClipboard, t.width, t.height)
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	store, session, err := openJournal(t.journal, b, sessionNote("tui", t.file))
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	if store != nil {
		defer store.Close()
	}
	env, tb, err := t.prepare(b, session)
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	screen, err := newScreenFn()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("tui: init terminal: %w", err)
	}
	defer screen.Fini()

	ed := termview.New(screen, termview.Options{
		Theme:   t.theme(),
		Env:     env,
		Toolbox: tb,
		Session: session,
		Save: func(b *raster.Buffer) error {
			return t.writeSprite(b, t.output, t.toClipboard)
		},
	})
	return ed.Run()
}
