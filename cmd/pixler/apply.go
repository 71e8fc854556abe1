package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/example/pixler/internal/journal"
	"github.com/example/pixler/internal/raster"
)

// applyCmd runs an event script against a sprite without any UI.
type applyCmd struct {
	command
	spriteFlags
	script string
	stdin  io.Reader
}

func parseApplyCmd(args []string, r *root) (*applyCmd, error) {
	a := &applyCmd{command: newCommand(r, "apply"), stdin: os.Stdin}
	a.fs.Usage = usageFunc(a)
	a.register(&a.command)
	if err := a.fs.Parse(args); err != nil {
		return nil, err
	}
	if a.fs.NArg() != 1 {
		return nil, &UsageError{of: a}
	}
	a.script = a.fs.Arg(0)
	if err := a.validate(); err != nil {
		return nil, err
	}
	if a.output == "" && !a.toClipboard {
		return nil, fmt.Errorf("output file is required when no -file is given")
	}
	return a, nil
}

func (a *applyCmd) readScript() ([]journal.Event, error) {
	var in io.Reader = a.stdin
	if a.script != "-" {
		f, err := os.Open(a.script)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		in = f
	}
	return journal.ParseScript(in)
}

func (a *applyCmd) Run() error {
	events, err := a.readScript()
	if err != nil {
		return fmt.Errorf("apply %s: %w", a.script, err)
	}
	b, err := loadSprite(a.file, a.fromClipboard, a.width, a.height)
	if err != nil {
		return fmt.Errorf("apply: %w", err)
	}
	store, session, err := openJournal(a.journal, b, sessionNote("apply", a.script))
	if err != nil {
		return fmt.Errorf("apply: %w", err)
	}
	if store != nil {
		defer store.Close()
	}
	env, tb, err := a.prepare(b, session)
	if err != nil {
		return fmt.Errorf("apply: %w", err)
	}
	p := journal.NewPlayer(tb, env)
	p.Session = session
	if err := p.ApplyAll(events); err != nil {
		return fmt.Errorf("apply %s: %w", a.script, err)
	}
	return a.writeSprite(flatten(env, tb), a.output, a.toClipboard)
}

// replayCmd rebuilds a sprite from a recorded session.
type replayCmd struct {
	command
	journal     string
	session     int64
	file        string
	output      string
	toClipboard bool
}

func parseReplayCmd(args []string, r *root) (*replayCmd, error) {
	c := &replayCmd{command: newCommand(r, "replay")}
	c.fs.Usage = usageFunc(c)
	c.fs.StringVar(&c.journal, "journal", "", "journal database to read")
	c.fs.Int64Var(&c.session, "session", 0, "session id (defaults to the latest)")
	c.fs.StringVar(&c.file, "file", "", "sprite the session started from (blank when empty)")
	c.fs.StringVar(&c.output, "output", "", "output file path")
	c.fs.BoolVar(&c.toClipboard, "to-clipboard", false, "copy the result to the clipboard")
	c.fs.BoolVar(&c.toClipboard, "to-clip", false, "copy the result to the clipboard (alias)")
	if err := c.fs.Parse(args); err != nil {
		return nil, err
	}
	if c.journal == "" || c.fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	if c.output == "" && !c.toClipboard {
		return nil, fmt.Errorf("output file is required unless -to-clipboard is set")
	}
	return c, nil
}

func (c *replayCmd) Run() error {
	store, err := journal.Open(c.journal)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	defer store.Close()

	id := c.session
	if id == 0 {
		if id, err = store.Latest(); err != nil {
			return fmt.Errorf("replay: %w", err)
		}
	}
	info, err := store.Session(id)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	events, err := store.Events(id)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}

	b := raster.NewBuffer(info.Width, info.Height)
	if c.file != "" {
		if b, err = loadSprite(c.file, false, info.Width, info.Height); err != nil {
			return fmt.Errorf("replay: %w", err)
		}
	}
	env := baseEnv(b)
	tb, err := journal.Replay(events, env)
	if err != nil {
		return fmt.Errorf("replay session %d: %w", id, err)
	}
	fmt.Fprintf(c.stdout(), "replayed %d events from session %d\n", len(events), id)
	return c.writeSprite(flatten(env, tb), c.output, c.toClipboard)
}

// sessionsCmd lists the sessions in a journal.
type sessionsCmd struct {
	command
	journal string
	remove  string
}

func parseSessionsCmd(args []string, r *root) (*sessionsCmd, error) {
	c := &sessionsCmd{command: newCommand(r, "sessions")}
	c.fs.Usage = usageFunc(c)
	c.fs.StringVar(&c.journal, "journal", "", "journal database to read")
	c.fs.StringVar(&c.remove, "delete", "", "delete the session with this id")
	if err := c.fs.Parse(args); err != nil {
		return nil, err
	}
	if c.journal == "" || c.fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *sessionsCmd) Run() error {
	store, err := journal.Open(c.journal)
	if err != nil {
		return fmt.Errorf("sessions: %w", err)
	}
	defer store.Close()

	if c.remove != "" {
		id, err := strconv.ParseInt(c.remove, 10, 64)
		if err != nil {
			return fmt.Errorf("sessions: invalid id %q", c.remove)
		}
		if err := store.Delete(id); err != nil {
			return fmt.Errorf("sessions: %w", err)
		}
		fmt.Fprintf(c.stdout(), "deleted session %d\n", id)
		return nil
	}

	list, err := store.Sessions()
	if err != nil {
		return fmt.Errorf("sessions: %w", err)
	}
	if len(list) == 0 {
		fmt.Fprintln(c.stdout(), "no sessions recorded")
		return nil
	}
	latest, err := store.Latest()
	if err != nil && !errors.Is(err, journal.ErrNoSession) {
		return fmt.Errorf("sessions: %w", err)
	}
	fmt.Fprintln(c.stdout(), "recorded sessions (* marks the latest):")
	for _, s := range list {
		marker := " "
		if s.ID == latest {
			marker = "*"
		}
		fmt.Fprintf(c.stdout(), "%s %3d  %s  %3dx%-3d  %5d events  %s\n",
			marker, s.ID, s.StartedAt.Format("2006-01-02 15:04:05"), s.Width, s.Height, s.Events, s.Note)
	}
	return nil
}
