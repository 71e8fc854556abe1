package main

import (
	"fmt"
	"os"

	"github.com/example/pixler/internal/config"
)

type configCmd struct {
	command
}

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	c := &configCmd{command: newCommand(r, "config")}
	c.fs.Usage = usageFunc(c)
	if err := c.fs.Parse(args); err != nil {
		return nil, err
	}
	if c.fs.NArg() != 1 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *configCmd) Run() error {
	switch sub := c.fs.Arg(0); sub {
	case "print":
		fmt.Fprint(c.stdout(), c.cfg().String())
		return nil
	case "save":
		return c.runSave()
	default:
		return fmt.Errorf("unknown config command: %s", sub)
	}
}

// runSave writes the effective configuration to the file it was loaded
// from, or to the XDG location when there was none.
func (c *configCmd) runSave() error {
	override := ""
	if c.root != nil {
		override = c.configPath
	}
	loader := config.NewLoader(version, override)
	if loader.OverridePath == "" {
		loader.OverridePath = loader.GetConfigPath()
	}
	path, err := loader.Save(c.cfg())
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Configuration saved to %s\n", path)
	return nil
}
