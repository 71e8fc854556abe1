package main

import "fmt"

type versionCmd struct{ *root }

func (v *versionCmd) Run() error {
	fmt.Fprintf(v.stdout(), "%s version %s\n", v.Program(), version)
	if commit != "" {
		fmt.Fprintf(v.stdout(), "commit %s built %s\n", commit, date)
	}
	return nil
}
