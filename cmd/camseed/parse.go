package main

import "github.com/fwojciec/camseed/goquery"

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	if err := deps.Output.validate(); err != nil {
		return err
	}

	return deps.harvest(goquery.NewFileSource(c.File, c.BaseURL), c.File, 1)
}
