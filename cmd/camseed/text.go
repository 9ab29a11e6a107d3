package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/camseed"
	"github.com/fwojciec/camseed/transcript"
)

// Run executes the text command.
func (c *TextCmd) Run(deps *Dependencies) error {
	if err := deps.Output.validate(); err != nil {
		return err
	}

	var r io.Reader = deps.Stdin
	source := "stdin"
	if c.File != "-" {
		f, err := os.Open(c.File)
		if err != nil {
			return fmt.Errorf("open transcript: %w", err)
		}
		defer f.Close()
		r = f
		source = c.File
	}

	if r == nil {
		return camseed.Errorf(camseed.EINVALID, "no transcript input")
	}

	src, err := transcript.Read(r)
	if err != nil {
		return err
	}

	return deps.harvest(src, source, 1)
}
