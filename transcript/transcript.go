// Package transcript reads hand-transcribed listing text.
//
// A transcript is a sequence of product entries: a title line followed by
// descriptive lines. Entries are separated by blank lines, or end at the line
// carrying the part number when they are pasted back to back.
package transcript

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/fwojciec/camseed"
)

var _ camseed.BlockSource = (*Source)(nil)

var partNumberMarker = regexp.MustCompile(`(?i)\bpart\s+number\b`)

// Source serves transcript blocks as a single page.
type Source struct {
	blocks []camseed.TextBlock
}

// Read parses a transcript. Returns EINVALID when r holds no entry with
// a part number.
func Read(r io.Reader) (*Source, error) {
	blocks, err := Split(r)
	if err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		return nil, camseed.Errorf(camseed.EINVALID, "transcript contains no part numbers")
	}
	return &Source{blocks: blocks}, nil
}

// Blocks returns the parsed blocks.
func (s *Source) Blocks() []camseed.TextBlock {
	return s.blocks
}

// Page returns every block for n == 1 and nothing after.
func (s *Source) Page(ctx context.Context, n int) ([]camseed.TextBlock, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if n != 1 {
		return nil, nil
	}
	return s.blocks, nil
}

// Split breaks a transcript into blocks. Blocks without a part number
// marker are dropped.
func Split(r io.Reader) ([]camseed.TextBlock, error) {
	var blocks []camseed.TextBlock
	var lines []string

	flush := func() {
		if len(lines) == 0 {
			return
		}
		text := strings.Join(lines, "\n")
		if partNumberMarker.MatchString(text) {
			blocks = append(blocks, camseed.TextBlock{Title: lines[0], Text: text})
		}
		lines = nil
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			flush()
			continue
		}
		lines = append(lines, line)
		if partNumberMarker.MatchString(line) {
			flush()
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	flush()

	return blocks, nil
}
