package goquery

import (
	"context"
	"fmt"
	"os"

	"github.com/fwojciec/camseed"
)

var _ camseed.BlockSource = (*FileSource)(nil)

// FileSource serves a saved listing page as a single-page BlockSource.
type FileSource struct {
	Path    string
	BaseURL string
	Parser  camseed.ListingParser
}

// NewFileSource creates a FileSource parsing path with the default parser.
func NewFileSource(path, baseURL string) *FileSource {
	return &FileSource{Path: path, BaseURL: baseURL, Parser: NewListingParser()}
}

// Page returns the blocks of the saved page for n == 1 and nothing after.
func (s *FileSource) Page(ctx context.Context, n int) ([]camseed.TextBlock, error) {
	if n != 1 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read listing: %w", err)
	}

	parser := s.Parser
	if parser == nil {
		parser = NewListingParser()
	}
	return parser.Parse(string(data), s.BaseURL)
}
