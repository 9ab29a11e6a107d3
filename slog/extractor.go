package slog

import (
	"log/slog"

	"github.com/fwojciec/camseed"
)

var _ camseed.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor and logs each outcome at debug level.
type LoggingExtractor struct {
	next   camseed.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next camseed.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates and logs the accepted part number or the reject reason.
func (e *LoggingExtractor) Extract(block camseed.TextBlock) (*camseed.CamshaftSpec, camseed.Reject) {
	spec, reject := e.next.Extract(block)
	if spec == nil {
		e.logger.Debug("reject",
			"reason", string(reject),
			"title", block.Title,
			"url", block.URL,
		)
		return nil, reject
	}

	e.logger.Debug("extract",
		"part_number", spec.PartNumber,
		"brand", spec.Brand,
		"duration", spec.Duration != nil,
		"lift", spec.Lift != nil,
		"lsa", spec.LSA != nil,
	)
	return spec, reject
}
