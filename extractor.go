package camseed

// TextBlock is one candidate product as yielded by an input adapter.
type TextBlock struct {
	// Title is the product title.
	Title string

	// Text is the title concatenated with the surrounding descriptive copy.
	Text string

	// URL is the absolute product URL, if known.
	URL string

	// PartNumber is set when the adapter located the part number
	// structurally. Otherwise the extractor searches Text for it.
	PartNumber string
}

// Reject describes why a text block produced no record.
type Reject string

// Reject constants.
const (
	RejectNoise        Reject = "noise"
	RejectNoTitle      Reject = "no_title"
	RejectNoPartNumber Reject = "no_part_number"
	RejectNoBrand      Reject = "no_brand"
)

// Extractor turns free-form product text into a structured spec.
type Extractor interface {
	// Extract returns the spec for the block, or nil and the reason the
	// block was rejected. Missing duration, lift or LSA never reject a block.
	Extract(block TextBlock) (*CamshaftSpec, Reject)
}
