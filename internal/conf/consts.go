// consts.go: constant values for the conf package
package conf

// RotationType defines the log rotation strategy.
type RotationType string

const (
	RotationDaily  RotationType = "daily"
	RotationWeekly RotationType = "weekly"
	RotationSize   RotationType = "size"
)

// Recognized output encodings for stored variants.
const (
	FormatWebP     = "webp"
	FormatJPEG     = "jpeg"
	FormatPNG      = "png"
	FormatOriginal = "original"
)

// Recognized fit modes for size entries.
const (
	FitCover = "cover"
	FitScale = "scale"
)

// DefaultCategory is used when the caller supplies no category label.
const DefaultCategory = "default"
