// Package imagecodec provides the decode/resize/encode capability the
// variant writer delegates pixel work to.
package imagecodec

// Codec decodes uploaded bytes into a resizable, re-encodable image.
type Codec interface {
	Decode(data []byte) (Image, error)
}

// Image is one decoded image. Cover and Scale return derived images and leave
// the receiver untouched, so every variant is derived from the same source.
type Image interface {
	// Cover resizes and crops to exactly width x height.
	Cover(width, height int) Image
	// Scale resizes proportionally to fit within width x height. The given
	// dimensions are a bound, not a guarantee.
	Scale(width, height int) Image
	// Encode renders the image in the given output format at the given
	// quality (1-100). Format "original" re-encodes in the source's own
	// format.
	Encode(format string, quality int) ([]byte, error)
	// SourceFormat returns the format the source bytes were decoded from,
	// e.g. "jpeg" or "png".
	SourceFormat() string
}
