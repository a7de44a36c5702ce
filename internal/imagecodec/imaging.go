package imagecodec

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"

	// Register the webp decoder; jpeg, png, gif, tiff and bmp decoders are
	// registered by the imaging package's own imports.
	_ "golang.org/x/image/webp"

	"github.com/imagevault/imagevault/internal/conf"
	"github.com/imagevault/imagevault/internal/errors"
)

// ImagingCodec implements Codec on top of disintegration/imaging for resizing
// and jpeg/png encoding, with kolesa-team/go-webp for webp output.
type ImagingCodec struct{}

// NewImagingCodec returns the default codec implementation.
func NewImagingCodec() *ImagingCodec {
	return &ImagingCodec{}
}

// Decode parses the uploaded bytes into an image, remembering the source format.
func (c *ImagingCodec) Decode(data []byte) (Image, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.New(fmt.Errorf("decoding image: %w", err)).
			Component("imagecodec").
			Category(errors.CategoryImageDecode).
			Context("bytes", len(data)).
			Build()
	}
	return &imagingImage{img: img, sourceFormat: format}, nil
}

type imagingImage struct {
	img          image.Image
	sourceFormat string
}

func (i *imagingImage) Cover(width, height int) Image {
	return &imagingImage{
		img:          imaging.Fill(i.img, width, height, imaging.Center, imaging.Lanczos),
		sourceFormat: i.sourceFormat,
	}
}

func (i *imagingImage) Scale(width, height int) Image {
	return &imagingImage{
		img:          imaging.Fit(i.img, width, height, imaging.Lanczos),
		sourceFormat: i.sourceFormat,
	}
}

func (i *imagingImage) SourceFormat() string {
	return i.sourceFormat
}

func (i *imagingImage) Encode(format string, quality int) ([]byte, error) {
	if format == conf.FormatOriginal {
		format = i.sourceFormat
	}

	var buf bytes.Buffer
	var err error

	switch format {
	case conf.FormatWebP:
		var options *encoder.Options
		options, err = encoder.NewLossyEncoderOptions(encoder.PresetDefault, float32(quality))
		if err == nil {
			err = webp.Encode(&buf, i.img, options)
		}
	case conf.FormatJPEG, "jpg":
		err = imaging.Encode(&buf, i.img, imaging.JPEG, imaging.JPEGQuality(quality))
	case conf.FormatPNG:
		err = imaging.Encode(&buf, i.img, imaging.PNG)
	// The remaining formats only occur as source formats under
	// "format: original"; the decoder accepts them, so re-encoding must too.
	case "gif":
		err = imaging.Encode(&buf, i.img, imaging.GIF)
	case "bmp":
		err = imaging.Encode(&buf, i.img, imaging.BMP)
	case "tiff":
		err = imaging.Encode(&buf, i.img, imaging.TIFF)
	default:
		err = fmt.Errorf("unsupported output format %q", format)
	}

	if err != nil {
		return nil, errors.New(fmt.Errorf("encoding image as %s: %w", format, err)).
			Component("imagecodec").
			Category(errors.CategoryImageEncode).
			Context("format", format).
			Build()
	}
	return buf.Bytes(), nil
}

// DetectFormat sniffs the encoding of image bytes without a full pixel decode.
func DetectFormat(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", errors.New(fmt.Errorf("detecting image format: %w", err)).
			Component("imagecodec").
			Category(errors.CategoryImageDecode).
			Context("bytes", len(data)).
			Build()
	}
	return format, nil
}

// Extension returns the filename extension for an output format, resolving
// "original" against the source format.
func Extension(format, sourceFormat string) string {
	if format == conf.FormatOriginal {
		format = sourceFormat
	}
	switch format {
	case conf.FormatJPEG, "jpg":
		return ".jpg"
	case conf.FormatPNG:
		return ".png"
	case conf.FormatWebP:
		return ".webp"
	default:
		return "." + format
	}
}
