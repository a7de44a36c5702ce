package imagestore

import (
	"fmt"
	"log/slog"

	"github.com/imagevault/imagevault/internal/blobstore"
	"github.com/imagevault/imagevault/internal/errors"
	"github.com/imagevault/imagevault/internal/imagecodec"
)

// VariantWriter produces and persists the "original" encoding plus one
// resized encoding per declared size. It does not roll back partial writes;
// that is the orchestrator's responsibility.
type VariantWriter struct {
	codec    imagecodec.Codec
	blobs    blobstore.Store
	sizes    SizeConfig
	resolver *Resolver
	format   string
	quality  int
	log      *slog.Logger
}

// NewVariantWriter wires a writer over the given collaborators.
func NewVariantWriter(codec imagecodec.Codec, blobs blobstore.Store, sizes SizeConfig, resolver *Resolver, format string, quality int, log *slog.Logger) *VariantWriter {
	return &VariantWriter{
		codec:    codec,
		blobs:    blobs,
		sizes:    sizes,
		resolver: resolver,
		format:   format,
		quality:  quality,
		log:      log,
	}
}

// Write decodes src once and writes the original plus every configured size
// under name. Visibility is determined once per call and applied uniformly to
// all variants. A single failed write fails the whole call with a
// storage-write error naming the path.
func (w *VariantWriter) Write(src []byte, ownerType, category, name string) error {
	sizes, err := w.sizes.SizesFor(ownerType, category)
	if err != nil {
		return err
	}

	img, err := w.codec.Decode(src)
	if err != nil {
		return err
	}

	visibility := blobstore.Private
	if w.sizes.IsPublic(ownerType, category) {
		visibility = blobstore.Public
	}

	if err := w.writeVariant(img, ownerType, category, OriginalLabel, name, visibility); err != nil {
		return err
	}

	for _, size := range sizes {
		var variant imagecodec.Image
		switch size.Mode {
		case FitScale:
			variant = img.Scale(size.Width, size.Height)
		default:
			variant = img.Cover(size.Width, size.Height)
		}
		if err := w.writeVariant(variant, ownerType, category, size.Label, name, visibility); err != nil {
			return err
		}
	}

	if w.log != nil {
		w.log.Debug("wrote image variants",
			"owner_type", ownerType,
			"category", category,
			"name", name,
			"variants", len(sizes)+1,
			"visibility", visibility.String())
	}
	return nil
}

func (w *VariantWriter) writeVariant(img imagecodec.Image, ownerType, category, label, name string, visibility blobstore.Visibility) error {
	data, err := img.Encode(w.format, w.quality)
	if err != nil {
		return err
	}

	path := w.resolver.Resolve(ownerType, category, label, name)
	if err := w.blobs.Put(path, data, visibility); err != nil {
		return errors.New(fmt.Errorf("writing variant %s: %w", label, err)).
			Component("variant-writer").
			Category(errors.CategoryStorageWrite).
			Context("name", name).
			PathContext(path).
			Build()
	}
	return nil
}
