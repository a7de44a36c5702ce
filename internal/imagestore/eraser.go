package imagestore

import (
	"fmt"
	"log/slog"

	"github.com/imagevault/imagevault/internal/blobstore"
	"github.com/imagevault/imagevault/internal/errors"
)

// VariantEraser deletes every path the resolver would have produced for an
// image name: the original plus each currently configured size. Paths that no
// longer exist are treated as already deleted.
//
// The eraser uses the size configuration in effect at call time. If sizes
// were reconfigured after the image was written, it may miss now-orphaned
// variants or target paths that were never written; the latter is harmless
// because missing paths are skipped.
type VariantEraser struct {
	blobs    blobstore.Store
	sizes    SizeConfig
	resolver *Resolver
	log      *slog.Logger
}

// NewVariantEraser wires an eraser over the given collaborators.
func NewVariantEraser(blobs blobstore.Store, sizes SizeConfig, resolver *Resolver, log *slog.Logger) *VariantEraser {
	return &VariantEraser{
		blobs:    blobs,
		sizes:    sizes,
		resolver: resolver,
		log:      log,
	}
}

// Erase deletes all variants stored under name. It fails only on a genuine
// backend failure, never because a path was already absent.
func (e *VariantEraser) Erase(ownerType, category, name string) error {
	sizes, err := e.sizes.SizesFor(ownerType, category)
	if err != nil {
		return err
	}

	labels := make([]string, 0, len(sizes)+1)
	labels = append(labels, OriginalLabel)
	for _, size := range sizes {
		labels = append(labels, size.Label)
	}

	for _, label := range labels {
		path := e.resolver.Resolve(ownerType, category, label, name)
		err := e.blobs.Delete(path)
		if err == nil {
			continue
		}
		if errors.IsNotFound(err) {
			if e.log != nil {
				e.log.Debug("variant already absent", "path", path)
			}
			continue
		}
		return errors.New(fmt.Errorf("erasing variant %s: %w", label, err)).
			Component("variant-eraser").
			Category(errors.CategoryStorageDelete).
			Context("name", name).
			PathContext(path).
			Build()
	}
	return nil
}
