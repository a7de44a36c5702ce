// validate.go: validation of loaded settings
package conf

import "fmt"

// ValidateSettings checks the loaded settings for configuration mistakes that
// would otherwise surface as runtime failures deep inside the lifecycle
// manager. It is called once at load time.
func ValidateSettings(settings *Settings) error {
	s := &settings.Storage

	switch s.Format {
	case FormatWebP, FormatJPEG, FormatPNG, FormatOriginal:
	default:
		return fmt.Errorf("storage.format must be one of webp, jpeg, png or original, got %q", s.Format)
	}

	if s.Quality < 1 || s.Quality > 100 {
		return fmt.Errorf("storage.quality must be between 1 and 100, got %d", s.Quality)
	}

	if s.BasePath == "" {
		return fmt.Errorf("storage.basepath must not be empty")
	}

	for ownerType, model := range settings.Models {
		for category, cfg := range model.Types {
			for label, size := range cfg.Sizes {
				if size.Width <= 0 || size.Height <= 0 {
					return fmt.Errorf("models.%s.types.%s.sizes.%s: width and height must be positive, got %dx%d",
						ownerType, category, label, size.Width, size.Height)
				}
				switch size.Mode {
				case FitCover, FitScale:
				default:
					return fmt.Errorf("models.%s.types.%s.sizes.%s: mode must be cover or scale, got %q",
						ownerType, category, label, size.Mode)
				}
			}
		}
	}

	return nil
}
