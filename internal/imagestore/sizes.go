package imagestore

import (
	"sort"

	"github.com/imagevault/imagevault/internal/conf"
	"github.com/imagevault/imagevault/internal/errors"
)

// FitMode selects how a variant is fitted into its declared dimensions.
type FitMode string

const (
	// FitCover resizes and crops to the exact dimensions.
	FitCover FitMode = FitMode(conf.FitCover)
	// FitScale resizes proportionally; the dimensions are a bound.
	FitScale FitMode = FitMode(conf.FitScale)
)

// SizeDefinition declares one resized variant.
type SizeDefinition struct {
	Label  string
	Width  int
	Height int
	Mode   FitMode
}

// SizeConfig is the read-only lookup of declared size definitions and the
// public flag per (ownerType, category).
type SizeConfig interface {
	// SizesFor returns the declared sizes for the pair, ordered by label for
	// deterministic iteration. An undeclared pair is a configuration error.
	SizesFor(ownerType, category string) ([]SizeDefinition, error)
	// IsPublic reports the declared visibility, defaulting to private when
	// the pair is unspecified.
	IsPublic(ownerType, category string) bool
}

// settingsSizeConfig adapts the loaded configuration to SizeConfig.
type settingsSizeConfig struct {
	models map[string]conf.ModelConfig
}

// NewSizeConfig builds a SizeConfig over the loaded settings.
func NewSizeConfig(settings *conf.Settings) SizeConfig {
	return &settingsSizeConfig{models: settings.Models}
}

func (c *settingsSizeConfig) lookup(ownerType, category string) (conf.CategoryConfig, bool) {
	model, ok := c.models[NormalizeOwnerType(ownerType)]
	if !ok {
		return conf.CategoryConfig{}, false
	}
	cfg, ok := model.Types[category]
	return cfg, ok
}

func (c *settingsSizeConfig) SizesFor(ownerType, category string) ([]SizeDefinition, error) {
	cfg, ok := c.lookup(ownerType, category)
	if !ok {
		return nil, errors.Newf("no sizes declared for owner type %q category %q",
			NormalizeOwnerType(ownerType), category).
			Component("imagestore").
			Category(errors.CategoryConfiguration).
			Build()
	}

	labels := make([]string, 0, len(cfg.Sizes))
	for label := range cfg.Sizes {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	sizes := make([]SizeDefinition, 0, len(labels))
	for _, label := range labels {
		entry := cfg.Sizes[label]
		sizes = append(sizes, SizeDefinition{
			Label:  label,
			Width:  entry.Width,
			Height: entry.Height,
			Mode:   FitMode(entry.Mode),
		})
	}
	return sizes, nil
}

func (c *settingsSizeConfig) IsPublic(ownerType, category string) bool {
	cfg, ok := c.lookup(ownerType, category)
	return ok && cfg.Public
}
