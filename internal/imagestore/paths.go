package imagestore

import (
	"path"
	"strings"
	"unicode"
)

// OriginalLabel is the reserved size label for the unresized encoding.
const OriginalLabel = "original"

// Resolver maps (ownerType, category, sizeLabel, name) tuples onto
// storage-relative paths under a configured base path. It is pure and
// deterministic; distinct tuples never collide under correct configuration.
type Resolver struct {
	basePath string
}

// NewResolver creates a resolver rooted at basePath.
func NewResolver(basePath string) *Resolver {
	return &Resolver{basePath: basePath}
}

// Resolve returns the storage-relative path for one variant:
// {basePath}/{owner_type}/{category}/{sizeLabel}/{name}.
func (r *Resolver) Resolve(ownerType, category, sizeLabel, name string) string {
	return path.Join(r.basePath, NormalizeOwnerType(ownerType), category, sizeLabel, name)
}

// NormalizeOwnerType reduces an owner type discriminator to a lowercase,
// underscore-separated form of its bare type name. Package or namespace
// qualification is stripped first, so "models.SiteUser", "App\\SiteUser" and
// "SiteUser" all normalize to "site_user". Already-normalized input passes
// through unchanged.
func NormalizeOwnerType(ownerType string) string {
	bare := ownerType
	if idx := strings.LastIndexAny(bare, "./\\"); idx >= 0 {
		bare = bare[idx+1:]
	}

	runes := []rune(bare)
	var b strings.Builder
	b.Grow(len(bare) + 4)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if i > 0 && (prevLower || nextLower) && runes[i-1] != '_' {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
