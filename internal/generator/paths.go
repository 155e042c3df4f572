package generator

import (
	"crypto/sha256"
	"encoding/hex"
	"path"
	"path/filepath"
	"strings"
)

// buildOutputPath maps a site route onto the relative file carrying its
// rendered HTML. Directory style URLs always resolve to index.html.
func buildOutputPath(route string) string {
	clean := strings.Trim(strings.TrimSpace(route), "/")
	if clean == "" {
		return "index.html"
	}
	if strings.HasSuffix(clean, ".html") || strings.HasSuffix(clean, ".xml") || strings.HasSuffix(clean, ".txt") {
		return clean
	}
	return path.Join(clean, "index.html")
}

// joinOutputPath anchors a relative artifact path under the output directory.
func joinOutputPath(base, rel string) string {
	rel = filepath.FromSlash(strings.TrimPrefix(rel, "/"))
	if base == "" {
		return rel
	}
	return filepath.Join(base, rel)
}

func computeHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
