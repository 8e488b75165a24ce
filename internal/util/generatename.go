package util

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"time"
)

var assetNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+-[0-9]+-[0-9]+\.[a-z0-9]+$`)

// GenerateAssetName builds <fieldLabel>-<unixMillis>-<random 0..1e9><ext>.
// Uniqueness is heuristic, it is not guarded beyond exclusive file creation.
func GenerateAssetName(fieldLabel string, ext string) string {
	return fmt.Sprintf("%s-%d-%d%s", fieldLabel, time.Now().UnixMilli(), rand.IntN(1_000_000_000), ext)
}

// IsAssetName reports whether name has the shape produced by GenerateAssetName.
// It never matches anything containing a path separator.
func IsAssetName(name string) bool {
	return assetNamePattern.MatchString(name)
}

func AssetRefFor(urlPrefix string, name string) string {
	return strings.TrimSuffix(urlPrefix, "/") + "/" + name
}

// AssetNameFromRef extracts the asset name from a public reference.
func AssetNameFromRef(urlPrefix string, ref string) (string, bool) {
	name, ok := strings.CutPrefix(ref, strings.TrimSuffix(urlPrefix, "/")+"/")
	if !ok || !IsAssetName(name) {
		return "", false
	}
	return name, true
}

var assetLabelPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// IsAssetLabel reports whether label may prefix a generated asset name.
func IsAssetLabel(label string) bool {
	return assetLabelPattern.MatchString(label)
}
