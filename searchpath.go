package s3templates

import "strings"

// NormalizeName normalizes a template name or search-path prefix into a
// storage key: segments that are empty or consist only of dots (".", "..",
// stray separators, a leading "./") are dropped and the rest rejoined with
// "/". Invalid segments are removed, not rejected.
func NormalizeName(name string) string {
	segments := strings.Split(name, "/")
	kept := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg == "" || strings.Trim(seg, ".") == "" {
			continue
		}
		kept = append(kept, seg)
	}
	return strings.Join(kept, "/")
}

// ExpandPaths turns a template name and an ordered search path into the
// ordered, deduplicated list of candidate storage keys. The bare normalized
// name always comes first; each non-empty normalized prefix contributes
// prefix+"/"+name in search-path order. Pure function, no cache or network
// access.
func ExpandPaths(name string, searchPath []string) []string {
	name = NormalizeName(name)
	keys := make([]string, 0, len(searchPath)+1)
	seen := make(map[string]struct{}, len(searchPath)+1)
	add := func(key string) {
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	add(name)
	for _, dir := range searchPath {
		prefix := NormalizeName(dir)
		if prefix == "" {
			continue
		}
		add(prefix + "/" + name)
	}
	return keys
}
