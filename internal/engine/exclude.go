package engine

import "path"

// junkNames are filesystem litter excluded from every merge.
var junkNames = map[string]struct{}{
	".DS_Store":   {},
	"Thumbs.db":   {},
	"desktop.ini": {},
}

// excluded reports whether rel should be skipped, either as a junk file
// or because a user pattern matches the full relative path.
func excluded(rel string, patterns []string) bool {
	if _, ok := junkNames[path.Base(rel)]; ok {
		return true
	}
	for _, pat := range patterns {
		if ok, err := path.Match(pat, rel); err == nil && ok {
			return true
		}
	}
	return false
}
