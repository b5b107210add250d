package media

import (
	"regexp"
	"strings"
)

var (
	// ASCII whitespace plus vertical tab, Unicode separators and the BOM
	whitespaceRun = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]+`)
	disallowed    = regexp.MustCompile(`[^a-z0-9.-]`)
)

// SanitizeFilename lowercases name, turns whitespace runs into a dash and
// drops everything outside [a-z0-9.-].
func SanitizeFilename(name string) string {
	s := strings.ToLower(name)
	s = whitespaceRun.ReplaceAllString(s, "-")
	return disallowed.ReplaceAllString(s, "")
}

// StoragePath recovers the object path from a public URL: the final segment
// after the last "/".
func StoragePath(url string) string {
	if i := strings.LastIndex(url, "/"); i >= 0 {
		return url[i+1:]
	}
	return url
}

func StoragePaths(urls []string) []string {
	paths := make([]string, 0, len(urls))
	for _, u := range urls {
		paths = append(paths, StoragePath(u))
	}
	return paths
}
