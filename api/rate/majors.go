package rate

import (
	"strconv"
	"strings"
)

// MajorRootPaths are the root resources whose IDs count towards the bucket
// key. IDs anywhere else in the path are minor parameters and get stripped.
var MajorRootPaths = []string{"channels", "guilds"}

// ParseBucketKey reduces a request path to its rate limit bucket key. The ID
// right after a major root path is kept; every other numeric segment is
// blanked out, so routes that only differ by minor IDs share a bucket.
func ParseBucketKey(path string) string {
	path, _, _ = strings.Cut(path, "?")

	// The leading slash makes the first split segment empty.
	parts := strings.Split(path, "/")[1:]
	if len(parts) == 0 {
		return path
	}

	start := 0
	if isMajorRoot(parts[0]) {
		start = 2
	}

	for i := start; i < len(parts); i++ {
		if _, err := strconv.Atoi(parts[i]); err == nil {
			parts[i] = ""
		}
	}

	return "/" + strings.Join(parts, "/")
}

func isMajorRoot(segment string) bool {
	for _, root := range MajorRootPaths {
		if root == segment {
			return true
		}
	}
	return false
}
