package discogs

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	urlIDRe     = regexp.MustCompile(`discogs\.com/(?:[^/]+/)?releases?/(\d+)`)
	bracketIDRe = regexp.MustCompile(`^\[r(\d+)\]$`)
)

// ParseReleaseID extracts a release ID from user input: a bare numeric ID, a
// discogs.com release URL, or the [r123] short form used around Discogs.
func ParseReleaseID(input string) (int, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, fmt.Errorf("empty release ID")
	}

	if m := urlIDRe.FindStringSubmatch(s); m != nil {
		return strconv.Atoi(m[1])
	}
	if m := bracketIDRe.FindStringSubmatch(s); m != nil {
		return strconv.Atoi(m[1])
	}
	if id, err := strconv.Atoi(s); err == nil && id > 0 {
		return id, nil
	}

	return 0, fmt.Errorf("unrecognized release ID %q", input)
}
