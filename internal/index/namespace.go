package index

import "regexp"

// maxNamespaceLen bounds bucket names to satisfy storage naming limits.
const maxNamespaceLen = 50

var reNonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// sanitizeNamespace derives a bucket name from a meeting identifier:
// runs of non-alphanumeric characters collapse to a single underscore and
// the result is truncated to maxNamespaceLen.
func sanitizeNamespace(meetingID string) string {
	s := reNonAlnum.ReplaceAllString(meetingID, "_")
	if len(s) > maxNamespaceLen {
		s = s[:maxNamespaceLen]
	}
	return s
}
