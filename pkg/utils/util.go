package utils

import (
	"io"
	"strings"
)

// BoolToUInt8 converts a bool to 0/1, for columns modeled as SMALLINT flags.
func BoolToUInt8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// Dedup removes duplicate strings, trimming trailing slashes before comparison.
// Preserves first-seen order.
func Dedup(in []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(in))
	for _, e := range in {
		e = strings.TrimRight(e, "/")
		if !seen[e] {
			seen[e] = true
			out = append(out, e)
		}
	}
	return out
}

// DrainAndClose drains r before closing it, so the underlying connection can
// be reused by the transport's keep-alive pool.
func DrainAndClose(r io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, r)
	return r.Close()
}
