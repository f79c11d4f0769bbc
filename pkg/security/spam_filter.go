package security

import "strings"

// defaultSpamKeywords are matched case-insensitively against the free-text
// fields of a submission
var defaultSpamKeywords = []string{
	"casino",
	"viagra",
	"porn",
	"gambling",
	"crypto mining",
}

// SpamFilter classifies submissions via a honeypot field and a keyword
// blocklist. Detection is silent: callers must answer spam with the same
// success response as a legitimate submission so that senders learn nothing
// about what triggered it.
type SpamFilter struct {
	keywords []string
}

// NewSpamFilter creates a filter with the given keywords, falling back to
// the default blocklist when none are configured.
func NewSpamFilter(keywords []string) *SpamFilter {
	if len(keywords) == 0 {
		keywords = defaultSpamKeywords
	}
	lowered := make([]string, len(keywords))
	for i, kw := range keywords {
		lowered[i] = strings.ToLower(kw)
	}
	return &SpamFilter{keywords: lowered}
}

// IsHoneypotTripped reports whether the honeypot field was filled in.
// The field is invisible to real users; any value means automation.
func (f *SpamFilter) IsHoneypotTripped(honeypot string) bool {
	return strings.TrimSpace(honeypot) != ""
}

// MatchKeyword checks the given free-text fields against the blocklist and
// returns the first matching keyword. The match is case-insensitive.
func (f *SpamFilter) MatchKeyword(fields ...string) (string, bool) {
	haystack := strings.ToLower(strings.Join(fields, " "))
	for _, kw := range f.keywords {
		if strings.Contains(haystack, kw) {
			return kw, true
		}
	}
	return "", false
}
