package slack

import (
	"strings"
	"unicode/utf8"
)

// Block Kit text limits
const (
	MaxHeaderTextLength  = 150
	MaxSectionTextLength = 3000
)

var mrkdwnEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// EscapeMrkdwn escapes the control characters of Slack mrkdwn so that cell
// contents are shown literally
func EscapeMrkdwn(s string) string {
	return mrkdwnEscaper.Replace(s)
}

// TruncateText shortens s to at most limit characters, ending with "…" when
// it was cut
func TruncateText(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}

	runes := []rune(s)
	return string(runes[:limit-1]) + "…"
}

// truncateToMaxBytes cuts s to at most maxBytes bytes without splitting a
// UTF-8 sequence
func truncateToMaxBytes(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	if maxBytes <= 0 {
		return ""
	}

	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
