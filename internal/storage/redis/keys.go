package redis

import (
	"fmt"
	"strings"

	"github.com/mcoot/puzzle-progress/internal/model"
)

// completionKey returns the Redis key holding one player's record
func completionKey(prefix string, id model.PlayerID) string {
	return fmt.Sprintf("%s:completions:%s", prefix, id)
}

// completionsIndexKey returns the Redis key for the ZSET of registered
// player ids, scored by registration sequence
func completionsIndexKey(prefix string) string {
	return fmt.Sprintf("%s:idx:completions", prefix)
}

// sequenceKey returns the Redis key of the registration counter
func sequenceKey(prefix string) string {
	return fmt.Sprintf("%s:seq:completions", prefix)
}

// completionKeyPattern returns a SCAN MATCH pattern covering every record
// key under prefix
func completionKeyPattern(prefix string) string {
	return globEscape(prefix) + ":completions:*"
}

// globEscape quotes the characters SCAN MATCH treats as wildcards
func globEscape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
