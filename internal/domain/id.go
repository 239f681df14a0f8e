package domain

import (
	"crypto/rand"
	"fmt"
	"time"
)

const (
	idAlphabet    = "0123456789abcdefghijklmnopqrstuvwxyz"
	idSuffixLen   = 7
	anchorPrefix  = "el-"
	commentPrefix = "comment-"
)

// randSuffix returns a short base-36 suffix.
func randSuffix(length int) string {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		panic("domain: crypto/rand failed: " + err.Error())
	}
	b := make([]byte, length)
	for i := range b {
		b[i] = idAlphabet[int(buf[i])%len(idAlphabet)]
	}
	return string(b)
}

// NewCommentID returns a process-unique comment identifier. The millisecond
// timestamp keeps IDs roughly sortable by creation time; the random suffix
// disambiguates comments created in the same millisecond.
func NewCommentID() string {
	return fmt.Sprintf("%s%d-%s", commentPrefix, time.Now().UnixMilli(), randSuffix(idSuffixLen))
}

// NewAnchorID returns a synthesized element identifier, used when a clicked
// element carries no stable ID of its own.
func NewAnchorID() string {
	return anchorPrefix + randSuffix(idSuffixLen)
}
