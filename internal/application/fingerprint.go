package application

import (
	"encoding/hex"
	"hash"
	"io"

	"golang.org/x/crypto/blake2b"

	"github.com/example/trip-tracker/internal/issues"
)

const (
	unitSeparator   = "\x1f"
	recordSeparator = "\x1e"
)

// Fingerprint returns a BLAKE2b-256 digest over the meetings and issues of a run.
// Equal seeds and inputs produce equal fingerprints.
func Fingerprint(meetings []MeetingRecord, found []issues.Issue) string {
	h, err := blake2b.New256(nil)
	if err != nil {
		// Only a key longer than 64 bytes makes New256 fail.
		panic(err)
	}
	writeSection(h, "meetings")
	for _, m := range meetings {
		writeFields(h, m.Values()...)
	}
	writeSection(h, "issues")
	for _, issue := range found {
		writeFields(h, string(issue.Severity), string(issue.Entity), issue.EntityID, issue.Field, issue.Message)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func writeSection(h hash.Hash, name string) {
	_, _ = io.WriteString(h, recordSeparator+name+recordSeparator)
}

func writeFields(h hash.Hash, fields ...string) {
	for _, f := range fields {
		_, _ = io.WriteString(h, f)
		_, _ = io.WriteString(h, unitSeparator)
	}
	_, _ = io.WriteString(h, recordSeparator)
}
