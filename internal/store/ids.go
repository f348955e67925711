package store

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
)

// newRandomID returns prefix-<suffix> where suffix is 8 chars of base32
// (lowercase, no padding). 8 chars base32 ~= 40 bits of space.
func newRandomID(prefix string) (string, error) {
	var b [5]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	suffix := strings.ToLower(enc.EncodeToString(b[:]))
	return prefix + "-" + suffix, nil
}

// NewNodeID mints an id for a persisted node, retrying on the unlikely
// collision with an existing one.
func NewNodeID(db *DB) (string, error) {
	for {
		id, err := newRandomID("node")
		if err != nil {
			return "", err
		}
		if db == nil || db.FindNode(id) < 0 {
			return id, nil
		}
	}
}
