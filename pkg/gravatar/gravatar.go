// Package gravatar derives deterministic avatar URLs from email addresses.
package gravatar

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	size    = "200"
	rating  = "pg"
	missing = "mm"
)

// URL returns the gravatar URL for an email. The same email always maps to
// the same URL; unknown emails resolve to the generic "mystery man" image.
func URL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))
	hash := hex.EncodeToString(sum[:])
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=%s&r=%s&d=%s", hash, size, rating, missing)
}
