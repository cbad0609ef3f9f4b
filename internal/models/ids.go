// ABOUTME: Identifier generation for exercises, steps and blocks.
// ABOUTME: ULIDs sort by creation time, which keeps ids readable in exports.
package models

import (
	"strings"

	"github.com/oklog/ulid/v2"
)

// NewID returns a fresh lowercase ULID.
func NewID() string {
	return strings.ToLower(ulid.Make().String())
}
