// ABOUTME: Lenient JSON helpers for values that older documents stored as text.
// ABOUTME: Form inputs saved numbers as strings, so both encodings are accepted.
package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// decodeLooseInt accepts a JSON number or numeric string.
// Null, empty, "-" and unparseable text report ok=false.
func decodeLooseInt(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return int(f), true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}
