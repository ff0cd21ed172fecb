package http

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// ETag returns a strong entity tag for body.
func ETag(body []byte) string {
	return `"` + strconv.FormatUint(xxhash.Sum64(body), 16) + `"`
}
