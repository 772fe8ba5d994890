package cache

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Key builds a fixed-length cache key: namespace followed by the xxhash64 of
// parts. Parts are length-prefixed so ("ab","c") and ("a","bc") never collide.
func Key(namespace string, parts ...string) string {
	d := xxhash.New()
	var lenBuf []byte
	for _, p := range parts {
		lenBuf = strconv.AppendInt(lenBuf[:0], int64(len(p)), 10)
		_, _ = d.Write(lenBuf)
		_, _ = d.Write([]byte{':'})
		_, _ = d.WriteString(p)
	}
	return namespace + ":" + strconv.FormatUint(d.Sum64(), 16)
}
