package badger

import (
	"encoding/binary"
	"strings"

	"github.com/poiesic/docrawl/core"
)

// Key prefix for chunk records. The destination table name becomes part of
// the key, so one database can hold several independent namespaces.
const chunkRecordPrefix = "chkrec"

// validTable reports whether a table name is usable as a key component.
// The colon is the key separator and must not appear in the name.
func validTable(table string) bool {
	return table != "" && !strings.Contains(table, ":")
}

// makeChunkKey generates a key for a chunk record.
// Format: prefix:table:urlID:chunkNumber, with the numeric components in
// BigEndian order so iteration yields chunks in chunk-number order.
func makeChunkKey(table string, urlID core.ID, chunkNumber int) []byte {
	buf := makeChunkURLPrefix(table, urlID)
	num := make([]byte, 8)
	binary.BigEndian.PutUint64(num, uint64(chunkNumber))
	return append(buf, num...)
}

// makeChunkURLPrefix generates the key prefix shared by all chunks of one URL.
// Format: prefix:table:urlID
func makeChunkURLPrefix(table string, urlID core.ID) []byte {
	prefix := chunkRecordPrefix + ":" + table + ":"
	buf := make([]byte, len(prefix), len(prefix)+16)
	copy(buf, prefix)
	id := make([]byte, 8)
	binary.BigEndian.PutUint64(id, uint64(urlID))
	return append(buf, id...)
}
