package generator

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"

	"docquiz-service/internal/domain"
)

// CacheKey derives a stable digest from the input documents and options.
// Identical documents with identical options produce identical keys, so
// caches can serve a regeneration without another remote call.
func CacheKey(files []domain.SourceFile, opts domain.GenerationOptions) string {
	h := sha256.New()
	for _, f := range files {
		writeLenPrefixed(h, []byte(f.Name))
		writeLenPrefixed(h, f.Content)
	}
	var count [8]byte
	binary.BigEndian.PutUint64(count[:], uint64(opts.QuestionCount))
	h.Write(count[:])
	writeLenPrefixed(h, []byte(opts.Difficulty))
	for _, kind := range opts.Kinds {
		writeLenPrefixed(h, []byte(kind))
	}
	if opts.IncludeExplanations {
		h.Write([]byte{1})
	} else {
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// writeLenPrefixed keeps adjacent fields from colliding across boundaries.
func writeLenPrefixed(h hash.Hash, data []byte) {
	var size [8]byte
	binary.BigEndian.PutUint64(size[:], uint64(len(data)))
	_, _ = h.Write(size[:])
	_, _ = h.Write(data)
}
