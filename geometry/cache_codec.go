package geometry

import "github.com/fxamacker/cbor/v2"

// cacheSnapshot is the CBOR wire format for a Cache: a flat list of
// entries, re-keyed on decode rather than carrying CacheKey on the wire, so
// two hosts with differently-salted hash state would still (they aren't
// salted here, but this keeps the format forward-compatible) agree on
// lookups after restore.
type cacheSnapshot struct {
	Entries []CacheEntry `cbor:"entries"`
}

// EncodeCache serializes a Cache snapshot to CBOR, letting a host persist
// the import cache between runs of the same top-level program without
// re-parsing `.shape` files or re-decoding `.json`/`.yaml` imports.
func EncodeCache(c *Cache) ([]byte, error) {
	snap := cacheSnapshot{Entries: c.snapshot()}
	return cbor.Marshal(snap)
}

// DecodeCache reconstructs a Cache from bytes produced by EncodeCache.
func DecodeCache(data []byte) (*Cache, error) {
	var snap cacheSnapshot
	if err := cbor.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	c := NewCache()
	c.restore(snap.Entries)
	return c, nil
}
