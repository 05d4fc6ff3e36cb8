package metrics

import (
	"github.com/minio/highwayhash"
)

// highwayhash requires a 256-bit key; the value only needs to stay stable so
// that equal file content always maps to the same digest.
var digestKey = []byte("rustscan.metrics.digest.key.v001")

// Digest returns a 64-bit content digest, used to spot files reached more
// than once during a crate walk.
func Digest(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(digestKey)
	if err != nil {
		return 0, err
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}
