package partitions

import (
	"encoding/binary"
	"hash/fnv"
)

// Index maps key onto one of n partitions using fnv-32a.
// Equal keys always land on the same partition.
func Index(key string, n int) int {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(key))
	sum := hash.Sum(nil)
	v := binary.BigEndian.Uint32(sum)
	return int(v % uint32(n))
}
