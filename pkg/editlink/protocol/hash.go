package protocol

import "hash/crc32"

// HashName maps a component or property name to its 32-bit wire key.
// Names are never transmitted on the hot property-edit path; both sides
// agree on CRC-32 (IEEE) over the name's UTF-8 bytes instead. The mapping
// is not reversible and collisions between distinct names, while unlikely,
// are not detected at this layer.
func HashName(name string) uint32 {
	return crc32.ChecksumIEEE([]byte(name))
}
