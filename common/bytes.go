package common

import "github.com/nspcc-dev/neo-go/pkg/interop/util"

// BytesEqual compares two slices of bytes by wrapped VM EQUALS opcode.
func BytesEqual(a []byte, b []byte) bool {
	return util.Equals(string(a), string(b))
}
