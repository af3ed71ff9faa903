package tests

import (
	"math/rand"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
)

func newExecutor(t *testing.T) *neotest.Executor {
	bc, acc := chain.NewSingle(t)
	return neotest.NewExecutor(t, bc, acc, acc)
}

func randomBytes(n int) []byte {
	a := make([]byte, n)
	rand.Read(a) //nolint:staticcheck // SA1019: rand.Read has been deprecated since Go 1.20
	return a
}

// randomCID returns a CIDv0-shaped content identifier (base58 of a
// sha2-256 multihash), the form IPFS pins are usually referenced by.
func randomCID() string {
	return base58.Encode(append([]byte{0x12, 0x20}, randomBytes(32)...))
}
