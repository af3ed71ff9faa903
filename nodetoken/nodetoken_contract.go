package nodetoken

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/hvym/collective-contract/common"
)

const (
	symbol   = "HVYMNODE"
	decimals = 0

	// The token is indivisible: exactly one unit exists, minted to the
	// owner at deploy time.
	supply = 1

	ownerKey      = 'o'
	nameKey       = 'n'
	descriptorKey = 'd'
)

const (
	// ErrBadHash is thrown when an account hash has unexpected length.
	ErrBadHash = "incorrect length of account script hash"
	// ErrBadAmount is thrown when the transferred amount is not the
	// whole single unit.
	ErrBadAmount = "node token is indivisible"
)

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		owner      interop.Hash160
		name       string
		descriptor string
	})

	if len(args.owner) != interop.Hash160Len {
		panic(ErrBadHash)
	}

	storage.Put(ctx, []byte{ownerKey}, args.owner)
	storage.Put(ctx, []byte{nameKey}, args.name)
	storage.Put(ctx, []byte{descriptorKey}, args.descriptor)

	runtime.Notify("Transfer", interop.Hash160(nil), args.owner, supply)
	runtime.Log("node token initialized")
}

// Symbol is a NEP-17 standard method that returns the node token ticker.
func Symbol() string {
	return symbol
}

// Decimals is a NEP-17 standard method that returns the token precision.
// The token is indivisible.
func Decimals() int {
	return decimals
}

// TotalSupply is a NEP-17 standard method that returns the single token
// unit.
func TotalSupply() int {
	return supply
}

// Name returns the human-readable node name given at deployment.
func Name() string {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, []byte{nameKey}).(string)
}

// Descriptor returns the opaque node descriptor given at deployment.
func Descriptor() string {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, []byte{descriptorKey}).(string)
}

// Owner returns the account currently holding the token unit.
func Owner() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return getOwner(ctx)
}

// BalanceOf is a NEP-17 standard method: 1 for the current owner, 0 for
// everyone else.
func BalanceOf(account interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	if common.BytesEqual(getOwner(ctx), account) {
		return supply
	}
	return 0
}

// Transfer is a NEP-17 standard method that moves the whole token unit to
// a new owner. Can be invoked only by the current owner.
func Transfer(from, to interop.Hash160, amount int, data any) bool {
	if len(from) != interop.Hash160Len || len(to) != interop.Hash160Len {
		panic(ErrBadHash)
	}
	if amount != supply {
		panic(ErrBadAmount)
	}

	ctx := storage.GetContext()
	if !common.BytesEqual(getOwner(ctx), from) || !runtime.CheckWitness(from) {
		return false
	}

	storage.Put(ctx, []byte{ownerKey}, to)

	runtime.Notify("Transfer", from, to, amount)
	if management.GetContract(to) != nil {
		contract.Call(to, "onNEP17Payment", contract.All, from, amount, data)
	}
	return true
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func getOwner(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, []byte{ownerKey}).(interop.Hash160)
}
