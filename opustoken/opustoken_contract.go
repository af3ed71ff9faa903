package opustoken

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/hvym/collective-contract/common"
)

const (
	symbol   = "OPUS"
	decimals = 0

	ownerKey       = 'o'
	circulationKey = 's'
	accPrefix      = 'a'
)

const (
	// ErrMintAccessDenied is thrown when mint is invoked by anyone but
	// the token owner.
	ErrMintAccessDenied = "only the owner can mint"
	// ErrBadHash is thrown when an account hash has unexpected length.
	ErrBadHash = "incorrect length of account script hash"
	// ErrBadAmount is thrown when a negative amount is supplied.
	ErrBadAmount = "amount must not be negative"
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
		owner         interop.Hash160
		initialSupply int
	})

	if len(args.owner) != interop.Hash160Len {
		panic(ErrBadHash)
	}
	if args.initialSupply < 0 {
		panic(ErrBadAmount)
	}

	storage.Put(ctx, []byte{ownerKey}, args.owner)
	storage.Put(ctx, []byte{circulationKey}, args.initialSupply)
	if args.initialSupply > 0 {
		storage.Put(ctx, accountKey(args.owner), args.initialSupply)
		runtime.Notify("Transfer", interop.Hash160(nil), args.owner, args.initialSupply)
	}

	runtime.Log("opus token initialized")
}

// Symbol is a NEP-17 standard method that returns the opus ticker.
func Symbol() string {
	return symbol
}

// Decimals is a NEP-17 standard method that returns the opus precision.
func Decimals() int {
	return decimals
}

// TotalSupply is a NEP-17 standard method that returns the amount of opus
// in circulation.
func TotalSupply() int {
	ctx := storage.GetReadOnlyContext()
	return getSupply(ctx)
}

// BalanceOf is a NEP-17 standard method that returns the opus balance of
// the account.
func BalanceOf(account interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return balanceOf(ctx, account)
}

// Owner returns the account that controls minting. For reward networks it
// is the collective contract.
func Owner() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, []byte{ownerKey}).(interop.Hash160)
}

// Transfer is a NEP-17 standard method that moves opus between accounts.
// Can be invoked only by the owner of the from account.
func Transfer(from, to interop.Hash160, amount int, data any) bool {
	if len(from) != interop.Hash160Len || len(to) != interop.Hash160Len {
		panic(ErrBadHash)
	}
	if amount < 0 {
		panic(ErrBadAmount)
	}
	if !isUsableAddress(from) {
		return false
	}

	ctx := storage.GetContext()
	fromBalance := balanceOf(ctx, from)
	if fromBalance < amount {
		return false
	}

	if amount != 0 {
		setBalance(ctx, from, fromBalance-amount)
		setBalance(ctx, to, balanceOf(ctx, to)+amount)
	}

	runtime.Notify("Transfer", from, to, amount)
	postTransfer(from, to, amount, data)
	return true
}

// Mint creates amount of new opus on the account and grows the total
// supply accordingly. Can be invoked only by the token owner.
func Mint(to interop.Hash160, amount int) {
	if len(to) != interop.Hash160Len {
		panic(ErrBadHash)
	}
	if amount < 0 {
		panic(ErrBadAmount)
	}

	ctx := storage.GetContext()
	owner := storage.Get(ctx, []byte{ownerKey}).(interop.Hash160)
	if !runtime.CheckWitness(owner) {
		panic(ErrMintAccessDenied)
	}

	setBalance(ctx, to, balanceOf(ctx, to)+amount)
	storage.Put(ctx, []byte{circulationKey}, getSupply(ctx)+amount)

	runtime.Notify("Transfer", interop.Hash160(nil), to, amount)
	postTransfer(nil, to, amount, nil)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

// postTransfer notifies a contract recipient about the incoming tokens,
// per the NEP-17 standard.
func postTransfer(from, to interop.Hash160, amount int, data any) {
	if management.GetContract(to) != nil {
		contract.Call(to, "onNEP17Payment", contract.All, from, amount, data)
	}
}

// isUsableAddress checks whether from signed the transaction or is the
// calling contract.
func isUsableAddress(from interop.Hash160) bool {
	if runtime.CheckWitness(from) {
		return true
	}
	return common.BytesEqual(runtime.GetCallingScriptHash(), from)
}

func accountKey(account interop.Hash160) []byte {
	return append([]byte{accPrefix}, account...)
}

func balanceOf(ctx storage.Context, account interop.Hash160) int {
	balance := storage.Get(ctx, accountKey(account))
	if balance == nil {
		return 0
	}
	return balance.(int)
}

func setBalance(ctx storage.Context, account interop.Hash160, amount int) {
	if amount == 0 {
		storage.Delete(ctx, accountKey(account))
		return
	}
	storage.Put(ctx, accountKey(account), amount)
}

func getSupply(ctx storage.Context) int {
	supply := storage.Get(ctx, []byte{circulationKey})
	if supply == nil {
		return 0
	}
	return supply.(int)
}
