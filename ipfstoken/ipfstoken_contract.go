package ipfstoken

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/hvym/collective-contract/common"
)

const (
	symbol   = "HVYMFILE"
	decimals = 0

	ownerKey       = 'o'
	nameKey        = 'n'
	ipfsHashKey    = 'h'
	fileTypeKey    = 't'
	publishedKey   = 'p'
	gatewaysKey    = 'g'
	ipnsHashKey    = 'i'
	circulationKey = 's'
	accPrefix      = 'a'
)

const (
	// ErrMintAccessDenied is thrown when mint is invoked by anyone but
	// the file owner.
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
		owner     interop.Hash160
		name      string
		ipfsHash  string
		fileType  string
		published int
		gateways  string
		ipnsHash  string
	})

	if len(args.owner) != interop.Hash160Len {
		panic(ErrBadHash)
	}

	storage.Put(ctx, []byte{ownerKey}, args.owner)
	storage.Put(ctx, []byte{nameKey}, args.name)
	storage.Put(ctx, []byte{ipfsHashKey}, args.ipfsHash)
	storage.Put(ctx, []byte{fileTypeKey}, args.fileType)
	storage.Put(ctx, []byte{publishedKey}, args.published)
	storage.Put(ctx, []byte{gatewaysKey}, args.gateways)
	storage.Put(ctx, []byte{ipnsHashKey}, args.ipnsHash)

	runtime.Log("ipfs token initialized")
}

// Symbol is a NEP-17 standard method that returns the file token ticker.
func Symbol() string {
	return symbol
}

// Decimals is a NEP-17 standard method that returns the token precision.
func Decimals() int {
	return decimals
}

// TotalSupply is a NEP-17 standard method that returns the amount of
// token units minted by the file owner.
func TotalSupply() int {
	ctx := storage.GetReadOnlyContext()
	return getSupply(ctx)
}

// BalanceOf is a NEP-17 standard method that returns the token balance of
// the account.
func BalanceOf(account interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return balanceOf(ctx, account)
}

// Owner returns the member that published the file.
func Owner() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return getOwner(ctx)
}

// Name returns the human-readable file name given at deployment.
func Name() string {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, []byte{nameKey}).(string)
}

// IpfsHash returns the content identifier of the pinned file.
func IpfsHash() string {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, []byte{ipfsHashKey}).(string)
}

// FileType returns the media type of the pinned file.
func FileType() string {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, []byte{fileTypeKey}).(string)
}

// Published returns the ledger timestamp of the deployment, in
// milliseconds.
func Published() int {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, []byte{publishedKey}).(int)
}

// Gateways returns the gateway list given at deployment.
func Gateways() string {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, []byte{gatewaysKey}).(string)
}

// IpnsHash returns the name-service hash of the file, empty when the file
// is not published under IPNS.
func IpnsHash() string {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, []byte{ipnsHashKey}).(string)
}

// Mint creates amount of new token units on the account. Can be invoked
// only by the file owner.
func Mint(to interop.Hash160, amount int) {
	if len(to) != interop.Hash160Len {
		panic(ErrBadHash)
	}
	if amount < 0 {
		panic(ErrBadAmount)
	}

	ctx := storage.GetContext()
	if !runtime.CheckWitness(getOwner(ctx)) {
		panic(ErrMintAccessDenied)
	}

	setBalance(ctx, to, balanceOf(ctx, to)+amount)
	storage.Put(ctx, []byte{circulationKey}, getSupply(ctx)+amount)

	runtime.Notify("Transfer", interop.Hash160(nil), to, amount)
	postTransfer(nil, to, amount, nil)
}

// Transfer is a NEP-17 standard method that moves token units between
// accounts. Can be invoked only by the owner of the from account.
func Transfer(from, to interop.Hash160, amount int, data any) bool {
	if len(from) != interop.Hash160Len || len(to) != interop.Hash160Len {
		panic(ErrBadHash)
	}
	if amount < 0 {
		panic(ErrBadAmount)
	}
	if !runtime.CheckWitness(from) && !common.BytesEqual(runtime.GetCallingScriptHash(), from) {
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

func accountKey(account interop.Hash160) []byte {
	return append([]byte{accPrefix}, account...)
}

func getOwner(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, []byte{ownerKey}).(interop.Hash160)
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
