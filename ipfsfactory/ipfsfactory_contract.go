package ipfsfactory

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/hvym/collective-contract/common"
)

const (
	// Instance manifests are named "<instanceNamePrefix><sequence>".
	// Unique names keep instance contract hashes distinct, since Neo
	// derives them from deployer, NEF checksum and manifest name.
	instanceNamePrefix = "HVYM IPFS Token #"

	collectiveKey    = 'c'
	nefKey           = 'n'
	manifestHeadKey  = 'h'
	manifestTailKey  = 't'
	deployCounterKey = 'q'
)

const (
	// ErrDeployAccessDenied is thrown when deploy is invoked by anyone
	// but the collective contract.
	ErrDeployAccessDenied = "only the collective can deploy"
	// ErrBadHash is thrown when a script hash has unexpected length.
	ErrBadHash = "incorrect length of script hash"
	// ErrBadTemplate is thrown when the stored contract template is
	// empty.
	ErrBadTemplate = "invalid contract template"
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
		collective   interop.Hash160
		nef          []byte
		manifestHead []byte
		manifestTail []byte
	})

	if len(args.collective) != interop.Hash160Len {
		panic(ErrBadHash)
	}
	if len(args.nef) == 0 || len(args.manifestHead) == 0 || len(args.manifestTail) == 0 {
		panic(ErrBadTemplate)
	}

	storage.Put(ctx, []byte{collectiveKey}, args.collective)
	storage.Put(ctx, []byte{nefKey}, args.nef)
	storage.Put(ctx, []byte{manifestHeadKey}, args.manifestHead)
	storage.Put(ctx, []byte{manifestTailKey}, args.manifestTail)

	runtime.Log("ipfs factory initialized")
}

// Deploy instantiates a new IPFS token contract from the stored template,
// owned by owner, carrying the supplied file metadata. Can be invoked
// only by the collective contract, which charges the mint fee and pays
// the reward. Returns the new contract hash.
func Deploy(owner interop.Hash160, name, ipfsHash, fileType string, published int, gateways, ipnsHash string) interop.Hash160 {
	ctx := storage.GetContext()

	collective := storage.Get(ctx, []byte{collectiveKey}).(interop.Hash160)
	if !common.BytesEqual(runtime.GetCallingScriptHash(), collective) {
		panic(ErrDeployAccessDenied)
	}

	seq := nextSeq(ctx)
	token := management.DeployWithData(
		storage.Get(ctx, []byte{nefKey}).([]byte),
		instanceManifest(ctx, seq),
		[]any{owner, name, ipfsHash, fileType, published, gateways, ipnsHash})

	runtime.Notify("Deployed", owner, token.Hash)
	return token.Hash
}

// Deployed returns the number of IPFS token contracts instantiated by the
// factory.
func Deployed() int {
	ctx := storage.GetReadOnlyContext()
	count := storage.Get(ctx, []byte{deployCounterKey})
	if count == nil {
		return 0
	}
	return count.(int)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func nextSeq(ctx storage.Context) int {
	seq := Deployed() + 1
	storage.Put(ctx, []byte{deployCounterKey}, seq)
	return seq
}

// instanceManifest splices a unique instance name into the manifest
// template stored as head and tail halves around the name value.
func instanceManifest(ctx storage.Context, seq int) []byte {
	manifest := storage.Get(ctx, []byte{manifestHeadKey}).([]byte)
	manifest = append(manifest, []byte(instanceNamePrefix+std.Itoa(seq, 10))...)
	return append(manifest, storage.Get(ctx, []byte{manifestTailKey}).([]byte)...)
}
