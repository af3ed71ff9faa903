package collective

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/hvym/collective-contract/common"
)

type (
	// Member is a single collective participant. Paid records the join
	// fee that was in effect when the member joined, not the current one.
	Member struct {
		Address interop.Hash160
		Paid    int
	}

	// Collective is the root membership record: the member list in
	// insertion order, the current join fee and the payment token
	// contract. PayToken is fixed at deploy time.
	Collective struct {
		Members  []Member
		Fee      int
		PayToken interop.Hash160
	}
)

const (
	symbol = "HVYM"

	adminKey        = 'a'
	collectiveKey   = 'c'
	mintFeeKey      = 'f'
	nodeFactoryKey  = 'n'
	ipfsFactoryKey  = 'i'
	opusLaunchedKey = 'l'
	opusHashKey     = 'o'
	opusNEFKey      = 'E'
	opusManifestKey = 'M'

	memberPrefix = 'm'
)

const (
	// ErrAlreadyMember is thrown when a member joins twice.
	ErrAlreadyMember = "already part of collective"
	// ErrInsufficientFunds is thrown when an account balance does not
	// cover the join or mint fee.
	ErrInsufficientFunds = "not enough to cover fee"
	// ErrUnauthorized is thrown when a deployment operation is invoked
	// by a non-member.
	ErrUnauthorized = "unauthorized"
	// ErrMemberMissing is thrown when a referenced member record is absent.
	ErrMemberMissing = "member not found"
	// ErrCollectiveMissing is thrown when the root record is absent.
	ErrCollectiveMissing = "collective record missing"
	// ErrInsufficientTreasury is thrown when the contract balance is
	// below the minimum-withdrawal threshold.
	ErrInsufficientTreasury = "not enough collected to withdraw"
	// ErrAlreadyLaunched is thrown on a repeated opus bootstrap.
	ErrAlreadyLaunched = "opus already up"
	// ErrNetworkNotUp is thrown by reward-paying operations before the
	// opus bootstrap.
	ErrNetworkNotUp = "network not up"
	// ErrBadFee is thrown when a negative fee is supplied.
	ErrBadFee = "fee must not be negative"
	// ErrBadAmount is thrown when a non-positive amount is supplied.
	ErrBadAmount = "amount must be positive"
	// ErrBadHash is thrown when a script hash has unexpected length.
	ErrBadHash = "incorrect length of script hash"
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
		admin        interop.Hash160
		joinFee      int
		mintFee      int
		payToken     interop.Hash160
		nodeFactory  interop.Hash160
		ipfsFactory  interop.Hash160
		opusNEF      []byte
		opusManifest []byte
	})

	if len(args.admin) != interop.Hash160Len ||
		len(args.payToken) != interop.Hash160Len ||
		len(args.nodeFactory) != interop.Hash160Len ||
		len(args.ipfsFactory) != interop.Hash160Len {
		panic(ErrBadHash)
	}
	if args.joinFee < 0 || args.mintFee < 0 {
		panic(ErrBadFee)
	}

	col := Collective{
		Members:  []Member{}, // explicit empty slice, not nil
		Fee:      args.joinFee,
		PayToken: args.payToken,
	}

	common.TierPut(ctx, common.TierDurable, []byte{adminKey}, args.admin)
	common.PutSerialized(ctx, common.TierDurable, []byte{collectiveKey}, col)
	common.TierPut(ctx, common.TierDurable, []byte{mintFeeKey}, args.mintFee)
	common.TierPut(ctx, common.TierDurable, []byte{nodeFactoryKey}, args.nodeFactory)
	common.TierPut(ctx, common.TierDurable, []byte{ipfsFactoryKey}, args.ipfsFactory)
	common.TierPut(ctx, common.TierDurable, []byte{opusNEFKey}, args.opusNEF)
	common.TierPut(ctx, common.TierDurable, []byte{opusManifestKey}, args.opusManifest)

	runtime.Log("collective contract initialized")
}

// Update method updates contract source code and manifest. Can be invoked
// only by the collective administrator.
func Update(script []byte, manifest []byte, data any) {
	ctx := storage.GetReadOnlyContext()
	common.CheckAdminWitness(getAdmin(ctx))

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("collective contract updated")
}

// Symbol returns the collective network ticker.
func Symbol() string {
	return symbol
}

// JoinFee returns the fee charged from joining members at the moment of
// the call.
func JoinFee() int {
	ctx := storage.GetReadOnlyContext()
	return getCollective(ctx).Fee
}

// MintFee returns the fee charged for IPFS token deployment.
func MintFee() int {
	ctx := storage.GetReadOnlyContext()
	return common.TierGet(ctx, common.TierDurable, []byte{mintFeeKey}).(int)
}

// PayToken returns the payment token contract accepted by the collective.
func PayToken() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return getCollective(ctx).PayToken
}

// Join charges the current join fee from person and adds them to the
// collective. Requires a witness of person. Fails if person is already a
// member or their payment token balance does not cover the fee. The fee
// transfer and the membership records are committed together: a failed
// transfer reverts the whole call.
func Join(person interop.Hash160) Member {
	ctx := storage.GetContext()
	if memberRecord(ctx, person) != nil {
		panic(ErrAlreadyMember)
	}
	common.CheckOwnerWitness(person)

	col := getCollective(ctx)
	if common.BalanceOf(col.PayToken, person) < col.Fee {
		panic(ErrInsufficientFunds)
	}
	common.TransferTokens(col.PayToken, person, runtime.GetExecutingScriptHash(), col.Fee)

	m := Member{
		Address: person,
		Paid:    col.Fee,
	}
	col.Members = append(col.Members, m)

	common.PutSerialized(ctx, common.TierDurable, memberKey(person), m)
	common.PutSerialized(ctx, common.TierDurable, []byte{collectiveKey}, col)

	runtime.Notify("Join", person, m.Paid)
	return m
}

// IsMember returns true if person is a current collective member. Safe
// method, no witness required.
func IsMember(person interop.Hash160) bool {
	ctx := storage.GetReadOnlyContext()
	return memberRecord(ctx, person) != nil
}

// MemberPaid returns the join fee person actually paid, which later fee
// updates never change. Requires a witness of person.
func MemberPaid(person interop.Hash160) int {
	common.CheckOwnerWitness(person)

	ctx := storage.GetReadOnlyContext()
	rec := memberRecord(ctx, person)
	if rec == nil {
		panic(ErrMemberMissing)
	}
	return rec.(Member).Paid
}

// Members returns the member list in join order. Can be invoked only by
// the collective administrator.
func Members() []Member {
	ctx := storage.GetReadOnlyContext()
	common.CheckAdminWitness(getAdmin(ctx))
	return getCollective(ctx).Members
}

// Remove expels person from the collective. Can be invoked only by the
// collective administrator. Collected fees are not returned.
func Remove(person interop.Hash160) bool {
	ctx := storage.GetContext()
	common.CheckAdminWitness(getAdmin(ctx))

	col := getCollective(ctx)
	members := []Member{} // it is explicit declaration of empty slice, not nil
	found := false
	for i := range col.Members {
		m := col.Members[i]
		if common.BytesEqual(m.Address, person) {
			found = true
			continue
		}
		members = append(members, m)
	}
	if !found {
		panic(ErrMemberMissing)
	}
	col.Members = members

	common.TierDelete(ctx, common.TierDurable, memberKey(person))
	common.PutSerialized(ctx, common.TierDurable, []byte{collectiveKey}, col)

	runtime.Notify("Removed", person)
	return true
}

// UpdateJoinFee replaces the join fee charged from future members and
// returns the new value. Paid amounts of existing members are not touched.
// Can be invoked only by the collective administrator.
func UpdateJoinFee(fee int) int {
	ctx := storage.GetContext()
	common.CheckAdminWitness(getAdmin(ctx))
	if fee < 0 {
		panic(ErrBadFee)
	}

	col := getCollective(ctx)
	col.Fee = fee
	common.PutSerialized(ctx, common.TierDurable, []byte{collectiveKey}, col)

	runtime.Notify("FeeUpdated", fee)
	return fee
}

// FundContract transfers amount of the payment token from the from account
// into the collective treasury. Requires a witness of from. Membership is
// not required, any account may donate.
func FundContract(from interop.Hash160, amount int) {
	common.CheckOwnerWitness(from)
	if amount <= 0 {
		panic(ErrBadAmount)
	}

	ctx := storage.GetReadOnlyContext()
	col := getCollective(ctx)
	common.TransferTokens(col.PayToken, from, runtime.GetExecutingScriptHash(), amount)

	runtime.Notify("Funded", from, amount)
}

// Withdraw transfers the whole collected treasury to the to account. Can
// be invoked only by the collective administrator. Fails when the treasury
// holds less than one current join fee: partial and empty withdrawals are
// not supported.
func Withdraw(to interop.Hash160) bool {
	ctx := storage.GetReadOnlyContext()
	common.CheckAdminWitness(getAdmin(ctx))

	col := getCollective(ctx)
	self := runtime.GetExecutingScriptHash()
	collected := common.BalanceOf(col.PayToken, self)
	if collected < col.Fee {
		panic(ErrInsufficientTreasury)
	}

	common.TransferTokens(col.PayToken, self, to, collected)

	runtime.Notify("Withdrawal", to, collected)
	return true
}

// LaunchOpus deploys the opus reward token from the template stored at
// construction, with the collective as its owner and initialSupply minted
// to the collective. Can be invoked only by the collective administrator
// and only once: reward-paying operations are rejected until it is done.
// Returns the reward token contract hash.
func LaunchOpus(initialSupply int) interop.Hash160 {
	ctx := storage.GetContext()
	common.CheckAdminWitness(getAdmin(ctx))

	if common.TierGet(ctx, common.TierDurable, []byte{opusLaunchedKey}) != nil {
		panic(ErrAlreadyLaunched)
	}
	if initialSupply < 0 {
		panic(ErrBadAmount)
	}

	nef := common.TierGet(ctx, common.TierDurable, []byte{opusNEFKey}).([]byte)
	manifest := common.TierGet(ctx, common.TierDurable, []byte{opusManifestKey}).([]byte)

	self := runtime.GetExecutingScriptHash()
	opus := management.DeployWithData(nef, manifest, []any{self, initialSupply})

	common.TierPut(ctx, common.TierDurable, []byte{opusHashKey}, opus.Hash)
	common.TierPut(ctx, common.TierDurable, []byte{opusLaunchedKey}, true)

	runtime.Notify("OpusLaunched", opus.Hash, initialSupply)
	return opus.Hash
}

// OpusAddress returns the reward token contract hash. Fails until
// LaunchOpus is done.
func OpusAddress() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return getOpus(ctx)
}

// DeployNodeToken asks the node token factory to deploy a new node token
// contract owned by person, with one unit minted to them. Requires a
// witness of person, who must be a collective member. No fee is charged
// beyond membership. Returns the new contract hash.
func DeployNodeToken(person interop.Hash160, name, descriptor string) interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	if memberRecord(ctx, person) == nil {
		panic(ErrUnauthorized)
	}
	common.CheckOwnerWitness(person)

	factory := common.TierGet(ctx, common.TierDurable, []byte{nodeFactoryKey}).(interop.Hash160)
	token := contract.Call(factory, "deploy", contract.All,
		person, name, descriptor).(interop.Hash160)

	runtime.Notify("NodeTokenDeployed", person, token)
	return token
}

// DeployIpfsToken charges the mint fee from person, asks the IPFS token
// factory to deploy a new file token contract owned by them and rewards
// person with mint fee worth of opus. Requires a witness of person, who
// must be a collective member, and a launched opus network. The published
// timestamp is taken from the ledger clock. The fee transfer, the factory
// deployment and the reward mint are committed together: any failure
// reverts the whole call. Returns the new contract hash.
func DeployIpfsToken(person interop.Hash160, name, ipfsHash, fileType, gateways, ipnsHash string) interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	if memberRecord(ctx, person) == nil {
		panic(ErrUnauthorized)
	}
	common.CheckOwnerWitness(person)

	opus := getOpus(ctx)

	col := getCollective(ctx)
	fee := common.TierGet(ctx, common.TierDurable, []byte{mintFeeKey}).(int)
	if common.BalanceOf(col.PayToken, person) < fee {
		panic(ErrInsufficientFunds)
	}
	common.TransferTokens(col.PayToken, person, runtime.GetExecutingScriptHash(), fee)

	factory := common.TierGet(ctx, common.TierDurable, []byte{ipfsFactoryKey}).(interop.Hash160)
	published := runtime.GetTime()
	token := contract.Call(factory, "deploy", contract.All,
		person, name, ipfsHash, fileType, published, gateways, ipnsHash).(interop.Hash160)

	// 1:1 fee-to-reward policy.
	common.MintTokens(opus, person, fee)

	runtime.Notify("IPFSTokenDeployed", person, token)
	return token
}

// OnNEP17Payment is a callback for incoming NEP-17 transfers. The
// collective accepts its payment token only.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	ctx := storage.GetReadOnlyContext()
	caller := runtime.GetCallingScriptHash()
	if !common.BytesEqual(caller, getCollective(ctx).PayToken) {
		panic("onNEP17Payment: collective accepts the payment token only")
	}
}

// Prune erases every record of a non-durable storage tier. Can be invoked
// only by the collective administrator. The durable tier is rejected.
func Prune(tier int) {
	ctx := storage.GetContext()
	common.CheckAdminWitness(getAdmin(ctx))
	common.Clear(ctx, byte(tier))
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func memberKey(person interop.Hash160) []byte {
	return append([]byte{memberPrefix}, person...)
}

func memberRecord(ctx storage.Context, person interop.Hash160) any {
	return common.GetSerialized(ctx, common.TierDurable, memberKey(person))
}

func getAdmin(ctx storage.Context) interop.Hash160 {
	admin := common.TierGet(ctx, common.TierDurable, []byte{adminKey})
	if admin == nil {
		panic(ErrCollectiveMissing)
	}
	return admin.(interop.Hash160)
}

func getCollective(ctx storage.Context) Collective {
	rec := common.GetSerialized(ctx, common.TierDurable, []byte{collectiveKey})
	if rec == nil {
		panic(ErrCollectiveMissing)
	}
	return rec.(Collective)
}

func getOpus(ctx storage.Context) interop.Hash160 {
	if common.TierGet(ctx, common.TierDurable, []byte{opusLaunchedKey}) == nil {
		panic(ErrNetworkNotUp)
	}
	return common.TierGet(ctx, common.TierDurable, []byte{opusHashKey}).(interop.Hash160)
}
