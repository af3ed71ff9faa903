package tests

import (
	"testing"

	"github.com/google/uuid"
	"github.com/hvym/collective-contract/collective"
	"github.com/hvym/collective-contract/common"
	"github.com/hvym/collective-contract/ipfsfactory"
	"github.com/hvym/collective-contract/nodefactory"
	"github.com/hvym/collective-contract/nodetoken"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const initialOpusSupply = 888

func TestCollectiveReadMethods(t *testing.T) {
	s := newCollectiveSuite(t)
	c := s.adminInvoker()

	c.Invoke(t, "HVYM", "symbol")
	c.Invoke(t, joinFee, "joinFee")
	c.Invoke(t, mintFee, "mintFee")
	c.Invoke(t, s.payToken.BytesBE(), "payToken")
	c.Invoke(t, common.Version, "version")
}

func TestJoin(t *testing.T) {
	s := newCollectiveSuite(t)

	acc := s.e.NewAccount(t)
	c := s.invoker(acc)
	c.InvokeFail(t, collective.ErrInsufficientFunds, "join", acc.ScriptHash())

	s.mintPay(t, acc.ScriptHash(), 100)

	stranger := s.e.NewAccount(t)
	s.invoker(stranger).InvokeFail(t, common.ErrOwnerWitnessFailed, "join", acc.ScriptHash())
	c.Invoke(t, false, "isMember", acc.ScriptHash())

	s.join(t, acc)
	require.EqualValues(t, 100-joinFee, s.payBalance(t, acc.ScriptHash()))
	require.EqualValues(t, joinFee, s.payBalance(t, s.collective))
	c.Invoke(t, true, "isMember", acc.ScriptHash())

	c.InvokeFail(t, collective.ErrAlreadyMember, "join", acc.ScriptHash())
}

func TestMemberPaid(t *testing.T) {
	s := newCollectiveSuite(t)

	acc := s.newMember(t, 100)
	c := s.invoker(acc)
	c.Invoke(t, joinFee, "memberPaid", acc.ScriptHash())

	// Fee updates never touch what a member already paid.
	s.adminInvoker().Invoke(t, 10, "updateJoinFee", 10)
	c.Invoke(t, joinFee, "memberPaid", acc.ScriptHash())

	outsider := s.e.NewAccount(t)
	s.invoker(outsider).InvokeFail(t, collective.ErrMemberMissing, "memberPaid", outsider.ScriptHash())
}

func TestUpdateJoinFee(t *testing.T) {
	s := newCollectiveSuite(t)

	early := s.newMember(t, 100)

	user := s.e.NewAccount(t)
	s.invoker(user).InvokeFail(t, common.ErrAdminWitnessFailed, "updateJoinFee", 10)
	s.adminInvoker().InvokeFail(t, collective.ErrBadFee, "updateJoinFee", -1)

	s.adminInvoker().Invoke(t, 10, "updateJoinFee", 10)
	s.adminInvoker().Invoke(t, 10, "joinFee")

	late := s.e.NewAccount(t)
	s.mintPay(t, late.ScriptHash(), 100)
	s.join(t, late)
	require.EqualValues(t, 90, s.payBalance(t, late.ScriptHash()))

	s.invoker(early).Invoke(t, joinFee, "memberPaid", early.ScriptHash())
}

func TestMembers(t *testing.T) {
	s := newCollectiveSuite(t)

	user := s.e.NewAccount(t)
	s.invoker(user).InvokeFail(t, common.ErrAdminWitnessFailed, "members")

	s.adminInvoker().Invoke(t, stackitem.NewArray([]stackitem.Item{}), "members")

	var expected []stackitem.Item
	for i := 0; i < 3; i++ {
		acc := s.newMember(t, 100)
		expected = append(expected, stackitem.NewStruct([]stackitem.Item{
			stackitem.NewByteArray(acc.ScriptHash().BytesBE()),
			stackitem.Make(joinFee),
		}))
	}

	// The list keeps join order.
	s.adminInvoker().Invoke(t, stackitem.NewArray(expected), "members")
}

func TestRemove(t *testing.T) {
	s := newCollectiveSuite(t)

	acc := s.newMember(t, 100)
	keep := s.newMember(t, 100)

	s.invoker(acc).InvokeFail(t, common.ErrAdminWitnessFailed, "remove", acc.ScriptHash())

	outsider := s.e.NewAccount(t)
	s.adminInvoker().InvokeFail(t, collective.ErrMemberMissing, "remove", outsider.ScriptHash())

	s.adminInvoker().Invoke(t, true, "remove", acc.ScriptHash())
	s.adminInvoker().Invoke(t, false, "isMember", acc.ScriptHash())
	s.adminInvoker().Invoke(t, true, "isMember", keep.ScriptHash())

	// Collected fees are kept and the member may join again.
	require.EqualValues(t, 2*joinFee, s.payBalance(t, s.collective))
	s.join(t, acc)
	s.adminInvoker().Invoke(t, true, "isMember", acc.ScriptHash())
}

func TestFundContract(t *testing.T) {
	s := newCollectiveSuite(t)

	patron := s.e.NewAccount(t)
	s.mintPay(t, patron.ScriptHash(), 500)

	c := s.invoker(patron)
	c.InvokeFail(t, collective.ErrBadAmount, "fundContract", patron.ScriptHash(), 0)

	stranger := s.e.NewAccount(t)
	s.invoker(stranger).InvokeFail(t, common.ErrOwnerWitnessFailed, "fundContract", patron.ScriptHash(), 500)

	c.Invoke(t, stackitem.Null{}, "fundContract", patron.ScriptHash(), 500)
	require.EqualValues(t, 500, s.payBalance(t, s.collective))
	require.EqualValues(t, 0, s.payBalance(t, patron.ScriptHash()))
}

func TestWithdraw(t *testing.T) {
	s := newCollectiveSuite(t)

	beneficiary := s.e.NewAccount(t)
	s.adminInvoker().InvokeFail(t, collective.ErrInsufficientTreasury, "withdraw", beneficiary.ScriptHash())

	acc := s.newMember(t, 100)
	s.invoker(acc).InvokeFail(t, common.ErrAdminWitnessFailed, "withdraw", acc.ScriptHash())

	// The whole treasury goes out at once.
	s.adminInvoker().Invoke(t, true, "withdraw", beneficiary.ScriptHash())
	require.EqualValues(t, joinFee, s.payBalance(t, beneficiary.ScriptHash()))
	require.EqualValues(t, 0, s.payBalance(t, s.collective))

	s.adminInvoker().InvokeFail(t, collective.ErrInsufficientTreasury, "withdraw", beneficiary.ScriptHash())
}

func TestLaunchOpus(t *testing.T) {
	s := newCollectiveSuite(t)

	s.adminInvoker().InvokeFail(t, collective.ErrNetworkNotUp, "opusAddress")

	user := s.e.NewAccount(t)
	s.invoker(user).InvokeFail(t, common.ErrAdminWitnessFailed, "launchOpus", initialOpusSupply)
	s.adminInvoker().InvokeFail(t, collective.ErrBadAmount, "launchOpus", -1)

	opus := s.launchOpus(t, initialOpusSupply)
	s.adminInvoker().Invoke(t, opus.BytesBE(), "opusAddress")

	opusInv := s.e.CommitteeInvoker(opus)
	opusInv.Invoke(t, "OPUS", "symbol")
	opusInv.Invoke(t, initialOpusSupply, "totalSupply")
	opusInv.Invoke(t, s.collective.BytesBE(), "owner")
	require.EqualValues(t, initialOpusSupply, s.tokenBalance(t, opus, s.collective))

	s.adminInvoker().InvokeFail(t, collective.ErrAlreadyLaunched, "launchOpus", initialOpusSupply)
}

func TestDeployNodeToken(t *testing.T) {
	s := newCollectiveSuite(t)

	descriptor := uuid.NewString()
	user := s.e.NewAccount(t)
	s.invoker(user).InvokeFail(t, collective.ErrUnauthorized, "deployNodeToken",
		user.ScriptHash(), "relay-01", descriptor)

	member := s.newMember(t, 100)
	tokenHash := s.nodeTokenHash(1)
	s.invoker(member).Invoke(t, tokenHash.BytesBE(), "deployNodeToken",
		member.ScriptHash(), "relay-01", descriptor)

	tok := s.e.CommitteeInvoker(tokenHash)
	tok.Invoke(t, "HVYMNODE", "symbol")
	tok.Invoke(t, "relay-01", "name")
	tok.Invoke(t, descriptor, "descriptor")
	tok.Invoke(t, member.ScriptHash().BytesBE(), "owner")
	tok.Invoke(t, 1, "balanceOf", member.ScriptHash())
	tok.Invoke(t, 0, "balanceOf", s.collective)

	// Node deployment is free for members, the join fee is all they paid.
	require.EqualValues(t, 100-joinFee, s.payBalance(t, member.ScriptHash()))

	// Every instance lands on its own hash.
	second := s.nodeTokenHash(2)
	require.NotEqual(t, tokenHash, second)
	s.invoker(member).Invoke(t, second.BytesBE(), "deployNodeToken",
		member.ScriptHash(), "relay-02", uuid.NewString())
	s.e.CommitteeInvoker(s.nodeFactory).Invoke(t, 2, "deployed")

	// Going around the collective is rejected.
	s.e.NewInvoker(s.nodeFactory, member).InvokeFail(t, nodefactory.ErrDeployAccessDenied,
		"deploy", member.ScriptHash(), "relay-03", descriptor)
}

func TestNodeTokenTransfer(t *testing.T) {
	s := newCollectiveSuite(t)

	member := s.newMember(t, 100)
	tokenHash := s.nodeTokenHash(1)
	s.invoker(member).Invoke(t, tokenHash.BytesBE(), "deployNodeToken",
		member.ScriptHash(), "relay-01", uuid.NewString())

	buyer := s.e.NewAccount(t)
	tok := s.e.NewInvoker(tokenHash, member)
	tok.InvokeFail(t, nodetoken.ErrBadAmount, "transfer", member.ScriptHash(), buyer.ScriptHash(), 2, nil)

	// Only the holder moves the unit.
	s.e.NewInvoker(tokenHash, buyer).Invoke(t, false, "transfer",
		member.ScriptHash(), buyer.ScriptHash(), 1, nil)

	tok.Invoke(t, true, "transfer", member.ScriptHash(), buyer.ScriptHash(), 1, nil)
	tok.Invoke(t, buyer.ScriptHash().BytesBE(), "owner")
	tok.Invoke(t, 0, "balanceOf", member.ScriptHash())
	tok.Invoke(t, 1, "balanceOf", buyer.ScriptHash())
}

func TestDeployIpfsToken(t *testing.T) {
	s := newCollectiveSuite(t)

	member := s.newMember(t, 100)
	cid := randomCID()
	fileArgs := []any{member.ScriptHash(), "whitepaper.pdf", cid, "application/pdf",
		"https://ipfs.io/ipfs/", ""}

	s.invoker(member).InvokeFail(t, collective.ErrNetworkNotUp, "deployIpfsToken", fileArgs...)

	opus := s.launchOpus(t, initialOpusSupply)

	user := s.e.NewAccount(t)
	s.invoker(user).InvokeFail(t, collective.ErrUnauthorized, "deployIpfsToken",
		user.ScriptHash(), "whitepaper.pdf", cid, "application/pdf", "", "")

	poor := s.newMember(t, joinFee)
	s.invoker(poor).InvokeFail(t, collective.ErrInsufficientFunds, "deployIpfsToken",
		poor.ScriptHash(), "whitepaper.pdf", cid, "application/pdf", "", "")

	tokenHash := s.ipfsTokenHash(1)
	s.invoker(member).Invoke(t, tokenHash.BytesBE(), "deployIpfsToken", fileArgs...)
	published := int64(s.e.TopBlock(t).Timestamp)

	// Join and mint fees are collected, the mint fee comes back as opus.
	require.EqualValues(t, 100-joinFee-mintFee, s.payBalance(t, member.ScriptHash()))
	require.EqualValues(t, 2*joinFee+mintFee, s.payBalance(t, s.collective))
	require.EqualValues(t, mintFee, s.tokenBalance(t, opus, member.ScriptHash()))
	s.e.CommitteeInvoker(opus).Invoke(t, initialOpusSupply+mintFee, "totalSupply")

	tok := s.e.CommitteeInvoker(tokenHash)
	tok.Invoke(t, "HVYMFILE", "symbol")
	tok.Invoke(t, "whitepaper.pdf", "name")
	tok.Invoke(t, cid, "ipfsHash")
	tok.Invoke(t, "application/pdf", "fileType")
	tok.Invoke(t, "https://ipfs.io/ipfs/", "gateways")
	tok.Invoke(t, "", "ipnsHash")
	tok.Invoke(t, published, "published")
	tok.Invoke(t, member.ScriptHash().BytesBE(), "owner")

	// The file owner mints access units on their own token.
	memberTok := s.e.NewInvoker(tokenHash, member)
	memberTok.Invoke(t, stackitem.Null{}, "mint", member.ScriptHash(), 10)
	tok.Invoke(t, 10, "balanceOf", member.ScriptHash())
	tok.Invoke(t, 10, "totalSupply")

	s.e.CommitteeInvoker(s.ipfsFactory).Invoke(t, 1, "deployed")
	s.e.NewInvoker(s.ipfsFactory, member).InvokeFail(t, ipfsfactory.ErrDeployAccessDenied,
		"deploy", member.ScriptHash(), "whitepaper.pdf", cid, "application/pdf", 0, "", "")
}

func TestTreasuryPayments(t *testing.T) {
	s := newCollectiveSuite(t)

	acc := s.e.NewAccount(t)
	s.mintPay(t, acc.ScriptHash(), 50)

	// Direct payment token transfers land in the treasury.
	s.e.NewInvoker(s.payToken, acc).Invoke(t, true, "transfer",
		acc.ScriptHash(), s.collective, 50, nil)
	require.EqualValues(t, 50, s.payBalance(t, s.collective))

	// Anything else bounces.
	member := s.newMember(t, 100)
	tokenHash := s.nodeTokenHash(1)
	s.invoker(member).Invoke(t, tokenHash.BytesBE(), "deployNodeToken",
		member.ScriptHash(), "relay-01", uuid.NewString())
	s.e.NewInvoker(tokenHash, member).InvokeFail(t, "payment token only", "transfer",
		member.ScriptHash(), s.collective, 1, nil)
}

func TestPrune(t *testing.T) {
	s := newCollectiveSuite(t)

	acc := s.newMember(t, 100)
	s.invoker(acc).InvokeFail(t, common.ErrAdminWitnessFailed, "prune", int(common.TierEphemeral))
	s.adminInvoker().InvokeFail(t, common.ErrTierImmutable, "prune", int(common.TierDurable))

	s.adminInvoker().Invoke(t, stackitem.Null{}, "prune", int(common.TierEphemeral))
	s.adminInvoker().Invoke(t, stackitem.Null{}, "prune", int(common.TierPrunable))

	// Membership lives in the durable tier and survives pruning.
	s.adminInvoker().Invoke(t, true, "isMember", acc.ScriptHash())
}

// TestCollectiveLifecycle runs the reference deployment end to end: a
// funded treasury, a paying member, the opus bootstrap, a published file
// and a full withdrawal.
func TestCollectiveLifecycle(t *testing.T) {
	s := newCollectiveSuite(t)

	patron := s.e.NewAccount(t)
	s.mintPay(t, patron.ScriptHash(), 500)
	s.invoker(patron).Invoke(t, stackitem.Null{}, "fundContract", patron.ScriptHash(), 500)

	member := s.newMember(t, 100)
	require.EqualValues(t, 507, s.payBalance(t, s.collective))

	opus := s.launchOpus(t, initialOpusSupply)

	s.invoker(member).Invoke(t, s.ipfsTokenHash(1).BytesBE(), "deployIpfsToken",
		member.ScriptHash(), "model.glb", randomCID(), "model/gltf-binary",
		"https://ipfs.io/ipfs/", "")
	require.EqualValues(t, 514, s.payBalance(t, s.collective))
	require.EqualValues(t, 86, s.payBalance(t, member.ScriptHash()))
	require.EqualValues(t, mintFee, s.tokenBalance(t, opus, member.ScriptHash()))

	beneficiary := s.e.NewAccount(t)
	s.adminInvoker().Invoke(t, true, "withdraw", beneficiary.ScriptHash())
	require.EqualValues(t, 514, s.payBalance(t, beneficiary.ScriptHash()))
	require.EqualValues(t, 0, s.payBalance(t, s.collective))
}
