package tests

import (
	"bytes"
	"encoding/json"
	"path"
	"strconv"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const (
	collectivePath  = "../collective"
	opusTokenPath   = "../opustoken"
	nodeTokenPath   = "../nodetoken"
	ipfsTokenPath   = "../ipfstoken"
	nodeFactoryPath = "../nodefactory"
	ipfsFactoryPath = "../ipfsfactory"

	opusTokenName      = "Opus Token"
	nodeInstancePrefix = "HVYM Node Token #"
	ipfsInstancePrefix = "HVYM IPFS Token #"

	joinFee = 7
	mintFee = 7
)

// collectiveSuite is the fully deployed contract set: the payment token,
// both factories loaded with their token templates and the collective
// wired to all of them. The committee plays the administrator.
type collectiveSuite struct {
	e *neotest.Executor

	collective  util.Uint160
	payToken    util.Uint160
	nodeFactory util.Uint160
	ipfsFactory util.Uint160

	opusNEF      *nef.File
	nodeTokenNEF *nef.File
	ipfsTokenNEF *nef.File
}

func compileContract(t *testing.T, e *neotest.Executor, ctrPath string) *neotest.Contract {
	return neotest.CompileFile(t, e.CommitteeHash, ctrPath, path.Join(ctrPath, "config.yml"))
}

// splitManifest splits the marshaled manifest into halves around the
// contract name value, the template form factories expect.
func splitManifest(t *testing.T, m *manifest.Manifest) ([]byte, []byte) {
	b, err := json.Marshal(m)
	require.NoError(t, err)

	needle := []byte(`"name":"` + m.Name + `"`)
	idx := bytes.Index(b, needle)
	require.True(t, idx >= 0, "manifest name not found")

	head := b[:idx+len(needle)-len(m.Name)-1]
	tail := b[idx+len(needle)-1:]
	return head, tail
}

func nefBytes(t *testing.T, f *nef.File) []byte {
	b, err := f.Bytes()
	require.NoError(t, err)
	return b
}

func deployFactory(t *testing.T, e *neotest.Executor, factory, template *neotest.Contract, collective util.Uint160) {
	head, tail := splitManifest(t, template.Manifest)
	e.DeployContract(t, factory, []any{collective, nefBytes(t, template.NEF), head, tail})
}

// newCollectiveSuite deploys the whole contract set with the committee as
// the administrator. Factory and collective hashes are precomputed from
// the compiled artifacts, so the circular collective<->factory references
// resolve without extra wiring calls.
func newCollectiveSuite(t *testing.T) *collectiveSuite {
	e := newExecutor(t)

	pay := compileContract(t, e, opusTokenPath)
	e.DeployContract(t, pay, []any{e.CommitteeHash, 0})

	opus := compileContract(t, e, opusTokenPath)
	nodeToken := compileContract(t, e, nodeTokenPath)
	ipfsToken := compileContract(t, e, ipfsTokenPath)

	collective := compileContract(t, e, collectivePath)
	nodeFactory := compileContract(t, e, nodeFactoryPath)
	ipfsFactory := compileContract(t, e, ipfsFactoryPath)

	deployFactory(t, e, nodeFactory, nodeToken, collective.Hash)
	deployFactory(t, e, ipfsFactory, ipfsToken, collective.Hash)

	opusManifest, err := json.Marshal(opus.Manifest)
	require.NoError(t, err)

	e.DeployContract(t, collective, []any{
		e.CommitteeHash, joinFee, mintFee, pay.Hash,
		nodeFactory.Hash, ipfsFactory.Hash,
		nefBytes(t, opus.NEF), opusManifest,
	})

	return &collectiveSuite{
		e:            e,
		collective:   collective.Hash,
		payToken:     pay.Hash,
		nodeFactory:  nodeFactory.Hash,
		ipfsFactory:  ipfsFactory.Hash,
		opusNEF:      opus.NEF,
		nodeTokenNEF: nodeToken.NEF,
		ipfsTokenNEF: ipfsToken.NEF,
	}
}

// adminInvoker is the collective invoker signed by the administrator.
func (s *collectiveSuite) adminInvoker() *neotest.ContractInvoker {
	return s.e.CommitteeInvoker(s.collective)
}

func (s *collectiveSuite) invoker(signers ...neotest.Signer) *neotest.ContractInvoker {
	return s.e.NewInvoker(s.collective, signers...)
}

// mintPay issues amount of the payment token to the account, signed by
// the committee owning the token.
func (s *collectiveSuite) mintPay(t *testing.T, to util.Uint160, amount int64) {
	s.e.CommitteeInvoker(s.payToken).Invoke(t, stackitem.Null{}, "mint", to, amount)
}

func (s *collectiveSuite) payBalance(t *testing.T, acc util.Uint160) int64 {
	return s.tokenBalance(t, s.payToken, acc)
}

func (s *collectiveSuite) tokenBalance(t *testing.T, token, acc util.Uint160) int64 {
	res, err := s.e.CommitteeInvoker(token).TestInvoke(t, "balanceOf", acc)
	require.NoError(t, err)
	return res.Pop().BigInt().Int64()
}

// newMember creates a new account with the given payment token balance
// and joins it to the collective.
func (s *collectiveSuite) newMember(t *testing.T, balance int64) neotest.Signer {
	acc := s.e.NewAccount(t)
	s.mintPay(t, acc.ScriptHash(), balance)
	s.join(t, acc)
	return acc
}

// join invokes join for the account and checks the returned member
// record.
func (s *collectiveSuite) join(t *testing.T, acc neotest.Signer) {
	fee := s.joinFee(t)
	s.invoker(acc).Invoke(t, stackitem.NewStruct([]stackitem.Item{
		stackitem.NewByteArray(acc.ScriptHash().BytesBE()),
		stackitem.Make(fee),
	}), "join", acc.ScriptHash())
}

func (s *collectiveSuite) joinFee(t *testing.T) int64 {
	res, err := s.adminInvoker().TestInvoke(t, "joinFee")
	require.NoError(t, err)
	return res.Pop().BigInt().Int64()
}

// launchOpus bootstraps the reward network and returns the deployed opus
// token hash.
func (s *collectiveSuite) launchOpus(t *testing.T, supply int64) util.Uint160 {
	opusHash := s.opusHash()
	s.adminInvoker().Invoke(t, opusHash.BytesBE(), "launchOpus", supply)
	return opusHash
}

// opusHash is the reward token hash the collective will deploy to:
// derived from the collective (deployer), the opus NEF checksum and the
// manifest name.
func (s *collectiveSuite) opusHash() util.Uint160 {
	return state.CreateContractHash(s.collective, s.opusNEF.Checksum, opusTokenName)
}

// nodeTokenHash returns the hash of the seq-th node token instance.
func (s *collectiveSuite) nodeTokenHash(seq int) util.Uint160 {
	return state.CreateContractHash(s.nodeFactory, s.nodeTokenNEF.Checksum,
		nodeInstancePrefix+strconv.Itoa(seq))
}

// ipfsTokenHash returns the hash of the seq-th IPFS token instance.
func (s *collectiveSuite) ipfsTokenHash(seq int) util.Uint160 {
	return state.CreateContractHash(s.ipfsFactory, s.ipfsTokenNEF.Checksum,
		ipfsInstancePrefix+strconv.Itoa(seq))
}
