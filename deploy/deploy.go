// Package deploy provides the HVYM collective deployment procedure.
package deploy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"
)

// Blockchain groups services provided by particular Neo blockchain network
// that are required for the collective deployment.
type Blockchain interface {
	// RPCActor groups functions needed to compose, send and wait for
	// transactions.
	actor.RPCActor

	// GetContractStateByHash returns network state of the smart contract
	// by its address. Returns an error with 'Unknown contract' substring
	// if the requested contract is missing.
	GetContractStateByHash(util.Uint160) (*state.Contract, error)
}

// CommonDeployPrm groups compiled artifacts of a smart contract.
type CommonDeployPrm struct {
	NEF      nef.File
	Manifest manifest.Manifest
}

// CollectivePrm groups deployment parameters of the collective contract.
type CollectivePrm struct {
	Common CommonDeployPrm

	// Administrator account controlling fees, withdrawals and the opus
	// bootstrap.
	Admin util.Uint160
	// NEP-17 contract the collective charges fees in.
	PayToken util.Uint160

	JoinFee int64
	MintFee int64
}

// FactoryPrm groups deployment parameters of a token factory contract:
// the factory itself plus the token template it instantiates.
type FactoryPrm struct {
	Common CommonDeployPrm
	Token  CommonDeployPrm
}

// Prm groups all parameters of the collective deployment procedure.
type Prm struct {
	// Writes progress into the log. Optional.
	Logger *zap.Logger

	// Particular Neo blockchain instance to deploy to.
	Blockchain Blockchain

	// Local process account used for transaction signing (must be
	// unlocked).
	LocalAccount *wallet.Account

	Collective  CollectivePrm
	OpusToken   CommonDeployPrm
	NodeFactory FactoryPrm
	IPFSFactory FactoryPrm
}

// Addresses carries the contract addresses of a deployed collective.
// OpusToken is the address the reward token will land on once the
// administrator calls launchOpus: it is derived from the collective
// address and the stored template, so it is known in advance.
type Addresses struct {
	Collective  util.Uint160
	NodeFactory util.Uint160
	IPFSFactory util.Uint160
	OpusToken   util.Uint160
}

// Deploy sets up the HVYM collective on the Neo network represented by
// the given Prm.Blockchain: both token factories loaded with their
// templates and the collective contract wired to them and to the payment
// token.
//
// Contract addresses are computed from the compiled artifacts before
// anything is sent, which resolves the circular collective<->factory
// references. Already deployed contracts are recognized by address and
// skipped, so Deploy may be re-run after a partial failure.
func Deploy(ctx context.Context, prm Prm) (Addresses, error) {
	var res Addresses

	l := prm.Logger
	if l == nil {
		l = zap.NewNop()
	}

	act, err := actor.NewSimple(prm.Blockchain, prm.LocalAccount)
	if err != nil {
		return res, fmt.Errorf("init transaction sender from local account: %w", err)
	}

	deployer := prm.LocalAccount.ScriptHash()
	res.Collective = contractAddress(deployer, prm.Collective.Common)
	res.NodeFactory = contractAddress(deployer, prm.NodeFactory.Common)
	res.IPFSFactory = contractAddress(deployer, prm.IPFSFactory.Common)
	res.OpusToken = contractAddress(res.Collective, prm.OpusToken)

	d := contractDeployer{
		ctx:        ctx,
		logger:     l,
		blockchain: prm.Blockchain,
		mgmt:       management.New(act),
		act:        act,
	}

	nodeData, err := factoryData(res.Collective, prm.NodeFactory.Token)
	if err != nil {
		return res, fmt.Errorf("compose node factory data: %w", err)
	}
	err = d.deployContract(res.NodeFactory, prm.NodeFactory.Common, nodeData)
	if err != nil {
		return res, fmt.Errorf("deploy node factory: %w", err)
	}

	ipfsData, err := factoryData(res.Collective, prm.IPFSFactory.Token)
	if err != nil {
		return res, fmt.Errorf("compose IPFS factory data: %w", err)
	}
	err = d.deployContract(res.IPFSFactory, prm.IPFSFactory.Common, ipfsData)
	if err != nil {
		return res, fmt.Errorf("deploy IPFS factory: %w", err)
	}

	colData, err := collectiveData(res, prm)
	if err != nil {
		return res, fmt.Errorf("compose collective data: %w", err)
	}
	err = d.deployContract(res.Collective, prm.Collective.Common, colData)
	if err != nil {
		return res, fmt.Errorf("deploy collective: %w", err)
	}

	l.Info("collective deployed",
		zap.Stringer("collective", res.Collective),
		zap.Stringer("node factory", res.NodeFactory),
		zap.Stringer("ipfs factory", res.IPFSFactory),
		zap.Stringer("opus", res.OpusToken))

	return res, nil
}

type contractDeployer struct {
	ctx        context.Context
	logger     *zap.Logger
	blockchain Blockchain
	mgmt       *management.Contract
	act        *actor.Actor
}

// deployContract sends the deployment transaction for the contract
// expected to land on the given address and waits for it to persist.
// Does nothing when the address is already occupied.
func (d contractDeployer) deployContract(addr util.Uint160, c CommonDeployPrm, data []any) error {
	if err := d.ctx.Err(); err != nil {
		return err
	}

	l := d.logger.With(zap.String("contract", c.Manifest.Name), zap.Stringer("address", addr))

	alreadyDeployed, err := d.isDeployed(addr)
	if err != nil {
		return fmt.Errorf("check contract state: %w", err)
	}
	if alreadyDeployed {
		l.Info("contract is already deployed, skipping")
		return nil
	}

	l.Info("sending contract deployment transaction")

	txHash, vub, err := d.mgmt.Deploy(&c.NEF, &c.Manifest, data)
	if err != nil {
		return fmt.Errorf("send deployment transaction: %w", err)
	}

	rcpt, err := d.act.Wait(txHash, vub, nil)
	if err != nil {
		return fmt.Errorf("wait for deployment transaction: %w", err)
	}
	if rcpt.VMState != vmstate.Halt {
		return fmt.Errorf("deployment transaction faulted: %s", rcpt.FaultException)
	}

	l.Info("contract deployed", zap.Stringer("tx", txHash))
	return nil
}

func (d contractDeployer) isDeployed(addr util.Uint160) (bool, error) {
	_, err := d.blockchain.GetContractStateByHash(addr)
	if err == nil {
		return true, nil
	}
	if isErrContractNotFound(err) {
		return false, nil
	}
	return false, err
}

// contractAddress computes the address a contract deployed by the given
// account will land on.
func contractAddress(deployer util.Uint160, c CommonDeployPrm) util.Uint160 {
	return state.CreateContractHash(deployer, c.NEF.Checksum, c.Manifest.Name)
}

// factoryData composes the construction data of a factory contract: the
// collective address plus the token template in the split-manifest form
// factories store.
func factoryData(collective util.Uint160, token CommonDeployPrm) ([]any, error) {
	b, err := token.NEF.Bytes()
	if err != nil {
		return nil, fmt.Errorf("encode token NEF: %w", err)
	}

	head, tail, err := splitManifest(token.Manifest)
	if err != nil {
		return nil, fmt.Errorf("split token manifest: %w", err)
	}

	return []any{collective, b, head, tail}, nil
}

func collectiveData(addrs Addresses, prm Prm) ([]any, error) {
	b, err := prm.OpusToken.NEF.Bytes()
	if err != nil {
		return nil, fmt.Errorf("encode opus NEF: %w", err)
	}

	m, err := json.Marshal(prm.OpusToken.Manifest)
	if err != nil {
		return nil, fmt.Errorf("encode opus manifest: %w", err)
	}

	return []any{
		prm.Collective.Admin,
		prm.Collective.JoinFee,
		prm.Collective.MintFee,
		prm.Collective.PayToken,
		addrs.NodeFactory,
		addrs.IPFSFactory,
		b,
		m,
	}, nil
}

// splitManifest cuts the marshaled manifest into halves around the
// contract name value. Factories splice a unique instance name between
// them on every deployment.
func splitManifest(m manifest.Manifest) ([]byte, []byte, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, nil, err
	}

	needle := []byte(`"name":"` + m.Name + `"`)
	idx := bytes.Index(b, needle)
	if idx < 0 {
		return nil, nil, errors.New("manifest name not found in the encoding")
	}

	head := b[:idx+len(needle)-len(m.Name)-1]
	tail := b[idx+len(needle)-1:]
	return head, tail, nil
}

func isErrContractNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Unknown contract")
}
