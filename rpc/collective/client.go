// Package collective contains RPC wrappers for the HVYM Collective
// contract.
package collective

import (
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// Invoker is used by ContractReader to call safe methods of the
// collective contract.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
}

// Actor is used by Contract to create and send state-changing
// transactions.
type Actor interface {
	Invoker

	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
}

// ContractReader provides safe (read-only) methods of the collective. Its
// methods don't change the blockchain state.
type ContractReader struct {
	invoker Invoker
	hash    util.Uint160
}

// Contract provides full collective interface, both safe and
// state-changing methods.
type Contract struct {
	ContractReader

	actor Actor
}

// NewReader creates an instance of ContractReader using the given
// contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker: invoker, hash: hash}
}

// New creates an instance of Contract using the given contract hash and
// the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{invoker: actor, hash: hash}, actor}
}

// Symbol returns the collective network ticker.
func (c *ContractReader) Symbol() (string, error) {
	return unwrap.PrintableASCIIString(c.invoker.Call(c.hash, "symbol"))
}

// JoinFee returns the fee charged from joining members.
func (c *ContractReader) JoinFee() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "joinFee"))
}

// MintFee returns the fee charged for IPFS token deployment.
func (c *ContractReader) MintFee() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "mintFee"))
}

// PayToken returns the payment token contract accepted by the collective.
func (c *ContractReader) PayToken() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "payToken"))
}

// IsMember checks current membership of the account.
func (c *ContractReader) IsMember(person util.Uint160) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isMember", person))
}

// OpusAddress returns the reward token contract hash. Fails until the
// administrator launches the opus network.
func (c *ContractReader) OpusAddress() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "opusAddress"))
}

// Version returns the version of the deployed contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// Join creates and sends a transaction that joins person to the
// collective, charging the current join fee. The transaction must be
// signed by person. Returns the transaction hash and its ValidUntilBlock
// value.
func (c *Contract) Join(person util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "join", person)
}

// Remove creates and sends a transaction that expels person from the
// collective. The transaction must be signed by the administrator.
func (c *Contract) Remove(person util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "remove", person)
}

// UpdateJoinFee creates and sends a transaction that replaces the join
// fee charged from future members. The transaction must be signed by the
// administrator.
func (c *Contract) UpdateJoinFee(fee int64) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "updateJoinFee", fee)
}

// FundContract creates and sends a transaction that donates amount of the
// payment token from the from account into the collective treasury. The
// transaction must be signed by from.
func (c *Contract) FundContract(from util.Uint160, amount int64) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "fundContract", from, amount)
}

// Withdraw creates and sends a transaction that moves the whole collected
// treasury to the to account. The transaction must be signed by the
// administrator.
func (c *Contract) Withdraw(to util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "withdraw", to)
}

// LaunchOpus creates and sends a transaction that deploys the opus reward
// token with the given initial supply minted to the collective. One-shot,
// the transaction must be signed by the administrator.
func (c *Contract) LaunchOpus(initialSupply int64) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "launchOpus", initialSupply)
}

// DeployNodeToken creates and sends a transaction that deploys a new node
// token owned by person. The transaction must be signed by person, who
// must be a collective member.
func (c *Contract) DeployNodeToken(person util.Uint160, name, descriptor string) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "deployNodeToken", person, name, descriptor)
}

// DeployIpfsToken creates and sends a transaction that charges the mint
// fee from person, deploys a new IPFS file token owned by them and
// rewards them with opus. The transaction must be signed by person, who
// must be a collective member.
func (c *Contract) DeployIpfsToken(person util.Uint160, name, ipfsHash, fileType, gateways, ipnsHash string) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "deployIpfsToken", person, name, ipfsHash, fileType, gateways, ipnsHash)
}

// Prune creates and sends a transaction that erases every record of a
// non-durable storage tier. The transaction must be signed by the
// administrator.
func (c *Contract) Prune(tier int64) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "prune", tier)
}
