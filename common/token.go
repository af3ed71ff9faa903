package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
)

// ErrTransferFailed appears when a NEP-17 transfer returns false or
// the token contract rejects the call.
const ErrTransferFailed = "token transfer failed"

// BalanceOf returns the NEP-17 balance of the account in the given token
// contract.
func BalanceOf(token, account interop.Hash160) int {
	return contract.Call(token, "balanceOf", contract.ReadOnly, account).(int)
}

// TransferTokens moves amount of the given NEP-17 token between accounts.
// It panics with ErrTransferFailed if the token contract returns false.
func TransferTokens(token, from, to interop.Hash160, amount int) {
	if !contract.Call(token, "transfer", contract.All, from, to, amount, nil).(bool) {
		panic(ErrTransferFailed)
	}
}

// MintTokens asks the given token contract to mint amount of new tokens
// to the account. The token decides whether the caller is allowed to mint.
func MintTokens(token, to interop.Hash160, amount int) {
	contract.Call(token, "mint", contract.All, to, amount)
}
