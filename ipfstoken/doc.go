/*
IPFS token represents a file pinned to IPFS by an HVYM collective member.

Instances are deployed by the IPFS factory on behalf of the collective
contract. The content identifier, media type, gateway list, optional IPNS
hash and the ledger publication timestamp are fixed at deployment. The
owning member may mint fungible units of the token afterwards, for
example to sell access shares.

# Contract notifications

Transfer notification. This is the NEP-17 standard notification.

	Transfer:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer
*/
package ipfstoken
