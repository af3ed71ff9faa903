/*
Opus token is the NEP-17 reward token of the HVYM network.

A single instance is deployed by the collective contract when the
administrator launches the reward network. The collective owns the token:
only it can mint, which it does to reward members for IPFS token
deployments. The initial supply is minted to the collective itself at
deploy time.

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
package opustoken
