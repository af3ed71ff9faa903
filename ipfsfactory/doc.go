/*
IPFS factory deploys IPFS file token contracts on behalf of the HVYM
collective.

The factory stores the compiled IPFS token template (NEF plus a manifest
split around the contract name) at deploy time and instantiates it with
per-file metadata on every deploy call. Only the collective contract may
call deploy: it is the one charging the mint fee and minting the opus
reward.

# Contract notifications

Deployed notification. Produced on every instantiation.

	Deployed:
	  - name: owner
	    type: Hash160
	  - name: contract
	    type: Hash160
*/
package ipfsfactory
