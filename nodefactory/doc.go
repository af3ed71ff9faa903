/*
Node factory deploys node token contracts on behalf of the HVYM
collective.

The factory stores the compiled node token template (NEF plus a manifest
split around the contract name) at deploy time and instantiates it with
per-instance parameters on every deploy call. Only the collective contract
may call deploy: it is the one enforcing membership and fee rules.

# Contract notifications

Deployed notification. Produced on every instantiation.

	Deployed:
	  - name: owner
	    type: Hash160
	  - name: contract
	    type: Hash160
*/
package nodefactory
