/*
Node token represents ownership of a single HVYM network node.

Instances are deployed by the node factory on behalf of the collective
contract, one per member request. The token is an indivisible NEP-17 asset:
exactly one unit exists and it is minted to the requesting member at deploy
time. Name and descriptor are fixed at deployment.

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
package nodetoken
