/*
Collective contract is the membership and treasury contract of the HVYM
network.

Anyone holding enough of the payment token may join the collective by paying
the current join fee into the contract treasury. The administrator set at
deploy time manages the member list, the fees and treasury withdrawals.
Members order deployments of their own asset contracts (node tokens and IPFS
file tokens) through the delegated factory contracts, and IPFS deployments
are rewarded 1:1 in the opus token once the administrator has launched it.

Every method is a single atomic unit: authorization and precondition checks
come first, then storage writes and cross-contract calls (payment transfer,
factory deployment, reward mint). A panic anywhere reverts the whole
invocation, so a charged fee can never outlive a failed deployment.

# Contract notifications

Join notification. Produced when a new member joins.

	Join:
	  - name: member
	    type: Hash160
	  - name: paid
	    type: Integer

Removed notification. Produced when the administrator expels a member.

	Removed:
	  - name: member
	    type: Hash160

FeeUpdated notification. Produced when the join fee changes.

	FeeUpdated:
	  - name: fee
	    type: Integer

Funded notification. Produced on treasury donations.

	Funded:
	  - name: from
	    type: Hash160
	  - name: amount
	    type: Integer

Withdrawal notification. Produced when the administrator drains the
treasury.

	Withdrawal:
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer

OpusLaunched notification. Produced exactly once, when the reward token is
deployed.

	OpusLaunched:
	  - name: opus
	    type: Hash160
	  - name: initialSupply
	    type: Integer

NodeTokenDeployed and IPFSTokenDeployed notifications. Produced when a
member's asset contract is deployed.

	NodeTokenDeployed:
	  - name: owner
	    type: Hash160
	  - name: contract
	    type: Hash160

	IPFSTokenDeployed:
	  - name: owner
	    type: Hash160
	  - name: contract
	    type: Hash160
*/
package collective
