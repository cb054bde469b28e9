/*
Package respect contains implementation of the Respect contract.

Respect contract is a ledger of non-transferable reputation tokens issued by a
fractal. Every period the owner or the executor submits rankings of breakout
groups, each ranked account gets a token whose value depends on its rank
(5, 8, 13, 21, 34 or 55 for ranks from the lowest to the highest). The owner
can also issue tokens of other kinds directly.

Token ID is a 29-byte big-endian value: mint kind (1 byte), period (8 bytes)
and owner script hash (20 bytes). Kind 0 is reserved for rank submissions.
An account can get at most one token per kind and period.

# Contract notifications

Transfer notification. This notification is produced when a token is minted.
The sender is always null and the amount is always 1. If the owner of a
directly minted token is a contract, its onNEP11Payment method is called once
all writes of the invocation are done, a failure there reverts the mint. Rank
submissions do not call receivers.

	Transfer
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer
	  - name: tokenId
	    type: ByteArray

RanksSubmitted notification. This notification is produced when a rank
submission is accepted.

	RanksSubmitted
	  - name: period
	    type: Integer
	  - name: time
	    type: Integer
	  - name: count
	    type: Integer

AgreementSigned notification. This notification is produced by SignAgreement.

	AgreementSigned
	  - name: signer
	    type: Hash160
	  - name: agreement
	    type: String

RanksDelaySet, ExecutorSet and OwnershipTransferred notifications are produced
by the corresponding setters.

	RanksDelaySet
	  - name: delay
	    type: Integer
	ExecutorSet
	  - name: executor
	    type: Hash160
	OwnershipTransferred
	  - name: previous
	    type: Hash160
	  - name: owner
	    type: Hash160
*/
package respect

/*
Contract storage model.

# Summary
Key-value storage format:
  - 'owner' -> interop.Hash160
    owner (issuer) account
  - 'executor' -> interop.Hash160
    executor account, absent if not set
  - 'ranksDelay' -> int
    minimum time in milliseconds between rank submissions
  - 'lastRanksTime' -> int
    block time of the last accepted rank submission
  - 'periodNumber' -> int
    number of accepted rank submissions
  - 'tokenSupply' -> int
    number of minted tokens
  - 'totalSupply' -> int
    sum of values of minted tokens
  - 'name', 'symbol', 'intent', 'agreement' -> string
    ledger metadata
  - 0x01 + tokenID -> int
    token value
  - 0x02 + owner + tokenID -> tokenID
    tokens of the owner
  - 0x03 + owner -> int
    sum of token values of the owner
*/
