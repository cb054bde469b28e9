package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
)

// ErrWitnessFailed appears when the method must be called
// using certain account but was not.
const ErrWitnessFailed = "witness check failed"

// CheckWitness checks witness of the passed caller.
// It panics with ErrWitnessFailed message on fail.
func CheckWitness(caller interop.Hash160) {
	checkWitnessWithPanic(caller, ErrWitnessFailed)
}

// CheckWitnessWithMessage is like CheckWitness but panics with the given
// message.
func CheckWitnessWithMessage(caller interop.Hash160, msg string) {
	checkWitnessWithPanic(caller, msg)
}

// HasWitness returns true if the account is set and witnessed the current
// invocation. Empty accounts are never witnessed.
func HasWitness(acc interop.Hash160) bool {
	return IsValidAccount(acc) && runtime.CheckWitness(acc)
}

func checkWitnessWithPanic(caller interop.Hash160, panicMsg string) {
	if !HasWitness(caller) {
		panic(panicMsg)
	}
}
