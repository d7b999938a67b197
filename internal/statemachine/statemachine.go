// Package statemachine defines the legal status transitions for purchases
// and top-ups and the balance effect each edge carries. Every status write
// in the service layer goes through these tables; an edge missing here is an
// illegal transition.
package statemachine

import (
	"errors"

	"github.com/jasenardian/react-digital-clean/internal/model"
)

var ErrInvalidTransition = errors.New("INVALID_TRANSITION")

// ErrNoTransition marks a same-state request. Callers treat it as a replay
// and no-op instead of failing.
var ErrNoTransition = errors.New("NO_TRANSITION")

// Effect is the balance mutation attached to a transition.
type Effect int

const (
	EffectNone Effect = iota
	// EffectDebit subtracts the record amount from the account.
	EffectDebit
	// EffectCredit adds the record amount to the account. On a purchase this
	// is the reversal of an earlier debit.
	EffectCredit
)

type purchaseEdge struct {
	from model.TransactionStatus
	to   model.TransactionStatus
}

var purchaseEdges = map[purchaseEdge]Effect{
	{model.TransactionStatusPending, model.TransactionStatusSuccess}:   EffectDebit,
	{model.TransactionStatusPending, model.TransactionStatusFailed}:    EffectNone,
	{model.TransactionStatusPending, model.TransactionStatusCancelled}: EffectNone,
	{model.TransactionStatusSuccess, model.TransactionStatusFailed}:    EffectCredit,
	{model.TransactionStatusSuccess, model.TransactionStatusCancelled}: EffectCredit,
}

// PurchaseNext returns the effect of moving a purchase transaction from one
// status to another. The balance is deliberately not re-checked on
// pending->success: sufficiency is advisory at checkout time only, so an
// admin override may drive a balance negative.
func PurchaseNext(from, to model.TransactionStatus) (Effect, error) {
	if from == to {
		return EffectNone, ErrNoTransition
	}

	effect, ok := purchaseEdges[purchaseEdge{from, to}]
	if !ok {
		return EffectNone, ErrInvalidTransition
	}

	return effect, nil
}

type topUpEdge struct {
	from model.TopUpStatus
	to   model.TopUpStatus
}

var topUpEdges = map[topUpEdge]Effect{
	{model.TopUpStatusPending, model.TopUpStatusSuccess}: EffectCredit,
	{model.TopUpStatusPending, model.TopUpStatusFailed}:  EffectNone,
}

// TopUpNext returns the effect of moving a top-up from one status to
// another. Terminal states accept nothing.
func TopUpNext(from, to model.TopUpStatus) (Effect, error) {
	if from == to {
		return EffectNone, ErrNoTransition
	}

	effect, ok := topUpEdges[topUpEdge{from, to}]
	if !ok {
		return EffectNone, ErrInvalidTransition
	}

	return effect, nil
}
