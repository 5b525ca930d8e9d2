// Package flow holds the money-movement confirmation protocol: the deposit
// and withdrawal state machines and the pure view-selection projection the
// mobile client renders from. Nothing here touches storage or the network.
package flow

import (
	"slices"

	"github.com/ndome/investhub/internal/apperrors"
)

// Actor is the role allowed to trigger a transition.
type Actor string

const (
	ActorInvestor Actor = "investor"
	ActorAdmin    Actor = "admin"
)

// Action is a command issued against an entity.
type Action string

const (
	ActionUploadReceipt Action = "upload_receipt"
	ActionConfirmCash   Action = "confirm_cash"
	ActionVerify        Action = "verify"
	ActionConfirm       Action = "confirm"
	ActionDispute       Action = "dispute"
	ActionResolve       Action = "resolve"
	ActionCancel        Action = "cancel"
	ActionApprove       Action = "approve"
	ActionReject        Action = "reject"
	ActionMarkSent      Action = "mark_sent"
)

type Transition struct {
	From   string
	Action Action
	Actor  Actor
	To     string
}

type Machine struct {
	name        string
	transitions []Transition
	terminal    map[string]bool
	aliases     map[string]string
	statuses    map[string]bool
}

func newMachine(name string, transitions []Transition, terminal []string, aliases map[string]string) *Machine {
	m := &Machine{
		name:        name,
		transitions: transitions,
		terminal:    make(map[string]bool, len(terminal)),
		aliases:     aliases,
		statuses:    make(map[string]bool),
	}

	for _, s := range terminal {
		m.terminal[s] = true
		m.statuses[s] = true
	}
	for _, t := range transitions {
		m.statuses[t.From] = true
		m.statuses[t.To] = true
	}

	return m
}

// Canonical folds legacy status spellings onto the canonical set.
// Unknown statuses are returned unchanged; Next rejects them.
func (m *Machine) Canonical(status string) string {
	if canonical, ok := m.aliases[status]; ok {
		return canonical
	}
	return status
}

// Terminal reports whether no further transition may leave the status.
func (m *Machine) Terminal(status string) bool {
	return m.terminal[m.Canonical(status)]
}

// Next returns the status the entity moves to when actor performs action.
// The pair (status, action) not being in the table is a conflict
// (apperrors.ErrTransitionNotAllowed); the pair existing only for the other
// role is apperrors.ErrActorNotAllowed. The input status is never mutated.
func (m *Machine) Next(status string, action Action, actor Actor) (string, error) {
	from := m.Canonical(status)
	if !m.statuses[from] {
		return "", apperrors.ErrUnknownStatus
	}

	actionListed := false
	for _, t := range m.transitions {
		if t.From != from || t.Action != action {
			continue
		}
		if t.Actor == actor {
			return t.To, nil
		}
		actionListed = true
	}

	if actionListed {
		return "", apperrors.ErrActorNotAllowed
	}
	return "", apperrors.ErrTransitionNotAllowed
}

// Reached reports whether the status is one the action by that actor would
// have produced. The services answer duplicate commands whose outcome
// already stands with the current row instead of a conflict.
func (m *Machine) Reached(status string, action Action, actor Actor) bool {
	to := m.Canonical(status)
	for _, t := range m.transitions {
		if t.Action == action && t.Actor == actor && t.To == to {
			return true
		}
	}
	return false
}

// Actions lists the actions the actor may perform in the given status.
// The result is sorted and duplicate-free, so callers may rely on it being
// stable between calls.
func (m *Machine) Actions(status string, actor Actor) []Action {
	from := m.Canonical(status)

	actions := make([]Action, 0, 4)
	for _, t := range m.transitions {
		if t.From == from && t.Actor == actor && !slices.Contains(actions, t.Action) {
			actions = append(actions, t.Action)
		}
	}

	slices.Sort(actions)
	return actions
}
