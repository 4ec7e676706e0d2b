package ownership

import (
	"fmt"
	"noping/errors"
)

type Action string

const (
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
	ActionReply  Action = "reply"
)

type Stage string

const (
	StageIdle                   Stage = "idle"
	StageAwaitingOwnershipCheck Stage = "awaiting_ownership_check"
	StageAuthorized             Stage = "authorized"
	StageDenied                 Stage = "denied"
	StageAwaitingFormInput      Stage = "awaiting_form_input"
	StageAwaitingApply          Stage = "awaiting_apply"
	StageApplied                Stage = "applied"
)

var transitions = map[Stage][]Stage{
	StageIdle:                   {StageAwaitingOwnershipCheck},
	StageAwaitingOwnershipCheck: {StageAuthorized, StageDenied},
	StageAuthorized:             {StageAwaitingFormInput},
	StageAwaitingFormInput:      {StageAwaitingApply, StageIdle},
	StageAwaitingApply:          {StageApplied},
}

// Interaction follows one edit, delete or reply on one message.
// Open and submit arrive as separate requests; the submit side resumes at
// StageAwaitingFormInput once the token is back.
type Interaction struct {
	Action Action
	stage  Stage
}

func NewInteraction(action Action) *Interaction {
	return &Interaction{Action: action, stage: StageIdle}
}

// Resume picks an interaction back up when its form is submitted or closed.
func Resume(action Action) *Interaction {
	return &Interaction{Action: action, stage: StageAwaitingFormInput}
}

func (i *Interaction) Stage() Stage {
	return i.stage
}

// Advance moves to the next stage, refusing anything the state machine does not allow.
func (i *Interaction) Advance(to Stage) error {
	for _, allowed := range transitions[i.stage] {
		if allowed == to {
			i.stage = to
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", errors.ErrInvalidTransition, i.stage, to)
}

// Check runs the ownership decision and lands on Authorized or Denied.
func (i *Interaction) Check(owned bool) error {
	if err := i.Advance(StageAwaitingOwnershipCheck); err != nil {
		return err
	}
	if owned {
		return i.Advance(StageAuthorized)
	}
	return i.Advance(StageDenied)
}

func (i *Interaction) Authorized() bool {
	switch i.stage {
	case StageAuthorized, StageAwaitingFormInput, StageAwaitingApply, StageApplied:
		return true
	default:
		return false
	}
}

// Terminal reports whether nothing can follow the current stage.
func (i *Interaction) Terminal() bool {
	return len(transitions[i.stage]) == 0
}
