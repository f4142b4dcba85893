package agent

import (
	"fmt"
)

// ErrRoundLimit indicates a conversation was configured with an unusable round budget
type ErrRoundLimit struct {
	MaxRound int
}

func (e *ErrRoundLimit) Error() string {
	return fmt.Sprintf("round limit: max round must be at least 1 (got %d)", e.MaxRound)
}

// ErrAgentReply indicates a participant failed while producing its reply
type ErrAgentReply struct {
	Agent string
	Round int
	Err   error
}

func (e *ErrAgentReply) Error() string {
	return fmt.Sprintf("agent reply error (%s, round %d): %v", e.Agent, e.Round, e.Err)
}

func (e *ErrAgentReply) Unwrap() error {
	return e.Err
}

// ErrNoParticipants indicates a conversation has nobody to talk to
type ErrNoParticipants struct {
	Starter string
}

func (e *ErrNoParticipants) Error() string {
	return fmt.Sprintf("group chat started by %s has no other participants", e.Starter)
}
