package agent

import (
	"context"
)

// Participant defines the contract for anything that can take a turn in a conversation
type Participant interface {
	// Name is the speaker label recorded in the transcript
	Name() string

	// Generate produces the participant's next message given the transcript so far.
	// ok is false when the participant has nothing to say.
	Generate(ctx context.Context, transcript Transcript) (reply string, ok bool, err error)
}

// Ensure both participant kinds implement Participant
var (
	_ Participant = (*Assistant)(nil)
	_ Participant = (*UserProxy)(nil)
)
