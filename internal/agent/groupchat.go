package agent

import (
	"context"
	"sprout/internal/logger"
)

// GroupChat is a fixed-order conversation among participants. The opening
// message counts as the first round; speakers then follow strictly
// round-robin until MaxRound messages exist or a speaker has nothing to say.
type GroupChat struct {
	Participants []Participant
	MaxRound     int
}

// NewGroupChat creates a round-robin group chat
func NewGroupChat(maxRound int, participants ...Participant) *GroupChat {
	return &GroupChat{Participants: participants, MaxRound: maxRound}
}

// Run starts the conversation with message spoken by starter and returns the transcript.
// On error the transcript collected so far is returned alongside it.
func (g *GroupChat) Run(ctx context.Context, starter Participant, message string) (Transcript, error) {
	if g.MaxRound < 1 {
		return nil, &ErrRoundLimit{MaxRound: g.MaxRound}
	}
	if len(g.Participants) < 2 {
		return nil, &ErrNoParticipants{Starter: starter.Name()}
	}

	log := logger.Ctx(ctx)
	transcript := Transcript{{Name: starter.Name(), Content: message}}
	speaker := starter

	for round := 2; round <= g.MaxRound; round++ {
		if err := ctx.Err(); err != nil {
			return transcript, err
		}

		speaker = g.nextSpeaker(speaker)
		log.Debug().
			Str("speaker", speaker.Name()).
			Int("round", round).
			Int("maxRound", g.MaxRound).
			Msg("Selecting next speaker")

		reply, ok, err := speaker.Generate(ctx, transcript)
		if err != nil {
			return transcript, &ErrAgentReply{Agent: speaker.Name(), Round: round, Err: err}
		}
		if !ok {
			log.Debug().Str("speaker", speaker.Name()).Msg("Speaker has no reply, ending conversation")
			break
		}
		transcript = append(transcript, Message{Name: speaker.Name(), Content: reply})
	}

	return transcript, nil
}

// nextSpeaker returns the participant after current, wrapping around. A
// speaker outside the roster hands the turn to the first participant.
func (g *GroupChat) nextSpeaker(current Participant) Participant {
	for i, p := range g.Participants {
		if p.Name() == current.Name() {
			return g.Participants[(i+1)%len(g.Participants)]
		}
	}
	return g.Participants[0]
}
