package testutil

import (
	"time"

	"github.com/hupe1980/homemesh/core"
)

// Descriptor builds an agent descriptor with a local endpoint derived from
// the id.
func Descriptor(id, description string, skills ...string) core.AgentDescriptor {
	return core.AgentDescriptor{ID: id, Description: description, Skills: skills, Endpoint: "local:" + id}
}

// SuccessTurn builds a completed single-agent turn handled by agentID.
func SuccessTurn(agentID, inputText, payload string) core.Turn {
	return core.Turn{
		ID:    "turn-" + agentID,
		Input: core.TurnInput{Text: inputText},
		Plan: []core.PlanStep{
			{AgentID: agentID, Payload: core.InvocationPayload{Text: inputText}},
		},
		Outcomes: []core.AgentOutcome{core.SuccessOutcome(agentID, payload)},
		Result:   &core.AggregatedResult{Payload: payload},
		Created:  time.Now(),
	}
}

// FailedTurn builds a turn that terminated with the given error message.
func FailedTurn(inputText, errMsg string) core.Turn {
	return core.Turn{
		ID:      "turn-failed",
		Input:   core.TurnInput{Text: inputText},
		Error:   errMsg,
		Created: time.Now(),
	}
}
