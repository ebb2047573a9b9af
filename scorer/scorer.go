// Package scorer provides the shared prompt and response handling for
// model-backed intent scoring strategies. The concrete provider adapters
// live in the openai and anthropic subpackages; both implement the router's
// Scorer interface by asking a chat model to rate, on a 0..1 scale, how well
// an agent's capability summary matches the user input.
package scorer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hupe1980/homemesh/core"
)

// SystemPrompt instructs the model to answer with a bare confidence value.
const SystemPrompt = `You classify smart-home requests against agent capability descriptions.
Reply with a single number between 0.0 and 1.0: the confidence that the described agent should handle the request.
Reply with the number only, no explanation.`

// BuildPrompt renders the classification prompt for one input/agent pair.
func BuildPrompt(input string, descriptor core.AgentDescriptor) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Agent %q: %s\n", descriptor.ID, descriptor.Description)
	if len(descriptor.Skills) > 0 {
		fmt.Fprintf(&sb, "Skills: %s\n", strings.Join(descriptor.Skills, ", "))
	}
	fmt.Fprintf(&sb, "Request: %s", input)
	return sb.String()
}

// ParseConfidence extracts the confidence value from a model reply, clamping
// it to the 0..1 range. Unparseable replies score 0 so a confused model
// never routes a turn on its own.
func ParseConfidence(reply string) float64 {
	fields := strings.Fields(strings.TrimSpace(reply))
	if len(fields) == 0 {
		return 0
	}
	value, err := strconv.ParseFloat(strings.Trim(fields[0], ",;"), 64)
	if err != nil {
		return 0
	}
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
