package ai

import (
	"encoding/json"
	"fmt"
)

// SystemInstruction establishes the assistant role for every completion.
// The assistant provides health information, not medical advice, and must
// always include a disclaimer.
const SystemInstruction = "You are a helpful healthcare AI assistant that provides health summaries and general wellness information. Always include appropriate medical disclaimers."

const userInstruction = `
As a healthcare AI assistant, analyze the following patient health data and provide:
1. A comprehensive health summary
2. Key insights about their health trends
3. General wellness recommendations (not medical advice)

Health Data:
%s

Please provide a structured response that's easy to understand for the patient.
Include disclaimers that this is not medical advice and they should consult healthcare providers.
`

// ComposePrompt renders the user-role payload for a snapshot. The snapshot is
// embedded as indented JSON with canonical (struct-order) fields, so the same
// snapshot always yields the same payload. Content is passed through without
// validation; length limits are the completion gateway's concern.
func ComposePrompt(snap Snapshot) string {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		// Snapshot contains only plain data types; this cannot fail in
		// practice, but the composer must never error either way.
		data = []byte("{}")
	}
	return fmt.Sprintf(userInstruction, data)
}
