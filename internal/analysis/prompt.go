package analysis

import "fmt"

// infraTypeLabels maps machine type codes to the human labels used in the
// prompt. Unknown codes pass through verbatim; type validity is enforced by
// the submission handler, not here.
var infraTypeLabels = map[string]string{
	"water":       "Drinking Water",
	"toilet":      "Toilet",
	"streetlight": "Streetlight",
	"ramp":        "Ramp",
}

// promptTemplate asks exactly four questions and demands a single strict JSON
// object. The key names and value types are part of the model contract and
// must match what the parser enforces.
const promptTemplate = `You are an infrastructure auditor. Based on the image and user feedback, answer strictly in JSON format only.

Questions:
1. Is the infrastructure physically present? (true/false)
2. Is it usable for its intended public purpose? (true/false)
3. Give a brief evidence-based explanation.
4. Assign a usability score from 0 to 100.

Infrastructure Type: %s
User Feedback: %s

Respond ONLY with valid JSON:
{
  "exists": true/false,
  "usable": true/false,
  "reason": "brief explanation",
  "usability_score": number
}`

// InfraTypeLabel resolves the human label for a type code.
func InfraTypeLabel(infraType string) string {
	if label, ok := infraTypeLabels[infraType]; ok {
		return label
	}
	return infraType
}

// BuildPrompt composes the deterministic instruction prompt from the type
// code and the already-sanitized user comment.
func BuildPrompt(infraType, comment string) string {
	return fmt.Sprintf(promptTemplate, InfraTypeLabel(infraType), comment)
}
