package prompts

import "fmt"

// BuildSymptomPrompt renders the instruction sent to the model. The symptom
// text is embedded verbatim and the output schema is spelled out so the
// response can be validated field by field.
func BuildSymptomPrompt(symptoms string) string {
	return fmt.Sprintf(`You are a helpful medical assistant AI.
User symptoms: "%s"

Analyze these symptoms and identify possible conditions.
Also provide specific, actionable recommendations.
Determine if this is a medical emergency.

%s`, symptoms, SchemaContract)
}

// SchemaContract is the output contract appended to every prompt.
const SchemaContract = `Strictly output VALID JSON in the following format (no markdown code blocks):
{
  "conditions": [
    { "name": "Condition Name", "explanation": "Brief explanation of why this fits." }
  ],
  "recommendations": [
    { "action": "Action Title", "reason": "Why this action helps." }
  ],
  "disclaimer": "Standard medical disclaimer text.",
  "emergency_alert": boolean
}

The "emergency_alert" field must be a JSON boolean (true or false), not a string.
Do not wrap the JSON in a markdown code fence.`
