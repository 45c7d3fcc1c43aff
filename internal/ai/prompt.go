package ai

import "fmt"

// Sentinel is the exact reply the model is told to give when a request
// cannot be broken into tasks.
const Sentinel = "I need more information to generate tasks for that."

const instructionTemplate = `You are an expert task list generator. Based on the following user request, provide a concise list of actionable todo tasks.

**Instructions:**
1. List only the tasks. Do NOT include any introductory or concluding sentences, greetings, or numbering (like 1., -, *).
2. Each task must be on a new line.
3. Even if the request is a bit vague, try your best to provide a sensible list of generic tasks that fit the topic. Do NOT ask for more information unless the request is completely nonsensical or unrelated to tasks.
4. If the request is truly incomprehensible or cannot be broken into tasks, respond with the exact phrase "%s"

User Request: "%s"

Tasks:
`

// BuildPrompt wraps the user's request in the fixed instruction template.
func BuildPrompt(userPrompt string) string {
	return fmt.Sprintf(instructionTemplate, Sentinel, userPrompt)
}
