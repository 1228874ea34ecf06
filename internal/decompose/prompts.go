package decompose

import (
	"fmt"

	"github.com/alexanderramin/holotask/internal/llm"
)

const systemPrompt = `You break personal to-do items into a few small, concrete steps.
Respond with a single JSON object and nothing else.
"subtasks" holds 3 to 5 short imperative steps in the order they should be done.
"estimatedTime" is a rough human-readable duration such as "2 hours".
"category" is one or two words describing the kind of work.`

const refinementSchemaDoc = `{
	"type": "object",
	"properties": {
		"subtasks": {
			"type": "array",
			"items": {"type": "string"}
		},
		"estimatedTime": {"type": "string"},
		"category": {"type": "string"}
	},
	"required": ["subtasks", "estimatedTime", "category"]
}`

var refinementSchema = llm.MustCompileSchema("refinement", refinementSchemaDoc)

func userPrompt(text string) string {
	return fmt.Sprintf("Decompose this task into a few logical subtasks and categorize it: \"%s\"", text)
}
