package entity

import "fmt"

type Prompt struct {
	ID   string
	Text string
}

const sopPrompt = `Generate a detailed Standard Operating Procedure (SOP) for the following finance task: "%s"

Please provide the output as a JSON object with exactly two keys:
{
    "title": "SOP title",
    "content": "Detailed step-by-step procedure"
}

Make sure the content is clear, actionable and includes all necessary steps.`

var SOPPrompt = Prompt{
	ID:   "sop",
	Text: sopPrompt,
}

// Render embeds the task verbatim into the prompt text.
func (p Prompt) Render(task string) string {
	return fmt.Sprintf(p.Text, task)
}
