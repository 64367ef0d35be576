package summarizer

import (
	"fmt"
	"strings"
)

// The model must keep these bold labels verbatim; render and docx export rely on them.
const systemPromptTemplate = `
You are a meeting assistant.  You MUST output in Markdown, using **bold** for all headings exactly as shown.
Do NOT change the template or merge headings and content onto the same line, and keep these exact labels.

**Meeting Minutes Summary**

**Date:** %s

**Attendees:** %s

**Topic:** %s

________________________________________

**Key Discussion Points:**

1. **…**  
   - …  

________________________________________

**Decisions and Next Steps:**

- …  

________________________________________

**Action Items:**

- …  
`

const userPromptTemplate = `
Here is the transcript:

"""
%s
"""

Replace every placeholder bullet under each section above with actual points drawn from the transcript,
preserving all headings, separators, blank lines, and your exact **Date**, **Attendees**, and **Topic**.
`

// sections lists the headings every minutes document carries, in order
var sections = []string{
	"Meeting Minutes Summary",
	"Date",
	"Attendees",
	"Topic",
	"Key Discussion Points",
	"Decisions and Next Steps",
	"Action Items",
}

func buildPrompts(req Request) (system, user string) {
	system = fmt.Sprintf(systemPromptTemplate, req.Date, req.Attendees, req.Topic)
	user = fmt.Sprintf(userPromptTemplate, req.Transcript)
	return system, user
}

// missingSections lists the headings the model dropped from its reply
func missingSections(minutes string) []string {
	var missing []string
	for _, h := range sections {
		if !strings.Contains(minutes, "**"+h) {
			missing = append(missing, h)
		}
	}
	return missing
}
