package summarizer

import (
	"strings"
	"testing"
)

func TestBuildPrompts(t *testing.T) {
	req := Request{
		Transcript: "we will migrate the billing service in Q3",
		Date:       "2025-06-02",
		Attendees:  "Alice, Bob",
		Topic:      "Billing roadmap",
	}

	system, user := buildPrompts(req)

	for _, s := range sections {
		if !strings.Contains(system, "**"+s) {
			t.Errorf("system prompt is missing heading %q", s)
		}
	}
	for _, want := range []string{"**Date:** 2025-06-02", "**Attendees:** Alice, Bob", "**Topic:** Billing roadmap"} {
		if !strings.Contains(system, want) {
			t.Errorf("system prompt is missing %q", want)
		}
	}
	if !strings.Contains(user, "\"\"\"\n"+req.Transcript+"\n\"\"\"") {
		t.Errorf("user prompt does not quote the transcript:\n%s", user)
	}
}

func TestMissingSections(t *testing.T) {
	system, _ := buildPrompts(Request{Date: "2025-06-02", Attendees: "Alice", Topic: "Billing"})
	if got := missingSections(system); len(got) != 0 {
		t.Errorf("missingSections(template) = %v, want none", got)
	}

	got := missingSections("**Meeting Minutes Summary**\n\n**Date:** 2025-06-02\n\n**Action Items:**\n- ship")
	want := "Attendees,Topic,Key Discussion Points,Decisions and Next Steps"
	if strings.Join(got, ",") != want {
		t.Errorf("missingSections() = %v, want %s", got, want)
	}
}
