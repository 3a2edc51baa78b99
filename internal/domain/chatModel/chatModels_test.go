package chatModel

import "testing"

func TestRenderTranscript(t *testing.T) {
	turns := []Turn{
		{Role: RoleUser, Text: "what is recursion?"},
		{Role: RoleAssistant, Text: "a function calling itself"},
	}

	got := RenderTranscript(turns)
	want := "user: what is recursion?\nassistant: a function calling itself"
	if got != want {
		t.Errorf("RenderTranscript got %q, want %q", got, want)
	}

	if RenderTranscript(nil) != "" {
		t.Error("empty turn list should render to empty string")
	}
}
