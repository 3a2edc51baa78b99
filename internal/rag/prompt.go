package rag

import "strings"

// Prompt assembly keeps a fixed section order: conversation history,
// then retrieved context, then the question. The tutoring instruction
// itself rides as the system message on the provider call.

func BuildRAGPrompt(transcript string, retrievedContext string, question string) string {
	var b strings.Builder
	writeHistory(&b, transcript)
	b.WriteString("Context from the study material:\n")
	b.WriteString(retrievedContext)
	b.WriteString("\n\n")
	b.WriteString("Question: ")
	b.WriteString(question)
	return b.String()
}

// BuildOpenPrompt is the no-document form: same layout minus the
// context section.
func BuildOpenPrompt(transcript string, question string) string {
	var b strings.Builder
	writeHistory(&b, transcript)
	b.WriteString("Question: ")
	b.WriteString(question)
	return b.String()
}

func writeHistory(b *strings.Builder, transcript string) {
	if transcript == "" {
		return
	}
	b.WriteString("Conversation so far:\n")
	b.WriteString(transcript)
	b.WriteString("\n\n")
}
