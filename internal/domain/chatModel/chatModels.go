package chatModel

import (
	"context"
	"strings"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one utterance in a conversation's chronological log.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// TurnStore keeps an append-only log of turns per chat id. The window
// passed to RecentTurns is a read-time view, never a retention policy,
// and turns are never reordered or deduplicated.
type TurnStore interface {
	ValidateChatId(ctx context.Context, chatId string) bool
	InitNewChat(ctx context.Context, chatId string) error
	AppendTurns(ctx context.Context, chatId string, turns []Turn) error
	RecentTurns(ctx context.Context, chatId string, window int) ([]Turn, error)
}

// RenderTranscript renders turns oldest-first as "<role>: <text>" lines
// for prompt assembly.
func RenderTranscript(turns []Turn) string {
	if len(turns) == 0 {
		return ""
	}
	lines := make([]string, 0, len(turns))
	for _, t := range turns {
		lines = append(lines, string(t.Role)+": "+t.Text)
	}
	return strings.Join(lines, "\n")
}
