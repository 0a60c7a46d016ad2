package assistant

import (
	"strings"

	"github.com/upb/blog-platform/internal/kb"
	"github.com/upb/blog-platform/services/providers"
)

const supportInstruction = "You are a helpful support assistant for a simple blogging platform. " +
	"Use the knowledge base provided when answering. If the KB doesn't answer the question, " +
	"say you don't know and suggest contacting support."

// buildMessages assembles the completion conversation: the fixed support
// instruction, the whole knowledge base, then the raw question.
func buildMessages(entries []kb.Entry, question string) []providers.Message {
	return []providers.Message{
		{Role: providers.RoleSystem, Content: supportInstruction},
		{Role: providers.RoleSystem, Content: knowledgeBaseContext(entries)},
		{Role: providers.RoleUser, Content: question},
	}
}

func knowledgeBaseContext(entries []kb.Entry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, "- "+e.Title+": "+e.Content)
	}
	return "Knowledge Base:\n" + strings.Join(lines, "\n")
}

func formatEntry(e *kb.Entry) string {
	return "**" + e.Title + "**\n\n" + e.Content
}
