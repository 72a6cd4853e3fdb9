package services

import (
	"fmt"
	"sort"
	"strings"

	"codecoach-backend/internal/models"
)

// socraticSystem is the standard tutoring behavior, always injected as the
// first system message of every conversation sent to the model.
const socraticSystem = "You are Code Coach. Teach Swift/SwiftUI/iOS to beginners. " +
	"Be concise, friendly, and avoid markdown formatting. " +
	"Use a 4-step method: 1) Understand 2) Plan 3) Write 4) Review. " +
	"Keep examples short and readable for a phone screen."

// clipMessages keeps only the last maxTurns messages and truncates any
// content longer than maxChars. The input slice is never mutated.
func clipMessages(messages []models.ChatMessage, maxTurns, maxChars int) []models.ChatMessage {
	start := 0
	if len(messages) > maxTurns {
		start = len(messages) - maxTurns
	}

	tail := make([]models.ChatMessage, len(messages)-start)
	copy(tail, messages[start:])

	for i := range tail {
		if len(tail[i].Content) > maxChars {
			tail[i].Content = tail[i].Content[:maxChars]
		}
	}
	return tail
}

// systemPrompt builds the injected system message text, appending a
// "Context: k: v, ..." suffix for every truthy context value. Keys are
// sorted so the output is stable across requests.
func systemPrompt(context map[string]any) string {
	system := socraticSystem
	if len(context) == 0 {
		return system
	}

	keys := make([]string, 0, len(context))
	for k := range context {
		if truthy(context[k]) {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return system
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = fmt.Sprintf("%s: %v", k, context[k])
	}
	return system + "\nContext: " + strings.Join(pairs, ", ")
}

// ensureSystem prepends our system message to the conversation. A system
// message supplied by the client stays in place right behind ours.
func ensureSystem(messages []models.ChatMessage, context map[string]any) []models.ChatMessage {
	out := make([]models.ChatMessage, 0, len(messages)+1)
	out = append(out, models.ChatMessage{Role: models.RoleSystem, Content: systemPrompt(context)})
	return append(out, messages...)
}

// truthy reports whether a context value should appear in the suffix.
// JSON scalars decode as string, float64, bool or nil.
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case bool:
		return val
	case float64:
		return val != 0
	default:
		return true
	}
}
