package ai

import (
	"fmt"
	"hash/fnv"
)

// Canned replies used when no AI provider is configured or a call fails.
// The question hash keeps the choice deterministic so retries don't
// flicker between answers.
var fallbackTemplates = []string{
	"Hello! I'm you from %d years in the future, now a %s. The journey has been challenging but so rewarding. What would you like to know about our future?",
	"Hey, it's me, your future self, working as a %[2]s these days. I remember being exactly where you are %[1]d years ago. The path wasn't always clear, but every step led somewhere. Ask me anything.",
	"Hi! I'm you, %d years on, now a %s. The transformation has been remarkable, and I learned more from the setbacks than the wins. What's on your mind?",
}

// FallbackReply returns a deterministic canned answer for the career.
func FallbackReply(careerTitle, question string, yearsAhead int) string {
	h := fnv.New32a()
	h.Write([]byte(question))
	template := fallbackTemplates[int(h.Sum32())%len(fallbackTemplates)]
	return fmt.Sprintf(template, yearsAhead, careerTitle)
}

// FallbackGreeting is the canned opening line for a conversation.
func FallbackGreeting(careerTitle string, yearsAhead int) string {
	return fmt.Sprintf(
		"Hello from %d years ahead! I became a %s, and I'm glad you reached out. The road here had rough stretches, but I'd take it again. Ask me anything about how we got here.",
		yearsAhead, careerTitle)
}
