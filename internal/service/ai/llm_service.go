package ai

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/future-self/backend/internal/config"
	"github.com/future-self/backend/internal/logger"
	careerModel "github.com/future-self/backend/internal/model/career"
	"github.com/future-self/backend/internal/model/chat"
	"github.com/future-self/backend/internal/model/persona"
)

// Service drives persona-grounded chat completions through the configured
// provider.
type Service struct {
	chatModel model.ChatModel
	cfg       config.AIConfig
	chain     compose.Runnable[map[string]any, *schema.Message]
}

// NewService compiles the prompt-template -> chat-model chain for the
// configured provider.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{
		chatModel: chatModel,
		cfg:       cfg,
		chain:     runnable,
	}, nil
}

// StreamingEnabled indicates whether SSE delta streaming is on.
func (s *Service) StreamingEnabled() bool {
	return s.cfg.StreamResponse
}

// GenerateReply produces the future self's answer to userMessage given the
// persona, its career and the recent history.
func (s *Service) GenerateReply(ctx context.Context, sessionID string, p *persona.Persona, c careerModel.Career, history []chat.Message, userMessage string) (*schema.Message, error) {
	input := s.buildChainInput(p, c, history, userMessage)

	response, err := s.chain.Invoke(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to run chat chain: %w", err)
	}

	logger.Log.Info().
		Str("session", sessionID).
		Str("career", c.ID).
		Int("length", len(response.Content)).
		Msg("generated reply")
	return response, nil
}

// StreamReply streams the reply in chunks via the compiled chain.
func (s *Service) StreamReply(ctx context.Context, p *persona.Persona, c careerModel.Career, history []chat.Message, userMessage string) (*schema.StreamReader[*schema.Message], error) {
	if !s.StreamingEnabled() {
		return nil, fmt.Errorf("streaming disabled in configuration")
	}

	input := s.buildChainInput(p, c, history, userMessage)

	stream, err := s.chain.Stream(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to stream chat chain output: %w", err)
	}
	return stream, nil
}

// GenerateGreeting asks the model for the future self's opening line.
func (s *Service) GenerateGreeting(ctx context.Context, p *persona.Persona, c careerModel.Career) (string, error) {
	response, err := s.GenerateReply(ctx, "", p, c, nil,
		"Introduce yourself to your past self in a few warm sentences.")
	if err != nil {
		return "", err
	}
	return response.Content, nil
}

// GenerateResumeInsight asks the model for a short free-text read of the
// resume. Callers must tolerate failure; pattern analysis stands alone.
func (s *Service) GenerateResumeInsight(ctx context.Context, resumeText string) (string, error) {
	const limit = 3000
	if len(resumeText) > limit {
		resumeText = resumeText[:limit]
	}

	input := map[string]any{
		"system": "You are an expert career analyst. Summarize the candidate's current role, experience and standout skills in at most four sentences.",
		"history": nil,
		"query":   "Resume:\n" + resumeText,
	}

	response, err := s.chain.Invoke(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to run insight chain: %w", err)
	}
	return response.Content, nil
}

// GetChatModel exposes the underlying model.
func (s *Service) GetChatModel() model.ChatModel {
	return s.chatModel
}

func (s *Service) buildChainInput(p *persona.Persona, c careerModel.Career, history []chat.Message, userMessage string) map[string]any {
	return map[string]any{
		"system":  BuildSystemPrompt(p, c),
		"history": s.buildHistoryMessages(history),
		"query":   userMessage,
	}
}

func (s *Service) buildHistoryMessages(messages []chat.Message) []*schema.Message {
	if len(messages) == 0 {
		return nil
	}

	limit := s.cfg.HistoryLimit
	if limit < 1 {
		limit = 10
	}
	startIdx := 0
	if len(messages) > limit {
		startIdx = len(messages) - limit
	}

	history := make([]*schema.Message, 0, len(messages)-startIdx)
	for _, msg := range messages[startIdx:] {
		switch msg.Role {
		case chat.RoleUser:
			history = append(history, schema.UserMessage(msg.Content))
		case chat.RoleFutureSelf:
			history = append(history, schema.AssistantMessage(msg.Content, nil))
		}
	}
	return history
}
