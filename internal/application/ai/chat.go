package ai

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/lezzetli/v1/internal/ports/inbound"
	"github.com/lezzetli/v1/internal/ports/outbound"
	"github.com/lezzetli/v1/pkg/errors"
	"go.uber.org/zap"
)

// MaxChatMessageLength caps one user message to the assistant.
const MaxChatMessageLength = 2000

// Chat message roles as exposed to clients.
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// personaInstruction fixes the assistant's identity. The assistant
// answers only cooking questions and always in Turkish.
const personaInstruction = "Sen 'Akıllı Yardımcı' adında, Lezzetli uygulamasının neşeli ve yardımsever mutfak asistanısın. " +
	"Sadece yemek tarifleri, malzemeler, pişirme teknikleri ve mutfakla ilgili konularda yardımcı olursun. " +
	"Mutfakla ilgisi olmayan sorulara kibarca, konunun uzmanı olmadığını söyleyerek cevap vermezsin. " +
	"Cevapların her zaman Türkçe, samimi ve anlaşılır olsun."

// Canned assistant replies, one per failure category. The conversation
// absorbs the failure instead of surfacing it to the caller.
const (
	fallbackRateLimited = "Çok fazla istek gönderildi. Lütfen biraz sonra tekrar deneyin."
	fallbackServiceDown = "Sohbet servisi şu anda kullanılamıyor. Lütfen daha sonra deneyin."
	fallbackGeneric     = "Üzgünüm, şu anda bir sorunla karşılaştım. Lütfen daha sonra tekrar deneyin."
)

// ChatSession is one user's conversation with the assistant. Sessions
// are created explicitly through NewChatSession and are safe for
// concurrent use; turns on the same session are serialized.
type ChatSession struct {
	mu         sync.Mutex
	model      outbound.ModelClient
	transcript []inbound.ChatMessage
	logger     *zap.Logger
}

// NewChatSession creates an empty conversation.
func NewChatSession(model outbound.ModelClient, logger *zap.Logger) *ChatSession {
	return &ChatSession{
		model:  model,
		logger: logger,
	}
}

// Send appends the user message and the assistant's reply to the
// transcript. Local validation failures are returned as errors and leave
// the transcript untouched; transport failures become canned apology
// turns so the conversation never dead-ends.
func (s *ChatSession) Send(ctx context.Context, message string) (*inbound.ChatMessage, error) {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return nil, errors.NewValidationError("message is required")
	}
	if len(message) > MaxChatMessageLength {
		return nil, errors.NewValidationError(
			fmt.Sprintf("message exceeds %d characters", MaxChatMessageLength))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	history := make([]outbound.ChatTurn, 0, len(s.transcript))
	for _, turn := range s.transcript {
		role := outbound.ChatRoleUser
		if turn.Role == ChatRoleAssistant {
			role = outbound.ChatRoleModel
		}
		history = append(history, outbound.ChatTurn{Role: role, Text: turn.Text})
	}

	reply, err := s.model.Chat(ctx, personaInstruction, history, trimmed)
	if err != nil {
		reply = fallbackFor(err)
		s.logger.Warn("assistant turn fell back to canned reply",
			zap.String("code", string(errors.GetCode(err))),
			zap.Error(err),
		)
	}

	s.transcript = append(s.transcript, inbound.ChatMessage{Role: ChatRoleUser, Text: trimmed})
	assistant := inbound.ChatMessage{Role: ChatRoleAssistant, Text: reply}
	s.transcript = append(s.transcript, assistant)
	return &assistant, nil
}

// Transcript returns a copy of the conversation so far.
func (s *ChatSession) Transcript() []inbound.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	transcript := make([]inbound.ChatMessage, len(s.transcript))
	copy(transcript, s.transcript)
	return transcript
}

// fallbackFor picks the canned reply matching the failure category.
// Auth failures and unreachable upstreams both read as the chat service
// being down to the user; everything else gets the generic apology.
func fallbackFor(err error) string {
	switch {
	case errors.Is(err, errors.CodeAIRateLimited):
		return fallbackRateLimited
	case errors.Is(err, errors.CodeAIUnavailable),
		errors.Is(err, errors.CodeAIAuthFailed),
		errors.Is(err, errors.CodeExternalServiceError):
		return fallbackServiceDown
	default:
		return fallbackGeneric
	}
}

// ChatService holds one session per signed-in user. Sessions are created
// on first use and live until Reset or process exit; there is no lazy
// shared singleton behind the registry.
type ChatService struct {
	mu       sync.Mutex
	model    outbound.ModelClient
	sessions map[string]*ChatSession
	logger   *zap.Logger
}

// NewChatService creates the session registry.
func NewChatService(model outbound.ModelClient, logger *zap.Logger) inbound.ChatService {
	return &ChatService{
		model:    model,
		sessions: make(map[string]*ChatSession),
		logger:   logger.Named("chat-service"),
	}
}

// Send routes the message to uid's session, creating it if needed.
func (s *ChatService) Send(ctx context.Context, uid, message string) (*inbound.ChatMessage, error) {
	if strings.TrimSpace(uid) == "" {
		return nil, errors.NewLoginRequiredError("chat with the assistant")
	}
	return s.session(uid).Send(ctx, message)
}

// Transcript returns the conversation so far for uid.
func (s *ChatService) Transcript(uid string) []inbound.ChatMessage {
	s.mu.Lock()
	session, ok := s.sessions[uid]
	s.mu.Unlock()
	if !ok {
		return []inbound.ChatMessage{}
	}
	return session.Transcript()
}

// Reset discards uid's conversation. The next message starts fresh.
func (s *ChatService) Reset(uid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, uid)
}

func (s *ChatService) session(uid string) *ChatSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[uid]
	if !ok {
		session = NewChatSession(s.model, s.logger)
		s.sessions[uid] = session
	}
	return session
}
