package services

import (
	"context"
	"fmt"
	"strings"

	"campus-hub/agora/internal/cache"
	"campus-hub/agora/internal/common"
	"campus-hub/agora/internal/constants"
	"campus-hub/agora/internal/models/entities"
)

// MaxMessageLength caps the trimmed message text
const MaxMessageLength = 1000

// MessageLister is the extra read the per-user message index needs beyond
// the generic store contract.
type MessageLister interface {
	ListByLogin(ctx context.Context, login string) ([]entities.Message, error)
}

// MessageService validates and sends direct messages and serves the
// per-account message index.
type MessageService struct {
	messages *cache.Manager[entities.Message]
	lister   MessageLister
	cache    common.Cache
}

func NewMessageService(messages *cache.Manager[entities.Message], lister MessageLister, cacheStore common.Cache) *MessageService {
	return &MessageService{
		messages: messages,
		lister:   lister,
		cache:    cacheStore,
	}
}

// MessageIndexKeys lists the per-account index keys a message contributes
// to: one for the sender, one for the recipient.
func MessageIndexKeys(m *entities.Message) []string {
	return []string{
		constants.MessagesUserKey(m.FromLogin),
		constants.MessagesUserKey(m.ToLogin),
	}
}

// Send validates and stores a message. Validation happens before any store
// or cache write.
func (s *MessageService) Send(ctx context.Context, from, to, text string) (*entities.Message, error) {
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)
	text = strings.TrimSpace(text)

	if from == "" || to == "" {
		return nil, constants.NewValidation("sender and recipient are required")
	}
	if from == to {
		return nil, constants.NewValidation("cannot send a message to yourself")
	}
	if text == "" {
		return nil, constants.NewValidation("message text cannot be empty")
	}
	if len(text) > MaxMessageLength {
		return nil, constants.NewValidation(fmt.Sprintf("message text exceeds %d characters", MaxMessageLength))
	}

	return s.messages.Create(ctx, &entities.Message{
		FromLogin: from,
		ToLogin:   to,
		Text:      text,
	})
}

// ForUser returns every message involving the login, cached under the
// messages:user:{login} index key. The cache manager invalidates the key on
// any mutation touching that login.
func (s *MessageService) ForUser(ctx context.Context, login string) ([]entities.Message, error) {
	indexKey := constants.MessagesUserKey(login)
	if cached, ok := common.GetJSON[[]entities.Message](ctx, s.cache, indexKey); ok {
		return *cached, nil
	}

	messages, err := s.lister.ListByLogin(ctx, login)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, indexKey, messages, constants.ListTTL)
	return messages, nil
}
