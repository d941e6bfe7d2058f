// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-chat-client/internal/adapter"
	"github.com/MKhiriev/go-chat-client/internal/logger"
	"github.com/MKhiriev/go-chat-client/models"
)

// ExchangeState describes the lifecycle of one prompt/reply transaction.
type ExchangeState int

const (
	ExchangePending ExchangeState = iota
	ExchangeSettled
	ExchangeFailed
)

// Exchange is one prompt/reply transaction. After Submit returns, State is
// either ExchangeSettled or ExchangeFailed; Err carries the adapter error
// for failed exchanges.
type Exchange struct {
	ID        string
	ChatID    string
	Mode      models.PromptMode
	Prompt    string
	Published bool
	State     ExchangeState
	Err       error
}

type exchangeService struct {
	adapter adapter.ServerAdapter
	chats   ChatService
	logger  *logger.Logger

	mu           sync.RWMutex
	activeChatID string
	messages     []models.Message
	busy         map[string]bool

	onUnauthorized func()
}

func NewExchangeService(serverAdapter adapter.ServerAdapter, chats ChatService, logger *logger.Logger) *exchangeService {
	return &exchangeService{
		adapter: serverAdapter,
		chats:   chats,
		logger:  logger,
		busy:    make(map[string]bool),
	}
}

// SetActiveChat implements [ExchangeService]. Registered as a
// [SelectionObserver] in [NewClientServices]. A nil chat drops the active
// reference but keeps the displayed messages: selection vanishes when a
// refresh fails, and blanking the transcript on top of that would read as
// data loss. The next non-nil selection replaces the view wholesale.
func (e *exchangeService) SetActiveChat(chat *models.Chat) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if chat == nil {
		e.activeChatID = ""
		return
	}
	e.activeChatID = chat.ID
	e.messages = make([]models.Message, len(chat.Messages))
	copy(e.messages, chat.Messages)
}

func (e *exchangeService) Messages() []models.Message {
	e.mu.RLock()
	defer e.mu.RUnlock()

	messages := make([]models.Message, len(e.messages))
	copy(messages, e.messages)
	return messages
}

func (e *exchangeService) Sending() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.activeChatID != "" && e.busy[e.activeChatID]
}

// Submit implements [ExchangeService]. The lock is never held across the
// network call: the optimistic append and the busy-flag acquisition happen
// under one critical section, the backend round trip runs unlocked, and
// reconciliation re-checks that the exchange's conversation is still the
// active one before touching the view.
func (e *exchangeService) Submit(ctx context.Context, prompt string, mode models.PromptMode, publish bool) *Exchange {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil
	}
	if mode != models.PromptModeImage {
		publish = false
	}

	e.mu.Lock()
	chatID := e.activeChatID
	if chatID == "" || e.busy[chatID] {
		e.mu.Unlock()
		return nil
	}
	e.busy[chatID] = true

	exchange := &Exchange{
		ID:        uuid.NewString(),
		ChatID:    chatID,
		Mode:      mode,
		Prompt:    prompt,
		Published: publish,
		State:     ExchangePending,
	}
	e.messages = append(e.messages, models.Message{
		ID:        exchange.ID,
		Role:      models.RoleUser,
		Content:   prompt,
		Timestamp: time.Now(),
	})
	e.mu.Unlock()

	reply, err := e.send(ctx, exchange)

	e.mu.Lock()
	delete(e.busy, chatID)
	if err != nil {
		exchange.State = ExchangeFailed
		exchange.Err = err
		e.rollbackLocked(exchange)
		e.mu.Unlock()

		e.logger.Warn().Err(err).Str("chat_id", chatID).Msg("exchange failed, optimistic message rolled back")
		if e.onUnauthorized != nil && errors.Is(err, adapter.ErrUnauthorized) {
			e.onUnauthorized()
		}
		return exchange
	}
	exchange.State = ExchangeSettled
	if e.activeChatID == chatID {
		e.messages = append(e.messages, reply)
	}
	e.mu.Unlock()

	e.reconcile(ctx, exchange)
	return exchange
}

func (e *exchangeService) send(ctx context.Context, exchange *Exchange) (models.Message, error) {
	request := models.PromptRequest{
		Prompt:    exchange.Prompt,
		ChatID:    exchange.ChatID,
		Published: exchange.Published,
	}

	switch exchange.Mode {
	case models.PromptModeImage:
		imageURL, err := e.adapter.SendImagePrompt(ctx, request)
		if err != nil {
			return models.Message{}, err
		}
		return models.Message{
			Role:      models.RoleAssistant,
			Content:   imageURL,
			IsImage:   true,
			Timestamp: time.Now(),
		}, nil
	default:
		reply, err := e.adapter.SendTextPrompt(ctx, request)
		if err != nil {
			return models.Message{}, err
		}
		return models.Message{
			Role:      models.RoleAssistant,
			Content:   reply,
			Timestamp: time.Now(),
		}, nil
	}
}

// rollbackLocked removes the optimistically appended user message. Removal
// is keyed on the exchange ID, so a view switched to another conversation
// (whose messages no longer contain it) is left alone. Callers must hold e.mu.
func (e *exchangeService) rollbackLocked(exchange *Exchange) {
	for i := range e.messages {
		if e.messages[i].ID == exchange.ID {
			e.messages = append(e.messages[:i], e.messages[i+1:]...)
			return
		}
	}
}

// reconcile pulls the authoritative conversation after a settled exchange so
// server-assigned timestamps and ordering replace the optimistic view. A
// failed refresh is logged and ignored; the optimistic view stays usable.
func (e *exchangeService) reconcile(ctx context.Context, exchange *Exchange) {
	if err := e.chats.Refresh(ctx); err != nil {
		e.logger.Warn().Err(err).Str("chat_id", exchange.ChatID).Msg("post-exchange refresh failed")
		return
	}

	chat, ok := e.chats.Get(exchange.ChatID)
	if !ok {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.activeChatID != exchange.ChatID {
		return
	}
	e.messages = make([]models.Message, len(chat.Messages))
	copy(e.messages, chat.Messages)
}
