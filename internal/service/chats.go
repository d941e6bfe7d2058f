package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-chat-client/internal/adapter"
	"github.com/MKhiriev/go-chat-client/internal/logger"
	"github.com/MKhiriev/go-chat-client/models"
)

type chatService struct {
	adapter adapter.ServerAdapter
	logger  *logger.Logger

	mu         sync.RWMutex
	chats      []models.Chat
	selectedID string

	observers      []SelectionObserver
	onUnauthorized func()
}

func NewChatService(serverAdapter adapter.ServerAdapter, logger *logger.Logger) *chatService {
	return &chatService{
		adapter: serverAdapter,
		logger:  logger,
	}
}

// SubscribeSelection implements [ChatService]. Observers are appended during
// wiring only; no lock is needed because subscription precedes use.
func (c *chatService) SubscribeSelection(obs SelectionObserver) {
	c.observers = append(c.observers, obs)
}

// Refresh implements [ChatService]. The backend list replaces the local one
// wholesale; on failure the list is treated as unknown rather than stale and
// is cleared together with the selection.
func (c *chatService) Refresh(ctx context.Context) error {
	chats, err := c.adapter.GetChats(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("chat list refresh failed, clearing list")
		c.replace(nil)
		c.reportUnauthorized(err)
		return fmt.Errorf("refresh chats: %w", err)
	}

	c.replace(chats)
	return nil
}

// replace swaps the list and re-evaluates the selection: keep it when still
// present, fall back to the first chat, clear it for an empty list.
// Observers run only when the selection reference changed.
func (c *chatService) replace(chats []models.Chat) {
	c.mu.Lock()
	c.chats = chats

	previous := c.selectedID
	if _, ok := c.findLocked(c.selectedID); !ok {
		c.selectedID = ""
	}
	if c.selectedID == "" && len(chats) > 0 {
		c.selectedID = chats[0].ID
	}

	changed := c.selectedID != previous
	selected, _ := c.findLocked(c.selectedID)
	c.mu.Unlock()

	if changed {
		c.notify(selected)
	}
}

// reportUnauthorized escalates a rejected-credential error to the handler
// installed in [NewClientServices], which forces the session to anonymous.
func (c *chatService) reportUnauthorized(err error) {
	if c.onUnauthorized != nil && errors.Is(err, adapter.ErrUnauthorized) {
		c.onUnauthorized()
	}
}

func (c *chatService) notify(chat *models.Chat) {
	for _, obs := range c.observers {
		obs(chat)
	}
}

// findLocked returns a copy of the chat with the given id. Callers must hold c.mu.
func (c *chatService) findLocked(id string) (*models.Chat, bool) {
	if id == "" {
		return nil, false
	}
	for i := range c.chats {
		if c.chats[i].ID == id {
			chat := cloneChat(c.chats[i])
			return &chat, true
		}
	}
	return nil, false
}

// EnsureChat implements [ChatService]. Creating via Create guarantees the
// selection lands on a real, backend-persisted conversation.
func (c *chatService) EnsureChat(ctx context.Context) error {
	if _, ok := c.Selected(); ok {
		return nil
	}

	_, err := c.Create(ctx)
	return err
}

// Create implements [ChatService].
func (c *chatService) Create(ctx context.Context) (models.Chat, error) {
	chat, err := c.adapter.CreateChat(ctx)
	if err != nil {
		c.reportUnauthorized(err)
		return models.Chat{}, fmt.Errorf("create chat: %w", err)
	}
	c.logger.Debug().Str("chat_id", chat.ID).Msg("created chat")

	if err := c.Refresh(ctx); err != nil {
		return models.Chat{}, err
	}
	if err := c.Select(chat.ID); err != nil {
		return models.Chat{}, err
	}
	return chat, nil
}

// Select implements [ChatService].
func (c *chatService) Select(id string) error {
	c.mu.Lock()
	selected, ok := c.findLocked(id)
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrChatNotFound, id)
	}
	changed := c.selectedID != id
	c.selectedID = id
	c.mu.Unlock()

	if changed {
		c.notify(selected)
	}
	return nil
}

// Delete implements [ChatService]. The follow-up refresh lets the normal
// selection rules pick a successor when the selected chat was deleted.
func (c *chatService) Delete(ctx context.Context, id string) error {
	if err := c.adapter.DeleteChat(ctx, id); err != nil {
		c.reportUnauthorized(err)
		return fmt.Errorf("delete chat: %w", err)
	}

	return c.Refresh(ctx)
}

func (c *chatService) Chats() []models.Chat {
	c.mu.RLock()
	defer c.mu.RUnlock()

	chats := make([]models.Chat, len(c.chats))
	for i := range c.chats {
		chats[i] = cloneChat(c.chats[i])
	}
	return chats
}

func (c *chatService) Selected() (models.Chat, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	chat, ok := c.findLocked(c.selectedID)
	if !ok {
		return models.Chat{}, false
	}
	return *chat, true
}

func (c *chatService) Get(id string) (models.Chat, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	chat, ok := c.findLocked(id)
	if !ok {
		return models.Chat{}, false
	}
	return *chat, true
}

// HandleSessionChange resets the list on any transition and re-populates it
// when the session became authenticated. Registered as a [SessionObserver]
// in [NewClientServices].
func (c *chatService) HandleSessionChange(ctx context.Context, state models.SessionState) {
	switch state {
	case models.SessionAuthenticated:
		if err := c.Refresh(ctx); err != nil {
			c.logger.Warn().Err(err).Msg("initial chat refresh failed")
			// a rejected credential is already forcing a logout, any
			// other failure still leaves the user without a selection,
			// so a usable conversation is created regardless
			if errors.Is(err, adapter.ErrUnauthorized) {
				return
			}
		}
		if err := c.EnsureChat(ctx); err != nil {
			c.logger.Warn().Err(err).Msg("could not ensure initial chat")
		}
	case models.SessionAnonymous:
		c.replace(nil)
	}
}

func cloneChat(chat models.Chat) models.Chat {
	clone := chat
	clone.Messages = make([]models.Message, len(chat.Messages))
	copy(clone.Messages, chat.Messages)
	return clone
}
