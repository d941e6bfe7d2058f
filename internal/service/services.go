// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-chat-client/internal/adapter"
	"github.com/MKhiriev/go-chat-client/internal/logger"
	"github.com/MKhiriev/go-chat-client/internal/store"
	"github.com/MKhiriev/go-chat-client/models"
)

// ClientServices bundles the three core services with their cross-service
// reactions already wired.
type ClientServices struct {
	Session  SessionService
	Chats    ChatService
	Exchange ExchangeService
}

// NewClientServices builds the service graph and registers the observer
// chain: session transitions reset or repopulate the chat list, selection
// changes re-key the exchange view, and a rejected credential anywhere
// forces the session back to anonymous.
func NewClientServices(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, logger *logger.Logger) *ClientServices {
	session := NewSessionService(storages.Credentials, serverAdapter, logger.GetChildLogger())
	chats := NewChatService(serverAdapter, logger.GetChildLogger())
	exchange := NewExchangeService(serverAdapter, chats, logger.GetChildLogger())

	session.Subscribe(func(ctx context.Context, state models.SessionState) {
		chats.HandleSessionChange(ctx, state)
	})
	chats.SubscribeSelection(exchange.SetActiveChat)

	chats.onUnauthorized = session.Logout
	exchange.onUnauthorized = session.Logout

	return &ClientServices{
		Session:  session,
		Chats:    chats,
		Exchange: exchange,
	}
}
