package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-chat-client/internal/adapter"
	"github.com/MKhiriev/go-chat-client/internal/logger"
	"github.com/MKhiriev/go-chat-client/internal/mock"
	"github.com/MKhiriev/go-chat-client/models"
)

// newTestExchangeSvc — хелпер: реальные chatService и exchangeService,
// связанные как в продакшене, поверх одного мок-адаптера
func newTestExchangeSvc(t *testing.T, ctrl *gomock.Controller) (*exchangeService, *chatService, *mock.MockServerAdapter) {
	t.Helper()
	mockAdapter := mock.NewMockServerAdapter(ctrl)
	chats := NewChatService(mockAdapter, logger.Nop())
	exchange := NewExchangeService(mockAdapter, chats, logger.Nop())
	chats.SubscribeSelection(exchange.SetActiveChat)
	return exchange, chats, mockAdapter
}

// seedChats наполняет список и переключает обменник на первый чат.
func seedChats(t *testing.T, chats *chatService, mockAdapter *mock.MockServerAdapter, list []models.Chat) {
	t.Helper()
	mockAdapter.EXPECT().GetChats(gomock.Any()).Return(list, nil)
	require.NoError(t, chats.Refresh(context.Background()))
}

// ── Guards ───────────────────────────────────────────────────────────────────

func TestExchangeService_Submit_BlankPrompt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, chats, mockAdapter := newTestExchangeSvc(t, ctrl)
	seedChats(t, chats, mockAdapter, twoChats())

	assert.Nil(t, svc.Submit(context.Background(), "   \t", models.PromptModeText, false))
}

func TestExchangeService_Submit_NoActiveChat(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestExchangeSvc(t, ctrl)

	assert.Nil(t, svc.Submit(context.Background(), "hello", models.PromptModeText, false))
}

func TestExchangeService_Submit_BusyChatRejectsSecondSubmission(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, chats, mockAdapter := newTestExchangeSvc(t, ctrl)
	seedChats(t, chats, mockAdapter, twoChats())
	ctx := context.Background()

	mockAdapter.EXPECT().SendTextPrompt(ctx, gomock.Any()).DoAndReturn(
		func(context.Context, models.PromptRequest) (string, error) {
			// пока обмен в полёте, повторная отправка в тот же чат отклоняется
			assert.Nil(t, svc.Submit(ctx, "another", models.PromptModeText, false))
			assert.True(t, svc.Sending())
			return "reply", nil
		},
	)
	mockAdapter.EXPECT().GetChats(ctx).Return(twoChats(), nil)

	exchange := svc.Submit(ctx, "hello", models.PromptModeText, false)
	require.NotNil(t, exchange)
	assert.Equal(t, ExchangeSettled, exchange.State)
	assert.False(t, svc.Sending())
}

// ── Settle ───────────────────────────────────────────────────────────────────

func TestExchangeService_Submit_TextSettlesAndAdoptsAuthoritativeMessages(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, chats, mockAdapter := newTestExchangeSvc(t, ctrl)
	seedChats(t, chats, mockAdapter, twoChats())
	ctx := context.Background()

	authoritative := []models.Chat{
		{ID: "c1", Name: "first", Messages: []models.Message{
			{Role: models.RoleUser, Content: "hi"},
			{Role: models.RoleUser, Content: "hello"},
			{Role: models.RoleAssistant, Content: "world"},
		}},
		{ID: "c2", Name: "second"},
	}

	gomock.InOrder(
		mockAdapter.EXPECT().SendTextPrompt(ctx, models.PromptRequest{Prompt: "hello", ChatID: "c1"}).DoAndReturn(
			func(context.Context, models.PromptRequest) (string, error) {
				// оптимистичное сообщение уже видно на момент сетевого вызова
				messages := svc.Messages()
				require.Len(t, messages, 2)
				assert.Equal(t, models.RoleUser, messages[1].Role)
				assert.Equal(t, "hello", messages[1].Content)
				assert.NotEmpty(t, messages[1].ID)
				return "world", nil
			},
		),
		mockAdapter.EXPECT().GetChats(ctx).Return(authoritative, nil),
	)

	exchange := svc.Submit(ctx, "hello", models.PromptModeText, false)
	require.NotNil(t, exchange)
	assert.Equal(t, ExchangeSettled, exchange.State)
	require.NoError(t, exchange.Err)
	assert.Equal(t, "c1", exchange.ChatID)

	// после сверки отображается серверная версия переписки
	messages := svc.Messages()
	require.Len(t, messages, 3)
	assert.Equal(t, "world", messages[2].Content)
	assert.Empty(t, messages[1].ID, "временный id должен быть вытеснен серверной версией")
}

func TestExchangeService_Submit_ImageUsesImageEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, chats, mockAdapter := newTestExchangeSvc(t, ctrl)
	seedChats(t, chats, mockAdapter, twoChats())
	ctx := context.Background()

	var captured models.PromptRequest
	gomock.InOrder(
		mockAdapter.EXPECT().SendImagePrompt(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, req models.PromptRequest) (string, error) {
				captured = req
				return "https://cdn.example.com/img.png", nil
			},
		),
		mockAdapter.EXPECT().GetChats(ctx).Return(twoChats(), nil),
	)

	exchange := svc.Submit(ctx, "a cat", models.PromptModeImage, true)
	require.NotNil(t, exchange)
	assert.Equal(t, ExchangeSettled, exchange.State)

	assert.Equal(t, "a cat", captured.Prompt)
	assert.Equal(t, "c1", captured.ChatID)
	assert.True(t, captured.Published)
}

func TestExchangeService_Submit_ReplyNotAppendedAfterChatSwitch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, chats, mockAdapter := newTestExchangeSvc(t, ctrl)
	seedChats(t, chats, mockAdapter, twoChats())
	ctx := context.Background()

	gomock.InOrder(
		mockAdapter.EXPECT().SendTextPrompt(ctx, gomock.Any()).DoAndReturn(
			func(context.Context, models.PromptRequest) (string, error) {
				// пользователь переключил чат, пока ответ был в пути
				require.NoError(t, chats.Select("c2"))
				return "late reply", nil
			},
		),
		mockAdapter.EXPECT().GetChats(ctx).Return(twoChats(), nil),
	)

	exchange := svc.Submit(ctx, "hello", models.PromptModeText, false)
	require.NotNil(t, exchange)
	assert.Equal(t, ExchangeSettled, exchange.State)

	// поздний ответ не должен попасть в отображение другого чата
	for _, msg := range svc.Messages() {
		assert.NotEqual(t, "late reply", msg.Content)
		assert.NotEqual(t, "hello", msg.Content)
	}
}

func TestExchangeService_Submit_ReconcileFailureKeepsOptimisticView(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, chats, mockAdapter := newTestExchangeSvc(t, ctrl)
	seedChats(t, chats, mockAdapter, twoChats())
	ctx := context.Background()

	gomock.InOrder(
		mockAdapter.EXPECT().SendTextPrompt(ctx, gomock.Any()).Return("world", nil),
		mockAdapter.EXPECT().GetChats(ctx).Return(nil, adapter.ErrNetwork),
	)

	exchange := svc.Submit(ctx, "hello", models.PromptModeText, false)
	require.NotNil(t, exchange)
	// сам обмен завершился успешно, деградировала только сверка
	assert.Equal(t, ExchangeSettled, exchange.State)

	// список чатов очищен защитно, но оптимистичная переписка остаётся видимой
	assert.Empty(t, chats.Chats())
	messages := svc.Messages()
	require.Len(t, messages, 3)
	assert.Equal(t, "hello", messages[1].Content)
	assert.Equal(t, "world", messages[2].Content)
}

// ── Rollback ─────────────────────────────────────────────────────────────────

func TestExchangeService_Submit_FailureRollsBackOptimisticMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, chats, mockAdapter := newTestExchangeSvc(t, ctrl)
	seedChats(t, chats, mockAdapter, twoChats())
	ctx := context.Background()

	mockAdapter.EXPECT().SendTextPrompt(ctx, gomock.Any()).
		Return("", adapter.ErrServer)

	exchange := svc.Submit(ctx, "hello", models.PromptModeText, false)
	require.NotNil(t, exchange)
	assert.Equal(t, ExchangeFailed, exchange.State)
	assert.ErrorIs(t, exchange.Err, adapter.ErrServer)

	// откатывается ровно одно оптимистичное сообщение, история не тронута
	messages := svc.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, "hi", messages[0].Content)
	assert.False(t, svc.Sending())
}

func TestExchangeService_Submit_BusyFlagClearedAfterFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, chats, mockAdapter := newTestExchangeSvc(t, ctrl)
	seedChats(t, chats, mockAdapter, twoChats())
	ctx := context.Background()

	gomock.InOrder(
		mockAdapter.EXPECT().SendTextPrompt(ctx, gomock.Any()).Return("", adapter.ErrNetwork),
		mockAdapter.EXPECT().SendTextPrompt(ctx, gomock.Any()).Return("world", nil),
		mockAdapter.EXPECT().GetChats(ctx).Return(twoChats(), nil),
	)

	failed := svc.Submit(ctx, "hello", models.PromptModeText, false)
	require.NotNil(t, failed)
	assert.Equal(t, ExchangeFailed, failed.State)

	settled := svc.Submit(ctx, "hello again", models.PromptModeText, false)
	require.NotNil(t, settled)
	assert.Equal(t, ExchangeSettled, settled.State)
}

func TestExchangeService_Submit_UnauthorizedForcesLogout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, chats, mockAdapter := newTestExchangeSvc(t, ctrl)
	seedChats(t, chats, mockAdapter, twoChats())
	ctx := context.Background()

	var loggedOut bool
	svc.onUnauthorized = func() { loggedOut = true }

	mockAdapter.EXPECT().SendTextPrompt(ctx, gomock.Any()).
		Return("", adapter.ErrUnauthorized)

	exchange := svc.Submit(ctx, "hello", models.PromptModeText, false)
	require.NotNil(t, exchange)
	assert.Equal(t, ExchangeFailed, exchange.State)
	assert.True(t, loggedOut)
}

// ── SetActiveChat ────────────────────────────────────────────────────────────

func TestExchangeService_SetActiveChat(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAdapter := mock.NewMockServerAdapter(ctrl)
	chats := NewChatService(mockAdapter, logger.Nop())
	svc := NewExchangeService(mockAdapter, chats, logger.Nop())

	chat := &models.Chat{ID: "c1", Messages: []models.Message{
		{Role: models.RoleUser, Content: "hi"},
	}}
	svc.SetActiveChat(chat)

	messages := svc.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, "hi", messages[0].Content)

	// вид хранит собственную копию
	chat.Messages[0].Content = "mutated"
	assert.Equal(t, "hi", svc.Messages()[0].Content)

	// сброс выбора снимает активный чат, но не стирает переписку
	svc.SetActiveChat(nil)
	assert.Len(t, svc.Messages(), 1)
	assert.False(t, svc.Sending())

	// следующий выбранный чат целиком заменяет отображение
	svc.SetActiveChat(&models.Chat{ID: "c2"})
	assert.Empty(t, svc.Messages())
}
