package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-chat-client/internal/adapter"
	"github.com/MKhiriev/go-chat-client/internal/mock/servicemock"
	"github.com/MKhiriev/go-chat-client/internal/service"
	"github.com/MKhiriev/go-chat-client/models"
)

type chatModelMocks struct {
	session  *servicemock.MockSessionService
	chats    *servicemock.MockChatService
	exchange *servicemock.MockExchangeService
}

// newTestChatModel собирает модель главного экрана поверх моков сервисов.
// Запросы снапшота состояния (syncFromServices) разрешены без ограничений.
func newTestChatModel(t *testing.T) (chatModel, chatModelMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mocks := chatModelMocks{
		session:  servicemock.NewMockSessionService(ctrl),
		chats:    servicemock.NewMockChatService(ctrl),
		exchange: servicemock.NewMockExchangeService(ctrl),
	}

	mocks.chats.EXPECT().Chats().Return(nil).AnyTimes()
	mocks.chats.EXPECT().Selected().Return(models.Chat{}, false).AnyTimes()
	mocks.exchange.EXPECT().Messages().Return(nil).AnyTimes()
	mocks.exchange.EXPECT().Sending().Return(false).AnyTimes()

	services := &service.ClientServices{
		Session:  mocks.session,
		Chats:    mocks.chats,
		Exchange: mocks.exchange,
	}

	return newChatModel(context.Background(), services, nil, "dark"), mocks
}

// ── Переключение режимов ─────────────────────────────────────────────────────

func TestChatModel_ModeToggle(t *testing.T) {
	model, _ := newTestChatModel(t)
	require.Equal(t, models.PromptModeText, model.mode)

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	model = updated.(chatModel)
	assert.Equal(t, models.PromptModeImage, model.mode)

	// публикация доступна только в режиме картинки
	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyCtrlB})
	model = updated.(chatModel)
	assert.True(t, model.publish)

	// возврат в текстовый режим сбрасывает флаг публикации
	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	model = updated.(chatModel)
	assert.Equal(t, models.PromptModeText, model.mode)
	assert.False(t, model.publish)
}

func TestChatModel_PublishIgnoredInTextMode(t *testing.T) {
	model, _ := newTestChatModel(t)

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyCtrlB})
	model = updated.(chatModel)
	assert.False(t, model.publish)
}

// ── Отправка промпта ─────────────────────────────────────────────────────────

func TestChatModel_SubmitDispatchesPrompt(t *testing.T) {
	model, mocks := newTestChatModel(t)
	model.input.SetValue("нарисуй кота")
	model.mode = models.PromptModeImage
	model.publish = true

	mocks.exchange.EXPECT().
		Submit(gomock.Any(), "нарисуй кота", models.PromptModeImage, true).
		Return(&service.Exchange{State: service.ExchangeSettled})

	updated, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = updated.(chatModel)

	require.NotNil(t, cmd)
	assert.True(t, model.sending)
	assert.Empty(t, model.input.Value())

	msg := cmd()
	done, ok := msg.(exchangeDoneMsg)
	require.True(t, ok)
	assert.Equal(t, service.ExchangeSettled, done.exchange.State)
}

func TestChatModel_SubmitBlankIgnored(t *testing.T) {
	model, _ := newTestChatModel(t)
	model.input.SetValue("   ")

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestChatModel_SubmitWhileSending(t *testing.T) {
	model, _ := newTestChatModel(t)
	model.sending = true
	model.input.SetValue("ещё одно")

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestChatModel_FailedExchangeShowsError(t *testing.T) {
	model, _ := newTestChatModel(t)
	model.sending = true

	updated, _ := model.Update(exchangeDoneMsg{exchange: &service.Exchange{
		State:  service.ExchangeFailed,
		Prompt: "потерянный текст",
		Err:    adapter.ErrNetwork,
	}})
	model = updated.(chatModel)

	assert.False(t, model.sending)
	// неудачный промпт не возвращается в поле ввода
	assert.Empty(t, model.input.Value())
	assert.Equal(t, "Отсутствует сеть или Сервер недоступен", model.errMsg)
}

func TestChatModel_NilExchangeShowsStatus(t *testing.T) {
	model, _ := newTestChatModel(t)
	model.sending = true

	updated, _ := model.Update(exchangeDoneMsg{exchange: nil})
	model = updated.(chatModel)

	assert.False(t, model.sending)
	assert.Equal(t, "Сообщение не отправлено: нет выбранного чата", model.status)
}

// ── Принудительный выход ─────────────────────────────────────────────────────

func TestChatModel_ForcedLogoutOnRevokedSession(t *testing.T) {
	model, mocks := newTestChatModel(t)
	mocks.session.EXPECT().State().Return(models.SessionAnonymous)

	updated, cmd := model.Update(viewTickMsg{})
	model = updated.(chatModel)

	assert.True(t, model.logout)
	require.NotNil(t, cmd)
	_, isQuit := cmd().(tea.QuitMsg)
	assert.True(t, isQuit)
}

func TestChatModel_TickContinuesWhileAuthenticated(t *testing.T) {
	model, mocks := newTestChatModel(t)
	mocks.session.EXPECT().State().Return(models.SessionAuthenticated)

	updated, cmd := model.Update(viewTickMsg{})
	model = updated.(chatModel)

	assert.False(t, model.logout)
	assert.NotNil(t, cmd)
}

// ── Выход из аккаунта ────────────────────────────────────────────────────────

func TestChatModel_ManualLogout(t *testing.T) {
	model, mocks := newTestChatModel(t)
	mocks.session.EXPECT().Logout()

	updated, cmd := model.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	model = updated.(chatModel)

	assert.True(t, model.logout)
	require.NotNil(t, cmd)
	_, isQuit := cmd().(tea.QuitMsg)
	assert.True(t, isQuit)
}

func TestChatModel_DeleteWithoutSelection(t *testing.T) {
	model, _ := newTestChatModel(t)

	updated, cmd := model.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	model = updated.(chatModel)

	assert.Nil(t, cmd)
	assert.Equal(t, "Нет выбранного чата", model.status)
}
