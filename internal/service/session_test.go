package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-chat-client/internal/adapter"
	"github.com/MKhiriev/go-chat-client/internal/logger"
	"github.com/MKhiriev/go-chat-client/internal/mock"
	"github.com/MKhiriev/go-chat-client/internal/store"
	"github.com/MKhiriev/go-chat-client/models"
)

// newTestSessionSvc — хелпер для создания sessionService с моками
func newTestSessionSvc(
	t *testing.T,
	ctrl *gomock.Controller,
) (
	*sessionService,
	*mock.MockCredentialRepository,
	*mock.MockServerAdapter,
) {
	t.Helper()
	mockCreds := mock.NewMockCredentialRepository(ctrl)
	mockAdapter := mock.NewMockServerAdapter(ctrl)

	svc := NewSessionService(mockCreds, mockAdapter, logger.Nop())

	return svc, mockCreds, mockAdapter
}

// ── Bootstrap ────────────────────────────────────────────────────────────────

func TestSessionService_Bootstrap_NoStoredToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCreds, _ := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	mockCreds.EXPECT().Token(ctx).Return("", store.ErrSettingNotFound)

	err := svc.Bootstrap(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.SessionAnonymous, svc.State())
}

func TestSessionService_Bootstrap_StoreReadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCreds, _ := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	mockCreds.EXPECT().Token(ctx).Return("", errors.New("database is locked"))

	err := svc.Bootstrap(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read stored credential")
	assert.Equal(t, models.SessionAnonymous, svc.State())
}

func TestSessionService_Bootstrap_ValidToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCreds, mockAdapter := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	user := models.User{ID: "u1", Name: "Alice", Email: "alice@example.com"}

	gomock.InOrder(
		mockCreds.EXPECT().Token(ctx).Return("stored-token", nil),
		mockAdapter.EXPECT().SetToken("stored-token"),
		mockAdapter.EXPECT().GetUserData(ctx).Return(user, nil),
	)

	err := svc.Bootstrap(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.SessionAuthenticated, svc.State())

	got, ok := svc.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, user, got)
}

func TestSessionService_Bootstrap_RejectedTokenIsDeleted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCreds, mockAdapter := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		mockCreds.EXPECT().Token(ctx).Return("stale-token", nil),
		mockAdapter.EXPECT().SetToken("stale-token"),
		mockAdapter.EXPECT().GetUserData(ctx).Return(models.User{}, adapter.ErrUnauthorized),
		mockCreds.EXPECT().DeleteToken(ctx).Return(nil),
		mockAdapter.EXPECT().SetToken(""),
	)

	// отклонённый токен — штатный случай, а не ошибка запуска
	err := svc.Bootstrap(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.SessionAnonymous, svc.State())

	_, ok := svc.CurrentUser()
	assert.False(t, ok)
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestSessionService_Login_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCreds, mockAdapter := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	creds := models.Credentials{Email: "alice@example.com", Password: "secret"}
	user := models.User{ID: "u1", Name: "Alice", Email: creds.Email}

	var events []string
	svc.Subscribe(func(_ context.Context, state models.SessionState) {
		events = append(events, "observer:"+state.String())
	})

	mockAdapter.EXPECT().Login(ctx, creds).Return(user, nil)
	mockAdapter.EXPECT().Token().Return("fresh-token")
	mockCreds.EXPECT().SaveToken(ctx, "fresh-token").DoAndReturn(
		func(context.Context, string) error {
			events = append(events, "save_token")
			return nil
		},
	)

	err := svc.Login(ctx, creds)
	require.NoError(t, err)
	assert.Equal(t, models.SessionAuthenticated, svc.State())

	// токен должен быть сохранён ДО уведомления об аутентификации
	assert.Equal(t, []string{
		"observer:authenticating",
		"save_token",
		"observer:authenticated",
	}, events)
}

func TestSessionService_Login_AdapterError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockAdapter := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	creds := models.Credentials{Email: "alice@example.com", Password: "wrong"}
	mockAdapter.EXPECT().Login(ctx, creds).
		Return(models.User{}, adapter.ErrValidation)

	err := svc.Login(ctx, creds)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLoginOnServer)
	assert.ErrorIs(t, err, adapter.ErrValidation)
	assert.Equal(t, models.SessionAnonymous, svc.State())
}

func TestSessionService_Login_TokenNotPersisted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCreds, mockAdapter := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	creds := models.Credentials{Email: "alice@example.com", Password: "secret"}

	var sawAuthenticated bool
	svc.Subscribe(func(_ context.Context, state models.SessionState) {
		if state == models.SessionAuthenticated {
			sawAuthenticated = true
		}
	})

	gomock.InOrder(
		mockAdapter.EXPECT().Login(ctx, creds).Return(models.User{ID: "u1"}, nil),
		mockAdapter.EXPECT().Token().Return("fresh-token"),
		mockCreds.EXPECT().SaveToken(ctx, "fresh-token").Return(errors.New("disk full")),
		mockAdapter.EXPECT().SetToken(""),
	)

	err := svc.Login(ctx, creds)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCredentialNotPersisted)
	assert.Equal(t, models.SessionAnonymous, svc.State())
	assert.False(t, sawAuthenticated, "без сохранённого токена сессия не должна становиться аутентифицированной")
}

// ── Register ─────────────────────────────────────────────────────────────────

func TestSessionService_Register_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCreds, mockAdapter := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	data := models.RegistrationData{Name: "Bob", Email: "bob@example.com", Password: "secret"}
	user := models.User{ID: "u2", Name: data.Name, Email: data.Email}

	mockAdapter.EXPECT().Register(ctx, data).Return(user, nil)
	mockAdapter.EXPECT().Token().Return("fresh-token")
	mockCreds.EXPECT().SaveToken(ctx, "fresh-token").Return(nil)

	err := svc.Register(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, models.SessionAuthenticated, svc.State())
}

func TestSessionService_Register_AdapterError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockAdapter := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	data := models.RegistrationData{Name: "Bob", Email: "taken@example.com", Password: "secret"}
	mockAdapter.EXPECT().Register(ctx, data).
		Return(models.User{}, adapter.ErrValidation)

	err := svc.Register(ctx, data)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRegisterOnServer)
	assert.Equal(t, models.SessionAnonymous, svc.State())
}

// ── Logout ───────────────────────────────────────────────────────────────────

func TestSessionService_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCreds, mockAdapter := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	creds := models.Credentials{Email: "alice@example.com", Password: "secret"}
	mockAdapter.EXPECT().Login(ctx, creds).Return(models.User{ID: "u1"}, nil)
	mockAdapter.EXPECT().Token().Return("fresh-token")
	mockCreds.EXPECT().SaveToken(ctx, "fresh-token").Return(nil)
	require.NoError(t, svc.Login(ctx, creds))

	var transitions []models.SessionState
	svc.Subscribe(func(_ context.Context, state models.SessionState) {
		transitions = append(transitions, state)
	})

	mockCreds.EXPECT().DeleteToken(gomock.Any()).Return(nil)
	mockAdapter.EXPECT().SetToken("")

	svc.Logout()

	assert.Equal(t, models.SessionAnonymous, svc.State())
	assert.Equal(t, []models.SessionState{models.SessionAnonymous}, transitions)

	_, ok := svc.CurrentUser()
	assert.False(t, ok)
}

func TestSessionService_Logout_DeleteTokenErrorIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCreds, mockAdapter := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	creds := models.Credentials{Email: "alice@example.com", Password: "secret"}
	mockAdapter.EXPECT().Login(ctx, creds).Return(models.User{ID: "u1"}, nil)
	mockAdapter.EXPECT().Token().Return("fresh-token")
	mockCreds.EXPECT().SaveToken(ctx, "fresh-token").Return(nil)
	require.NoError(t, svc.Login(ctx, creds))

	mockCreds.EXPECT().DeleteToken(gomock.Any()).Return(errors.New("io error"))
	mockAdapter.EXPECT().SetToken("")

	svc.Logout()
	assert.Equal(t, models.SessionAnonymous, svc.State())
}

func TestSessionService_Logout_WhenAnonymousDoesNotNotify(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCreds, mockAdapter := newTestSessionSvc(t, ctrl)

	var notified bool
	svc.Subscribe(func(context.Context, models.SessionState) { notified = true })

	mockCreds.EXPECT().DeleteToken(gomock.Any()).Return(nil)
	mockAdapter.EXPECT().SetToken("")

	svc.Logout()
	assert.False(t, notified, "переход в уже текущее состояние не должен уведомлять наблюдателей")
}
