package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-chat-client/internal/logger"
	"github.com/MKhiriev/go-chat-client/internal/service"
	"github.com/MKhiriev/go-chat-client/internal/store"
	"github.com/MKhiriev/go-chat-client/models"
)

var ErrUserQuit = errors.New("вышел из программы")

type TUI struct {
	services  *service.ClientServices
	storages  *store.ClientStorages
	buildInfo models.AppBuildInfo
	theme     string
	logger    *logger.Logger
}

// New creates the terminal UI. theme is the starting UI theme; the persisted
// preference (if any) has already been resolved by the caller.
func New(services *service.ClientServices, storages *store.ClientStorages, buildInfo models.AppBuildInfo, theme string, logger *logger.Logger) (*TUI, error) {
	return &TUI{
		services:  services,
		storages:  storages,
		buildInfo: buildInfo,
		theme:     theme,
		logger:    logger,
	}, nil
}

// LoginFlow runs the anonymous part of the UI: the start menu with the login
// and registration forms. It returns nil once the session service reports an
// authenticated session, or [ErrUserQuit] when the user quits.
func (t *TUI) LoginFlow(ctx context.Context) error {
	pages := map[string]tea.Model{
		"menu":     NewMenuModel(),
		"login":    NewLoginModel(ctx, t.services.Session),
		"register": NewRegisterModel(ctx, t.services.Session),
	}

	root := NewRootModel(pages, "menu", t.buildInfo)
	finalModel, runErr := tea.NewProgram(root, tea.WithAltScreen()).Run()
	if runErr != nil {
		return runErr
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser {
		return ErrUserQuit
	}

	return nil
}

// MainLoop runs the authenticated part of the UI: the conversation screen.
// It returns logout=true when the user logged out (the caller restarts the
// login flow) and false when the user quit the program.
func (t *TUI) MainLoop(ctx context.Context) (logout bool, err error) {
	model := newChatModel(ctx, t.services, t.storages, t.theme)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if runErr != nil {
		return false, runErr
	}

	result, ok := finalModel.(chatModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	t.theme = result.themeName
	return result.logout, nil
}
