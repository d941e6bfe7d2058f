package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-chat-client/internal/config"
	"github.com/MKhiriev/go-chat-client/internal/logger"
	"github.com/MKhiriev/go-chat-client/internal/service"
	"github.com/MKhiriev/go-chat-client/internal/tui"
	"github.com/MKhiriev/go-chat-client/internal/workers"
	"github.com/MKhiriev/go-chat-client/models"
)

type App struct {
	services        *service.ClientServices
	ui              *tui.TUI
	refreshJob      *workers.RefreshJob
	refreshInterval time.Duration
	logger          *logger.Logger
}

func NewApp(services *service.ClientServices, ui *tui.TUI, workersCfg config.ClientWorkers, logger *logger.Logger) (*App, error) {
	return &App{
		services:        services,
		ui:              ui,
		refreshJob:      workers.NewRefreshJob(services.Session, services.Chats, logger.GetChildLogger()),
		refreshInterval: workersCfg.RefreshInterval,
		logger:          logger,
	}, nil
}

// Run starts the client lifecycle and blocks until the user quits. A logout
// from the main screen loops back into the login flow instead of exiting.
func (a *App) Run() error {
	ctx := context.Background()

	if err := a.services.Session.Bootstrap(ctx); err != nil {
		// локальное хранилище недоступно, без него нет смысла продолжать
		return fmt.Errorf("bootstrap session: %w", err)
	}

	for {
		if !a.authenticated() {
			if err := a.ui.LoginFlow(ctx); err != nil {
				if errors.Is(err, tui.ErrUserQuit) {
					return nil
				}
				return fmt.Errorf("login flow: %w", err)
			}
		}

		a.refreshJob.Start(ctx, a.refreshInterval)
		logout, err := a.ui.MainLoop(ctx)
		a.refreshJob.Stop()

		if err != nil {
			return fmt.Errorf("main loop: %w", err)
		}
		if !logout {
			return nil
		}
	}
}

func (a *App) authenticated() bool {
	return a.services.Session.State() == models.SessionAuthenticated
}
