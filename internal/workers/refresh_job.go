// Package workers contains the client's background jobs. The only job today
// is the periodic chat-list refresh that keeps the local conversation list
// close to the backend's while the session is authenticated.
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-chat-client/internal/logger"
	"github.com/MKhiriev/go-chat-client/models"
)

// ChatRefresher pulls the authoritative conversation list from the backend.
type ChatRefresher interface {
	Refresh(ctx context.Context) error
}

// SessionStateReader reports the current session lifecycle state.
type SessionStateReader interface {
	State() models.SessionState
}

// RefreshJob periodically refreshes the chat list while the session is
// authenticated. It is idle until Start is called. Refresh failures are the
// chat service's concern (it degrades to an empty list and escalates
// rejected credentials); the job itself never retries early and never stops
// on error.
type RefreshJob struct {
	session SessionStateReader
	chats   ChatRefresher
	logger  *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewRefreshJob(session SessionStateReader, chats ChatRefresher, logger *logger.Logger) *RefreshJob {
	return &RefreshJob{
		session: session,
		chats:   chats,
		logger:  logger,
	}
}

// Start stops any previously running job, then launches a background
// goroutine that refreshes the chat list every interval. An interval of zero
// or less disables the job entirely. The goroutine exits when ctx is
// cancelled or Stop is called.
func (j *RefreshJob) Start(ctx context.Context, interval time.Duration) {
	j.Stop()

	if interval <= 0 {
		j.logger.Info().Msg("background chat refresh disabled")
		return
	}

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if j.session.State() != models.SessionAuthenticated {
					continue
				}
				if err := j.chats.Refresh(jobCtx); err != nil {
					j.logger.Debug().Err(err).Msg("background chat refresh failed")
				}
			}
		}
	}()
}

// Stop cancels the background goroutine's context and blocks until it has
// fully exited. Safe to call when the job is not running.
func (j *RefreshJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
