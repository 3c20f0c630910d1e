package workers

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"paperdesk_backend/internal/logger"

	"gorm.io/gorm"
)

// JanitorWorker runs the periodic housekeeping jobs: expired one-time
// tokens are cleared from user rows and abandoned bundle files are
// removed from the temp directory.
type JanitorWorker struct {
	db      *gorm.DB
	tempDir string
}

func NewJanitorWorker(db *gorm.DB, tempDir string) *JanitorWorker {
	return &JanitorWorker{db: db, tempDir: tempDir}
}

func (w *JanitorWorker) Start(ctx context.Context) {
	go w.clearExpiredTokens(ctx)
	go w.sweepTempFiles(ctx)
}

func (w *JanitorWorker) clearExpiredTokens(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.WorkerLog("janitor", "token sweep stopped", nil)
			return
		case <-ticker.C:
			now := time.Now()

			result := w.db.Exec(
				`UPDATE users SET activation_token = NULL, activation_expire = NULL
				 WHERE activation_expire IS NOT NULL AND activation_expire < ?`, now)
			if result.Error != nil {
				logger.WorkerLog("janitor", "clear expired activation tokens", result.Error)
			} else if result.RowsAffected > 0 {
				logger.Info("Cleared expired activation tokens", "count", result.RowsAffected)
			}

			result = w.db.Exec(
				`UPDATE users SET reset_password_token = NULL, reset_password_expire = NULL
				 WHERE reset_password_expire IS NOT NULL AND reset_password_expire < ?`, now)
			if result.Error != nil {
				logger.WorkerLog("janitor", "clear expired reset tokens", result.Error)
			} else if result.RowsAffected > 0 {
				logger.Info("Cleared expired reset tokens", "count", result.RowsAffected)
			}
		}
	}
}

// sweepTempFiles removes bundle artifacts a crashed or interrupted
// download left behind.
func (w *JanitorWorker) sweepTempFiles(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.WorkerLog("janitor", "temp sweep stopped", nil)
			return
		case <-ticker.C:
			w.sweepOnce(time.Hour)
		}
	}
}

func (w *JanitorWorker) sweepOnce(maxAge time.Duration) {
	entries, err := os.ReadDir(w.tempDir)
	if err != nil {
		logger.WorkerLog("janitor", "read temp dir", err)
		return
	}

	cutoff := time.Now().Add(-maxAge)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "order_") {
			continue
		}
		if !strings.HasSuffix(name, ".zip") && !strings.HasSuffix(name, ".pdf") {
			continue
		}

		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}

		path := filepath.Join(w.tempDir, name)
		if err := os.Remove(path); err != nil {
			logger.WorkerLog("janitor", "remove stale bundle file", err)
		} else {
			logger.Info("Removed stale bundle file", "path", path)
		}
	}
}
