package database

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"roombook/internal/config"
	"roombook/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerformBackup(t *testing.T) {
	logger := zerolog.New(io.Discard)
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "roombook.db")

	db, err := NewDB(dbPath, &logger)
	require.NoError(t, err)
	require.NoError(t, db.InsertBooking(context.Background(), &models.Booking{
		Name: "A", Phone: "0123456789", Day: "Thứ 2", Hour: 8, WeekStart: "2025-09-01",
	}))
	db.Close()

	backupDir := filepath.Join(tmpDir, "backups")
	svc := NewBackupService(dbPath, config.BackupConfig{
		Enabled:     true,
		StoragePath: backupDir,
	}, &logger)

	require.NoError(t, svc.PerformBackup())

	files, err := os.ReadDir(backupDir)
	require.NoError(t, err)
	require.Len(t, files, 1)

	// the backup opens as a valid database with the data intact
	restored, err := NewDB(filepath.Join(backupDir, files[0].Name()), &logger)
	require.NoError(t, err)
	defer restored.Close()

	count, err := restored.CountByWeek(context.Background(), "2025-09-01")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCleanupOldBackups_NoRetention(t *testing.T) {
	logger := zerolog.New(io.Discard)
	svc := NewBackupService("unused.db", config.BackupConfig{RetentionDays: 0}, &logger)
	// no retention configured: cleanup is a no-op and must not panic
	svc.CleanupOldBackups()
}
