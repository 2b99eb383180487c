package engine

import (
	"github.com/sirupsen/logrus"

	"swiftpos/internal/models"
)

// Settings returns the current store settings.
func (e *Engine) Settings() models.StoreSettings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings
}

// UpdateSettings replaces the settings wholesale. Only a change to the
// auto-backup or cloud-connected flags counts as a backup-qualifying change,
// edits to branding fields never arm the scheduler.
func (e *Engine) UpdateSettings(settings models.StoreSettings) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	flagsChanged := settings.AutoBackup != e.settings.AutoBackup ||
		settings.GoogleDriveConnected != e.settings.GoogleDriveConnected
	e.settings = settings
	if err := e.store.SaveSettings(e.settings); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"auto_backup":     settings.AutoBackup,
		"drive_connected": settings.GoogleDriveConnected,
	}).Info("Settings updated")
	if flagsChanged {
		e.notifyChange()
	}
	return nil
}
