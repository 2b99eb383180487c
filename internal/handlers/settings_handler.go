package handlers

import (
	"errors"
	"io"
	"net/http"

	"swiftpos/internal/auth"
	"swiftpos/internal/engine"
	"swiftpos/internal/models"
	"swiftpos/internal/store"

	"github.com/gin-gonic/gin"
)

// GetSettings returns the store configuration.
func GetSettings(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, e.Settings())
	}
}

// UpdateSettings replaces the store configuration wholesale, the way the
// settings form submits it.
func UpdateSettings(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var settings models.StoreSettings
		if err := c.ShouldBindJSON(&settings); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
		if err := e.UpdateSettings(settings); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
			return
		}
		c.JSON(http.StatusOK, e.Settings())
	}
}

// BackupStatus reports whether a sync is in flight and when the last one
// completed.
func BackupStatus(e *engine.Engine, s *engine.Scheduler) gin.HandlerFunc {
	return func(c *gin.Context) {
		settings := e.Settings()
		c.JSON(http.StatusOK, gin.H{
			"isSyncing":            s.Syncing(),
			"lastBackupTime":       settings.LastBackupTime,
			"autoBackup":           settings.AutoBackup,
			"googleDriveConnected": settings.GoogleDriveConnected,
		})
	}
}

// TriggerBackup performs an on-demand sync. It needs a connected drive but
// not the auto-backup flag, and returns once the upload has finished.
func TriggerBackup(s *engine.Scheduler) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := s.TriggerManual(c.Request.Context())
		if errors.Is(err, engine.ErrDriveNotConnected) {
			c.JSON(http.StatusConflict, gin.H{"error": "Google Drive is not connected"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Backup failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Backup completed"})
	}
}

// ExportData downloads the full snapshot envelope.
func ExportData(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		env, err := e.Export()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Export failed"})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="swiftpos-backup.json"`)
		c.JSON(http.StatusOK, env)
	}
}

// RestoreData overwrites collections from an uploaded envelope. Any subset
// of the envelope fields is accepted; anything that is not a JSON object is
// rejected outright. The auth service caches the roster, so it is reloaded
// after the store has been overwritten.
func RestoreData(e *engine.Engine, a *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
		if err := e.Restore(raw); err != nil {
			if errors.Is(err, store.ErrBadEnvelope) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid backup file"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Restore failed"})
			return
		}
		if err := a.Reload(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Restore failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Data restored successfully"})
	}
}

// ListUsers returns the roster with password hashes stripped.
func ListUsers(a *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		users := a.Users()
		out := make([]models.User, len(users))
		for i, u := range users {
			out[i] = u.Redacted()
		}
		c.JSON(http.StatusOK, out)
	}
}

// AddUser creates a staff account.
func AddUser(a *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input auth.UserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
		user, err := a.AddUser(input)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}
		c.JSON(http.StatusCreated, user.Redacted())
	}
}

// UpdateUser patches an account; updating the logged-in user refreshes the
// session too. An unknown id changes nothing.
func UpdateUser(a *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch auth.UserPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
		if err := a.UpdateUser(c.Param("id"), patch); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User updated successfully"})
	}
}

// DeleteUser removes an account.
func DeleteUser(a *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := a.DeleteUser(c.Param("id")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
	}
}
