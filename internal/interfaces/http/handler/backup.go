package handler

import (
	"github.com/gin-gonic/gin"
)

const backupUnsupported = "Backups are not supported by this server; nothing was stored"

// BackupHandler answers the backup endpoints without persisting anything
type BackupHandler struct {
	BaseHandler
}

// NewBackupHandler creates a new BackupHandler
func NewBackupHandler(base BaseHandler) *BackupHandler {
	return &BackupHandler{BaseHandler: base}
}

// Latest godoc
// @Summary      Latest backup
// @Tags         backups
// @Produce      json
// @Success      200 {object} MessageResponse
// @Security     BearerAuth
// @Router       /backups/latest [get]
func (h *BackupHandler) Latest(c *gin.Context) {
	h.Message(c, backupUnsupported)
}

// Get godoc
// @Summary      Get a backup
// @Tags         backups
// @Param        id path string true "Backup ID"
// @Success      200 {object} MessageResponse
// @Security     BearerAuth
// @Router       /backups/{id} [get]
func (h *BackupHandler) Get(c *gin.Context) {
	h.Message(c, backupUnsupported)
}

// Export godoc
// @Summary      Export a backup
// @Tags         backups
// @Success      200 {object} MessageResponse
// @Security     BearerAuth
// @Router       /backups/export [post]
func (h *BackupHandler) Export(c *gin.Context) {
	h.Message(c, backupUnsupported)
}

// Import godoc
// @Summary      Import a backup
// @Tags         backups
// @Success      200 {object} MessageResponse
// @Security     BearerAuth
// @Router       /backups/import [post]
func (h *BackupHandler) Import(c *gin.Context) {
	h.Message(c, backupUnsupported)
}

// Delete godoc
// @Summary      Delete a backup
// @Tags         backups
// @Param        id path string true "Backup ID"
// @Success      200 {object} MessageResponse
// @Security     BearerAuth
// @Router       /backups/{id} [delete]
func (h *BackupHandler) Delete(c *gin.Context) {
	h.Message(c, backupUnsupported)
}
