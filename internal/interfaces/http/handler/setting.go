package handler

import (
	settingapp "github.com/fintrack/backend/internal/application/setting"
	"github.com/gin-gonic/gin"
)

// SettingHandler handles per-user key/value settings
type SettingHandler struct {
	BaseHandler
	settingService *settingapp.SettingService
}

// NewSettingHandler creates a new SettingHandler
func NewSettingHandler(base BaseHandler, settingService *settingapp.SettingService) *SettingHandler {
	return &SettingHandler{BaseHandler: base, settingService: settingService}
}

// GetAll godoc
// @Summary      All settings
// @Tags         settings
// @Produce      json
// @Success      200 {object} dto.Response{data=map[string]string}
// @Security     BearerAuth
// @Router       /settings [get]
func (h *SettingHandler) GetAll(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	settings, err := h.settingService.GetAll(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, settings)
}

// Get godoc
// @Summary      One setting
// @Tags         settings
// @Produce      json
// @Param        key path string true "Setting key"
// @Success      200 {object} dto.Response{data=settingapp.SettingResponse}
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /settings/{key} [get]
func (h *SettingHandler) Get(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	st, err := h.settingService.Get(c.Request.Context(), userID, c.Param("key"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, st)
}

// Upsert godoc
// @Summary      Write settings
// @Description  Strings are stored as-is, numbers and booleans stringified, objects and arrays JSON-encoded. Returns the full map.
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        request body settingapp.UpsertSettingsRequest true "Settings"
// @Success      200 {object} dto.Response{data=map[string]string}
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /settings [post]
func (h *SettingHandler) Upsert(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var req settingapp.UpsertSettingsRequest
	if !h.bindJSON(c, &req) {
		return
	}

	settings, err := h.settingService.Upsert(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, settings)
}

// Delete godoc
// @Summary      Delete a setting
// @Tags         settings
// @Param        key path string true "Setting key"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /settings/{key} [delete]
func (h *SettingHandler) Delete(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	if err := h.settingService.Delete(c.Request.Context(), userID, c.Param("key")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Message(c, "Setting deleted successfully")
}
