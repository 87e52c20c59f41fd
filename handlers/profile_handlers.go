package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gatag/api/gaq"
	"gatag/api/models"
)

type ProfileHandlers struct {
	Profiles ProfileRepository
	logger   *zap.Logger
}

func NewProfileHandlers(profiles ProfileRepository, logger *zap.Logger) *ProfileHandlers {
	return &ProfileHandlers{Profiles: profiles, logger: logger}
}

// Create stores a profile for the current user. The account id is validated
// and trimmed the same way the builder does.
func (h *ProfileHandlers) Create(c *gin.Context) {
	var req models.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	tr, err := gaq.New(req.AccountID)
	if err != nil {
		abortWithError(c, h.logger, err, "Failed to create profile")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	profile, err := h.Profiles.CreateProfile(ctx, currentUserID(c), tr.AccountID(), strings.TrimSpace(req.Name))
	if err != nil {
		abortWithError(c, h.logger, err, "Failed to create profile")
		return
	}
	c.JSON(http.StatusCreated, profile)
}

func (h *ProfileHandlers) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	profiles, err := h.Profiles.ListProfiles(ctx, currentUserID(c))
	if err != nil {
		abortWithError(c, h.logger, err, "Failed to list profiles")
		return
	}
	c.JSON(http.StatusOK, profiles)
}

func (h *ProfileHandlers) Get(c *gin.Context) {
	profile, ok := loadProfile(c, h.Profiles, h.logger)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, profile)
}

// AddCustomVar registers a custom variable on the profile. It is validated by
// replaying the profile into a Tracker before anything is stored.
func (h *ProfileHandlers) AddCustomVar(c *gin.Context) {
	var req models.CustomVarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	profile, ok := loadProfile(c, h.Profiles, h.logger)
	if !ok {
		return
	}
	tr, err := trackerFor(profile)
	if err != nil {
		h.logger.Error("Stored profile is not renderable", zap.Int("profile_id", profile.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stored profile is invalid"})
		return
	}
	if err := tr.SetCustomVar(req.Index, req.Name, req.Value, gaq.Scope(req.Scope)); err != nil {
		abortWithError(c, h.logger, err, "Failed to add custom variable")
		return
	}
	vars := tr.CustomVars()

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	cv, err := h.Profiles.AddCustomVar(ctx, profile.ID, vars[len(vars)-1])
	if err != nil {
		abortWithError(c, h.logger, err, "Failed to add custom variable")
		return
	}
	c.JSON(http.StatusCreated, cv)
}
