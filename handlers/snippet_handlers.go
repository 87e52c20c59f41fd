package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"gatag/api/gaq"
	"gatag/api/models"
)

// SnippetHandlers render ga.js snippets for stored profiles and record each
// render.
type SnippetHandlers struct {
	Profiles ProfileRepository
	Renders  RenderRecorder
	logger   *zap.Logger
	now      func() time.Time
}

func NewSnippetHandlers(profiles ProfileRepository, renders RenderRecorder, logger *zap.Logger) *SnippetHandlers {
	return &SnippetHandlers{
		Profiles: profiles,
		Renders:  renders,
		logger:   logger,
		now:      time.Now,
	}
}

// Event renders a _trackEvent call. It needs no profile.
func (h *SnippetHandlers) Event(c *gin.Context) {
	var req models.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	var value float64
	if req.Value != "" {
		v, err := req.Value.Float64()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event value", "details": err.Error()})
			return
		}
		value = v
	}
	code, err := gaq.EventCode(req.Category, req.Action, req.Label, value, req.Wrap)
	if err != nil {
		abortWithError(c, h.logger, err, "Failed to render event code")
		return
	}

	h.record(c, models.KindEvent, "", req.Wrap, code)
	respondSnippet(c, models.KindEvent, code, req.Wrap)
}

func (h *SnippetHandlers) BasicInit(c *gin.Context) {
	tr, ok := h.loadTracker(c)
	if !ok {
		return
	}

	code := tr.BasicInitCode()
	h.record(c, models.KindBasicInit, tr.AccountID(), true, code)
	respondSnippet(c, models.KindBasicInit, code, true)
}

func (h *SnippetHandlers) Campaign(c *gin.Context) {
	var req models.CampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	tr, ok := h.loadTracker(c)
	if !ok {
		return
	}

	code, err := tr.ManualCampaignInitCode(req.Source, req.Medium, req.Campaign, req.Content, req.Term, req.Referrer)
	if err != nil {
		abortWithError(c, h.logger, err, "Failed to render campaign code")
		return
	}

	h.record(c, models.KindCampaign, tr.AccountID(), true, code)
	respondSnippet(c, models.KindCampaign, code, true)
}

func (h *SnippetHandlers) Pageview(c *gin.Context) {
	var req models.PageviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	tr, ok := h.loadTracker(c)
	if !ok {
		return
	}

	code, err := tr.VirtualPageviewCode(req.URL, req.Wrap)
	if err != nil {
		abortWithError(c, h.logger, err, "Failed to render pageview code")
		return
	}

	h.record(c, models.KindPageview, tr.AccountID(), req.Wrap, code)
	respondSnippet(c, models.KindPageview, code, req.Wrap)
}

func (h *SnippetHandlers) Social(c *gin.Context) {
	var req models.SocialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	tr, ok := h.loadTracker(c)
	if !ok {
		return
	}

	code, err := tr.TrackSocialCode(req.Network, req.Action, req.Target, req.PagePath, req.Wrap)
	if err != nil {
		abortWithError(c, h.logger, err, "Failed to render social code")
		return
	}

	h.record(c, models.KindSocial, tr.AccountID(), req.Wrap, code)
	respondSnippet(c, models.KindSocial, code, req.Wrap)
}

// loadTracker builds a Tracker from the :id profile of the current user,
// replaying its custom variables in stored order.
func (h *SnippetHandlers) loadTracker(c *gin.Context) (*gaq.Tracker, bool) {
	profile, ok := loadProfile(c, h.Profiles, h.logger)
	if !ok {
		return nil, false
	}
	tr, err := trackerFor(profile)
	if err != nil {
		h.logger.Error("Stored profile is not renderable", zap.Int("profile_id", profile.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stored profile is invalid"})
		return nil, false
	}
	return tr, true
}

func trackerFor(p *models.Profile) (*gaq.Tracker, error) {
	tr, err := gaq.New(p.AccountID)
	if err != nil {
		return nil, err
	}
	for _, cv := range p.CustomVars {
		if err := tr.SetCustomVar(cv.Index, cv.Name, cv.Value, gaq.Scope(cv.Scope)); err != nil {
			return nil, err
		}
	}
	return tr, nil
}

func loadProfile(c *gin.Context, profiles ProfileRepository, logger *zap.Logger) (*models.Profile, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile id"})
		return nil, false
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	profile, err := profiles.GetProfile(ctx, currentUserID(c), id)
	if err != nil {
		abortWithError(c, logger, err, "Failed to load profile")
		return nil, false
	}
	return profile, true
}

// record stores a render event. Failures are logged and never fail the
// render itself.
func (h *SnippetHandlers) record(c *gin.Context, kind, accountID string, wrapped bool, code string) {
	var userID string
	if id := currentUserID(c); id != 0 {
		userID = strconv.Itoa(id)
	}
	event := models.RenderEvent{
		EventID:   uuid.New().String(),
		Kind:      kind,
		AccountID: accountID,
		UserID:    userID,
		Timestamp: h.now().UTC(),
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Wrapped:   wrapped,
		CodeBytes: uint32(len(code)),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()
	if err := h.Renders.InsertRenderEvents(ctx, []models.RenderEvent{event}); err != nil {
		h.logger.Warn("Failed to record snippet render", zap.String("kind", kind), zap.String("account_id", accountID), zap.Error(err))
	}
}

// respondSnippet writes JSON by default, or the bare code for ?format=raw.
func respondSnippet(c *gin.Context, kind, code string, wrapped bool) {
	if c.Query("format") == "raw" {
		contentType := "application/javascript; charset=utf-8"
		if wrapped {
			contentType = "text/html; charset=utf-8"
		}
		c.Data(http.StatusOK, contentType, []byte(code))
		return
	}
	c.JSON(http.StatusOK, models.SnippetResponse{Kind: kind, Code: code})
}
