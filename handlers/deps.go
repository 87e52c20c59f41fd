package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gatag/api/gaq"
	"gatag/api/middleware"
	"gatag/api/models"
	"gatag/api/store"
)

type UserRepository interface {
	CreateUser(ctx context.Context, email string, hashedPassword []byte) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type ProfileRepository interface {
	CreateProfile(ctx context.Context, userID int, accountID, name string) (*models.Profile, error)
	ListProfiles(ctx context.Context, userID int) ([]models.Profile, error)
	GetProfile(ctx context.Context, userID, id int) (*models.Profile, error)
	AddCustomVar(ctx context.Context, profileID int, cv gaq.CustomVariable) (*models.CustomVar, error)
}

type RenderRecorder interface {
	InsertRenderEvents(ctx context.Context, events []models.RenderEvent) error
}

type RenderStats interface {
	GetRenderCountsOverTime(ctx context.Context, interval string, start, end time.Time, kind string) ([]models.RenderCountByTime, error)
	GetTopAccounts(ctx context.Context, start, end time.Time, limit uint64) ([]models.TopAccountResult, error)
}

const dbTimeout = 10 * time.Second

// abortWithError maps builder validation errors to 400 and missing profiles
// to 404. Anything else is logged and reported as msg with a 500.
func abortWithError(c *gin.Context, logger *zap.Logger, err error, msg string) {
	switch {
	case errors.Is(err, gaq.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
	default:
		logger.Error(msg, zap.Error(err), zap.String("path", c.FullPath()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}

func currentUserID(c *gin.Context) int {
	return c.GetInt(middleware.ContextUserID)
}
