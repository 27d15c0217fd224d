package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gearlog/gearlog-backend/bike"
	"github.com/gearlog/gearlog-backend/internal/auth0"
	"github.com/gearlog/gearlog-backend/internal/middleware"
	"github.com/gearlog/gearlog-backend/internal/o11y"
	"github.com/gearlog/gearlog-backend/maintenance"
	"github.com/gearlog/gearlog-backend/part"
	"github.com/gearlog/gearlog-backend/summary"
	"github.com/gearlog/gearlog-backend/user"
)

type API struct {
	r    *gin.Engine
	ur   *user.Repository
	br   *bike.Repository
	pr   *part.Repository
	mr   *maintenance.Repository
	disp *summary.Dispatcher
	a0   auth0.Client
}

// Config carries the non-repository wiring.
type Config struct {
	// Auth guards the user-facing routes. Production passes
	// middleware.EnsureValidToken; tests pass a fake.
	Auth gin.HandlerFunc

	// OpsUsername/OpsPassword guard the operator routes (/metrics and the
	// batch trigger). Empty credentials disable the group.
	OpsUsername string
	OpsPassword string
}

func New(ur *user.Repository, br *bike.Repository, pr *part.Repository, mr *maintenance.Repository,
	disp *summary.Dispatcher, a0 auth0.Client, obs *o11y.Observability, cfg Config) *API {
	a := &API{
		r:    gin.New(),
		ur:   ur,
		br:   br,
		pr:   pr,
		mr:   mr,
		disp: disp,
		a0:   a0,
	}

	a.r.Use(gin.Recovery())
	a.r.Use(middleware.Tracing())
	a.r.Use(middleware.Logging(obs.Logger))
	a.r.Use(middleware.Metrics(obs.Registry))

	a.r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authed := a.r.Group("/")
	authed.Use(cfg.Auth, middleware.Identity())
	{
		authed.GET("/me", a.meHandler)

		authed.GET("/bikes", a.getBikesHandler)
		authed.POST("/bikes", a.createBikeHandler)
		authed.GET("/bikes/:bikeId", a.getBikeHandler)
		authed.PUT("/bikes/:bikeId", a.updateBikeHandler)
		authed.DELETE("/bikes/:bikeId", a.deleteBikeHandler)
		authed.GET("/bikes/:bikeId/weight", a.bikeWeightHandler)

		authed.GET("/bikes/:bikeId/parts", a.getPartsHandler)
		authed.POST("/bikes/:bikeId/parts", a.createPartHandler)
		authed.PUT("/parts/:partId", a.updatePartHandler)
		authed.DELETE("/parts/:partId", a.deletePartHandler)

		authed.GET("/categories", a.getCategoriesHandler)
		authed.POST("/categories", a.createCategoryHandler)
		authed.PUT("/categories/:categoryId", a.updateCategoryHandler)
		authed.DELETE("/categories/:categoryId", a.deleteCategoryHandler)

		authed.GET("/maintenance/types", a.getMaintenanceTypesHandler)
		authed.GET("/bikes/:bikeId/maintenance", a.getRecordsHandler)
		authed.POST("/bikes/:bikeId/maintenance", a.createRecordHandler)
		authed.PUT("/maintenance/records/:recordId", a.updateRecordHandler)
		authed.DELETE("/maintenance/records/:recordId", a.deleteRecordHandler)

		authed.GET("/maintenance/alerts", a.getAlertsHandler)
		authed.GET("/notifications/preferences", a.getPreferencesHandler)
		authed.PUT("/notifications/preferences/:typeId", a.putPreferenceHandler)
		authed.DELETE("/notifications/preferences/:typeId", a.deletePreferenceHandler)
		authed.POST("/notifications/summary", a.sendSummaryHandler)
	}

	if cfg.OpsUsername != "" {
		ops := a.r.Group("/", gin.BasicAuth(gin.Accounts{cfg.OpsUsername: cfg.OpsPassword}))
		{
			ops.GET("/metrics", gin.WrapH(promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{})))
			ops.POST("/ops/notifications/run", a.runAllSummariesHandler)
			ops.POST("/ops/maintenance/types", a.createMaintenanceTypeHandler)
			ops.PUT("/ops/maintenance/types/:typeId", a.updateMaintenanceTypeHandler)
		}
	}

	return a
}

func (a *API) Router() *gin.Engine {
	return a.r
}

// currentUser resolves the authenticated caller to a local user row, creating
// it on first sight. Returns false after writing the error response.
func (a *API) currentUser(c *gin.Context) (*user.User, bool) {
	auth0ID, ok := middleware.GetAuth0ID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHORIZED", "message": "Authentication required"})
		return nil, false
	}

	u, err := a.ur.GetUserByAuth0ID(c, auth0ID)
	if errors.Is(err, user.ErrNotFound) {
		u, err = a.ur.UpsertUser(c, auth0ID, "", "")
	}
	if err != nil {
		logger := middleware.GetLogger(c)
		logger.ErrorContext(c, "failed to resolve user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return nil, false
	}

	return u, true
}
