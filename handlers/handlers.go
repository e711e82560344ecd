package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"github.com/lewishowell/yacht-provisioning/config"
	"github.com/lewishowell/yacht-provisioning/services"
)

// API bundles the injected dependencies behind every endpoint. Construct it
// once in main and register its routes; there is no package-global state.
type API struct {
	db          *gorm.DB
	cfg         *config.Config
	provisioner *services.Provisioner
	recipes     *services.RecipeClient
	oauth       *oauth2.Config
}

func New(db *gorm.DB, cfg *config.Config) *API {
	api := &API{
		db:          db,
		cfg:         cfg,
		provisioner: services.NewProvisioner(db, cfg.PurchaseSyncScope),
		recipes:     services.NewRecipeClient(cfg.SpoonacularAPIKey),
	}

	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		api.oauth = &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.ServerURL + "/api/auth/google/callback",
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint:     google.Endpoint,
		}
	}

	return api
}

// Provisioner exposes the domain service, used by tests that seed state
// through the same code paths the handlers use.
func (a *API) Provisioner() *services.Provisioner {
	return a.provisioner
}

// currentUserID returns the authenticated user id placed in the context by
// AuthMiddleware.
func currentUserID(c *gin.Context) string {
	return c.GetString("user_id")
}

// serviceError maps domain errors onto the HTTP taxonomy: a uniform 404 for
// anything absent or not owned by the caller, a logged generic 500 for the
// rest.
func serviceError(c *gin.Context, err error, notFoundMsg string) {
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
		return
	}
	log.Printf("internal error on %s %s: %v", c.Request.Method, c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
}
