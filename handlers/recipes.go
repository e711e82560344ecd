package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// RecipesEnabled tells the client whether recipe search is available.
func (a *API) RecipesEnabled(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"enabled": a.recipes.Enabled()})
}

// SearchRecipes proxies a search to the recipe provider. Upstream failures
// surface as internal errors; there is no retry or fallback.
func (a *API) SearchRecipes(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
		return
	}

	results, err := a.recipes.Search(c.Request.Context(), query)
	if err != nil {
		log.Printf("recipe search failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Recipe search failed"})
		return
	}
	c.JSON(http.StatusOK, results)
}

// GetRecipe returns one recipe with ingredients normalized into the app's
// ingredient shape.
func (a *API) GetRecipe(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return
	}

	detail, err := a.recipes.Detail(c.Request.Context(), id)
	if err != nil {
		log.Printf("recipe detail failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Recipe lookup failed"})
		return
	}
	c.JSON(http.StatusOK, detail)
}
