package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the full /api surface onto the router.
func RegisterRoutes(router *gin.Engine, a *API) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.GET("/google", a.GoogleLogin)
		auth.GET("/google/callback", a.GoogleCallback)
		auth.GET("/session", a.Session)
		auth.POST("/logout", a.Logout)
		auth.GET("/me", a.AuthMiddleware(), a.Me)
		auth.POST("/onboarding-seen", a.AuthMiddleware(), a.OnboardingSeen)
		auth.POST("/clear-seed-data", a.AuthMiddleware(), a.ClearSeedData)
	}

	inventory := api.Group("/inventory")
	inventory.Use(a.AuthMiddleware())
	{
		// Static paths before the :id wildcard.
		inventory.GET("/dashboard-stats", a.DashboardStats)
		inventory.GET("/low-stock", a.LowStock)
		inventory.POST("/generate-shopping-list", a.GenerateShoppingList)
		inventory.GET("", a.ListInventory)
		inventory.POST("", a.CreateInventoryItem)
		inventory.GET("/:id", a.GetInventoryItem)
		inventory.PATCH("/:id", a.UpdateInventoryItem)
		inventory.DELETE("/:id", a.DeleteInventoryItem)
	}

	lists := api.Group("/provisioning-lists")
	lists.Use(a.AuthMiddleware())
	{
		lists.GET("", a.ListProvisioningLists)
		lists.POST("", a.CreateProvisioningList)
		lists.GET("/:id", a.GetProvisioningList)
		lists.PATCH("/:id", a.UpdateProvisioningList)
		lists.DELETE("/:id", a.DeleteProvisioningList)
		lists.GET("/:id/export", a.ExportList)
		lists.POST("/:id/add-restock-items", a.AddRestockItems)
		lists.POST("/:id/add-meal-items", a.AddMealItems)
		lists.POST("/:id/items", a.AddListItem)
		lists.PATCH("/:id/items/:itemId", a.UpdateListItem)
		lists.DELETE("/:id/items/:itemId", a.DeleteListItem)
		lists.POST("/:id/items/:itemId/purchase", a.PurchaseListItem)
	}

	meals := api.Group("/meals")
	meals.Use(a.AuthMiddleware())
	{
		meals.GET("", a.ListMeals)
		meals.POST("", a.CreateMeal)
		meals.GET("/:id", a.GetMeal)
		meals.PATCH("/:id", a.UpdateMeal)
		meals.DELETE("/:id", a.DeleteMeal)
		meals.GET("/:id/check-inventory", a.CheckMealInventory)
		meals.POST("/:id/ingredients", a.AddMealIngredient)
		meals.PATCH("/:id/ingredients/:ingredientId", a.UpdateMealIngredient)
		meals.DELETE("/:id/ingredients/:ingredientId", a.DeleteMealIngredient)
	}

	plans := api.Group("/meal-plans")
	plans.Use(a.AuthMiddleware())
	{
		plans.GET("", a.ListMealPlans)
		plans.POST("", a.CreateMealPlan)
		plans.GET("/:id", a.GetMealPlan)
		plans.PATCH("/:id", a.UpdateMealPlan)
		plans.DELETE("/:id", a.DeleteMealPlan)
		plans.POST("/:id/meals", a.AddPlannedMeal)
		plans.DELETE("/:id/meals/:plannedMealId", a.RemovePlannedMeal)
		plans.POST("/:id/generate-list", a.GenerateList)
	}

	recipes := api.Group("/recipes")
	recipes.Use(a.AuthMiddleware())
	{
		recipes.GET("/enabled", a.RecipesEnabled)
		recipes.GET("/search", a.SearchRecipes)
		recipes.GET("/:id", a.GetRecipe)
	}
}
