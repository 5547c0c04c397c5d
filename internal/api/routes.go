package api

import (
	"net/http"

	"fitcoach/coach-platform/internal/domain"
	"fitcoach/coach-platform/internal/service"

	"github.com/gin-gonic/gin"
)

// Services bundles everything SetupRoutes wires into handlers.
type Services struct {
	Auth      service.AuthService
	Lead      service.LeadService
	Client    service.ClientService
	Plan      service.PlanService
	Dashboard service.DashboardService
	Catalog   service.CatalogService
	Content   service.ContentService
	Tenant    service.TenantService
	Webhook   service.WebhookService
	Photo     service.PhotoService
}

func SetupRoutes(router *gin.Engine, jwtSecret, fbVerifyToken string, svc Services) {
	authHandler := NewAuthHandler(svc.Auth)
	leadHandler := NewLeadHandler(svc.Lead)
	clientHandler := NewClientHandler(svc.Client, svc.Plan, svc.Photo)
	dashboardHandler := NewDashboardHandler(svc.Dashboard)
	catalogHandler := NewCatalogHandler(svc.Catalog)
	contentHandler := NewContentHandler(svc.Content)
	adminHandler := NewAdminHandler(svc.Tenant, svc.Catalog)
	webhookHandler := NewWebhookHandler(svc.Webhook, svc.Tenant, fbVerifyToken)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Facebook calls these directly; no auth.
	router.GET("/webhooks/facebook", webhookHandler.Verify)
	router.POST("/webhooks/facebook", webhookHandler.Receive)

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.RegisterCoach)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	// Coach surface. Superadmins may use it too, addressing a tenant via
	// the tenantId query parameter.
	coach := apiV1.Group("")
	coach.Use(authMiddleware, RoleMiddleware(domain.RoleCoach, domain.RoleSuperAdmin))
	{
		coach.GET("/me", func(c *gin.Context) {
			userID, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userID.Hex(), "role": role})
		})

		// Lead lifecycle
		coach.POST("/leads", leadHandler.CreateLead)
		coach.GET("/leads", leadHandler.ListLeads)
		coach.POST("/leads/:id/followups", leadHandler.AddFollowUp)
		coach.POST("/leads/:id/convert", leadHandler.Convert)
		coach.GET("/followups/due", leadHandler.DueFollowUps)

		// Client roster and plans
		coach.GET("/clients", clientHandler.ListClients)
		coach.GET("/clients/:id", clientHandler.GetClient)
		coach.POST("/clients/:id/revert", leadHandler.Revert)
		coach.POST("/clients/:id/workout-plan", clientHandler.AssignWorkout)
		coach.POST("/clients/:id/meal-plan", clientHandler.AssignMeal)
		coach.PATCH("/clients/:id/workout-plan/status", clientHandler.UpdateWorkoutStatus)
		coach.PATCH("/clients/:id/meal-plan/status", clientHandler.UpdateMealStatus)

		// Progress photos
		coach.POST("/clients/:id/photos", clientHandler.RequestPhotoUpload)
		coach.GET("/clients/:id/photos", clientHandler.ListPhotos)
		coach.DELETE("/photos/:id", clientHandler.DeletePhoto)

		// Dashboard and activity ingest
		coach.GET("/dashboard", dashboardHandler.Summary)
		coach.POST("/activity", dashboardHandler.RecordActivity)

		// Shared reference data
		coach.GET("/library/foods", catalogHandler.SearchFoods)
		coach.GET("/library/workouts", catalogHandler.SearchWorkouts)
		coach.GET("/daily-content", contentHandler.Resolve)
	}

	// Superadmin surface.
	admin := apiV1.Group("/admin")
	admin.Use(authMiddleware, RoleMiddleware(domain.RoleSuperAdmin))
	{
		admin.POST("/register", authHandler.RegisterSuperAdmin)

		admin.POST("/tenants", adminHandler.CreateTenant)
		admin.GET("/tenants", adminHandler.ListTenants)
		admin.GET("/tenants/:tenantId", adminHandler.GetTenant)
		admin.POST("/tenants/:tenantId/facebook-page", adminHandler.ConnectFacebookPage)
		admin.POST("/tenants/:tenantId/pricing-plans", adminHandler.AddPricingPlan)
		admin.PUT("/tenants/:tenantId/pricing-plans/:planId", adminHandler.UpdatePricingPlan)
		admin.DELETE("/tenants/:tenantId/pricing-plans/:planId", adminHandler.RemovePricingPlan)

		admin.POST("/library/foods", adminHandler.CreateFood)
		admin.DELETE("/library/foods/:id", adminHandler.DeleteFood)
		admin.POST("/library/workouts", adminHandler.CreateWorkout)
		admin.DELETE("/library/workouts/:id", adminHandler.DeleteWorkout)

		admin.PUT("/daily-content/overrides", contentHandler.UpsertOverride)
		admin.DELETE("/daily-content/overrides/:dateKey", contentHandler.DeleteOverride)
		admin.POST("/daily-content/seed", contentHandler.SeedDefaults)
	}
}
