package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tcontrol/internal/handlers"
	"tcontrol/internal/middleware"
	"tcontrol/internal/models"
	"tcontrol/internal/repositories"
)

func SetupRoutes(
	r *gin.Engine,
	jwtKey []byte,
	memberships repositories.MembershipRepository,
	authHandler *handlers.AuthHandler,
	orgHandler *handlers.OrgHandler,
	transactionHandler *handlers.TransactionHandler,
	taskHandler *handlers.TaskHandler,
	adminHandler *handlers.AdminHandler,
) *gin.Engine {

	// ---- public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)
	r.POST("/auth/dev-token", authHandler.DevToken)

	// ---- protected
	r.Use(middleware.AuthMiddleware(jwtKey))

	// ORGS
	orgs := r.Group("/orgs")
	{
		orgs.POST("/", orgHandler.Create)
		orgs.POST("/:id/members", orgHandler.AddMember)
	}

	// TRANSACTIONS
	txns := r.Group("/transactions")
	{
		txns.POST("/", transactionHandler.Create)
		txns.GET("/", transactionHandler.List)
		txns.GET("/:id", transactionHandler.GetByID)
		txns.GET("/:id/tasks", transactionHandler.GetTasks)
		txns.GET("/:id/timeline", transactionHandler.GetTimeline)
		txns.GET("/:id/audit", transactionHandler.GetAudit)
		txns.GET("/:id/events", transactionHandler.GetEvents)
	}

	// TASKS
	tasks := r.Group("/tasks")
	{
		tasks.POST("/", taskHandler.Create)
		tasks.GET("/:id", taskHandler.GetByID)
		tasks.POST("/:id/status", taskHandler.ChangeStatus)
	}

	// ADMIN
	admin := r.Group("/admin",
		middleware.RequireMembershipRole(memberships, models.RoleAdmin),
	)
	{
		admin.POST("/check-deadlines", adminHandler.CheckDeadlines)
	}

	return r
}
