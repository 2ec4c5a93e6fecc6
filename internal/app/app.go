package app

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"tcontrol/internal/config"
	"tcontrol/internal/handlers"
	"tcontrol/internal/repositories"
	"tcontrol/internal/routes"
	"tcontrol/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "tcontrol/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to open database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()

	if err := repositories.RunMigrations(db); err != nil {
		log.Fatal("migrations failed: ", err)
	}

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	orgRepo := repositories.NewOrgRepository(db)
	membershipRepo := repositories.NewMembershipRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	timelineRepo := repositories.NewTimelineRepository(db)
	eventLogRepo := repositories.NewEventLogRepository(db)
	auditRepo := repositories.NewAuditRepository(db)
	sweepStore := repositories.NewSweepStore(db)

	// === Services ===
	authService := services.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.AccessTTLMinutes)
	userService := services.NewUserService(userRepo, authService)
	orgService := services.NewOrgService(orgRepo, membershipRepo)
	timelineService := services.NewTimelineService(taskRepo, timelineRepo)
	transactionService := services.NewTransactionService(transactionRepo, taskRepo, membershipRepo, timelineService)
	taskService := services.NewTaskService(taskRepo)
	auditService := services.NewAuditService(auditRepo, eventLogRepo)
	deadlineService := services.NewDeadlineService(sweepStore)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService, authService, cfg.App.Env)
	orgHandler := handlers.NewOrgHandler(orgService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, orgService, auditService, timelineService)
	taskHandler := handlers.NewTaskHandler(taskService, transactionService, orgService)
	adminHandler := handlers.NewAdminHandler(deadlineService)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		[]byte(cfg.JWT.Secret),
		membershipRepo,
		authHandler,
		orgHandler,
		transactionHandler,
		taskHandler,
		adminHandler,
	)

	// === Deadline scheduler ===
	scheduler := services.NewDeadlineScheduler(
		deadlineService,
		time.Duration(cfg.Deadlines.CheckIntervalMinutes)*time.Minute,
	)
	scheduler.Start()
	defer scheduler.Stop()

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("server failed: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
