package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hyperhive-backend/internal/config"
	"hyperhive-backend/internal/db"
	"hyperhive-backend/internal/event"
	"hyperhive-backend/internal/handlers"
	"hyperhive-backend/internal/repository"
	"hyperhive-backend/internal/service"
	"hyperhive-backend/pkg/discovery"
)

func main() {
	config.LoadConfig()
	gin.SetMode(config.AppConfig.GinMode)

	mongoClient, err := db.InitMongo()
	if err != nil {
		log.Fatalf("Failed to initialize MongoDB: %v", err)
	}
	defer db.CloseMongo(mongoClient)

	redisClient := db.InitRedis()

	// RabbitMQ event publisher, optional. A nil publisher is a no-op.
	var publisher *event.EventPublisher
	if config.AppConfig.RabbitMQURI != "" {
		publisher, err = event.NewEventPublisher(config.AppConfig.RabbitMQURI, config.AppConfig.RabbitExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, domain events will not be published")
	}

	database := db.MongoDatabase

	learnerRepo := repository.NewLearnerRepository(database)
	userRepo := repository.NewUserRepository(database)
	quizRepo := repository.NewQuizRepository(database)
	attemptRepo := repository.NewAttemptRepository(database)

	openaiService := service.NewOpenAIService()
	githubService := service.NewGitHubService(redisClient)
	learnerService := service.NewLearnerService(learnerRepo, publisher)
	userService := service.NewUserService(userRepo)
	quizService := service.NewQuizService(quizRepo, attemptRepo, learnerRepo, openaiService, publisher)
	validationService := service.NewValidationService(learnerRepo, githubService, openaiService, publisher)
	growthPlanService := service.NewGrowthPlanService(learnerRepo, attemptRepo, openaiService, publisher)

	authHandler := handlers.NewAuthHandler(userService)
	learnerHandler := handlers.NewLearnerHandler(learnerService)
	quizHandler := handlers.NewQuizHandler(quizService)
	githubHandler := handlers.NewGitHubHandler(githubService)
	validationHandler := handlers.NewValidationHandler(validationService)
	growthPlanHandler := handlers.NewGrowthPlanHandler(growthPlanService)
	chatHandler := handlers.NewChatHandler(openaiService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": config.AppConfig.ServiceName,
			"version": config.AppConfig.ServiceVersion,
		})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", handlers.AuthMiddleware(), authHandler.Me)
		}

		learners := api.Group("/learners")
		{
			learners.GET("", learnerHandler.ListLearners)
			learners.GET("/:id", learnerHandler.GetLearner)
			learners.GET("/by-email/:email", learnerHandler.GetLearnerByEmail)
			learners.POST("", learnerHandler.CreateLearner)
			learners.PUT("/:id", learnerHandler.UpdateLearner)
			learners.DELETE("/:id", learnerHandler.DeleteLearner)
		}

		quiz := api.Group("/quiz")
		{
			quiz.POST("/generate", quizHandler.GenerateQuiz)
			quiz.POST("/submit", quizHandler.SubmitQuiz)
			quiz.GET("/attempt/:attemptId", quizHandler.GetAttemptResults)
			quiz.GET("/learner/:learnerId/attempts", quizHandler.GetLearnerAttempts)
			quiz.GET("/learner/:learnerId/statistics", quizHandler.GetLearnerStatistics)
			quiz.GET("/learner/:learnerId/quizzes", quizHandler.GetLearnerQuizzes)
			quiz.GET("/:quizId", quizHandler.GetQuizDetails)
			quiz.DELETE("/:quizId", quizHandler.DeleteQuiz)
		}

		// Intentionally left without auth middleware.
		github := api.Group("/github")
		{
			github.POST("/analyze-developer", githubHandler.AnalyzeDeveloper)
			github.GET("/commits", githubHandler.GetCommits)
			github.GET("/pull-requests", githubHandler.GetPullRequests)
		}

		validation := api.Group("/profile-validation")
		{
			validation.POST("/validate", validationHandler.ValidateProfile)
			validation.GET("/validate/:learnerId/:githubUsername", validationHandler.ValidateProfileByPath)
		}

		growthPlan := api.Group("/growth-plan")
		{
			growthPlan.POST("/generate", growthPlanHandler.GenerateGrowthPlan)
			growthPlan.GET("/generate/:learnerId", growthPlanHandler.GenerateGrowthPlanByPath)
		}

		api.POST("/chat", chatHandler.Chat)
	}

	// Consul registration, optional.
	var registry *discovery.ServiceRegistry
	if config.AppConfig.ConsulAddress != "" {
		registry, err = discovery.NewServiceRegistry(config.AppConfig)
		if err != nil {
			log.Fatalf("Failed to create Consul client: %v", err)
		}
		if err := registry.Register(); err != nil {
			log.Fatalf("Failed to register with Consul: %v", err)
		}
	}

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.Port,
		Handler: r,
	}

	go func() {
		log.Printf("Listening on :%s", config.AppConfig.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down")

	if registry != nil {
		if err := registry.Deregister(); err != nil {
			log.Printf("Consul deregister failed: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
}
