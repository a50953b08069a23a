package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/assessment-api/internal/config"
	"github.com/yourusername/assessment-api/internal/handler"
	"github.com/yourusername/assessment-api/internal/middleware"
	pgRepo "github.com/yourusername/assessment-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/assessment-api/internal/repository/redis"
	"github.com/yourusername/assessment-api/internal/service"
	"github.com/yourusername/assessment-api/pkg/auth"
	"github.com/yourusername/assessment-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis с использованием унифицированной конфигурации
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	userRepo := pgRepo.NewUserRepo(db)
	companyRepo := pgRepo.NewCompanyRepo(db)
	membershipRepo := pgRepo.NewMembershipRepo(db)
	requestRepo := pgRepo.NewCompanyRequestRepo(db)
	roleRepo := pgRepo.NewCompanyRoleRepo(db)
	quizRepo := pgRepo.NewQuizRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	answerRepo := pgRepo.NewAnswerRepo(db)
	ledgerRepo := pgRepo.NewAnswerLedgerRepo(db)
	resultRepo := pgRepo.NewResultRepo(db)
	notificationRepo := pgRepo.NewNotificationRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Инициализируем JWTService
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	// Почтовый сервис: без API-ключа письма не отправляются
	var emailService service.EmailService = &service.NoopEmailService{}
	if cfg.Email.APIKey != "" {
		from := cfg.Email.FromAddress
		if cfg.Email.FromName != "" {
			from = cfg.Email.FromName + " <" + cfg.Email.FromAddress + ">"
		}
		resendService, err := service.NewResendEmailService(cfg.Email.APIKey, from)
		if err != nil {
			log.Printf("Failed to initialize ResendEmailService: %v", err)
			os.Exit(1)
		}
		emailService = resendService
		log.Println("Email delivery enabled (Resend)")
	} else {
		log.Println("EMAIL_API_KEY не задан, почтовые уведомления отключены")
	}

	// Инициализируем сервисы
	authService := service.NewAuthService(userRepo, jwtService)
	userService := service.NewUserService(userRepo)
	companyService := service.NewCompanyService(companyRepo, membershipRepo, roleRepo)
	membershipService := service.NewMembershipService(userRepo, companyRepo, membershipRepo, requestRepo, roleRepo, emailService)
	quizService := service.NewQuizService(quizRepo, questionRepo, answerRepo, companyRepo, roleRepo)
	answerService := service.NewAnswerService(quizRepo, questionRepo, answerRepo, ledgerRepo, membershipRepo)
	scoringService := service.NewScoringService(userRepo, answerRepo, ledgerRepo, resultRepo, cacheRepo)
	notificationService := service.NewNotificationService(notificationRepo)
	analyticsService := service.NewAnalyticsService(userRepo, membershipRepo, roleRepo, resultRepo)

	// Инициализируем обработчики
	authHandler := handler.NewAuthHandler(authService, userService)
	userHandler := handler.NewUserHandler(userService)
	companyHandler := handler.NewCompanyHandler(companyService, membershipService)
	quizHandler := handler.NewQuizHandler(quizService, answerService, scoringService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)

	// Инициализируем middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	isProduction := gin.Mode() == gin.ReleaseMode

	// Инициализируем роутер Gin
	router := gin.Default()

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:8000", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		// Аутентификация
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		// Пользователи
		users := api.Group("/users")
		users.Use(authMiddleware.RequireAuth())
		{
			users.GET("", userHandler.List)
			users.GET("/me", authHandler.Me)
			users.PUT("/me", userHandler.UpdateProfile)
			users.DELETE("/me", userHandler.Deactivate)

			userWithID := users.Group("/:id")
			userWithID.Use(middleware.ExtractUintParam("id", "userID"))
			{
				userWithID.GET("", userHandler.Get)
			}
		}

		// Заявки и приглашения текущего пользователя
		requests := api.Group("/requests")
		requests.Use(authMiddleware.RequireAuth())
		{
			requests.GET("/my", companyHandler.MyRequests)

			requestWithID := requests.Group("/:id")
			requestWithID.Use(middleware.ExtractUintParam("id", "requestID"))
			{
				requestWithID.POST("/accept", companyHandler.AcceptRequest)
				requestWithID.POST("/decline", companyHandler.DeclineRequest)
				requestWithID.POST("/cancel", companyHandler.CancelRequest)
			}
		}

		// Компании
		companies := api.Group("/companies")
		companies.Use(authMiddleware.RequireAuth())
		{
			companies.POST("", companyHandler.Create)
			companies.GET("", companyHandler.List)

			companyWithID := companies.Group("/:id")
			companyWithID.Use(middleware.ExtractUintParam("id", "companyID"))
			{
				companyWithID.GET("", companyHandler.Get)
				companyWithID.PUT("", companyHandler.Update)
				companyWithID.DELETE("", companyHandler.Deactivate)

				companyWithID.POST("/apply", companyHandler.Apply)
				companyWithID.POST("/invite", companyHandler.Invite)
				companyWithID.GET("/requests", companyHandler.CompanyRequests)
				companyWithID.GET("/members", companyHandler.Members)
				companyWithID.POST("/leave", companyHandler.Leave)
				companyWithID.POST("/role", companyHandler.GrantRole)
				companyWithID.GET("/admins", companyHandler.Admins)
				companyWithID.GET("/quizzes", quizHandler.ListByCompany)

				companyMember := companyWithID.Group("/members/:user_id")
				companyMember.Use(middleware.ExtractUintParam("user_id", "userID"))
				{
					companyMember.DELETE("", companyHandler.RemoveMember)
					companyMember.GET("/averages", analyticsHandler.CompanyMemberQuizAverages)
				}

				// Аналитика компании: доступна владельцу и администраторам
				companyWithID.GET("/analytics/averages", analyticsHandler.CompanyAverages)
				companyWithID.GET("/analytics/completions", analyticsHandler.CompanyLastCompletions)
				companyWithID.GET("/analytics/averages/export", analyticsHandler.ExportCompanyAverages)
			}
		}

		// Викторины
		quizzes := api.Group("/quizzes")
		quizzes.Use(authMiddleware.RequireAuth())
		{
			quizzes.POST("", quizHandler.Create)
			quizzes.GET("", quizHandler.List)

			quizWithID := quizzes.Group("/:id")
			quizWithID.Use(middleware.ExtractUintParam("id", "quizID"))
			{
				quizWithID.GET("", quizHandler.Get)
				quizWithID.PUT("", quizHandler.Update)
				quizWithID.DELETE("", quizHandler.Deactivate)

				quizWithID.POST("/answers", quizHandler.SubmitAnswer)

				quizQuestion := quizWithID.Group("/questions/:question_id")
				quizQuestion.Use(middleware.ExtractUintParam("question_id", "questionID"))
				{
					quizQuestion.GET("/can-submit", quizHandler.CanSubmit)
				}
			}
		}

		// Правка вопросов и вариантов ответов
		questions := api.Group("/questions/:id")
		questions.Use(authMiddleware.RequireAuth(), middleware.ExtractUintParam("id", "questionID"))
		{
			questions.PUT("", quizHandler.UpdateQuestion)
		}

		answers := api.Group("/answers/:id")
		answers.Use(authMiddleware.RequireAuth(), middleware.ExtractUintParam("id", "answerID"))
		{
			answers.PUT("", quizHandler.UpdateAnswer)
		}

		// Результаты
		results := api.Group("/results")
		results.Use(authMiddleware.RequireAuth())
		{
			results.POST("/compute", quizHandler.ComputeResults)
			results.GET("/my", quizHandler.MyResults)
		}

		// Аналитика текущего пользователя
		analytics := api.Group("/analytics")
		analytics.Use(authMiddleware.RequireAuth())
		{
			analytics.GET("/my/rating", analyticsHandler.MyRating)
			analytics.GET("/my/averages", analyticsHandler.MyQuizAverages)
			analytics.GET("/my/completions", analyticsHandler.MyLastCompletions)
		}

		// Уведомления: pull-модель, клиент сам опрашивает непрочитанные
		notifications := api.Group("/notifications")
		notifications.Use(authMiddleware.RequireAuth())
		{
			notifications.GET("", notificationHandler.ListUnread)

			notificationWithID := notifications.Group("/:id")
			notificationWithID.Use(middleware.ExtractUintParam("id", "notificationID"))
			{
				notificationWithID.POST("/read", notificationHandler.MarkRead)
			}
		}
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	readTimeout := cfg.Server.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = 15
	}
	writeTimeout := cfg.Server.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 15
	}
	port := cfg.Server.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Server started on port %s", port)

	// Ждем сигнал остановки и корректно завершаем работу
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server exited properly")
}
