package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yourusername/assessment-api/internal/config"
	pgRepo "github.com/yourusername/assessment-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/assessment-api/internal/repository/redis"
	"github.com/yourusername/assessment-api/internal/service"
	"github.com/yourusername/assessment-api/internal/service/notifier"
	"github.com/yourusername/assessment-api/pkg/database"
)

func main() {
	once := flag.Bool("once", false, "выполнить один прогон и завершиться")
	flag.Parse()

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

	// Инициализируем подключение к Redis: на нем держится run-lock,
	// защищающий от параллельных прогонов нескольких инстансов
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Инициализируем репозитории и сервис уведомлений
	membershipRepo := pgRepo.NewMembershipRepo(db)
	quizRepo := pgRepo.NewQuizRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	ledgerRepo := pgRepo.NewAnswerLedgerRepo(db)
	notificationRepo := pgRepo.NewNotificationRepo(db)
	notificationService := service.NewNotificationService(notificationRepo)

	sweeper := notifier.NewSweeper(&notifier.Dependencies{
		MembershipRepo: membershipRepo,
		QuizRepo:       quizRepo,
		QuestionRepo:   questionRepo,
		LedgerRepo:     ledgerRepo,
		Notifications:  notificationService,
		CacheRepo:      cacheRepo,
		Config: &notifier.Config{
			Interval: cfg.Sweeper.Interval,
			LockTTL:  cfg.Sweeper.LockTTL,
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Завершаемся по SIGINT/SIGTERM: отмена контекста останавливает прогон
	// на ближайшей кооперативной точке
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-quit
		log.Printf("Получен сигнал %v, останавливаем планировщик...", sig)
		cancel()
	}()

	if *once {
		if err := sweeper.RunSweep(ctx, time.Now().UTC()); err != nil {
			log.Printf("Sweep failed: %v", err)
			os.Exit(1)
		}
		log.Println("Single sweep completed")
		return
	}

	sweeper.Run(ctx)
	log.Println("Sweeper exited properly")
}
