package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/MEKSAAA/Anti-Fake/internal/api"
	authapi "github.com/MEKSAAA/Anti-Fake/internal/api/auth"
	detectionapi "github.com/MEKSAAA/Anti-Fake/internal/api/detection"
	editorialapi "github.com/MEKSAAA/Anti-Fake/internal/api/editorial"
	generationapi "github.com/MEKSAAA/Anti-Fake/internal/api/generation"
	"github.com/MEKSAAA/Anti-Fake/internal/pkg/codes"
	"github.com/MEKSAAA/Anti-Fake/internal/pkg/config"
	"github.com/MEKSAAA/Anti-Fake/internal/pkg/dashscope"
	"github.com/MEKSAAA/Anti-Fake/internal/pkg/forensics"
	"github.com/MEKSAAA/Anti-Fake/internal/pkg/llm"
	"github.com/MEKSAAA/Anti-Fake/internal/pkg/logger"
	"github.com/MEKSAAA/Anti-Fake/internal/pkg/mailer"
	"github.com/MEKSAAA/Anti-Fake/internal/repository"
	"github.com/MEKSAAA/Anti-Fake/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting Anti-Fake API")

	if err := repository.InitDB(cfg.Database.Driver, cfg.Database.DSN); err != nil {
		zap.L().Fatal("Failed to initialize database", zap.Error(err))
	}
	defer repository.Close()

	// Verification codes live in Redis when available, otherwise in
	// process memory.
	var codeStore codes.Store = codes.NewMemoryStore()
	if cfg.Redis.Enabled {
		redisStore, err := codes.NewRedisStore(cfg.GetRedisAddr(), cfg.Redis.DB)
		if err != nil {
			zap.L().Warn("Redis unavailable, falling back to in-memory code store", zap.Error(err))
		} else {
			codeStore = redisStore
			defer redisStore.Close()
		}
	}

	chatter := llm.New(cfg.DeepSeek)
	detector := service.NewDetector(
		chatter,
		forensics.New(cfg.Forensics),
		service.NewEvidenceGatherer(cfg.Evidence),
		service.NewRecorder(),
	)
	generator := service.NewImageGenerator(dashscope.New(cfg.DashScope), cfg.Server.StaticDir)
	editor := service.NewEditor(chatter)
	authSvc := service.NewAuthService(
		codeStore,
		mailer.New(cfg.Mail),
		service.NewRateLimiter(5*time.Minute, 10),
	)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	api.SetupRouter(r, &api.Handlers{
		Auth:       authapi.NewHandler(authSvc),
		Detection:  detectionapi.NewHandler(detector, cfg.Server.StaticDir),
		Generation: generationapi.NewHandler(generator),
		Editorial:  editorialapi.NewHandler(editor),
		StaticDir:  cfg.Server.StaticDir,
	})

	addr := cfg.GetServerAddr()
	logger.Info("Listening", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		zap.L().Fatal("Failed to start server", zap.Error(err))
	}
}
