package main

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "Backend-ShiftFilter/docs"
	"Backend-ShiftFilter/src/config"
	"Backend-ShiftFilter/src/database"
	"Backend-ShiftFilter/src/jobs"
	"Backend-ShiftFilter/src/logger"
	"Backend-ShiftFilter/src/routes"
	"Backend-ShiftFilter/src/services/users"
	"Backend-ShiftFilter/src/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// @title           Shift Filter API
// @version         1.0
// @description     Merges timeclock exports and keeps the first In / last Out punch of every shift.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	zl, syncLog, err := logger.Init(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	defer syncLog()

	utils.ConfigureJWT(cfg.JWT.Secret, cfg.JWT.TTL)

	// เชื่อมต่อกับ MongoDB ถ้าไม่ได้ตั้งค่าไว้ใช้ memory store แทน (dev)
	var store users.Store
	if cfg.Mongo.URI == "" {
		zl.Warn("⚠️ MONGO_URI not set, users are kept in memory")
		store = users.NewMemoryStore()
	} else {
		if err := database.ConnectMongoDB(cfg.Mongo.URI, cfg.Mongo.Database); err != nil {
			zl.Fatal("Error connecting to the database", zap.Error(err))
		}
		store = users.NewMongoStore(database.UserCollection)
	}

	database.InitRedis(cfg.Redis.Addr)
	database.InitAsynq()

	var audit jobs.Enqueuer
	if database.AsynqClient != nil {
		audit = database.AsynqClient
	}

	var worker interface{ Shutdown() }
	if database.RedisURI != "" && database.UploadAuditCollection != nil {
		srv, mux := jobs.NewServer(database.RedisURI)
		if err := srv.Start(mux); err != nil {
			zl.Error("❌ Cannot start asynq worker", zap.Error(err))
		} else {
			worker = srv
			zl.Info("✅ Asynq worker started")
		}
	}

	// สร้าง app instance
	app := fiber.New(fiber.Config{
		BodyLimit: cfg.Server.BodyLimitMB * 1024 * 1024,
	})
	app.Use(recover.New())

	// ✅ เปิดใช้งาน CORS Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders:    "Content-Disposition",
		AllowCredentials: false, // ❌ ต้องเป็น false ถ้าใช้ "*"
	}))

	// เปิดใช้งาน Swagger ที่ URL /swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	routes.InitRoutes(app, routes.Deps{
		Users:          users.NewService(store),
		Timeclock:      cfg.TimeclockOptions(),
		OutputFilename: cfg.Timeclock.OutputFilename,
		Audit:          audit,
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		zl.Info("shutting down")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	// เริ่มเซิร์ฟเวอร์
	zl.Info("Server is running", zap.String("port", cfg.Server.Port))
	if err := app.Listen(fmt.Sprintf(":%s", url.PathEscape(cfg.Server.Port))); err != nil {
		zl.Error("server stopped", zap.Error(err))
	}

	if worker != nil {
		worker.Shutdown()
	}
	if database.AsynqClient != nil {
		_ = database.AsynqClient.Close()
	}
	if database.RedisClient != nil {
		_ = database.RedisClient.Close()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.DisconnectMongoDB(ctx); err != nil {
		zl.Warn("mongo disconnect", zap.Error(err))
	}
}
