package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"sip/dpanalytics/internal/app/config"
	"sip/dpanalytics/internal/app/domains/modules/mdengine"
	"sip/dpanalytics/internal/app/domains/repo/rpanalytics"
	"sip/dpanalytics/internal/app/domains/repo/rptenant"
	"sip/dpanalytics/internal/app/domains/services/svanalytics"
	"sip/dpanalytics/internal/app/infra/persistence/redis"
	"sip/dpanalytics/internal/app/pkg/logger"
	"sip/dpanalytics/internal/app/server/handlers/analytics"
	"sip/dpanalytics/internal/app/server/routers"
)

// App 应用依赖容器
type App struct {
	Engine *gin.Engine
	Logger logger.Logger
}

// InitializeApp 初始化应用依赖（手工装配）
// 返回的 cleanup 负责关闭数据库连接、Redis 连接并刷新日志缓冲
func InitializeApp(cfg *config.Config) (*App, func(), error) {
	log, err := logger.NewZapLogger(cfg.App.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger failed: %w", err)
	}

	db, err := gorm.Open(mysql.Open(cfg.MySQL.DSN), &gorm.Config{})
	if err != nil {
		return nil, nil, fmt.Errorf("connect mysql failed: %w", err)
	}

	// redis.addr 为空时退化为不发布完成通知，分析请求照常服务；
	// 未配置时接口值保持真 nil
	var notifier svanalytics.ComputationNotifier
	var notifierClient *redis.Notifier
	if cfg.Redis.Addr != "" {
		notifierClient, err = redis.NewNotifier(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Engine.Channel)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis failed: %w", err)
		}
		notifier = notifierClient
	}

	analyticsRepo := rpanalytics.NewAnalyticsRepository(db)
	tenantRepo := rptenant.NewTenantRepository(db)

	engineModule := mdengine.NewEngineModule(
		cfg.Engine.PythonBin,
		cfg.Engine.ScriptDir,
		cfg.Engine.Timeout,
		log,
	)

	analyticsService := svanalytics.NewAnalyticsService(analyticsRepo, engineModule, notifier, log)
	analyticsHandler := analytics.NewAnalyticsHandler(analyticsService, log)

	engine := routers.SetupRoutes(analyticsHandler, tenantRepo, log)

	cleanup := func() {
		if notifierClient != nil {
			if err := notifierClient.Close(); err != nil {
				log.Warnf(context.Background(), "close redis failed: %v", err)
			}
		}
		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Warnf(context.Background(), "close mysql failed: %v", err)
			}
		}
		_ = log.Sync()
	}

	return &App{Engine: engine, Logger: log}, cleanup, nil
}
