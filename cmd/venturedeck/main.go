package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"venturedeck/internal/config"
	dao "venturedeck/internal/dao/mysql"
	myredis "venturedeck/internal/dao/redis"
	ws "venturedeck/internal/gateway/websocket"
	"venturedeck/internal/handler"
	"venturedeck/internal/https_server"
	"venturedeck/internal/infrastructure/logger"
	"venturedeck/internal/infrastructure/mail"
	"venturedeck/internal/infrastructure/mq"
	"venturedeck/internal/infrastructure/scheduler"
	"venturedeck/internal/infrastructure/storage"
	"venturedeck/internal/service"
	"venturedeck/pkg/util/jwt"
	"venturedeck/pkg/util/snowflake"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置
	conf := config.GetConfig()

	// 2. 初始化日志
	if err := logger.Init(&conf.LogConfig, conf.Mode); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	defer func() { _ = zap.L().Sync() }()
	if conf.Mode != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 3. 参数校验翻译器
	if err := handler.InitTrans(conf.Locale); err != nil {
		zap.L().Fatal("init validator translator failed", zap.Error(err))
	}

	// 4. JWT 与雪花节点
	jwt.Init(conf.JWTConfig.Secret, conf.AccessTokenExpiry, conf.RefreshTokenExpiry)
	snowflake.Init(conf.MachineID)

	// 5. 数据库与缓存
	_, repos := dao.Init(conf.MysqlConfig)
	zap.L().Info("数据库初始化成功", zap.String("driver", conf.Driver))
	cache, closeCache := myredis.Init(conf.RedisConfig)

	// 6. 实时事件：本地 Hub，多实例时经 Kafka 广播
	hub := ws.NewHub()
	publisher, stopPublisher := mq.NewPublisher(conf.KafkaConfig, hub)

	// 7. 邮件与头像存储
	mailer := mail.NewSender(conf.MailConfig)
	store, err := storage.New(context.Background(), conf.StorageConfig)
	if err != nil {
		zap.L().Fatal("init storage failed", zap.Error(err))
	}

	// 8. Service / Handler 依赖注入
	svcs := service.NewServices(conf, service.Deps{
		Repos:     repos,
		Cache:     cache,
		Publisher: publisher,
		Mailer:    mailer,
		Storage:   store,
	})
	handlers := handler.NewHandlers(svcs, hub)

	// 9. 定时清理过期的已忽略请求
	sched := scheduler.New()
	purge := func(ctx context.Context) error {
		n, err := svcs.Retention.PurgeIgnored(ctx)
		if err == nil && n > 0 {
			zap.L().Info("purged ignored contact requests", zap.Int64("count", n))
		}
		return err
	}
	if err := sched.Register("purge_ignored", conf.SweepSpec, purge); err != nil {
		zap.L().Fatal("register sweep job failed", zap.String("spec", conf.SweepSpec), zap.Error(err))
	}
	// 停机期间积压的过期记录先补跑一次
	sched.RunNow("purge_ignored", purge)
	sched.Start()

	// 10. 启动 HTTP 服务
	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", conf.MainConfig.Host, conf.MainConfig.Port),
		Handler:           https_server.Init(handlers, conf),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		zap.L().Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("server running fault", zap.Error(err))
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zap.L().Error("server shutdown failed", zap.Error(err))
	}
	sched.Stop()
	stopPublisher()
	closeCache()

	zap.L().Info("服务器已关闭")
}
