package app

import (
	"errors"

	"github.com/sms-next/internal/config"
	"github.com/sms-next/internal/provider"
	"github.com/sms-next/internal/router"
	"github.com/sms-next/internal/worker"
)

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	container := provider.NewContainer(cfg)

	var services []Service

	// API 节点：HTTP 服务 + WebSocket 通知中心 + MQ 消费
	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(cfg, container)
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		services = append(services, NewHTTPService(addr, engine))
		services = append(services, NewRealtimeService(container.Hub))
		if container.Broker != nil && container.Broker.Enabled() {
			services = append(services, NewMQConsumerService(container.Broker, container.NotificationConsumer))
		}
	}

	// Worker 节点：asynq 任务消费
	if mode == ModeAll || mode == ModeWorker {
		if container.QueueClient != nil && container.QueueClient.Enabled() {
			consumer := worker.NewConsumer(container)
			workerService, err := worker.NewService(&cfg.Queue, consumer)
			if err != nil {
				return nil, err
			}
			services = append(services, workerService)
		}
	}

	if len(services) == 0 {
		return nil, errors.New("no services initialized (check mode and config)")
	}

	return NewRunner(services...), nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	addr := opts.Config.Server.Host + ":" + opts.Config.Server.Port
	opts.Logger.Infow("app_start", "addr", addr, "mode", opts.Mode)
	return RunWithOptions(runner, opts)
}
