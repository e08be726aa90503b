package app

import (
	"errors"

	"github.com/catalogkit/internal/config"
	"github.com/catalogkit/internal/logger"
	"github.com/catalogkit/internal/provider"
	"github.com/catalogkit/internal/router"
	"github.com/catalogkit/internal/worker"
)

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if !validMode(mode) {
		return nil, errors.New("unknown run mode: " + mode)
	}

	container := provider.NewContainer(cfg, nil)

	var services []Service

	// 管理端 API
	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(cfg, container)
		services = append(services, NewHTTPService(serverAddr(cfg), engine))
	}

	// 套餐库存核对 Worker；all 模式下队列未启用时跳过
	if mode == ModeWorker || (mode == ModeAll && cfg.Queue.Enabled) {
		workerService, err := worker.NewService(&cfg.Queue, worker.NewConsumer(container))
		if err != nil {
			container.Close()
			return nil, err
		}
		services = append(services, workerService)
	} else if mode == ModeAll {
		logger.Infow("app_worker_skipped", "reason", "queue disabled")
	}

	runner := NewRunner(services...)
	runner.onStop = container.Close
	return runner, nil
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

	opts.Logger.Infow("app_start", "addr", serverAddr(opts.Config), "mode", opts.Mode)
	return RunWithOptions(runner, opts)
}

func serverAddr(cfg *config.Config) string {
	return cfg.Server.Host + ":" + cfg.Server.Port
}

func validMode(mode string) bool {
	switch mode {
	case ModeAll, ModeAPI, ModeWorker:
		return true
	}
	return false
}
