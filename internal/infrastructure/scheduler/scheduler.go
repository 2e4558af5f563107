// Package scheduler 定时任务调度，目前用于清理过期的被忽略请求
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job 定时任务，ctx 在调度器停止时取消
type Job func(ctx context.Context) error

type Scheduler struct {
	cron   *cron.Cron
	parser cron.Parser
	ctx    context.Context
	cancel context.CancelFunc

	mu   sync.Mutex
	jobs map[string]cron.EntryID
}

func New() *Scheduler {
	parser := cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:   cron.New(cron.WithParser(parser)),
		parser: parser,
		ctx:    ctx,
		cancel: cancel,
		jobs:   map[string]cron.EntryID{},
	}
}

// Validate 检查 cron 表达式
func (s *Scheduler) Validate(spec string) error {
	if _, err := s.parser.Parse(spec); err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}
	return nil
}

// Register 注册任务，同名任务会被替换
func (s *Scheduler) Register(name, spec string, job Job) error {
	if err := s.Validate(spec); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.jobs[name]; ok {
		s.cron.Remove(old)
	}
	id, err := s.cron.AddFunc(spec, func() { s.run(name, job) })
	if err != nil {
		return fmt.Errorf("add job %s: %w", name, err)
	}
	s.jobs[name] = id
	return nil
}

// RunNow 立即同步执行一次已注册之外的任务，启动时补跑用
func (s *Scheduler) RunNow(name string, job Job) {
	s.run(name, job)
}

func (s *Scheduler) run(name string, job Job) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("scheduled job panic", zap.String("job", name), zap.Any("panic", r))
		}
	}()
	if err := job(s.ctx); err != nil {
		zap.L().Error("scheduled job failed", zap.String("job", name), zap.Error(err))
		return
	}
	zap.L().Debug("scheduled job done", zap.String("job", name), zap.Duration("cost", time.Since(start)))
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop 停止调度并等待正在执行的任务结束
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
}
