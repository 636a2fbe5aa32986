package cron

import (
	"Inkstone/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine       *cron.Cron
	sweepSpec    string
	publishSweep *job.PublishSweepJob
}

func NewCronManager(sweepSpec string, publishSweep *job.PublishSweepJob) *Manager {
	if sweepSpec == "" {
		sweepSpec = "@every 1m"
	}
	return &Manager{
		engine:       cron.New(cron.WithSeconds()),
		sweepSpec:    sweepSpec,
		publishSweep: publishSweep,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob(s.sweepSpec, s.publishSweep); err != nil {
		return err
	}
	return nil
}

// JobCount 已注册的任务数
func (s *Manager) JobCount() int {
	return len(s.engine.Entries())
}

func (s *Manager) Start() {
	log.Info("Cron engine started")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron engine stopped")
	s.engine.Stop()
}
