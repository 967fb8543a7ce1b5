// Package worker содержит фоновый цикл автоотмены просроченных
// предварительных броней.
package worker

import (
	"context"
	"time"
)

// Sweep операция одного прогона
type Sweep interface {
	Execute(ctx context.Context) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Sweeper запускает прогон по тикеру. Прогоны выполняются в теле
// цикла, поэтому два прогона никогда не идут одновременно: пропущенные
// тики просто схлопываются.
type Sweeper struct {
	sweep    Sweep
	interval time.Duration
	logger   Logger
}

// NewSweeper создает новый экземпляр фонового цикла
func NewSweeper(sweep Sweep, interval time.Duration, logger Logger) *Sweeper {
	return &Sweeper{
		sweep:    sweep,
		interval: interval,
		logger:   logger,
	}
}

// Run блокируется до отмены контекста. Первый прогон выполняется
// сразу при старте, далее по интервалу.
func (s *Sweeper) Run(ctx context.Context) {
	s.logger.Info("Sweeper: started, interval=%s", s.interval)

	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Sweeper: stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Sweeper) runOnce(ctx context.Context) {
	count, err := s.sweep.Execute(ctx)
	if err != nil {
		s.logger.Error("Sweeper: run failed: %v", err)
		return
	}
	if count > 0 {
		s.logger.Info("Sweeper: cancelled %d expired booking(s)", count)
	}
}
