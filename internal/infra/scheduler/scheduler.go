package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// CycleRunner runs a single polling cycle.
type CycleRunner interface {
	RunCycle(ctx context.Context)
}

// PollScheduler fires the cycle once at start and then every period.
// Cycles never overlap: a tick that arrives while a cycle is still running is skipped.
type PollScheduler struct {
	cronEngine *cron.Cron
	runner     CycleRunner
	logger     *logrus.Entry
	period     time.Duration

	ctx    context.Context
	cancel context.CancelFunc
}

func NewPollScheduler(runner CycleRunner, logger *logrus.Entry, period time.Duration) *PollScheduler {
	cronLogger := cron.PrintfLogger(logger)
	return &PollScheduler{
		cronEngine: cron.New(
			cron.WithLocation(time.Local),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		runner: runner,
		logger: logger,
		period: period,
	}
}

func (s *PollScheduler) Start(ctx context.Context) {
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.logger.WithField("period", s.period.String()).Info("Starting poll scheduler...")

	// First cycle runs right away, before the engine can tick.
	s.runCycle()

	s.cronEngine.Schedule(cron.Every(s.period), cron.FuncJob(s.runCycle))
	s.cronEngine.Start()
	s.logger.Info("Poll scheduler started.")
}

func (s *PollScheduler) runCycle() {
	started := time.Now()
	s.logger.Debug("Poll cycle triggered")
	s.runner.RunCycle(s.ctx)
	s.logger.WithField("duration", time.Since(started).String()).Debug("Poll cycle finished")
}

// Stop cancels an in-flight cycle and waits for it to return.
func (s *PollScheduler) Stop() {
	s.logger.Info("Stopping poll scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	ctx := s.cronEngine.Stop() // Stops the scheduler from adding new jobs, waits for running jobs.
	<-ctx.Done()
	s.logger.Info("Poll scheduler gracefully stopped.")
}
