package processor

import (
	"context"

	"stayberries/pkg/logger"
	"stayberries/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// BookingReconcilerInterface - часть BookingService, нужная планировщику
type BookingReconcilerInterface interface {
	ReconcileReviewed(ctx context.Context) (int64, error)
}

// ReviewedReconciler периодически восстанавливает флаг reviewed на
// бронированиях по факту существования отзыва. Запись отзыва и установка
// флага не атомарны, reconciler закрывает этот зазор; прогон идемпотентен.
type ReviewedReconciler struct {
	cron       *cron.Cron
	bookingSvc BookingReconcilerInterface
}

func NewReviewedReconciler(bookingSvc BookingReconcilerInterface) *ReviewedReconciler {
	return &ReviewedReconciler{
		cron:       cron.New(),
		bookingSvc: bookingSvc,
	}
}

func (r *ReviewedReconciler) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Msg("Starting reviewed-flag reconciler")

	_, err := r.cron.AddFunc(schedule, func() {
		r.runOnce(ctx)
	})
	if err != nil {
		return err
	}

	r.cron.Start()

	// Первый прогон сразу при старте, чтобы не ждать расписания
	r.runOnce(ctx)

	return nil
}

func (r *ReviewedReconciler) runOnce(ctx context.Context) {
	repaired, err := r.bookingSvc.ReconcileReviewed(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Reviewed-flag reconciliation failed")
		return
	}

	if repaired > 0 {
		metrics.ReviewedFlagsRepaired.Add(float64(repaired))
		logger.Info().Int64("repaired", repaired).Msg("Reviewed flags repaired")
	}
}

func (r *ReviewedReconciler) Stop() {
	logger.Info().Msg("Stopping reviewed-flag reconciler...")
	ctx := r.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("Reviewed-flag reconciler stopped")
}

func (r *ReviewedReconciler) GetEntries() []cron.Entry {
	return r.cron.Entries()
}
