package goLedger

import (
	"context"
	"errors"
	"time"
)

// recentVoucherCount bounds the recent-activity list on the landing screen.
const recentVoucherCount = 5

var errRefresherRunning = errors.New("dashboard refresher already running")

// Dashboard describes the dashboard operation and its observable behavior.
//
// Dashboard assembles the landing-screen summary from the pending-voucher list, the
// profit and loss report, and recent vouchers. A failure in any source fails the
// whole refresh; the caller keeps showing the previous summary.
func (e *Engine) Dashboard(ctx context.Context) (*DashboardSummary, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}

	pending, err := e.PendingVouchers(ctx)
	if err != nil {
		return nil, err
	}

	pl, err := e.Report(ctx, ReportProfitLoss, ReportFilter{})
	if err != nil {
		return nil, err
	}

	vouchers, err := e.Vouchers(ctx)
	if err != nil {
		return nil, err
	}
	recent := vouchers
	if len(recent) > recentVoucherCount {
		recent = recent[:recentVoucherCount]
	}

	summary := &DashboardSummary{
		PendingVouchers: len(pending),
		TotalIncome:     pl.Totals.TotalCredit,
		TotalExpense:    pl.Totals.TotalDebit,
		NetProfit:       pl.Totals.NetBalance,
		RecentVouchers:  recent,
		RefreshedAt:     time.Now().Unix(),
	}

	e.metricInc(MetricDashboardRefresh)
	e.emitAudit(ctx, auditEventDashboardRefresh, true, "", nil, nil)
	return summary, nil
}

// StartDashboardRefresh describes the start dashboard refresh operation and its observable behavior.
//
// StartDashboardRefresh launches the periodic dashboard refresher. onUpdate is
// invoked from the refresher goroutine with each successfully assembled summary;
// failed refreshes are logged and skipped. The refresher stops when ctx is done or
// the engine is closed. Only one refresher may run per engine.
func (e *Engine) StartDashboardRefresh(ctx context.Context, onUpdate func(*DashboardSummary)) error {
	if e == nil {
		return ErrEngineNotReady
	}
	if onUpdate == nil {
		return errors.New("onUpdate callback required")
	}
	if !e.refresherOn.CompareAndSwap(false, true) {
		return errRefresherRunning
	}

	e.refreshWG.Add(1)
	go func() {
		defer e.refreshWG.Done()

		ticker := time.NewTicker(e.config.Dashboard.RefreshInterval)
		defer ticker.Stop()

		refresh := func() {
			summary, err := e.Dashboard(ctx)
			if err != nil {
				e.logger.Warn().Err(err).Msg("dashboard refresh failed")
				return
			}
			onUpdate(summary)
		}

		refresh()
		for {
			select {
			case <-ticker.C:
				refresh()
			case <-e.dashKick:
				// A resumed foreground session refreshes immediately instead of
				// waiting out the interval.
				refresh()
				ticker.Reset(e.config.Dashboard.RefreshInterval)
			case <-ctx.Done():
				return
			case <-e.done:
				return
			}
		}
	}()

	return nil
}

// Resume kicks the dashboard refresher for an immediate out-of-cycle refresh. It is
// safe to call at any time, including when no refresher is running.
func (e *Engine) Resume() {
	if e == nil {
		return
	}
	select {
	case e.dashKick <- struct{}{}:
	default:
	}
}
