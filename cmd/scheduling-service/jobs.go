package main

import (
	"context"
	"time"

	"github.com/caretiv/scheduling-service/internal/compliance"
	"github.com/caretiv/scheduling-service/internal/employee"
	"github.com/caretiv/scheduling-service/internal/notify"
	"github.com/caretiv/scheduling-service/internal/payroll"
	"github.com/caretiv/scheduling-service/internal/shift"
	"github.com/caretiv/scheduling-service/pkg/config"
	"github.com/caretiv/scheduling-service/pkg/database"
	"github.com/caretiv/scheduling-service/pkg/logger"
	"github.com/caretiv/scheduling-service/pkg/messaging"
	"github.com/caretiv/scheduling-service/pkg/tenant"
)

// sweepTick is the cadence of the reminder sweep's ticker and the width of
// the lead-time window it checks on each tick. The compliance sweep runs on
// cfg.Scheduling.ComplianceSweepEvery and the payroll rollover on a daily
// ticker instead.
const sweepTick = 15 * time.Minute

// startReminderSweep offers a shift.reminder event once per shift as its
// start time enters the configured lead-time window, for every tenant with
// at least one employee.
func startReminderSweep(ctx context.Context, cfg *config.Config, db *database.DB, shifts *shift.Repository, employees *employee.Repository, notifier *notify.Service, log *logger.Logger) {
	go func() {
		ticker := time.NewTicker(sweepTick)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runReminderSweep(ctx, cfg, db, shifts, employees, notifier, log)
			}
		}
	}()
}

func runReminderSweep(ctx context.Context, cfg *config.Config, db *database.DB, shifts *shift.Repository, employees *employee.Repository, notifier *notify.Service, log *logger.Logger) {
	tenantIDs, err := db.ActiveTenantIDs(ctx)
	if err != nil {
		log.Error().Err(err).Msg("reminder sweep: failed to list active tenants")
		return
	}

	now := time.Now()
	windowStart := now.Add(cfg.Scheduling.ReminderLeadTime - sweepTick)
	windowEnd := now.Add(cfg.Scheduling.ReminderLeadTime)

	for _, tenantID := range tenantIDs {
		tctx := tenant.WithTenantID(ctx, tenantID)
		due, err := shifts.List(tctx, shift.ListFilter{From: &windowStart, Until: &windowEnd})
		if err != nil {
			log.Error().Err(err).Str("tenant_id", tenantID).Msg("reminder sweep: failed to list shifts")
			continue
		}
		for _, sh := range due {
			if sh.EmployeeID == nil || sh.Status == shift.StatusCancelled || sh.Status == shift.StatusCancelledAbsence {
				continue
			}
			notifier.Offer(tctx, messaging.EventShiftReminder, messaging.ShiftReminderEvent{
				ShiftID:    sh.ID,
				EmployeeID: *sh.EmployeeID,
				ShiftDate:  sh.Date,
				StartTime:  sh.StartTime,
			})
		}
	}
}

// startComplianceSweep re-runs compliance checks for every upcoming shift
// with an assigned employee, catching violations caused by a change to an
// earlier shift rather than the shift being re-evaluated itself (e.g. a
// cancelled prior shift changes the next shift's rest-period outcome).
func startComplianceSweep(ctx context.Context, cfg *config.Config, db *database.DB, svc *compliance.Service, log *logger.Logger) {
	go func() {
		every := cfg.Scheduling.ComplianceSweepEvery
		if every <= 0 {
			every = time.Hour
		}
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runComplianceSweep(ctx, db, svc, log)
			}
		}
	}()
}

func runComplianceSweep(ctx context.Context, db *database.DB, svc *compliance.Service, log *logger.Logger) {
	tenantIDs, err := db.ActiveTenantIDs(ctx)
	if err != nil {
		log.Error().Err(err).Msg("compliance sweep: failed to list active tenants")
		return
	}

	from := time.Now()
	until := from.Add(7 * 24 * time.Hour)

	for _, tenantID := range tenantIDs {
		tctx := tenant.WithTenantID(ctx, tenantID)
		checked, errs := svc.RunAll(tctx, from, until)
		for _, err := range errs {
			log.Error().Err(err).Str("tenant_id", tenantID).Msg("compliance sweep: re-evaluation failed")
		}
		log.Debug().Str("tenant_id", tenantID).Int("checked", checked).Msg("compliance sweep complete")
	}
}

// startPayrollRollover calculates a draft payroll entry for every active
// employee once a month, on cfg.Scheduling.PayrollRolloverDay, for the
// month that just closed.
func startPayrollRollover(ctx context.Context, cfg *config.Config, db *database.DB, employees *employee.Repository, svc *payroll.Service, log *logger.Logger) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if time.Now().Day() != cfg.Scheduling.PayrollRolloverDay {
					continue
				}
				runPayrollRollover(ctx, db, employees, svc, log)
			}
		}
	}()
}

func runPayrollRollover(ctx context.Context, db *database.DB, employees *employee.Repository, svc *payroll.Service, log *logger.Logger) {
	tenantIDs, err := db.ActiveTenantIDs(ctx)
	if err != nil {
		log.Error().Err(err).Msg("payroll rollover: failed to list active tenants")
		return
	}

	closedMonth := firstOfMonth(time.Now().AddDate(0, -1, 0))

	for _, tenantID := range tenantIDs {
		tctx := tenant.WithTenantID(ctx, tenantID)
		active, err := employees.List(tctx, false)
		if err != nil {
			log.Error().Err(err).Str("tenant_id", tenantID).Msg("payroll rollover: failed to list employees")
			continue
		}
		ids := make([]string, 0, len(active))
		for _, e := range active {
			ids = append(ids, e.ID)
		}
		if _, errs := svc.CalculateAll(tctx, ids, closedMonth); len(errs) > 0 {
			for _, err := range errs {
				log.Error().Err(err).Str("tenant_id", tenantID).Msg("payroll rollover: calculation failed for one employee")
			}
		}
	}
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
