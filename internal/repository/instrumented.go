package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jwalitptl/medclinic-admin/internal/model"
	"github.com/jwalitptl/medclinic-admin/pkg/metrics"
)

type instrumented[T model.Entity[T]] struct {
	next    Repository[T]
	entity  string
	metrics *metrics.Metrics
}

// Instrument wraps next so every call is counted and timed.
func Instrument[T model.Entity[T]](next Repository[T], entity string, m *metrics.Metrics) Repository[T] {
	return &instrumented[T]{next: next, entity: entity, metrics: m}
}

func (r *instrumented[T]) observe(op string, start time.Time, err error) {
	status := "ok"
	switch {
	case errors.Is(err, ErrNotFound):
		status = "not_found"
	case err != nil:
		status = "error"
	}
	r.metrics.StoreOperations.WithLabelValues(r.entity, op, status).Inc()
	r.metrics.StoreLatency.WithLabelValues(r.entity, op).Observe(time.Since(start).Seconds())
}

func (r *instrumented[T]) List(ctx context.Context) (items []T, err error) {
	defer func(start time.Time) { r.observe("list", start, err) }(time.Now())
	return r.next.List(ctx)
}

func (r *instrumented[T]) Get(ctx context.Context, id string) (item T, err error) {
	defer func(start time.Time) { r.observe("get", start, err) }(time.Now())
	return r.next.Get(ctx, id)
}

func (r *instrumented[T]) Add(ctx context.Context, item T) (err error) {
	defer func(start time.Time) { r.observe("add", start, err) }(time.Now())
	return r.next.Add(ctx, item)
}

func (r *instrumented[T]) Update(ctx context.Context, item T) (err error) {
	defer func(start time.Time) { r.observe("update", start, err) }(time.Now())
	return r.next.Update(ctx, item)
}

func (r *instrumented[T]) Remove(ctx context.Context, id string) (removed bool, err error) {
	defer func(start time.Time) { r.observe("remove", start, err) }(time.Now())
	return r.next.Remove(ctx, id)
}

// InstrumentAll wraps every repository in repos.
func InstrumentAll(repos *Repositories, m *metrics.Metrics) *Repositories {
	return &Repositories{
		Appointments:  Instrument(repos.Appointments, KindAppointment, m),
		Patients:      Instrument(repos.Patients, KindPatient, m),
		Facilities:    Instrument(repos.Facilities, KindFacility, m),
		Organizations: Instrument(repos.Organizations, KindOrganization, m),
		Roles:         Instrument(repos.Roles, KindRole, m),
		Users:         Instrument(repos.Users, KindUser, m),
		Specialities:  Instrument(repos.Specialities, KindSpeciality, m),
	}
}
