package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/farellandr/encuentro/config"
	"github.com/farellandr/encuentro/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type mockMembership struct {
	service.MembershipService
	mock.Mock
}

func (m *mockMembership) SweepEmptyGroups(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockAttendance struct {
	service.AttendanceService
	mock.Mock
}

func (m *mockAttendance) TotalAttendance(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func newRunner(t *testing.T) (*JobRunner, *mockMembership, *mockAttendance, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	membership := new(mockMembership)
	attendance := new(mockAttendance)
	return NewJobRunner(membership, attendance, zap.New(core)), membership, attendance, logs
}

func TestSweepEmptyGroups(t *testing.T) {
	t.Run("LogsRemovals", func(t *testing.T) {
		runner, membership, _, logs := newRunner(t)
		membership.On("SweepEmptyGroups", mock.Anything).Return(int64(3), nil).Once()

		runner.SweepEmptyGroups()

		entries := logs.FilterMessage("removed empty groups").All()
		require.Len(t, entries, 1)
		assert.Equal(t, int64(3), entries[0].ContextMap()["count"])
		membership.AssertExpectations(t)
	})

	t.Run("QuietWhenNothingRemoved", func(t *testing.T) {
		runner, membership, _, logs := newRunner(t)
		membership.On("SweepEmptyGroups", mock.Anything).Return(int64(0), nil).Once()

		runner.SweepEmptyGroups()
		assert.Zero(t, logs.FilterMessage("removed empty groups").Len())
	})

	t.Run("Failure", func(t *testing.T) {
		runner, membership, _, logs := newRunner(t)
		membership.On("SweepEmptyGroups", mock.Anything).Return(int64(0), errors.New("connection refused")).Once()

		runner.SweepEmptyGroups()
		assert.Equal(t, 1, logs.FilterMessage("sweep empty groups failed").Len())
	})
}

func TestLogAttendanceSummary(t *testing.T) {
	runner, _, attendance, logs := newRunner(t)
	attendance.On("TotalAttendance", mock.Anything).Return(int64(12), nil).Once()

	runner.LogAttendanceSummary()

	entries := logs.FilterMessage("attendance summary").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(12), entries[0].ContextMap()["checked_in"])
}

func TestRunWithRecovery(t *testing.T) {
	runner, _, _, logs := newRunner(t)

	assert.NotPanics(t, func() {
		runner.runWithRecovery("boom", func(context.Context) { panic("kaput") })
	})
	assert.Equal(t, 1, logs.FilterMessage("job panicked").Len())
}

func TestNewScheduler(t *testing.T) {
	runner, _, _, _ := newRunner(t)

	s, err := NewScheduler(runner, config.JobsConfig{
		SweepEmptyGroups:  "0 */10 * * * *",
		AttendanceSummary: "0 0 * * * *",
	}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 2, s.Entries())

	_, err = NewScheduler(runner, config.JobsConfig{
		SweepEmptyGroups:  "every ten minutes",
		AttendanceSummary: "0 0 * * * *",
	}, zap.NewNop())
	assert.ErrorContains(t, err, "sweep_empty_groups")
}
