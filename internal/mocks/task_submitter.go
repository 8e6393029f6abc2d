package mocks

import (
	"context"

	"storybook-server/internal/generator"
	"storybook-server/pkg/taskmanager"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// TaskSubmitter is a mock type for the generator.TaskSubmitter type.
// RunSynchronously makes SubmitTask execute the task function inline, which
// lets tests drive the whole generation pipeline without goroutines.
type TaskSubmitter struct {
	mock.Mock
	RunSynchronously bool
}

func (_m *TaskSubmitter) SubmitTask(ctx context.Context, taskFunc taskmanager.TaskFunc, params interface{}) (uuid.UUID, error) {
	ret := _m.Called(ctx, taskFunc, params)

	if err := ret.Error(1); err != nil {
		return uuid.UUID{}, err
	}

	if _m.RunSynchronously {
		_, _ = taskFunc(ctx, params)
	}

	var r0 uuid.UUID
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(uuid.UUID)
	}
	return r0, nil
}

var _ generator.TaskSubmitter = (*TaskSubmitter)(nil)
