package mocks

import (
	"context"

	"storybook-server/internal/interfaces"

	"github.com/stretchr/testify/mock"
)

// ImageGenerator is a mock type for the ImageGenerator type
type ImageGenerator struct {
	mock.Mock
}

// Generate provides a mock function with given fields: ctx, prompt
func (_m *ImageGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	ret := _m.Called(ctx, prompt)

	var r0 string
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(string)
	}
	return r0, ret.Error(1)
}

var _ interfaces.ImageGenerator = (*ImageGenerator)(nil)
