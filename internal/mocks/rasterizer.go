package mocks

import (
	"context"

	"storybook-server/internal/pdf"

	"github.com/stretchr/testify/mock"
)

// Rasterizer is a mock type for the pdf.Rasterizer type
type Rasterizer struct {
	mock.Mock
}

func (_m *Rasterizer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	ret := _m.Called(ctx, html)

	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}

func (_m *Rasterizer) Close() error {
	ret := _m.Called()
	return ret.Error(0)
}

var _ pdf.Rasterizer = (*Rasterizer)(nil)
