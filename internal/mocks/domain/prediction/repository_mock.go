// Code generated by mockery v2.53.5. DO NOT EDIT.

package predictionmock

import (
	context "context"

	prediction "github.com/palpiteria/bolao/internal/domain/prediction"
	mock "github.com/stretchr/testify/mock"
)

// Repository is an autogenerated mock type for the Repository type
type Repository struct {
	mock.Mock
}

// ListParticipants provides a mock function with given fields: ctx, slug
func (_m *Repository) ListParticipants(ctx context.Context, slug string) ([]string, error) {
	ret := _m.Called(ctx, slug)

	if len(ret) == 0 {
		panic("no return value specified for ListParticipants")
	}

	var r0 []string
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) ([]string, error)); ok {
		return rf(ctx, slug)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) []string); ok {
		r0 = rf(ctx, slug)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]string)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, slug)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Load provides a mock function with given fields: ctx, slug, participant
func (_m *Repository) Load(ctx context.Context, slug string, participant string) (prediction.Sheet, bool, error) {
	ret := _m.Called(ctx, slug, participant)

	if len(ret) == 0 {
		panic("no return value specified for Load")
	}

	var r0 prediction.Sheet
	var r1 bool
	var r2 error
	if rf, ok := ret.Get(0).(func(context.Context, string, string) (prediction.Sheet, bool, error)); ok {
		return rf(ctx, slug, participant)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string, string) prediction.Sheet); ok {
		r0 = rf(ctx, slug, participant)
	} else {
		r0 = ret.Get(0).(prediction.Sheet)
	}

	if rf, ok := ret.Get(1).(func(context.Context, string, string) bool); ok {
		r1 = rf(ctx, slug, participant)
	} else {
		r1 = ret.Get(1).(bool)
	}

	if rf, ok := ret.Get(2).(func(context.Context, string, string) error); ok {
		r2 = rf(ctx, slug, participant)
	} else {
		r2 = ret.Error(2)
	}

	return r0, r1, r2
}

// LoadAll provides a mock function with given fields: ctx, slug
func (_m *Repository) LoadAll(ctx context.Context, slug string) ([]prediction.Sheet, error) {
	ret := _m.Called(ctx, slug)

	if len(ret) == 0 {
		panic("no return value specified for LoadAll")
	}

	var r0 []prediction.Sheet
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) ([]prediction.Sheet, error)); ok {
		return rf(ctx, slug)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) []prediction.Sheet); ok {
		r0 = rf(ctx, slug)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]prediction.Sheet)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, slug)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Save provides a mock function with given fields: ctx, slug, participant, sheet
func (_m *Repository) Save(ctx context.Context, slug string, participant string, sheet prediction.Sheet) error {
	ret := _m.Called(ctx, slug, participant, sheet)

	if len(ret) == 0 {
		panic("no return value specified for Save")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string, string, prediction.Sheet) error); ok {
		r0 = rf(ctx, slug, participant, sheet)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewRepository creates a new instance of Repository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *Repository {
	mock := &Repository{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
