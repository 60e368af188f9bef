// Code generated by mockery v2.53.5. DO NOT EDIT.

package scoringmock

import (
	context "context"

	scoring "github.com/palpiteria/bolao/internal/domain/scoring"
	mock "github.com/stretchr/testify/mock"
)

// Repository is an autogenerated mock type for the Repository type
type Repository struct {
	mock.Mock
}

// Load provides a mock function with given fields: ctx, slug
func (_m *Repository) Load(ctx context.Context, slug string) (scoring.RuleSet, bool, error) {
	ret := _m.Called(ctx, slug)

	if len(ret) == 0 {
		panic("no return value specified for Load")
	}

	var r0 scoring.RuleSet
	var r1 bool
	var r2 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (scoring.RuleSet, bool, error)); ok {
		return rf(ctx, slug)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) scoring.RuleSet); ok {
		r0 = rf(ctx, slug)
	} else {
		r0 = ret.Get(0).(scoring.RuleSet)
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) bool); ok {
		r1 = rf(ctx, slug)
	} else {
		r1 = ret.Get(1).(bool)
	}

	if rf, ok := ret.Get(2).(func(context.Context, string) error); ok {
		r2 = rf(ctx, slug)
	} else {
		r2 = ret.Error(2)
	}

	return r0, r1, r2
}

// Save provides a mock function with given fields: ctx, slug, set
func (_m *Repository) Save(ctx context.Context, slug string, set scoring.RuleSet) error {
	ret := _m.Called(ctx, slug, set)

	if len(ret) == 0 {
		panic("no return value specified for Save")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string, scoring.RuleSet) error); ok {
		r0 = rf(ctx, slug, set)
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
