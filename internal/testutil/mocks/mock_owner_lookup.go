package mocks

import (
	"context"

	mock "github.com/stretchr/testify/mock"
)

// MockOwnerLookup is a mock type for the OwnerLookup type
type MockOwnerLookup struct {
	mock.Mock
}

type MockOwnerLookup_Expecter struct {
	mock *mock.Mock
}

func (_m *MockOwnerLookup) EXPECT() *MockOwnerLookup_Expecter {
	return &MockOwnerLookup_Expecter{mock: &_m.Mock}
}

// Owner provides a mock function with given fields: ctx, slug
func (_m *MockOwnerLookup) Owner(ctx context.Context, slug string) (string, error) {
	ret := _m.Called(ctx, slug)

	if len(ret) == 0 {
		panic("no return value specified for Owner")
	}

	var r0 string
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (string, error)); ok {
		return rf(ctx, slug)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) string); ok {
		r0 = rf(ctx, slug)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(string)
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, slug)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockOwnerLookup_Owner_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Owner'
type MockOwnerLookup_Owner_Call struct {
	*mock.Call
}

// Owner is a helper method to define mock.On call
//   - ctx context.Context
//   - slug string
func (_e *MockOwnerLookup_Expecter) Owner(ctx interface{}, slug interface{}) *MockOwnerLookup_Owner_Call {
	return &MockOwnerLookup_Owner_Call{Call: _e.mock.On("Owner", ctx, slug)}
}

func (_c *MockOwnerLookup_Owner_Call) Run(run func(ctx context.Context, slug string)) *MockOwnerLookup_Owner_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(string))
	})
	return _c
}

func (_c *MockOwnerLookup_Owner_Call) Return(_a0 string, _a1 error) *MockOwnerLookup_Owner_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockOwnerLookup_Owner_Call) RunAndReturn(run func(context.Context, string) (string, error)) *MockOwnerLookup_Owner_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockOwnerLookup creates a new instance of MockOwnerLookup. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockOwnerLookup(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockOwnerLookup {
	mock := &MockOwnerLookup{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
