package mocks

import (
	"context"

	"edge-shortener/internal/urlservice/domain"

	mock "github.com/stretchr/testify/mock"
)

// MockLinkStore is a mock type for the LinkStore type
type MockLinkStore struct {
	mock.Mock
}

type MockLinkStore_Expecter struct {
	mock *mock.Mock
}

func (_m *MockLinkStore) EXPECT() *MockLinkStore_Expecter {
	return &MockLinkStore_Expecter{mock: &_m.Mock}
}

// Get provides a mock function with given fields: ctx, slug
func (_m *MockLinkStore) Get(ctx context.Context, slug string) (*domain.Link, error) {
	ret := _m.Called(ctx, slug)

	if len(ret) == 0 {
		panic("no return value specified for Get")
	}

	var r0 *domain.Link
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (*domain.Link, error)); ok {
		return rf(ctx, slug)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) *domain.Link); ok {
		r0 = rf(ctx, slug)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Link)
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, slug)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockLinkStore_Get_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Get'
type MockLinkStore_Get_Call struct {
	*mock.Call
}

// Get is a helper method to define mock.On call
//   - ctx context.Context
//   - slug string
func (_e *MockLinkStore_Expecter) Get(ctx interface{}, slug interface{}) *MockLinkStore_Get_Call {
	return &MockLinkStore_Get_Call{Call: _e.mock.On("Get", ctx, slug)}
}

func (_c *MockLinkStore_Get_Call) Run(run func(ctx context.Context, slug string)) *MockLinkStore_Get_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(string))
	})
	return _c
}

func (_c *MockLinkStore_Get_Call) Return(_a0 *domain.Link, _a1 error) *MockLinkStore_Get_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockLinkStore_Get_Call) RunAndReturn(run func(context.Context, string) (*domain.Link, error)) *MockLinkStore_Get_Call {
	_c.Call.Return(run)
	return _c
}

// IncrementClicks provides a mock function with given fields: ctx, slug
func (_m *MockLinkStore) IncrementClicks(ctx context.Context, slug string) error {
	ret := _m.Called(ctx, slug)

	if len(ret) == 0 {
		panic("no return value specified for IncrementClicks")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string) error); ok {
		r0 = rf(ctx, slug)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockLinkStore_IncrementClicks_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'IncrementClicks'
type MockLinkStore_IncrementClicks_Call struct {
	*mock.Call
}

// IncrementClicks is a helper method to define mock.On call
//   - ctx context.Context
//   - slug string
func (_e *MockLinkStore_Expecter) IncrementClicks(ctx interface{}, slug interface{}) *MockLinkStore_IncrementClicks_Call {
	return &MockLinkStore_IncrementClicks_Call{Call: _e.mock.On("IncrementClicks", ctx, slug)}
}

func (_c *MockLinkStore_IncrementClicks_Call) Run(run func(ctx context.Context, slug string)) *MockLinkStore_IncrementClicks_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(string))
	})
	return _c
}

func (_c *MockLinkStore_IncrementClicks_Call) Return(_a0 error) *MockLinkStore_IncrementClicks_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockLinkStore_IncrementClicks_Call) RunAndReturn(run func(context.Context, string) error) *MockLinkStore_IncrementClicks_Call {
	_c.Call.Return(run)
	return _c
}

// Ping provides a mock function with given fields: ctx
func (_m *MockLinkStore) Ping(ctx context.Context) error {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for Ping")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context) error); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockLinkStore_Ping_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Ping'
type MockLinkStore_Ping_Call struct {
	*mock.Call
}

// Ping is a helper method to define mock.On call
//   - ctx context.Context
func (_e *MockLinkStore_Expecter) Ping(ctx interface{}) *MockLinkStore_Ping_Call {
	return &MockLinkStore_Ping_Call{Call: _e.mock.On("Ping", ctx)}
}

func (_c *MockLinkStore_Ping_Call) Run(run func(ctx context.Context)) *MockLinkStore_Ping_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context))
	})
	return _c
}

func (_c *MockLinkStore_Ping_Call) Return(_a0 error) *MockLinkStore_Ping_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockLinkStore_Ping_Call) RunAndReturn(run func(context.Context) error) *MockLinkStore_Ping_Call {
	_c.Call.Return(run)
	return _c
}

// Put provides a mock function with given fields: ctx, slug, record
func (_m *MockLinkStore) Put(ctx context.Context, slug string, record domain.Record) error {
	ret := _m.Called(ctx, slug, record)

	if len(ret) == 0 {
		panic("no return value specified for Put")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string, domain.Record) error); ok {
		r0 = rf(ctx, slug, record)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockLinkStore_Put_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Put'
type MockLinkStore_Put_Call struct {
	*mock.Call
}

// Put is a helper method to define mock.On call
//   - ctx context.Context
//   - slug string
//   - record domain.Record
func (_e *MockLinkStore_Expecter) Put(ctx interface{}, slug interface{}, record interface{}) *MockLinkStore_Put_Call {
	return &MockLinkStore_Put_Call{Call: _e.mock.On("Put", ctx, slug, record)}
}

func (_c *MockLinkStore_Put_Call) Run(run func(ctx context.Context, slug string, record domain.Record)) *MockLinkStore_Put_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(string), args[2].(domain.Record))
	})
	return _c
}

func (_c *MockLinkStore_Put_Call) Return(_a0 error) *MockLinkStore_Put_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockLinkStore_Put_Call) RunAndReturn(run func(context.Context, string, domain.Record) error) *MockLinkStore_Put_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockLinkStore creates a new instance of MockLinkStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockLinkStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLinkStore {
	mock := &MockLinkStore{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
