package mocks

import (
	"context"

	"edge-shortener/internal/analytics/domain"

	mock "github.com/stretchr/testify/mock"
)

// MockClickStore is a mock type for the ClickStore type
type MockClickStore struct {
	mock.Mock
}

type MockClickStore_Expecter struct {
	mock *mock.Mock
}

func (_m *MockClickStore) EXPECT() *MockClickStore_Expecter {
	return &MockClickStore_Expecter{mock: &_m.Mock}
}

// InsertClick provides a mock function with given fields: ctx, click
func (_m *MockClickStore) InsertClick(ctx context.Context, click domain.ClickEvent) error {
	ret := _m.Called(ctx, click)

	if len(ret) == 0 {
		panic("no return value specified for InsertClick")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, domain.ClickEvent) error); ok {
		r0 = rf(ctx, click)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockClickStore_InsertClick_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'InsertClick'
type MockClickStore_InsertClick_Call struct {
	*mock.Call
}

// InsertClick is a helper method to define mock.On call
//   - ctx context.Context
//   - click domain.ClickEvent
func (_e *MockClickStore_Expecter) InsertClick(ctx interface{}, click interface{}) *MockClickStore_InsertClick_Call {
	return &MockClickStore_InsertClick_Call{Call: _e.mock.On("InsertClick", ctx, click)}
}

func (_c *MockClickStore_InsertClick_Call) Run(run func(ctx context.Context, click domain.ClickEvent)) *MockClickStore_InsertClick_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(domain.ClickEvent))
	})
	return _c
}

func (_c *MockClickStore_InsertClick_Call) Return(_a0 error) *MockClickStore_InsertClick_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockClickStore_InsertClick_Call) RunAndReturn(run func(context.Context, domain.ClickEvent) error) *MockClickStore_InsertClick_Call {
	_c.Call.Return(run)
	return _c
}

// ListClicks provides a mock function with given fields: ctx, q
func (_m *MockClickStore) ListClicks(ctx context.Context, q domain.ClickQuery) ([]domain.ClickEvent, error) {
	ret := _m.Called(ctx, q)

	if len(ret) == 0 {
		panic("no return value specified for ListClicks")
	}

	var r0 []domain.ClickEvent
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, domain.ClickQuery) ([]domain.ClickEvent, error)); ok {
		return rf(ctx, q)
	}
	if rf, ok := ret.Get(0).(func(context.Context, domain.ClickQuery) []domain.ClickEvent); ok {
		r0 = rf(ctx, q)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.ClickEvent)
	}

	if rf, ok := ret.Get(1).(func(context.Context, domain.ClickQuery) error); ok {
		r1 = rf(ctx, q)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockClickStore_ListClicks_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'ListClicks'
type MockClickStore_ListClicks_Call struct {
	*mock.Call
}

// ListClicks is a helper method to define mock.On call
//   - ctx context.Context
//   - q domain.ClickQuery
func (_e *MockClickStore_Expecter) ListClicks(ctx interface{}, q interface{}) *MockClickStore_ListClicks_Call {
	return &MockClickStore_ListClicks_Call{Call: _e.mock.On("ListClicks", ctx, q)}
}

func (_c *MockClickStore_ListClicks_Call) Run(run func(ctx context.Context, q domain.ClickQuery)) *MockClickStore_ListClicks_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(domain.ClickQuery))
	})
	return _c
}

func (_c *MockClickStore_ListClicks_Call) Return(_a0 []domain.ClickEvent, _a1 error) *MockClickStore_ListClicks_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockClickStore_ListClicks_Call) RunAndReturn(run func(context.Context, domain.ClickQuery) ([]domain.ClickEvent, error)) *MockClickStore_ListClicks_Call {
	_c.Call.Return(run)
	return _c
}

// Ping provides a mock function with given fields: ctx
func (_m *MockClickStore) Ping(ctx context.Context) error {
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

// MockClickStore_Ping_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Ping'
type MockClickStore_Ping_Call struct {
	*mock.Call
}

// Ping is a helper method to define mock.On call
//   - ctx context.Context
func (_e *MockClickStore_Expecter) Ping(ctx interface{}) *MockClickStore_Ping_Call {
	return &MockClickStore_Ping_Call{Call: _e.mock.On("Ping", ctx)}
}

func (_c *MockClickStore_Ping_Call) Run(run func(ctx context.Context)) *MockClickStore_Ping_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context))
	})
	return _c
}

func (_c *MockClickStore_Ping_Call) Return(_a0 error) *MockClickStore_Ping_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockClickStore_Ping_Call) RunAndReturn(run func(context.Context) error) *MockClickStore_Ping_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockClickStore creates a new instance of MockClickStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockClickStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockClickStore {
	mock := &MockClickStore{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
