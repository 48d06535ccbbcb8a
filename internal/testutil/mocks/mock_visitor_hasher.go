package mocks

import (
	"time"

	mock "github.com/stretchr/testify/mock"
)

// MockVisitorHasher is a mock type for the VisitorHasher type
type MockVisitorHasher struct {
	mock.Mock
}

type MockVisitorHasher_Expecter struct {
	mock *mock.Mock
}

func (_m *MockVisitorHasher) EXPECT() *MockVisitorHasher_Expecter {
	return &MockVisitorHasher_Expecter{mock: &_m.Mock}
}

// Hash provides a mock function with given fields: ip, at
func (_m *MockVisitorHasher) Hash(ip string, at time.Time) string {
	ret := _m.Called(ip, at)

	if len(ret) == 0 {
		panic("no return value specified for Hash")
	}

	var r0 string
	if rf, ok := ret.Get(0).(func(string, time.Time) string); ok {
		r0 = rf(ip, at)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(string)
	}

	return r0
}

// MockVisitorHasher_Hash_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Hash'
type MockVisitorHasher_Hash_Call struct {
	*mock.Call
}

// Hash is a helper method to define mock.On call
//   - ip string
//   - at time.Time
func (_e *MockVisitorHasher_Expecter) Hash(ip interface{}, at interface{}) *MockVisitorHasher_Hash_Call {
	return &MockVisitorHasher_Hash_Call{Call: _e.mock.On("Hash", ip, at)}
}

func (_c *MockVisitorHasher_Hash_Call) Run(run func(ip string, at time.Time)) *MockVisitorHasher_Hash_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(string), args[1].(time.Time))
	})
	return _c
}

func (_c *MockVisitorHasher_Hash_Call) Return(_a0 string) *MockVisitorHasher_Hash_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockVisitorHasher_Hash_Call) RunAndReturn(run func(string, time.Time) string) *MockVisitorHasher_Hash_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockVisitorHasher creates a new instance of MockVisitorHasher. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockVisitorHasher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockVisitorHasher {
	mock := &MockVisitorHasher{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
