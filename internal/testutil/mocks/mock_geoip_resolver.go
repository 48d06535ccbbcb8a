package mocks

import mock "github.com/stretchr/testify/mock"

// MockGeoIPResolver is a mock type for the GeoIPResolver type
type MockGeoIPResolver struct {
	mock.Mock
}

type MockGeoIPResolver_Expecter struct {
	mock *mock.Mock
}

func (_m *MockGeoIPResolver) EXPECT() *MockGeoIPResolver_Expecter {
	return &MockGeoIPResolver_Expecter{mock: &_m.Mock}
}

// Resolve provides a mock function with given fields: ip
func (_m *MockGeoIPResolver) Resolve(ip string) (string, string) {
	ret := _m.Called(ip)

	if len(ret) == 0 {
		panic("no return value specified for Resolve")
	}

	var r0 string
	var r1 string
	if rf, ok := ret.Get(0).(func(string) (string, string)); ok {
		return rf(ip)
	}
	if rf, ok := ret.Get(0).(func(string) string); ok {
		r0 = rf(ip)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(string)
	}

	if rf, ok := ret.Get(1).(func(string) string); ok {
		r1 = rf(ip)
	} else if ret.Get(1) != nil {
		r1 = ret.Get(1).(string)
	}

	return r0, r1
}

// MockGeoIPResolver_Resolve_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Resolve'
type MockGeoIPResolver_Resolve_Call struct {
	*mock.Call
}

// Resolve is a helper method to define mock.On call
//   - ip string
func (_e *MockGeoIPResolver_Expecter) Resolve(ip interface{}) *MockGeoIPResolver_Resolve_Call {
	return &MockGeoIPResolver_Resolve_Call{Call: _e.mock.On("Resolve", ip)}
}

func (_c *MockGeoIPResolver_Resolve_Call) Run(run func(ip string)) *MockGeoIPResolver_Resolve_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(string))
	})
	return _c
}

func (_c *MockGeoIPResolver_Resolve_Call) Return(_a0 string, _a1 string) *MockGeoIPResolver_Resolve_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockGeoIPResolver_Resolve_Call) RunAndReturn(run func(string) (string, string)) *MockGeoIPResolver_Resolve_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockGeoIPResolver creates a new instance of MockGeoIPResolver. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockGeoIPResolver(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockGeoIPResolver {
	mock := &MockGeoIPResolver{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
