package mocks

import (
	"edge-shortener/internal/analytics/domain"

	mock "github.com/stretchr/testify/mock"
)

// MockDeviceDetector is a mock type for the DeviceDetector type
type MockDeviceDetector struct {
	mock.Mock
}

type MockDeviceDetector_Expecter struct {
	mock *mock.Mock
}

func (_m *MockDeviceDetector) EXPECT() *MockDeviceDetector_Expecter {
	return &MockDeviceDetector_Expecter{mock: &_m.Mock}
}

// DetectDevice provides a mock function with given fields: userAgent
func (_m *MockDeviceDetector) DetectDevice(userAgent string) domain.UserAgentInfo {
	ret := _m.Called(userAgent)

	if len(ret) == 0 {
		panic("no return value specified for DetectDevice")
	}

	var r0 domain.UserAgentInfo
	if rf, ok := ret.Get(0).(func(string) domain.UserAgentInfo); ok {
		r0 = rf(userAgent)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(domain.UserAgentInfo)
	}

	return r0
}

// MockDeviceDetector_DetectDevice_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'DetectDevice'
type MockDeviceDetector_DetectDevice_Call struct {
	*mock.Call
}

// DetectDevice is a helper method to define mock.On call
//   - userAgent string
func (_e *MockDeviceDetector_Expecter) DetectDevice(userAgent interface{}) *MockDeviceDetector_DetectDevice_Call {
	return &MockDeviceDetector_DetectDevice_Call{Call: _e.mock.On("DetectDevice", userAgent)}
}

func (_c *MockDeviceDetector_DetectDevice_Call) Run(run func(userAgent string)) *MockDeviceDetector_DetectDevice_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(string))
	})
	return _c
}

func (_c *MockDeviceDetector_DetectDevice_Call) Return(_a0 domain.UserAgentInfo) *MockDeviceDetector_DetectDevice_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockDeviceDetector_DetectDevice_Call) RunAndReturn(run func(string) domain.UserAgentInfo) *MockDeviceDetector_DetectDevice_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockDeviceDetector creates a new instance of MockDeviceDetector. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockDeviceDetector(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockDeviceDetector {
	mock := &MockDeviceDetector{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
