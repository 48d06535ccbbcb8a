package mocks

import mock "github.com/stretchr/testify/mock"

// MockRefererClassifier is a mock type for the RefererClassifier type
type MockRefererClassifier struct {
	mock.Mock
}

type MockRefererClassifier_Expecter struct {
	mock *mock.Mock
}

func (_m *MockRefererClassifier) EXPECT() *MockRefererClassifier_Expecter {
	return &MockRefererClassifier_Expecter{mock: &_m.Mock}
}

// ClassifySource provides a mock function with given fields: referer
func (_m *MockRefererClassifier) ClassifySource(referer string) string {
	ret := _m.Called(referer)

	if len(ret) == 0 {
		panic("no return value specified for ClassifySource")
	}

	var r0 string
	if rf, ok := ret.Get(0).(func(string) string); ok {
		r0 = rf(referer)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(string)
	}

	return r0
}

// MockRefererClassifier_ClassifySource_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'ClassifySource'
type MockRefererClassifier_ClassifySource_Call struct {
	*mock.Call
}

// ClassifySource is a helper method to define mock.On call
//   - referer string
func (_e *MockRefererClassifier_Expecter) ClassifySource(referer interface{}) *MockRefererClassifier_ClassifySource_Call {
	return &MockRefererClassifier_ClassifySource_Call{Call: _e.mock.On("ClassifySource", referer)}
}

func (_c *MockRefererClassifier_ClassifySource_Call) Run(run func(referer string)) *MockRefererClassifier_ClassifySource_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(string))
	})
	return _c
}

func (_c *MockRefererClassifier_ClassifySource_Call) Return(_a0 string) *MockRefererClassifier_ClassifySource_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockRefererClassifier_ClassifySource_Call) RunAndReturn(run func(string) string) *MockRefererClassifier_ClassifySource_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockRefererClassifier creates a new instance of MockRefererClassifier. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockRefererClassifier(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRefererClassifier {
	mock := &MockRefererClassifier{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
