package mocks

import (
	"github.com/brettbedarf/fmemu"
	"github.com/stretchr/testify/mock"
)

var _ fmemu.Operator = (*MockOperator)(nil)

// MockOperator implements fmemu.Operator for testing across packages
type MockOperator struct {
	mock.Mock
}

func (m *MockOperator) MakeDir(path string) error {
	return m.Called(path).Error(0)
}

func (m *MockOperator) ChangeDir(path string) error {
	return m.Called(path).Error(0)
}

func (m *MockOperator) RemoveDir(path string) error {
	return m.Called(path).Error(0)
}

func (m *MockOperator) DeleteTree(path string) error {
	return m.Called(path).Error(0)
}

func (m *MockOperator) MakeFile(path string) error {
	return m.Called(path).Error(0)
}

func (m *MockOperator) MakeHardLink(src, dst string) error {
	return m.Called(src, dst).Error(0)
}

func (m *MockOperator) MakeDynamicLink(src, dst string) error {
	return m.Called(src, dst).Error(0)
}

func (m *MockOperator) DeleteFile(path string) error {
	return m.Called(path).Error(0)
}

func (m *MockOperator) Copy(src, dst string) error {
	return m.Called(src, dst).Error(0)
}

func (m *MockOperator) Move(src, dst string) error {
	return m.Called(src, dst).Error(0)
}
