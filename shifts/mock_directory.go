package shifts

import "github.com/stretchr/testify/mock"

// MockDirectory implements UserDirectory for testing.
type MockDirectory struct {
	mock.Mock
}

// UserByID implements the UserDirectory interface.
func (m *MockDirectory) UserByID(id string) (User, bool) {
	args := m.Called(id)
	return args.Get(0).(User), args.Bool(1)
}
