package service

import (
	"fmt"
	"testing"

	"lexideck/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func TestAuthService_CheckPassword(t *testing.T) {
	tests := []struct {
		name           string
		botPassword    string
		inputPassword  string
		expectedResult bool
	}{
		{
			name:           "correct password",
			botPassword:    "secret123",
			inputPassword:  "secret123",
			expectedResult: true,
		},
		{
			name:           "incorrect password",
			botPassword:    "secret123",
			inputPassword:  "wrong",
			expectedResult: false,
		},
		{
			name:           "empty password",
			botPassword:    "secret123",
			inputPassword:  "",
			expectedResult: false,
		},
		{
			name:           "case sensitive",
			botPassword:    "Secret123",
			inputPassword:  "secret123",
			expectedResult: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockUserRepository)
			service := NewAuthService(mockRepo, tt.botPassword)

			result := service.CheckPassword(tt.inputPassword)

			assert.Equal(t, tt.expectedResult, result)
		})
	}
}

func TestAuthService_Ensure(t *testing.T) {
	tests := []struct {
		name          string
		userID        int64
		mockUser      bool
		authorized    bool
		mockError     error
		expectedError bool
	}{
		{
			name:       "authorized user",
			userID:     123,
			mockUser:   true,
			authorized: true,
		},
		{
			name:       "new user",
			userID:     456,
			mockUser:   true,
			authorized: false,
		},
		{
			name:          "database error",
			userID:        789,
			mockError:     fmt.Errorf("db error"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockUserRepository)
			if tt.mockUser {
				mockRepo.On("Ensure", tt.userID).Return(testutil.NewTestUser(tt.userID, tt.authorized), nil)
			} else {
				mockRepo.On("Ensure", tt.userID).Return(nil, tt.mockError)
			}

			service := NewAuthService(mockRepo, "password")

			user, err := service.Ensure(tt.userID)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.authorized, user.Authorized)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Authorize(t *testing.T) {
	tests := []struct {
		name          string
		mockError     error
		expectedError bool
	}{
		{
			name: "successful authorization",
		},
		{
			name:          "database error",
			mockError:     fmt.Errorf("db error"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockUserRepository)
			mockRepo.On("Authorize", int64(123)).Return(tt.mockError)

			service := NewAuthService(mockRepo, "password")

			err := service.Authorize(123)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
