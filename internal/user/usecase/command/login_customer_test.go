package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"favorites-service/internal/user/domain"
	"favorites-service/pkg/auth"
)

func registeredCustomer(t *testing.T, password string) *domain.Customer {
	t.Helper()
	hashed, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &domain.Customer{
		ID:       7,
		Username: "joana",
		Email:    "joana@example.com",
		Password: hashed,
	}
}

func TestLoginCustomer_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	customer := registeredCustomer(t, "s3cret-pass")
	mockRepo := new(MockCustomerRepository)
	mockRepo.On("FindByUsername", ctx, "joana").Return(customer, nil)
	mockRepo.On("Update", ctx, customer).Return(nil)

	handler := NewLoginCustomerHandler(mockRepo)

	// Act
	response, err := handler.Handle(ctx, LoginCustomerCommand{Username: "joana", Password: "s3cret-pass"})

	// Assert
	require.NoError(t, err)
	require.NotEmpty(t, response.Token)

	claims, err := auth.ValidateToken(response.Token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.NotNil(t, response.Customer.LastLogin)
	mockRepo.AssertExpectations(t)
}

func TestLoginCustomer_WrongPassword(t *testing.T) {
	ctx := context.Background()
	customer := registeredCustomer(t, "s3cret-pass")
	mockRepo := new(MockCustomerRepository)
	mockRepo.On("FindByUsername", ctx, "joana").Return(customer, nil)

	handler := NewLoginCustomerHandler(mockRepo)

	_, err := handler.Handle(ctx, LoginCustomerCommand{Username: "joana", Password: "wrong"})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginCustomer_UnknownUsername(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockCustomerRepository)
	mockRepo.On("FindByUsername", ctx, "ghost").Return(nil, domain.ErrNotFound)

	handler := NewLoginCustomerHandler(mockRepo)

	_, err := handler.Handle(ctx, LoginCustomerCommand{Username: "ghost", Password: "whatever"})

	// Unknown users and bad passwords are indistinguishable to the caller
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginCustomer_EmptyCredentials(t *testing.T) {
	handler := NewLoginCustomerHandler(new(MockCustomerRepository))

	_, err := handler.Handle(context.Background(), LoginCustomerCommand{})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
