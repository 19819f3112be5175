package usecase

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"shelf_backend/internal/feature/auth/domain/entity"
)

// mockOperatorRepository is a mock implementation of the OperatorRepository interface.
// It simulates database operations during testing.
type mockOperatorRepository struct {
	// CreateFunc is called when the Create method is invoked.
	CreateFunc func(ctx context.Context, operator *entity.Operator) error
	// FindByEmailFunc is called when the FindByEmail method is invoked.
	FindByEmailFunc func(ctx context.Context, email string) (*entity.Operator, error)
	// FindByIDFunc is called when the FindByID method is invoked.
	FindByIDFunc func(ctx context.Context, id uint) (*entity.Operator, error)
}

func (m *mockOperatorRepository) Create(ctx context.Context, operator *entity.Operator) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, operator)
	}
	return nil
}

func (m *mockOperatorRepository) FindByEmail(ctx context.Context, email string) (*entity.Operator, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, ErrOperatorNotFound
}

func (m *mockOperatorRepository) FindByID(ctx context.Context, id uint) (*entity.Operator, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrOperatorNotFound
}

// mockJWTGenerator is a mock implementation of the JWTGenerator interface.
type mockJWTGenerator struct {
	// GenerateTokenFunc is called when the GenerateToken method is invoked.
	GenerateTokenFunc func(operatorID uint, email string) (string, error)
}

func (m *mockJWTGenerator) GenerateToken(operatorID uint, email string) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(operatorID, email)
	}
	return "mock-jwt-token", nil
}

func TestAuthUsecase_Signup(t *testing.T) {
	t.Run("successful signup", func(t *testing.T) {
		mockRepo := &mockOperatorRepository{
			CreateFunc: func(ctx context.Context, operator *entity.Operator) error {
				// Verify that the password is hashed
				if len(operator.Password) == 0 || operator.Password == "password123" {
					t.Errorf("password is not hashed")
				}
				// Verify that it's a valid bcrypt hash
				if err := bcrypt.CompareHashAndPassword([]byte(operator.Password), []byte("password123")); err != nil {
					t.Errorf("invalid bcrypt hash: %v", err)
				}
				return nil
			},
		}
		mockJWT := &mockJWTGenerator{}

		uc := NewAuthUsecase(mockRepo, mockJWT)
		err := uc.Signup(context.Background(), "test@example.com", "password123")

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("password too short", func(t *testing.T) {
		mockRepo := &mockOperatorRepository{
			CreateFunc: func(ctx context.Context, operator *entity.Operator) error {
				t.Error("Create should not be called for a weak password")
				return nil
			},
		}
		mockJWT := &mockJWTGenerator{}

		uc := NewAuthUsecase(mockRepo, mockJWT)
		err := uc.Signup(context.Background(), "test@example.com", "short")

		if err == nil {
			t.Fatal("expected error but got nil")
		}
	})

	t.Run("repository create failure", func(t *testing.T) {
		expectedErr := errors.New("database error")
		mockRepo := &mockOperatorRepository{
			CreateFunc: func(ctx context.Context, operator *entity.Operator) error {
				return expectedErr
			},
		}
		mockJWT := &mockJWTGenerator{}

		uc := NewAuthUsecase(mockRepo, mockJWT)
		err := uc.Signup(context.Background(), "test@example.com", "password123")

		if !errors.Is(err, expectedErr) {
			t.Errorf("expected error '%v', got: %v", expectedErr, err)
		}
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	// Hashed password for testing
	password := "password123"
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	testOperator := &entity.Operator{
		ID:       1,
		Email:    "test@example.com",
		Password: string(hashedPassword),
	}

	t.Run("successful login", func(t *testing.T) {
		mockRepo := &mockOperatorRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.Operator, error) {
				if email == testOperator.Email {
					return testOperator, nil
				}
				return nil, ErrOperatorNotFound
			},
		}
		mockJWT := &mockJWTGenerator{
			GenerateTokenFunc: func(operatorID uint, email string) (string, error) {
				if operatorID != testOperator.ID || email != testOperator.Email {
					t.Errorf("unexpected operatorID or email: got operatorID=%d, email=%s", operatorID, email)
				}
				return "mock-jwt-token", nil
			},
		}

		uc := NewAuthUsecase(mockRepo, mockJWT)
		token, err := uc.Login(context.Background(), "test@example.com", "password123")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if token != "mock-jwt-token" {
			t.Errorf("expected token 'mock-jwt-token', got: '%s'", token)
		}
	})

	t.Run("operator not found", func(t *testing.T) {
		mockRepo := &mockOperatorRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.Operator, error) {
				return nil, ErrOperatorNotFound
			},
		}
		mockJWT := &mockJWTGenerator{}

		uc := NewAuthUsecase(mockRepo, mockJWT)
		_, err := uc.Login(context.Background(), "wrong@example.com", "password123")

		if err == nil {
			t.Fatal("expected error but got nil")
		}

		expectedErrMsg := "invalid email or password"
		if err.Error() != expectedErrMsg {
			t.Errorf("expected error message '%s', got: '%s'", expectedErrMsg, err.Error())
		}
	})

	t.Run("incorrect password", func(t *testing.T) {
		mockRepo := &mockOperatorRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.Operator, error) {
				return testOperator, nil
			},
		}
		mockJWT := &mockJWTGenerator{}

		uc := NewAuthUsecase(mockRepo, mockJWT)
		_, err := uc.Login(context.Background(), "test@example.com", "wrong-password")

		if err == nil {
			t.Fatal("expected error but got nil")
		}

		expectedErrMsg := "invalid email or password"
		if err.Error() != expectedErrMsg {
			t.Errorf("expected error message '%s', got: '%s'", expectedErrMsg, err.Error())
		}
	})

	t.Run("JWT generation failure", func(t *testing.T) {
		mockRepo := &mockOperatorRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.Operator, error) {
				return testOperator, nil
			},
		}
		mockJWT := &mockJWTGenerator{
			GenerateTokenFunc: func(operatorID uint, email string) (string, error) {
				return "", errors.New("failed to sign token")
			},
		}

		uc := NewAuthUsecase(mockRepo, mockJWT)
		_, err := uc.Login(context.Background(), "test@example.com", "password123")

		if err == nil {
			t.Fatal("expected error but got nil")
		}

		expectedErrMsg := "failed to generate token: failed to sign token"
		if err.Error() != expectedErrMsg {
			t.Errorf("expected error message '%s', got: '%s'", expectedErrMsg, err.Error())
		}
	})
}
