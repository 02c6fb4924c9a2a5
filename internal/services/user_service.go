// internal/services/user_service.go
package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// DeleteAccount removes the user together with their listings and every
// offer they participate in, as one transaction. Offers other users made on
// the deleted listings are covered too, since this user is the recipient of
// each of them.
func (s *UserService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}

	if err := s.users.DeleteCascade(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	logrus.WithField("user_id", userID).Info("Account deleted with cascades")
	return nil
}
