package staff

import (
	"context"
	"errors"

	"hotelops/internal/domain"
	"hotelops/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type StaffRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.StaffUser, error)
}

type jwtService interface {
	GenerateToken(staffID, propertyID int64, role string) (string, error)
}

type Service struct {
	staff StaffRepository
	jwt   jwtService
}

func NewService(staff StaffRepository, jwt jwtService) *Service {
	return &Service{staff: staff, jwt: jwt}
}

type LoginResult struct {
	User        *domain.StaffUser
	AccessToken string
}

func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.staff.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.jwt.GenerateToken(user.ID, user.PropertyID, string(user.Role))
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &LoginResult{User: user, AccessToken: accessToken}, nil
}
