package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/adilnv/internlink/pkg/errx"
)

// PasswordService hashes and verifies user passwords
type PasswordService interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) bool
}

// BcryptPasswordService implements PasswordService with bcrypt
type BcryptPasswordService struct {
	cost int
}

// NewBcryptPasswordService creates a password service with the default bcrypt cost
func NewBcryptPasswordService() *BcryptPasswordService {
	return &BcryptPasswordService{cost: bcrypt.DefaultCost}
}

func (s *BcryptPasswordService) Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), s.cost)
	if err != nil {
		return "", errx.Wrap(err, "failed to hash password", errx.TypeInternal)
	}
	return string(hash), nil
}

func (s *BcryptPasswordService) Compare(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
