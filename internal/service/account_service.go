package service

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/wolfbtcc/Zenithdefi/internal/models"
	"github.com/wolfbtcc/Zenithdefi/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type AccountService interface {
	// RegisterOrLogin is an upsert keyed by email: the first login registers
	// the user, later logins return the stored profile. No credential is ever
	// verified. The returned bool is true when a new profile was created.
	RegisterOrLogin(name, email, password, referralCode string) (*models.User, bool, error)
	GetUserByEmail(email string) (*models.User, error)
	GetReferrals(email string) ([]*models.User, error)
	GetAllUsers() ([]*models.User, error)
	ListEmails() ([]string, error)
	UpdateUser(user *models.User) error
}

type accountService struct {
	userRepo repository.UserRepository
}

func NewAccountService(userRepo repository.UserRepository) AccountService {
	return &accountService{userRepo: userRepo}
}

func (s *accountService) RegisterOrLogin(name, email, password, referralCode string) (*models.User, bool, error) {
	existing, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, false, err
	}

	if existing != nil {
		// Profiles created before affiliate codes existed get one backfilled
		// on their next login.
		if existing.AffiliateCode == "" {
			code, err := s.uniqueAffiliateCode(existing.Name)
			if err != nil {
				return nil, false, err
			}
			existing.AffiliateCode = code
			if err := s.userRepo.UpdateUser(existing); err != nil {
				return nil, false, err
			}
		}
		return existing, false, nil
	}

	// A referral code that matches no user is dropped silently; registration
	// proceeds without a referrer.
	referrerEmail := ""
	if referralCode != "" {
		referrer, err := s.userRepo.GetUserByAffiliateCode(referralCode)
		if err != nil {
			return nil, false, err
		}
		if referrer != nil {
			referrerEmail = referrer.Email
		}
	}

	code, err := s.uniqueAffiliateCode(name)
	if err != nil {
		return nil, false, err
	}

	// The password is stored hashed but never checked on later logins. This
	// platform's login is an upsert, not authentication.
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, err
	}

	user := &models.User{
		Name:             name,
		Email:            email,
		PasswordHash:     string(hash),
		RegistrationDate: time.Now().Format(time.RFC3339),
		ReferredBy:       referrerEmail,
		AffiliateCode:    code,
	}
	if err := s.userRepo.SaveUser(user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func (s *accountService) GetUserByEmail(email string) (*models.User, error) {
	return s.userRepo.GetUserByEmail(email)
}

func (s *accountService) GetReferrals(email string) ([]*models.User, error) {
	return s.userRepo.GetUsersReferredBy(email)
}

func (s *accountService) GetAllUsers() ([]*models.User, error) {
	return s.userRepo.GetAllUsers()
}

// ListEmails is the registry of every known user email, one entry per
// account.
func (s *accountService) ListEmails() ([]string, error) {
	return s.userRepo.ListEmails()
}

func (s *accountService) UpdateUser(user *models.User) error {
	return s.userRepo.UpdateUser(user)
}

// uniqueAffiliateCode derives a URL-safe slug from the display name and
// appends -2, -3, ... until no stored profile holds the code.
func (s *accountService) uniqueAffiliateCode(name string) (string, error) {
	base := Slugify(name)
	if base == "" {
		base = "user"
	}

	code := base
	for counter := 2; ; counter++ {
		holder, err := s.userRepo.GetUserByAffiliateCode(code)
		if err != nil {
			return "", err
		}
		if holder == nil {
			return code, nil
		}
		code = fmt.Sprintf("%s-%d", base, counter)
	}
}

// Slugify lowercases the name, strips diacritics, turns spaces into hyphens
// and drops everything outside [a-z0-9-].
func Slugify(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, name)
	if err != nil {
		stripped = name
	}

	stripped = strings.ToLower(stripped)
	stripped = strings.ReplaceAll(stripped, " ", "-")

	var b strings.Builder
	for _, r := range stripped {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
