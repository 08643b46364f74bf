package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfbtcc/Zenithdefi/internal/models"
	"github.com/wolfbtcc/Zenithdefi/internal/repository"
)

func newAccountFixture() (*repository.MemoryUserRepository, AccountService) {
	users := repository.NewMemoryUserRepository()
	return users, NewAccountService(users)
}

func TestRegisterCreatesProfile(t *testing.T) {
	_, svc := newAccountFixture()

	user, created, err := svc.RegisterOrLogin("Ana Silva", "ana@example.com", "hunter2", "")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "ana-silva", user.AffiliateCode)
	assert.NotEmpty(t, user.RegistrationDate)
	assert.Empty(t, user.ReferredBy)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "hunter2", user.PasswordHash)
}

func TestLoginIsAnUpsert(t *testing.T) {
	_, svc := newAccountFixture()

	first, created, err := svc.RegisterOrLogin("Ana Silva", "ana@example.com", "hunter2", "")
	require.NoError(t, err)
	require.True(t, created)

	// Any password succeeds on a later login; the profile comes back
	// unchanged.
	second, created, err := svc.RegisterOrLogin("Ana Silva", "ana@example.com", "completely-different", "")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.Email, second.Email)
	assert.Equal(t, first.AffiliateCode, second.AffiliateCode)
	assert.Equal(t, first.RegistrationDate, second.RegistrationDate)
}

func TestLoginBackfillsMissingAffiliateCode(t *testing.T) {
	users, svc := newAccountFixture()

	require.NoError(t, users.SaveUser(&models.User{
		Name:  "Ana Silva",
		Email: "ana@example.com",
	}))

	user, created, err := svc.RegisterOrLogin("Ana Silva", "ana@example.com", "x", "")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "ana-silva", user.AffiliateCode)

	stored, err := users.GetUserByEmail("ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "ana-silva", stored.AffiliateCode)
}

func TestAffiliateCodeDisambiguation(t *testing.T) {
	_, svc := newAccountFixture()

	first, _, err := svc.RegisterOrLogin("Ana Silva", "ana1@example.com", "x", "")
	require.NoError(t, err)
	second, _, err := svc.RegisterOrLogin("Ana Silva", "ana2@example.com", "x", "")
	require.NoError(t, err)
	third, _, err := svc.RegisterOrLogin("Ana Silva", "ana3@example.com", "x", "")
	require.NoError(t, err)

	assert.Equal(t, "ana-silva", first.AffiliateCode)
	assert.Equal(t, "ana-silva-2", second.AffiliateCode)
	assert.Equal(t, "ana-silva-3", third.AffiliateCode)
}

func TestReferralCodeResolution(t *testing.T) {
	_, svc := newAccountFixture()

	referrer, _, err := svc.RegisterOrLogin("Ana Silva", "ana@example.com", "x", "")
	require.NoError(t, err)

	referred, _, err := svc.RegisterOrLogin("Bruno Costa", "bruno@example.com", "x", referrer.AffiliateCode)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", referred.ReferredBy)

	referrals, err := svc.GetReferrals("ana@example.com")
	require.NoError(t, err)
	require.Len(t, referrals, 1)
	assert.Equal(t, "bruno@example.com", referrals[0].Email)
}

func TestUnknownReferralCodeIsIgnored(t *testing.T) {
	_, svc := newAccountFixture()

	user, created, err := svc.RegisterOrLogin("Bruno Costa", "bruno@example.com", "x", "no-such-code")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Empty(t, user.ReferredBy)
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Ana Silva", "ana-silva"},
		{"João Müller", "joao-muller"},
		{"José d'Ávila", "jose-davila"},
		{"MARIA  EDUARDA", "maria--eduarda"},
		{"li wei 3rd", "li-wei-3rd"},
		{"!!!", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.name), "slug of %q", tc.name)
	}
}
