package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hotelpms/internal/domain"
	"hotelpms/internal/pkg/jwt"
	"hotelpms/internal/pkg/logger"
	"hotelpms/internal/testutil"
)

func setup(t *testing.T) (*Service, *jwt.Service, *gorm.DB) {
	db := testutil.NewDB(t)
	jwtService := jwt.New("auth-test-secret", time.Hour)
	svc := NewService(NewUserRepository(db), jwtService, logger.Discard())
	return svc, jwtService, db
}

func TestCreateUserAndLogin(t *testing.T) {
	svc, jwtService, db := setup(t)
	ctx := context.Background()
	h := testutil.Hotel(t, db, "Hotel Sol")

	u, err := svc.CreateUser(ctx, CreateUserRequest{
		Email: " Desk@HotelSol.test ", Password: "s3cret-pass", Name: "Front Desk",
		Role: domain.RoleHotelAdmin, HotelID: &h.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "desk@hotelsol.test", u.Email)
	assert.NotEqual(t, "s3cret-pass", u.PasswordHash)

	res, err := svc.Login(ctx, LoginRequest{Email: "desk@hotelsol.test", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.EqualValues(t, 3600, res.ExpiresIn)

	claims, err := jwtService.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, string(domain.RoleHotelAdmin), claims.Role)
	require.NotNil(t, claims.HotelID)
	assert.Equal(t, h.ID, *claims.HotelID)

	me, err := svc.Me(ctx, u.ID)
	require.NoError(t, err)
	assert.NotNil(t, me.LastLoginAt)
}

func TestCreateUserValidation(t *testing.T) {
	svc, _, db := setup(t)
	ctx := context.Background()
	h := testutil.Hotel(t, db, "Hotel Sol")
	missing := int64(999)

	_, err := svc.CreateUser(ctx, CreateUserRequest{Email: "a@b.test", Password: "long-enough", Role: "owner"})
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = svc.CreateUser(ctx, CreateUserRequest{Email: "a@b.test", Password: "short", Role: domain.RoleSuperadmin})
	assert.ErrorIs(t, err, ErrWeakPassword)

	_, err = svc.CreateUser(ctx, CreateUserRequest{Email: "a@b.test", Password: "long-enough", Role: domain.RoleHotelAdmin})
	assert.ErrorIs(t, err, ErrHotelRequired)

	_, err = svc.CreateUser(ctx, CreateUserRequest{Email: "a@b.test", Password: "long-enough", Role: domain.RoleHotelAdmin, HotelID: &missing})
	assert.ErrorIs(t, err, ErrHotelNotFound)

	admin, err := svc.CreateUser(ctx, CreateUserRequest{Email: "a@b.test", Password: "long-enough", Role: domain.RoleSuperadmin, HotelID: &h.ID})
	require.NoError(t, err)
	assert.Nil(t, admin.HotelID, "superadmins are not bound to a hotel")

	_, err = svc.CreateUser(ctx, CreateUserRequest{Email: "A@B.test", Password: "long-enough", Role: domain.RoleSuperadmin})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginFailures(t *testing.T) {
	svc, _, db := setup(t)
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, CreateUserRequest{Email: "boss@hotel.test", Password: "right-password", Role: domain.RoleSuperadmin})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginRequest{Email: "nobody@hotel.test", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, db.Model(&domain.User{}).Where("id = ?", u.ID).Update("is_active", false).Error)
	_, err = svc.Login(ctx, LoginRequest{Email: "boss@hotel.test", Password: "right-password"})
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestLoginLockout(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	_, err := svc.CreateUser(ctx, CreateUserRequest{Email: "boss@hotel.test", Password: "right-password", Role: domain.RoleSuperadmin})
	require.NoError(t, err)

	for i := 1; i < maxFailedLoginAttempts; i++ {
		_, err = svc.Login(ctx, LoginRequest{Email: "boss@hotel.test", Password: "wrong"})
		assert.ErrorIs(t, err, ErrInvalidCredentials, "attempt %d", i)
	}
	_, err = svc.Login(ctx, LoginRequest{Email: "boss@hotel.test", Password: "wrong"})
	assert.ErrorIs(t, err, ErrAccountLocked)

	_, err = svc.Login(ctx, LoginRequest{Email: "boss@hotel.test", Password: "right-password"})
	assert.ErrorIs(t, err, ErrAccountLocked, "even the right password is refused while locked")

	now = now.Add(lockoutDuration + time.Second)
	_, err = svc.Login(ctx, LoginRequest{Email: "boss@hotel.test", Password: "right-password"})
	require.NoError(t, err)

	// counter was reset by the successful login
	_, err = svc.Login(ctx, LoginRequest{Email: "boss@hotel.test", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
