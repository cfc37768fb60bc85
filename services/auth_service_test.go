package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram-app/backend/models"
	"github.com/foodgram-app/backend/services"
	"github.com/foodgram-app/backend/utils"
)

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name      string
		req       models.SignupRequest
		wantField string
	}{
		{
			name: "missing email",
			req: models.SignupRequest{
				Username: "cook", FirstName: "A", LastName: "B", Password: "pass",
			},
			wantField: "email",
		},
		{
			name: "malformed email",
			req: models.SignupRequest{
				Email: "not-an-email", Username: "cook", FirstName: "A", LastName: "B", Password: "pass",
			},
			wantField: "email",
		},
		{
			name: "username with invalid characters",
			req: models.SignupRequest{
				Email: "a@b.com", Username: "cook!", FirstName: "A", LastName: "B", Password: "pass",
			},
			wantField: "username",
		},
		{
			name: "reserved username me",
			req: models.SignupRequest{
				Email: "a@b.com", Username: "me", FirstName: "A", LastName: "B", Password: "pass",
			},
			wantField: "username",
		},
		{
			name: "missing first name",
			req: models.SignupRequest{
				Email: "a@b.com", Username: "cook", LastName: "B", Password: "pass",
			},
			wantField: "first_name",
		},
		{
			name: "missing password",
			req: models.SignupRequest{
				Email: "a@b.com", Username: "cook", FirstName: "A", LastName: "B",
			},
			wantField: "password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			_, err := env.auth.Register(context.Background(), &tt.req)
			require.Error(t, err)

			var verr *utils.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.wantField)
		})
	}
}

func TestRegisterDuplicates(t *testing.T) {
	env := newTestEnv(t)
	env.newUser(t, "cook")

	_, err := env.auth.Register(context.Background(), &models.SignupRequest{
		Email: "cook@example.com", Username: "other",
		FirstName: "A", LastName: "B", Password: "pass",
	})
	var verr *utils.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")

	_, err = env.auth.Register(context.Background(), &models.SignupRequest{
		Email: "other@example.com", Username: "cook",
		FirstName: "A", LastName: "B", Password: "pass",
	})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "username")
}

func TestLoginAndAuthenticate(t *testing.T) {
	env := newTestEnv(t)
	user := env.newUser(t, "cook")

	key, err := env.auth.Login(context.Background(), &models.LoginRequest{
		Email:    "cook@example.com",
		Password: "s3cret-cook",
	})
	require.NoError(t, err)
	assert.Len(t, key, 40)

	resolved, err := env.auth.Authenticate(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)

	// second lookup hits the cache
	resolved, err = env.auth.Authenticate(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.newUser(t, "cook")

	_, err := env.auth.Login(context.Background(), &models.LoginRequest{
		Email:    "cook@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = env.auth.Login(context.Background(), &models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestLogoutRevokesToken(t *testing.T) {
	env := newTestEnv(t)
	env.newUser(t, "cook")

	key, err := env.auth.Login(context.Background(), &models.LoginRequest{
		Email:    "cook@example.com",
		Password: "s3cret-cook",
	})
	require.NoError(t, err)

	require.NoError(t, env.auth.Logout(context.Background(), key))

	_, err = env.auth.Authenticate(context.Background(), key)
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	assert.ErrorIs(t, env.auth.Logout(context.Background(), key), services.ErrInvalidToken)
}

func TestSetPassword(t *testing.T) {
	env := newTestEnv(t)
	user := env.newUser(t, "cook")

	err := env.auth.SetPassword(context.Background(), user, &models.SetPasswordRequest{
		NewPassword:     "new-password",
		CurrentPassword: "wrong",
	})
	assert.ErrorIs(t, err, services.ErrWrongPassword)

	err = env.auth.SetPassword(context.Background(), user, &models.SetPasswordRequest{
		NewPassword:     "new-password",
		CurrentPassword: "s3cret-cook",
	})
	require.NoError(t, err)

	_, err = env.auth.Login(context.Background(), &models.LoginRequest{
		Email:    "cook@example.com",
		Password: "new-password",
	})
	assert.NoError(t, err)
}
