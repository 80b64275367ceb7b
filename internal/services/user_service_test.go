// user_service_test.go
//
// Enterprise registry with free-text values and a value-frequency chart
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of enterprise-values.
// enterprise-values is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// enterprise-values is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with enterprise-values.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/localnerve/enterprise-values/internal/services"
	"github.com/localnerve/enterprise-values/tests/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	db := helpers.NewTestDB(t)
	svc := services.NewUserService(db)
	ctx := context.Background()

	user, err := svc.Register(ctx, services.RegisterInput{
		Username:  "dora",
		Email:     "dora@example.com",
		Password:  "hunter2",
		Password2: "hunter2",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.UserID)
	assert.NotEqual(t, "hunter2", user.PasswordHash)
	assert.False(t, user.LastSeen.IsZero())

	authed, err := svc.Authenticate(ctx, "dora", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, user.UserID, authed.UserID)

	_, err = svc.Authenticate(ctx, "dora", "wrong")
	assert.ErrorIs(t, err, services.ErrAuthenticationFailed)

	_, err = svc.Authenticate(ctx, "nobody", "hunter2")
	assert.ErrorIs(t, err, services.ErrAuthenticationFailed)
}

func TestRegisterValidation(t *testing.T) {
	db := helpers.NewTestDB(t)
	helpers.CreateTestUser(t, db, "taken", "secret")
	svc := services.NewUserService(db)

	tests := []struct {
		name  string
		input services.RegisterInput
		field string
		kind  services.FailureKind
	}{
		{
			name:  "missing username",
			input: services.RegisterInput{Email: "a@example.com", Password: "p", Password2: "p"},
			field: "username",
			kind:  services.Required,
		},
		{
			name:  "bad email",
			input: services.RegisterInput{Username: "a", Email: "not-an-email", Password: "p", Password2: "p"},
			field: "email",
			kind:  services.EmailInvalid,
		},
		{
			name:  "password mismatch",
			input: services.RegisterInput{Username: "a", Email: "a@example.com", Password: "p", Password2: "q"},
			field: "password2",
			kind:  services.PasswordMismatch,
		},
		{
			name:  "username taken",
			input: services.RegisterInput{Username: "taken", Email: "a@example.com", Password: "p", Password2: "p"},
			field: "username",
			kind:  services.UsernameTaken,
		},
		{
			name:  "email taken",
			input: services.RegisterInput{Username: "a", Email: "taken@example.com", Password: "p", Password2: "p"},
			field: "email",
			kind:  services.EmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.input)
			verr, ok := services.AsValidationError(err)
			require.True(t, ok, "expected validation error, got %v", err)
			assert.True(t, verr.Has(tt.field, tt.kind), "got %v", verr.Kinds())
		})
	}

	assert.Equal(t, int64(1), helpers.CountRows(t, db, "users"))
}

func TestUpdateProfile(t *testing.T) {
	db := helpers.NewTestDB(t)
	helpers.CreateTestUser(t, db, "taken", "secret")
	user := helpers.CreateTestUser(t, db, "erin", "secret")
	svc := services.NewUserService(db)
	ctx := context.Background()

	// Keeping the current username is not a conflict
	require.NoError(t, svc.UpdateProfile(ctx, user, services.ProfileInput{Username: "erin", AboutMe: "hi"}))

	err := svc.UpdateProfile(ctx, user, services.ProfileInput{Username: "taken"})
	verr, ok := services.AsValidationError(err)
	require.True(t, ok)
	assert.True(t, verr.Has("username", services.UsernameTaken))

	err = svc.UpdateProfile(ctx, user, services.ProfileInput{Username: "erin", AboutMe: strings.Repeat("x", 141)})
	verr, ok = services.AsValidationError(err)
	require.True(t, ok)
	assert.True(t, verr.Has("aboutMe", services.TooLong))

	require.NoError(t, svc.UpdateProfile(ctx, user, services.ProfileInput{Username: "erin2", AboutMe: "bio"}))
	reloaded, err := svc.FindByUsername(ctx, "erin2")
	require.NoError(t, err)
	assert.Equal(t, "bio", reloaded.AboutMe)

	_, err = svc.FindByUsername(ctx, "erin")
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}

func TestTouchUpdatesLastSeen(t *testing.T) {
	db := helpers.NewTestDB(t)
	user := helpers.CreateTestUser(t, db, "fay", "secret")
	before := user.LastSeen
	svc := services.NewUserService(db)

	require.NoError(t, svc.Touch(context.Background(), user))
	assert.False(t, user.LastSeen.Before(before))

	reloaded, err := svc.FindByID(context.Background(), user.UserID)
	require.NoError(t, err)
	assert.WithinDuration(t, user.LastSeen, reloaded.LastSeen, time.Second)
}
