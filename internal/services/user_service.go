// user_service.go
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

package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/localnerve/enterprise-values/internal/models"
	"github.com/localnerve/enterprise-values/internal/repositories"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Account field limits, in characters
const (
	MaxUsername = 64
	MaxEmail    = 120
	MaxAboutMe  = 140
)

// RegisterInput is a new account request
type RegisterInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

// ProfileInput carries the editable profile fields
type ProfileInput struct {
	Username string `json:"username"`
	AboutMe  string `json:"aboutMe"`
}

// UserService manages accounts and profiles
type UserService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewUserService wires the service to db
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Register validates in and stores a new user with a hashed password
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	user := &models.User{
		Username: strings.TrimSpace(in.Username),
		Email:    strings.TrimSpace(in.Email),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := repositories.NewUserRepository(tx)

		verr := &ValidationError{}
		checkText(verr, "username", user.Username, MaxUsername)
		checkText(verr, "email", user.Email, MaxEmail)
		if in.Password == "" {
			verr.add("password", Required, msgRequired)
		}
		if in.Password2 == "" {
			verr.add("password2", Required, msgRequired)
		} else if in.Password != in.Password2 {
			verr.add("password2", PasswordMismatch, msgPasswordMismatch)
		}
		if !verr.failed("email") && !validEmail(user.Email) {
			verr.add("email", EmailInvalid, msgEmailInvalid)
		}

		if !verr.failed("username") {
			taken, err := repo.UsernameExists(ctx, user.Username)
			if err != nil {
				return err
			}
			if taken {
				verr.add("username", UsernameTaken, msgUsernameTaken)
			}
		}
		if !verr.failed("email") {
			taken, err := repo.EmailExists(ctx, user.Email)
			if err != nil {
				return err
			}
			if taken {
				verr.add("email", EmailTaken, msgEmailTaken)
			}
		}
		if err := verr.orNil(); err != nil {
			return err
		}

		if err := user.SetPassword(in.Password); err != nil {
			return err
		}
		user.LastSeen = s.now()
		return repo.Create(ctx, user)
	})
	if err != nil {
		if verr, ok := AsValidationError(err); ok {
			return nil, verr
		}
		return nil, persistenceError("register user", repositories.Translate(err))
	}

	logrus.WithField("username", user.Username).Info("User registered")
	return user, nil
}

// Authenticate returns the user matching username and password
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := repositories.NewUserRepository(s.db).FindByUsername(ctx, username)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrAuthenticationFailed
	}
	if err != nil {
		return nil, persistenceError("authenticate", err)
	}
	if !user.CheckPassword(password) {
		logrus.WithField("username", username).Debug("Password mismatch")
		return nil, ErrAuthenticationFailed
	}
	return user, nil
}

// FindByID loads the user with id
func (s *UserService) FindByID(ctx context.Context, id uint64) (*models.User, error) {
	return s.find(repositories.NewUserRepository(s.db).FindByID(ctx, id))
}

// FindByUsername loads the user named username
func (s *UserService) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.find(repositories.NewUserRepository(s.db).FindByUsername(ctx, username))
}

func (s *UserService) find(user *models.User, err error) (*models.User, error) {
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, persistenceError("find user", err)
	}
	return user, nil
}

// UpdateProfile changes the username and bio of user. The new username must
// be unique unless it is unchanged.
func (s *UserService) UpdateProfile(ctx context.Context, user *models.User, in ProfileInput) error {
	username := strings.TrimSpace(in.Username)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := repositories.NewUserRepository(tx)

		verr := &ValidationError{}
		checkText(verr, "username", username, MaxUsername)
		if len([]rune(in.AboutMe)) > MaxAboutMe {
			verr.add("aboutMe", TooLong, tooLongMessage(MaxAboutMe))
		}
		if !verr.failed("username") && username != user.Username {
			taken, err := repo.UsernameExists(ctx, username)
			if err != nil {
				return err
			}
			if taken {
				verr.add("username", UsernameTaken, msgUsernameTaken)
			}
		}
		if err := verr.orNil(); err != nil {
			return err
		}

		return repo.UpdateProfile(ctx, user, username, in.AboutMe)
	})
	if err != nil {
		if verr, ok := AsValidationError(err); ok {
			return verr
		}
		return persistenceError("update profile", repositories.Translate(err))
	}
	return nil
}

// Touch records that user was just active
func (s *UserService) Touch(ctx context.Context, user *models.User) error {
	err := repositories.NewUserRepository(s.db).TouchLastSeen(ctx, user, s.now())
	return persistenceError("touch user", err)
}

// validEmail accepts a bare address, without display name
func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
