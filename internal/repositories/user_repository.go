// user_repository.go
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

package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/localnerve/enterprise-values/internal/models"
	"gorm.io/gorm"
)

// UserRepository is the gorm backed store of user accounts
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository binds the repository to db or to a transaction
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts user, filling its identifier and timestamps
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Omit("Enterprises").Create(user).Error; err != nil {
		return fmt.Errorf("create user %q: %w", user.Username, translateError(err))
	}
	return nil
}

// FindByID loads a user by primary key
func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*models.User, error) {
	return r.findOne(ctx, "user_id = ?", id)
}

// FindByUsername loads a user by exact username
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

// UsernameExists reports whether username is taken
func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username = ?", username)
}

// EmailExists reports whether email is taken
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email = ?", email)
}

// UpdateProfile replaces the editable profile fields of user
func (r *UserRepository) UpdateProfile(ctx context.Context, user *models.User, username, aboutMe string) error {
	err := r.db.WithContext(ctx).
		Model(user).
		Select("username", "about_me").
		Updates(models.User{Username: username, AboutMe: aboutMe}).Error
	if err != nil {
		return fmt.Errorf("update profile of user %d: %w", user.UserID, translateError(err))
	}
	user.Username = username
	user.AboutMe = aboutMe
	return nil
}

// TouchLastSeen stamps the user's last activity time
func (r *UserRepository) TouchLastSeen(ctx context.Context, user *models.User, at time.Time) error {
	err := r.db.WithContext(ctx).
		Model(user).
		UpdateColumn("last_seen", at).Error
	if err != nil {
		return fmt.Errorf("touch last seen of user %d: %w", user.UserID, translateError(err))
	}
	user.LastSeen = at
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where(query, arg).Take(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *UserRepository) exists(ctx context.Context, query string, arg string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where(query, arg).Count(&count).Error; err != nil {
		return false, translateError(err)
	}
	return count > 0, nil
}
