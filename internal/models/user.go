// user.go
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

package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User is a registered account that owns enterprises
type User struct {
	UserID       uint64       `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string       `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email        string       `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash string       `gorm:"size:128;not null" json:"-"`
	AboutMe      string       `gorm:"size:140" json:"aboutMe"`
	LastSeen     time.Time    `json:"lastSeen"`
	CreatedAt    time.Time    `json:"createdAt"`
	Enterprises  []Enterprise `gorm:"foreignKey:UserID;references:UserID" json:"-"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// SetPassword replaces the stored hash with a bcrypt hash of password
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
