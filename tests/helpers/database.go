// database.go
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

package helpers

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/localnerve/enterprise-values/internal/database"
	"github.com/localnerve/enterprise-values/internal/models"
	"gorm.io/gorm"
)

// NewTestDB creates a migrated in-memory SQLite database for testing.
// The pool is pinned to one connection because every :memory: connection
// opens its own empty database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(sqlite.Open(":memory:"), "warn")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying SQL DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		_ = database.Close(db)
	})

	return db
}

// CreateTestUser inserts a user with the given username and password
func CreateTestUser(t *testing.T, db *gorm.DB, username, password string) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		LastSeen: time.Now().UTC(),
	}
	if err := user.SetPassword(password); err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", username, err)
	}
	return user
}

// CreateTestEnterprise inserts an enterprise with values directly via GORM.
// Values are looked up or created by name.
func CreateTestEnterprise(t *testing.T, db *gorm.DB, owner *models.User, name, symbol string, createdAt time.Time, valueNames ...string) *models.Enterprise {
	t.Helper()

	enterprise := &models.Enterprise{
		Name:        name,
		Description: name + " description",
		Symbol:      symbol,
		UserID:      owner.UserID,
		CreatedAt:   createdAt,
	}

	for _, n := range valueNames {
		var v models.Value
		if err := db.Where(models.Value{Name: n}).FirstOrCreate(&v).Error; err != nil {
			t.Fatalf("Failed to find or create value %s: %v", n, err)
		}
		enterprise.Values = append(enterprise.Values, &v)
	}

	if err := db.Omit("Values.*").Create(enterprise).Error; err != nil {
		t.Fatalf("Failed to create enterprise %s: %v", name, err)
	}
	return enterprise
}

// CountRows returns the number of rows in table
func CountRows(t *testing.T, db *gorm.DB, table string) int64 {
	t.Helper()

	var count int64
	if err := db.Table(table).Count(&count).Error; err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return count
}
