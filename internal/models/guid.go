// guid.go
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
	"database/sql/driver"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// GUID is a wrapper around uuid.UUID that maps to a native uuid column on
// postgres and to a 32 character hex string everywhere else.
type GUID struct {
	uuid.UUID
}

// NewGUID returns a random (version 4) GUID
func NewGUID() GUID {
	return GUID{UUID: uuid.New()}
}

// ParseGUID accepts the canonical 36 character form or the 32 character hex form
func ParseGUID(s string) (GUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return GUID{}, fmt.Errorf("invalid guid %q: %w", s, err)
	}
	return GUID{UUID: id}, nil
}

// IsZero reports whether the GUID has not been assigned
func (g GUID) IsZero() bool {
	return g.UUID == uuid.Nil
}

// Hex returns the 32 character lower-case hex form
func (g GUID) Hex() string {
	return hex.EncodeToString(g.UUID[:])
}

// Value stores the hex form. Postgres accepts it for uuid columns as well.
func (g GUID) Value() (driver.Value, error) {
	return g.Hex(), nil
}

// Scan accepts hex text, canonical text or 16 raw bytes
func (g *GUID) Scan(value interface{}) error {
	if value == nil {
		g.UUID = uuid.Nil
		return nil
	}
	return g.UUID.Scan(value)
}

// GormDBDataType ensures the correct column type is used for each database driver.
func (GUID) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "postgres":
		return "UUID"
	case "sqlserver", "mssql":
		return "NCHAR(32)"
	}
	return "CHAR(32)"
}
