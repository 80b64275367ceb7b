// enterprise.go
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

	"gorm.io/gorm"
)

// Value is a normalized tag shared by many enterprises
type Value struct {
	ValueID   uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:64;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

// Enterprise is a registered company with its owner and value tags
type Enterprise struct {
	EnterpriseID GUID      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:64;uniqueIndex;not null" json:"name"`
	Description  string    `gorm:"size:140" json:"description"`
	Symbol       string    `gorm:"size:10;uniqueIndex;not null" json:"symbol"`
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`
	UserID       uint64    `gorm:"not null;index" json:"ownerId"`
	Owner        *User     `gorm:"foreignKey:UserID;references:UserID" json:"owner,omitempty"`
	Values       []*Value  `gorm:"many2many:enterprise_value_tags;joinForeignKey:enterprise_id;joinReferences:value_id" json:"values"`
}

// TableName overrides the table name for Value
func (Value) TableName() string {
	return "value_tags"
}

// TableName overrides the table name for Enterprise
func (Enterprise) TableName() string {
	return "enterprises"
}

// BeforeCreate assigns a random identifier when the caller has not set one
func (e *Enterprise) BeforeCreate(tx *gorm.DB) error {
	if e.EnterpriseID.IsZero() {
		e.EnterpriseID = NewGUID()
	}
	return nil
}

// ValueNames returns the names of the attached values in attachment order
func (e *Enterprise) ValueNames() []string {
	names := make([]string, 0, len(e.Values))
	for _, v := range e.Values {
		names = append(names, v.Name)
	}
	return names
}
