// value_resolver.go
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
	"errors"

	"github.com/localnerve/enterprise-values/internal/models"
	"gorm.io/gorm"
)

// ValueResolver finds or builds Value rows by name for one creation operation.
//
// A resolver is bound to the transaction of that operation. Values it builds
// are not persisted; Pending returns them so the caller can insert them in the
// same transaction as the enterprise that references them.
type ValueResolver struct {
	db      *gorm.DB
	byName  map[string]*models.Value
	pending []*models.Value
}

// NewValueResolver binds a resolver to db, normally a transaction handle
func NewValueResolver(db *gorm.DB) *ValueResolver {
	return &ValueResolver{
		db:     db,
		byName: make(map[string]*models.Value),
	}
}

// Resolve returns the Value named name, creating an unpersisted one when no
// row matches. Repeated names return the same pointer.
func (r *ValueResolver) Resolve(ctx context.Context, name string) (*models.Value, error) {
	if v, ok := r.byName[name]; ok {
		return v, nil
	}

	var v models.Value
	err := r.db.WithContext(ctx).Where("name = ?", name).Take(&v).Error
	switch {
	case err == nil:
		r.byName[name] = &v
		return &v, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		created := &models.Value{Name: name}
		r.byName[name] = created
		r.pending = append(r.pending, created)
		return created, nil
	}

	return nil, translateError(err)
}

// Pending returns the values built by Resolve that have no row yet
func (r *ValueResolver) Pending() []*models.Value {
	return r.pending
}
