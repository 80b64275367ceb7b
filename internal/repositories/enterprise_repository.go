// enterprise_repository.go
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

	"github.com/localnerve/enterprise-values/internal/models"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// ListOptions selects one page of enterprises, newest first
type ListOptions struct {
	OwnerID uint64 // zero lists every owner
	Page    int    // 1-based
	PerPage int
}

// Page is a materialized slice of enterprises plus paging metadata
type Page struct {
	Items   []models.Enterprise `json:"items"`
	Page    int                 `json:"page"`
	PerPage int                 `json:"perPage"`
	Total   int64               `json:"total"`
}

// HasNext reports whether a later page has items
func (p Page) HasNext() bool {
	return int64(p.Page*p.PerPage) < p.Total
}

// HasPrev reports whether an earlier page exists
func (p Page) HasPrev() bool {
	return p.Page > 1
}

// EnterpriseRepository is the gorm backed store of enterprises
type EnterpriseRepository struct {
	db *gorm.DB
}

// NewEnterpriseRepository binds the repository to db or to a transaction
func NewEnterpriseRepository(db *gorm.DB) *EnterpriseRepository {
	return &EnterpriseRepository{db: db}
}

// SymbolExists reports whether any enterprise already uses symbol
func (r *EnterpriseRepository) SymbolExists(ctx context.Context, symbol string) (bool, error) {
	return r.exists(ctx, "symbol = ?", symbol)
}

// NameExists reports whether any enterprise already uses name
func (r *EnterpriseRepository) NameExists(ctx context.Context, name string) (bool, error) {
	return r.exists(ctx, "name = ?", name)
}

func (r *EnterpriseRepository) exists(ctx context.Context, query string, arg string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Enterprise{}).
		Where(query, arg).
		Count(&count).Error; err != nil {
		return false, translateError(err)
	}
	return count > 0, nil
}

// Create inserts the pending values, the enterprise and its join rows.
// Run it inside a transaction so the three writes commit together.
func (r *EnterpriseRepository) Create(ctx context.Context, enterprise *models.Enterprise, pending []*models.Value) error {
	db := r.db.WithContext(ctx)

	for _, v := range pending {
		if err := db.Create(v).Error; err != nil {
			return fmt.Errorf("create value %q: %w", v.Name, translateError(err))
		}
	}

	// Values already have rows at this point; only the join rows are written.
	if err := db.Omit("Owner", "Values.*").Create(enterprise).Error; err != nil {
		return fmt.Errorf("create enterprise %q: %w", enterprise.Name, translateError(err))
	}

	return nil
}

// FindByID loads one enterprise with its owner and values
func (r *EnterpriseRepository) FindByID(ctx context.Context, id models.GUID) (*models.Enterprise, error) {
	var enterprise models.Enterprise
	err := r.withAssociations(r.db.WithContext(ctx)).
		Where("enterprise_id = ?", id).
		Take(&enterprise).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &enterprise, nil
}

// List returns one page of enterprises ordered by creation time, newest first.
// Pages past the end come back empty rather than as an error.
func (r *EnterpriseRepository) List(ctx context.Context, opts ListOptions) (Page, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.PerPage < 1 {
		opts.PerPage = 1
	}

	page := Page{Page: opts.Page, PerPage: opts.PerPage, Items: []models.Enterprise{}}

	scope := func(db *gorm.DB) *gorm.DB {
		db = db.Model(&models.Enterprise{})
		if opts.OwnerID != 0 {
			db = db.Where("user_id = ?", opts.OwnerID)
		}
		return db
	}

	db := r.db.WithContext(ctx)
	if err := db.Scopes(scope).Count(&page.Total).Error; err != nil {
		return Page{}, translateError(err)
	}
	if page.Total == 0 {
		return page, nil
	}

	err := r.withAssociations(db.Scopes(scope)).
		Clauses(hints.Comment("select", "enterprises.list")).
		Order("created_at DESC").
		Order("enterprise_id").
		Offset((opts.Page - 1) * opts.PerPage).
		Limit(opts.PerPage).
		Find(&page.Items).Error
	if err != nil {
		return Page{}, translateError(err)
	}

	return page, nil
}

// All returns every enterprise with its values, oldest first, for reporting
func (r *EnterpriseRepository) All(ctx context.Context) ([]models.Enterprise, error) {
	var enterprises []models.Enterprise
	err := r.db.WithContext(ctx).
		Clauses(hints.Comment("select", "enterprises.all")).
		Preload("Values", orderValues).
		Order("created_at").
		Order("enterprise_id").
		Find(&enterprises).Error
	if err != nil {
		return nil, translateError(err)
	}
	return enterprises, nil
}

func (r *EnterpriseRepository) withAssociations(db *gorm.DB) *gorm.DB {
	return db.Preload("Owner").Preload("Values", orderValues)
}

// orderValues keeps preloaded values in creation order; the join table has no
// position column of its own.
func orderValues(db *gorm.DB) *gorm.DB {
	return db.Order("value_tags.value_id")
}
