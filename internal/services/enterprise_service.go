// enterprise_service.go
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

	"github.com/localnerve/enterprise-values/internal/models"
	"github.com/localnerve/enterprise-values/internal/repositories"
	"github.com/localnerve/enterprise-values/internal/values"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CreateEnterpriseInput is a submitted enterprise with its values still in
// raw delimited form
type CreateEnterpriseInput struct {
	Name        string
	Description string
	Symbol      string
	Values      string
}

// EnterpriseService creates, lists and reports on enterprises
type EnterpriseService struct {
	db        *gorm.DB
	validator *EnterpriseValidator
	separator string
	perPage   int
}

// NewEnterpriseService wires the service to db. separator splits raw value
// lists and perPage sizes listing pages.
func NewEnterpriseService(db *gorm.DB, validator *EnterpriseValidator, separator string, perPage int) *EnterpriseService {
	if separator == "" {
		separator = ","
	}
	if perPage < 1 {
		perPage = 10
	}
	return &EnterpriseService{
		db:        db,
		validator: validator,
		separator: separator,
		perPage:   perPage,
	}
}

// Separator is the delimiter applied to raw value lists
func (s *EnterpriseService) Separator() string {
	return s.separator
}

// Create validates input and persists the enterprise, its new values and the
// join rows in one transaction. A failed validation returns a
// *ValidationError and writes nothing.
func (s *EnterpriseService) Create(ctx context.Context, in CreateEnterpriseInput, owner *models.User) (*models.Enterprise, error) {
	tags := nonEmpty(values.Parse(in.Values, s.separator))

	candidate := EnterpriseCandidate{
		Name:        in.Name,
		Description: in.Description,
		Symbol:      in.Symbol,
		Values:      tags,
	}

	enterprise := &models.Enterprise{
		Name:        in.Name,
		Description: in.Description,
		Symbol:      in.Symbol,
		UserID:      owner.UserID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := repositories.NewEnterpriseRepository(tx)

		if err := s.validator.Validate(ctx, repo, candidate); err != nil {
			return err
		}

		resolver := repositories.NewValueResolver(tx)
		for _, tag := range tags {
			v, err := resolver.Resolve(ctx, tag)
			if err != nil {
				return err
			}
			enterprise.Values = append(enterprise.Values, v)
		}

		return repo.Create(ctx, enterprise, resolver.Pending())
	})

	log := logrus.WithFields(logrus.Fields{
		"username": owner.Username,
		"symbol":   in.Symbol,
	})

	if err != nil {
		if verr, ok := AsValidationError(err); ok {
			log.WithField("failures", verr.Kinds()).Debug("Enterprise rejected")
			return nil, verr
		}
		err = persistenceError("create enterprise", repositories.Translate(err))
		log.WithError(err).Warn("Enterprise creation failed")
		return nil, err
	}

	enterprise.Owner = owner
	log.WithFields(logrus.Fields{
		"enterprise_id": enterprise.EnterpriseID.String(),
		"values":        len(enterprise.Values),
	}).Info("Enterprise created")

	return enterprise, nil
}

// Get loads one enterprise with its owner and values
func (s *EnterpriseService) Get(ctx context.Context, id models.GUID) (*models.Enterprise, error) {
	enterprise, err := repositories.NewEnterpriseRepository(s.db).FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrEnterpriseNotFound
	}
	if err != nil {
		return nil, persistenceError("get enterprise", err)
	}
	return enterprise, nil
}

// List returns page number page of enterprises, newest first. A non-zero
// ownerID restricts the page to that user's enterprises.
func (s *EnterpriseService) List(ctx context.Context, page int, ownerID uint64) (repositories.Page, error) {
	result, err := repositories.NewEnterpriseRepository(s.db).List(ctx, repositories.ListOptions{
		OwnerID: ownerID,
		Page:    page,
		PerPage: s.perPage,
	})
	if err != nil {
		return repositories.Page{}, persistenceError("list enterprises", err)
	}
	return result, nil
}

// ValueFrequency counts value usage across every enterprise in creation order
func (s *EnterpriseService) ValueFrequency(ctx context.Context) (*values.Frequency, error) {
	enterprises, err := repositories.NewEnterpriseRepository(s.db).All(ctx)
	if err != nil {
		return nil, persistenceError("aggregate values", err)
	}
	return values.Aggregate(enterprises), nil
}

func nonEmpty(tags []string) []string {
	out := tags[:0]
	for _, t := range tags {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
