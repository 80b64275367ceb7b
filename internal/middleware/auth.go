// auth.go
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

package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/enterprise-values/internal/auth"
	"github.com/localnerve/enterprise-values/internal/models"
	"github.com/localnerve/enterprise-values/internal/services"
	"github.com/localnerve/enterprise-values/internal/types"
	"github.com/sirupsen/logrus"
)

// localUser is the fiber Locals key holding the authenticated *models.User
const localUser = "user"

// Session resolves session cookies into users
type Session struct {
	Tokens     *auth.TokenManager
	Users      *services.UserService
	CookieName string
}

// Lookup returns the user named by the request's session cookie.
// A missing cookie yields (nil, nil).
func (s *Session) Lookup(c *fiber.Ctx) (*models.User, error) {
	token := c.Cookies(s.CookieName)
	if token == "" {
		return nil, nil
	}

	claims, err := s.Tokens.Parse(token)
	if err != nil {
		return nil, &types.CustomError{
			Code:    fiber.StatusUnauthorized,
			Message: "Invalid session",
			Type:    "session.invalid",
		}
	}

	id, err := claims.UserID()
	if err != nil {
		return nil, &types.CustomError{
			Code:    fiber.StatusUnauthorized,
			Message: "Invalid session",
			Type:    "session.invalid",
		}
	}

	user, err := s.Users.FindByID(c.UserContext(), id)
	if errors.Is(err, services.ErrUserNotFound) {
		return nil, &types.CustomError{
			Code:    fiber.StatusUnauthorized,
			Message: "Session user no longer exists",
			Type:    "session.invalid",
		}
	}
	return user, err
}

// AuthUser requires a valid session, stores the user in context and records
// the user's activity
func (s *Session) AuthUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := s.Lookup(c)
		if err != nil {
			return err
		}
		if user == nil {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Session cookie \"" + s.CookieName + "\" not found",
				Type:    "session.missing",
			}
		}

		if err := s.Users.Touch(c.UserContext(), user); err != nil {
			if errors.Is(err, services.ErrPersistenceUnavailable) {
				return err
			}
			logrus.WithError(err).WithField("username", user.Username).Warn("Failed to record last seen")
		}

		c.Locals(localUser, user)
		return c.Next()
	}
}

// CurrentUser returns the user stored by AuthUser, or nil
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(localUser).(*models.User)
	return user
}
