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

package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/enterprise-values/internal/middleware"
	"github.com/localnerve/enterprise-values/internal/models"
	"github.com/localnerve/enterprise-values/internal/services"
	"github.com/localnerve/enterprise-values/internal/utils"
	"github.com/sirupsen/logrus"
)

// Authentication notifications
const (
	InvalidCredentialsMessage = "Usuario y/o contraseña inválidos"
	RegisteredMessage         = "Congratulations, you are now a registered user!"
	LoggedInMessage           = "Sesión iniciada"
	LoggedOutMessage          = "Sesión cerrada"
)

// AuthHandler handles registration and the session cookie
type AuthHandler struct {
	Users   *services.UserService
	Session *middleware.Session
}

// LoginRequest is the body of POST /api/auth/login
type LoginRequest struct {
	Username   string `json:"username" form:"username"`
	Password   string `json:"password" form:"password"`
	RememberMe bool   `json:"rememberMe" form:"rememberMe"`
}

// Register handles POST /api/auth/register
// @Summary Register
// @Description Create an account
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.RegisterInput true "Account"
// @Success 201 {object} utils.MessageResponseStruct{data=UserView}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ValidationErrorResponseStruct
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var body services.RegisterInput
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "auth.validation.input")
	}

	user, err := h.Users.Register(c.UserContext(), body)
	if err != nil {
		return serviceError(c, err, "auth.register")
	}

	return utils.MessageResponse(c, fiber.StatusCreated, RegisteredMessage, newUserView(user, true))
}

// Login handles POST /api/auth/login
// @Summary Log in
// @Description Verify credentials and set the session cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} utils.MessageResponseStruct{data=UserView}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	// An already valid session makes login a no-op
	if current, err := h.Session.Lookup(c); err == nil && current != nil {
		return utils.MessageResponse(c, fiber.StatusOK, LoggedInMessage, newUserView(current, true))
	}

	var body LoginRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "auth.validation.input")
	}
	if body.Username == "" || body.Password == "" {
		return utils.ErrorResponse(c, InvalidCredentialsMessage, fiber.StatusBadRequest, "auth.validation.input")
	}

	user, err := h.Users.Authenticate(c.UserContext(), body.Username, body.Password)
	if errors.Is(err, services.ErrAuthenticationFailed) {
		return utils.ErrorResponse(c, InvalidCredentialsMessage, fiber.StatusUnauthorized, "auth.login")
	}
	if err != nil {
		return serviceError(c, err, "auth.login")
	}

	if err := h.setSessionCookie(c, user, body.RememberMe); err != nil {
		return err
	}

	logrus.WithField("username", user.Username).Info("User logged in")
	return utils.MessageResponse(c, fiber.StatusOK, LoggedInMessage, newUserView(user, true))
}

// Logout handles POST /api/auth/logout
// @Summary Log out
// @Description Clear the session cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.MessageResponseStruct
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     h.Session.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return utils.MessageResponse(c, fiber.StatusOK, LoggedOutMessage, nil)
}

// setSessionCookie issues a token for user. Remembered sessions persist until
// the token expires; others end with the browser session.
func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, user *models.User, remember bool) error {
	token, expires, err := h.Session.Tokens.Generate(user, remember)
	if err != nil {
		return err
	}

	cookie := &fiber.Cookie{
		Name:     h.Session.CookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   c.Protocol() == "https",
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if remember {
		cookie.Expires = expires
	} else {
		cookie.SessionOnly = true
	}
	c.Cookie(cookie)
	return nil
}
