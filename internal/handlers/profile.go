// profile.go
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
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/enterprise-values/internal/middleware"
	"github.com/localnerve/enterprise-values/internal/services"
	"github.com/localnerve/enterprise-values/internal/utils"
)

// ProfileUpdatedMessage confirms a profile edit
const ProfileUpdatedMessage = "Your changes have been saved."

// ProfileHandler handles profile routes
type ProfileHandler struct {
	Users       *services.UserService
	Enterprises *services.EnterpriseService
}

// UserPageView is a user's profile with one page of their enterprises
type UserPageView struct {
	User        UserView `json:"user"`
	Enterprises PageView `json:"enterprises"`
}

// GetProfile handles GET /api/profile
// @Summary Current profile
// @Tags Profile
// @Produce json
// @Success 200 {object} UserView
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, newUserView(middleware.CurrentUser(c), true), fiber.StatusOK)
}

// UpdateProfile handles PUT /api/profile
// @Summary Edit profile
// @Description Change the username and the about me text
// @Tags Profile
// @Accept json
// @Produce json
// @Param body body services.ProfileInput true "Profile"
// @Success 200 {object} utils.MessageResponseStruct{data=UserView}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ValidationErrorResponseStruct
// @Security CookieAuth
// @Router /profile [put]
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	var body services.ProfileInput
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "profile.validation.input")
	}

	user := middleware.CurrentUser(c)
	if err := h.Users.UpdateProfile(c.UserContext(), user, body); err != nil {
		return serviceError(c, err, "profile.update")
	}

	return utils.MessageResponse(c, fiber.StatusOK, ProfileUpdatedMessage, newUserView(user, true))
}

// GetUser handles GET /api/users/:username
// @Summary User page
// @Description A user's profile and one page of the enterprises they own
// @Tags Profile
// @Produce json
// @Param username path string true "Username"
// @Param page query int false "1-based page number"
// @Success 200 {object} UserPageView
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /users/{username} [get]
func (h *ProfileHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.Users.FindByUsername(c.UserContext(), c.Params("username"))
	if err != nil {
		return serviceError(c, err, "profile.user")
	}

	page, err := h.Enterprises.List(c.UserContext(), parsePage(c), user.UserID)
	if err != nil {
		return serviceError(c, err, "profile.user")
	}

	self := middleware.CurrentUser(c).UserID == user.UserID
	return utils.SuccessResponse(c, UserPageView{
		User:        newUserView(user, self),
		Enterprises: newPageView(page),
	}, fiber.StatusOK)
}
