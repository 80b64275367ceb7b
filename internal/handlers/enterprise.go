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

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/enterprise-values/internal/middleware"
	"github.com/localnerve/enterprise-values/internal/models"
	"github.com/localnerve/enterprise-values/internal/services"
	"github.com/localnerve/enterprise-values/internal/types"
	"github.com/localnerve/enterprise-values/internal/utils"
)

// CreatedMessage is the notification returned with a new enterprise
const CreatedMessage = "Tu empresa ha sido creada con éxito"

// EnterpriseHandler handles enterprise routes
type EnterpriseHandler struct {
	Enterprises *services.EnterpriseService
}

// CreateEnterpriseRequest is the body of POST /api/enterprises.
// Values is either one delimited string or an array of tags.
type CreateEnterpriseRequest struct {
	Name        string                 `json:"name" form:"name"`
	Description string                 `json:"description" form:"description"`
	Symbol      string                 `json:"symbol" form:"symbol"`
	Values      types.FlexList[string] `json:"values" form:"values" swaggertype:"array,string"`
}

// CreateEnterprise handles POST /api/enterprises
// @Summary Create an enterprise
// @Description Register an enterprise owned by the current user and tag it with values
// @Tags Enterprises
// @Accept json
// @Produce json
// @Param body body CreateEnterpriseRequest true "Enterprise"
// @Success 201 {object} utils.MessageResponseStruct{data=EnterpriseView}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ValidationErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /enterprises [post]
func (h *EnterpriseHandler) CreateEnterprise(c *fiber.Ctx) error {
	var body CreateEnterpriseRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "enterprise.validation.input")
	}

	enterprise, err := h.Enterprises.Create(c.UserContext(), services.CreateEnterpriseInput{
		Name:        body.Name,
		Description: body.Description,
		Symbol:      body.Symbol,
		Values:      types.Join(body.Values, h.Enterprises.Separator()),
	}, middleware.CurrentUser(c))
	if err != nil {
		return serviceError(c, err, "enterprise.create")
	}

	return utils.MessageResponse(c, fiber.StatusCreated, CreatedMessage, newEnterpriseView(enterprise))
}

// ListEnterprises handles GET /api/enterprises?page=N&mine=true
// @Summary List enterprises
// @Description One page of enterprises, newest first
// @Tags Enterprises
// @Produce json
// @Param page query int false "1-based page number"
// @Param mine query bool false "Only the current user's enterprises"
// @Success 200 {object} PageView
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /enterprises [get]
func (h *EnterpriseHandler) ListEnterprises(c *fiber.Ctx) error {
	var ownerID uint64
	if c.QueryBool("mine", false) {
		ownerID = middleware.CurrentUser(c).UserID
	}

	page, err := h.Enterprises.List(c.UserContext(), parsePage(c), ownerID)
	if err != nil {
		return serviceError(c, err, "enterprise.list")
	}

	return utils.SuccessResponse(c, newPageView(page), fiber.StatusOK)
}

// GetEnterprise handles GET /api/enterprises/:id
// @Summary Get an enterprise
// @Description Get one enterprise by its identifier, in 32 or 36 character form
// @Tags Enterprises
// @Produce json
// @Param id path string true "Enterprise ID"
// @Success 200 {object} EnterpriseView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /enterprises/{id} [get]
func (h *EnterpriseHandler) GetEnterprise(c *fiber.Ctx) error {
	id, err := models.ParseGUID(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, "Invalid enterprise id", fiber.StatusBadRequest, "enterprise.validation.id")
	}

	enterprise, err := h.Enterprises.Get(c.UserContext(), id)
	if err != nil {
		return serviceError(c, err, "enterprise.get")
	}

	return utils.SuccessResponse(c, newEnterpriseView(enterprise), fiber.StatusOK)
}
