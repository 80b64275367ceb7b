// errors.go
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
	"github.com/localnerve/enterprise-values/internal/services"
	"github.com/localnerve/enterprise-values/internal/types"
	"github.com/localnerve/enterprise-values/internal/utils"
	"github.com/sirupsen/logrus"
)

// ErrorHandler handles errors globally
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	var customErr *types.CustomError
	var fiberErr *fiber.Error

	switch {
	case errors.As(err, &customErr):
		code = customErr.Code
		message = customErr.Message
		errorType = customErr.Type
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	case errors.Is(err, services.ErrPersistenceUnavailable):
		code = fiber.StatusServiceUnavailable
		message = "E_UNAVAILABLE - The data store is unreachable."
		errorType = "persistence.unavailable"
	case errors.Is(err, services.ErrPersistenceConflict):
		return utils.ConflictResponse(c, "persistence.conflict")
	}

	if code >= fiber.StatusInternalServerError {
		logrus.WithError(err).WithFields(logrus.Fields{
			"url":    c.OriginalURL(),
			"method": c.Method(),
		}).Error("Request failed")
		if code == fiber.StatusInternalServerError {
			message = "Internal server error"
		}
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}

// NotFound is the terminal route for unmatched paths
func NotFound(c *fiber.Ctx) error {
	return utils.NotFoundResponse(c, "[404] Resource Not Found")
}

// serviceError turns the expected service failures into responses and
// passes everything else to ErrorHandler
func serviceError(c *fiber.Ctx, err error, errorType string) error {
	if verr, ok := services.AsValidationError(err); ok {
		return utils.ValidationErrorResponse(c, verr.Fields, errorType)
	}

	switch {
	case errors.Is(err, services.ErrPersistenceConflict):
		return utils.ConflictResponse(c, errorType)
	case errors.Is(err, services.ErrEnterpriseNotFound):
		return utils.NotFoundResponse(c, "Enterprise not found")
	case errors.Is(err, services.ErrUserNotFound):
		return utils.NotFoundResponse(c, "User not found")
	}

	return err
}
