// chart.go
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
	"bytes"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/enterprise-values/internal/chart"
	"github.com/localnerve/enterprise-values/internal/services"
	"github.com/localnerve/enterprise-values/internal/utils"
)

// ChartHandler handles the value frequency chart routes
type ChartHandler struct {
	Enterprises *services.EnterpriseService
}

// ChartView is the JSON dataset behind the chart
type ChartView struct {
	Title  string   `json:"title"`
	Axis   string   `json:"axis"`
	Names  []string `json:"names"`
	Counts []int    `json:"counts"`
}

// GetChartData handles GET /api/chart
// @Summary Value frequency dataset
// @Description How many enterprises carry each value, in first appearance order
// @Tags Chart
// @Produce json
// @Success 200 {object} ChartView
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /chart [get]
func (h *ChartHandler) GetChartData(c *fiber.Ctx) error {
	freq, err := h.Enterprises.ValueFrequency(c.UserContext())
	if err != nil {
		return serviceError(c, err, "chart.data")
	}

	return utils.SuccessResponse(c, ChartView{
		Title:  chart.Title,
		Axis:   chart.AxisLabel,
		Names:  freq.Names,
		Counts: freq.Counts,
	}, fiber.StatusOK)
}

// GetChartImage handles GET /api/chart.png
// @Summary Value frequency chart
// @Description Horizontal bar chart of value frequency
// @Tags Chart
// @Produce png
// @Produce image/svg+xml
// @Param format query string false "png (default) or svg"
// @Success 200 {file} binary
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /chart.png [get]
func (h *ChartHandler) GetChartImage(c *fiber.Ctx) error {
	format, err := chart.ParseFormat(c.Query("format"))
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "chart.validation.format")
	}

	freq, err := h.Enterprises.ValueFrequency(c.UserContext())
	if err != nil {
		return serviceError(c, err, "chart.image")
	}

	var buf bytes.Buffer
	if err := chart.Render(&buf, freq, format); err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, format.ContentType())
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}
