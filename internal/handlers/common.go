// common.go
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
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/enterprise-values/internal/models"
	"github.com/localnerve/enterprise-values/internal/repositories"
	"github.com/localnerve/enterprise-values/internal/values"
)

// parsePage reads the 1-based ?page= query, defaulting bad input to 1
func parsePage(c *fiber.Ctx) int {
	page := c.QueryInt("page", 1)
	if page < 1 {
		return 1
	}
	return page
}

// EnterpriseView is the JSON shape of an enterprise
type EnterpriseView struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Symbol        string    `json:"symbol"`
	CreatedAt     time.Time `json:"createdAt"`
	Owner         string    `json:"owner,omitempty"`
	Values        []string  `json:"values"`
	ValuesDisplay string    `json:"valuesDisplay"`
}

func newEnterpriseView(e *models.Enterprise) EnterpriseView {
	names := e.ValueNames()
	view := EnterpriseView{
		ID:            e.EnterpriseID.String(),
		Name:          e.Name,
		Description:   e.Description,
		Symbol:        e.Symbol,
		CreatedAt:     e.CreatedAt,
		Values:        names,
		ValuesDisplay: values.Display(names),
	}
	if e.Owner != nil {
		view.Owner = e.Owner.Username
	}
	return view
}

// PageView is the JSON shape of one page of enterprises
type PageView struct {
	Items    []EnterpriseView `json:"items"`
	Page     int              `json:"page"`
	PerPage  int              `json:"perPage"`
	Total    int64            `json:"total"`
	HasNext  bool             `json:"hasNext"`
	HasPrev  bool             `json:"hasPrev"`
	NextPage *int             `json:"nextPage"`
	PrevPage *int             `json:"prevPage"`
}

func newPageView(p repositories.Page) PageView {
	view := PageView{
		Items:   make([]EnterpriseView, 0, len(p.Items)),
		Page:    p.Page,
		PerPage: p.PerPage,
		Total:   p.Total,
		HasNext: p.HasNext(),
		HasPrev: p.HasPrev(),
	}
	for i := range p.Items {
		view.Items = append(view.Items, newEnterpriseView(&p.Items[i]))
	}
	if view.HasNext {
		next := p.Page + 1
		view.NextPage = &next
	}
	if view.HasPrev {
		prev := p.Page - 1
		view.PrevPage = &prev
	}
	return view
}

// UserView is the public JSON shape of a user
type UserView struct {
	Username string    `json:"username"`
	Email    string    `json:"email,omitempty"`
	AboutMe  string    `json:"aboutMe"`
	LastSeen time.Time `json:"lastSeen"`
}

// newUserView includes the email only when self is set
func newUserView(u *models.User, self bool) UserView {
	view := UserView{
		Username: u.Username,
		AboutMe:  u.AboutMe,
		LastSeen: u.LastSeen,
	}
	if self {
		view.Email = u.Email
	}
	return view
}
