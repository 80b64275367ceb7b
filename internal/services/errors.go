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

package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/localnerve/enterprise-values/internal/repositories"
)

var (
	// ErrPersistenceConflict means a concurrent write claimed a unique key first.
	// The caller may resubmit; nothing was written.
	ErrPersistenceConflict = errors.New("persistence conflict")
	// ErrPersistenceUnavailable means the store could not be reached
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
	// ErrAuthenticationFailed means the username or password did not match
	ErrAuthenticationFailed = errors.New("authentication failed")
	// ErrUserNotFound means no user has the requested identity
	ErrUserNotFound = errors.New("user not found")
	// ErrEnterpriseNotFound means no enterprise has the requested identifier
	ErrEnterpriseNotFound = errors.New("enterprise not found")
)

// FailureKind names a field scoped validation failure
type FailureKind string

// Field failure kinds
const (
	SymbolReserved      FailureKind = "SymbolReserved"
	SymbolTaken         FailureKind = "SymbolTaken"
	SymbolFormatInvalid FailureKind = "SymbolFormatInvalid"
	NameTaken           FailureKind = "NameTaken"
	Required            FailureKind = "Required"
	TooLong             FailureKind = "TooLong"
	TooManyValues       FailureKind = "TooManyValues"
	UsernameTaken       FailureKind = "UsernameTaken"
	EmailTaken          FailureKind = "EmailTaken"
	EmailInvalid        FailureKind = "EmailInvalid"
	PasswordMismatch    FailureKind = "PasswordMismatch"
)

// FieldError is one failed rule on one input field
type FieldError struct {
	Field   string      `json:"field"`
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
}

// ValidationError collects the field failures of one submission
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Kind))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Has reports whether kind failed on field
func (e *ValidationError) Has(field string, kind FailureKind) bool {
	for _, f := range e.Fields {
		if f.Field == field && f.Kind == kind {
			return true
		}
	}
	return false
}

// Kinds lists the failure kinds in the order they were recorded
func (e *ValidationError) Kinds() []FailureKind {
	kinds := make([]FailureKind, 0, len(e.Fields))
	for _, f := range e.Fields {
		kinds = append(kinds, f.Kind)
	}
	return kinds
}

func (e *ValidationError) add(field string, kind FailureKind, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Kind: kind, Message: message})
}

func (e *ValidationError) failed(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// orNil keeps callers from returning a typed nil inside an error interface
func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// AsValidationError unwraps err into a *ValidationError
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// persistenceError maps repository sentinels onto the service taxonomy
func persistenceError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrDuplicateEntry):
		return fmt.Errorf("%s: %w: %v", op, ErrPersistenceConflict, err)
	case errors.Is(err, repositories.ErrUnavailable):
		return fmt.Errorf("%s: %w: %v", op, ErrPersistenceUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Messages shown for each field failure
const (
	msgRequired         = "Este campo es obligatorio."
	msgTooLong          = "El campo debe tener como máximo %d caracteres."
	msgTooManyValues    = "Sólo se pueden tener hasta 10 valores."
	msgSymbolReserved   = "El símbolo de tu empresa ya está registrado en la bolsa de valores de Nueva York"
	msgSymbolTaken      = "Símbolo ya usado. Por favor usa un símbolo diferente."
	msgSymbolFormat     = "Símbolo no sigue la expresión regular usada por el NYSE."
	msgNameTaken        = "Por favor usa un nombre diferente."
	msgUsernameTaken    = "Por favor usa un nombre de usuario diferente."
	msgEmailTaken       = "Por favor usa una direccion de correo diferente."
	msgEmailInvalid     = "Dirección de correo inválida."
	msgPasswordMismatch = "Las contraseñas deben coincidir."
)
