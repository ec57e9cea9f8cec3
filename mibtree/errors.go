// Copyright 2025 Edgeo SCADA
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mibtree

import (
	"errors"
	"fmt"
)

// Standard errors.
var (
	ErrNotFound          = errors.New("mibtree: node not found")
	ErrInvalidOID        = errors.New("mibtree: invalid OID")
	ErrTemplate          = errors.New("mibtree: template evaluation failed")
	ErrMalformedTemplate = errors.New("mibtree: malformed template")
	ErrGraphBuilt        = errors.New("mibtree: graph already built")
	ErrEmptyGraph        = errors.New("mibtree: graph has no nodes")
	ErrNilNode           = errors.New("mibtree: nil root node")
)

// NotFoundError is returned when an identifier does not resolve to a node.
type NotFoundError struct {
	Identifier string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("mibtree: no node matches %q", e.Identifier)
}

// Unwrap lets errors.Is match ErrNotFound.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// TemplateError reports a failure while evaluating a parsed template.
type TemplateError struct {
	Name  string
	Cause error
}

// Error implements the error interface.
func (e *TemplateError) Error() string {
	return fmt.Sprintf("mibtree: template %q: %v", e.Name, e.Cause)
}

// Unwrap returns both the sentinel and the original cause.
func (e *TemplateError) Unwrap() []error {
	return []error{ErrTemplate, e.Cause}
}

// MalformedTemplateError reports template text that does not parse.
type MalformedTemplateError struct {
	Name  string
	Cause error
}

// Error implements the error interface.
func (e *MalformedTemplateError) Error() string {
	return fmt.Sprintf("mibtree: cannot parse template %q: %v", e.Name, e.Cause)
}

// Unwrap returns both the sentinel and the original cause.
func (e *MalformedTemplateError) Unwrap() []error {
	return []error{ErrMalformedTemplate, e.Cause}
}

// IsNotFound returns true if the error indicates an unresolved identifier.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsTemplateError returns true if the error came from template parsing or
// evaluation.
func IsTemplateError(err error) bool {
	return errors.Is(err, ErrTemplate) || errors.Is(err, ErrMalformedTemplate)
}
