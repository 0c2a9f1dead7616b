// Package forms binds submitted HTML form values to partial records.
//
// Each form is described by a Schema, a declarative list of fields, which a
// single generic validator consumes. A rejected submission yields per-field
// messages for inline rendering and never reaches the store.
package forms

import (
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/satriahrh/inventario/domain/entities"
)

const (
	MessageRequired     = "Este campo es requerido"
	MessageInvalidEmail = "Email inválido"
	MessageInvalid      = "Valor inválido"
)

// Field describes one form input
type Field struct {
	Name     string
	Label    string
	Required bool
	Pattern  *regexp.Regexp
	OneOf    []string
	// Message overrides the default message for pattern and enumeration failures
	Message string
}

// Schema is the ordered field list of a form
type Schema []Field

// Errors maps field names to their inline message
type Errors map[string]string

// Has reports whether the named field was rejected
func (e Errors) Has(name string) bool {
	_, ok := e[name]
	return ok
}

// Validation converts the messages to the domain error type, in schema order
func (e Errors) Validation(s Schema) entities.ValidationErrors {
	var out entities.ValidationErrors
	for _, f := range s {
		if msg, ok := e[f.Name]; ok {
			out = append(out, entities.FieldError{Field: f.Name, Message: msg})
		}
	}
	return out
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func engine() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Validate checks values against every field of the schema. The result is
// empty when the submission is acceptable.
func (s Schema) Validate(values map[string]string) Errors {
	errs := Errors{}
	v := engine()

	for _, f := range s {
		value := strings.TrimSpace(values[f.Name])

		if err := v.Var(value, "required"); err != nil {
			if f.Required {
				errs[f.Name] = MessageRequired
			}
			continue
		}

		if len(f.OneOf) > 0 {
			if err := v.Var(value, "oneof="+strings.Join(f.OneOf, " ")); err != nil {
				errs[f.Name] = f.message()
				continue
			}
		}

		if f.Pattern != nil && !f.Pattern.MatchString(value) {
			errs[f.Name] = f.message()
		}
	}

	return errs
}

func (f Field) message() string {
	if f.Message != "" {
		return f.Message
	}
	return MessageInvalid
}
