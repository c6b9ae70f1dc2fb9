package forms

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/hackgods/counseling-scheduler/internal/appointment"
)

// General is the Errors key for a message not tied to one field.
const General = "general"

// Errors maps a form field name to the message shown next to it.
type Errors map[string]string

func (e Errors) Any() bool { return len(e) > 0 }

func (e Errors) Get(field string) string { return e[field] }

// First returns the general message, else the first failing field in order.
func (e Errors) First(order ...string) string {
	if m, ok := e[General]; ok {
		return m
	}
	for _, f := range order {
		if m, ok := e[f]; ok {
			return m
		}
	}
	for _, m := range e {
		return m
	}
	return ""
}

var (
	once     sync.Once
	validate *validator.Validate
)

func v() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		_ = validate.RegisterValidation("timeslot", func(fl validator.FieldLevel) bool {
			return appointment.TimeSlot(fl.Field().String()).Valid()
		})
		_ = validate.RegisterValidation("concern", func(fl validator.FieldLevel) bool {
			return appointment.Concern(fl.Field().String()).Valid()
		})
	})
	return validate
}

// messages is keyed by field then failing tag.
type messages map[string]map[string]string

// check runs the validator and maps each failure to its wording. The first failure per field wins.
func check(s any, msgs messages) Errors {
	err := v().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Errors{General: err.Error()}
	}
	out := Errors{}
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		if m, ok := msgs[field][fe.Tag()]; ok {
			out[field] = m
			continue
		}
		out[field] = fe.Error()
	}
	return out
}
