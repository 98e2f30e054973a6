package core

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// FormErrors maps a form field name to its messages. The "form" key holds
// errors that belong to no single field.
type FormErrors map[string][]string

func (e FormErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func (e FormErrors) Has(field string) bool {
	return len(e[field]) > 0
}

const MsgRequired = "This field is required."

// BindForm fills obj, a pointer to a struct with form tags, from the request.
// Validation failures are keyed by the form tag of the offending field.
func BindForm(c *gin.Context, obj interface{}) FormErrors {
	errs := FormErrors{}
	err := c.ShouldBind(obj)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add("form", "The submitted form could not be read.")
		return errs
	}

	t := reflect.TypeOf(obj)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for _, fe := range verrs {
		key := strings.ToLower(fe.StructField())
		if sf, ok := t.FieldByName(fe.StructField()); ok {
			if tag := strings.Split(sf.Tag.Get("form"), ",")[0]; tag != "" {
				key = tag
			}
		}
		errs.Add(key, message(fe))
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return MsgRequired
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this value has at least %s characters.", fe.Param())
	case "email":
		return "Enter a valid email address."
	case "eqfield":
		return "The two password fields didn't match."
	default:
		return "Enter a valid value."
	}
}
