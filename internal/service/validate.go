package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/Arison99/School-Management-System/internal/apperr"
	"github.com/go-playground/validator/v10"
)

// newValidator builds a validator that reports field names from json
// tags, so the errors map lines up with the request payload.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

var fieldLabels = map[string]string{
	"name":               "Name",
	"school":             "School name",
	"password":           "Password",
	"type":               "School type",
	"registrationNumber": "Registration number",
	"licenseNumber":      "License number",
	"tin":                "TIN",
	"location":           "Location",
	"className":          "Class name",
	"studentNumber":      "Student number",
	"studentName":        "Student name",
	"dob":                "Date of birth",
	"fatherName":         "Father name",
	"motherName":         "Mother name",
	"email":              "Email",
	"status":             "Status",
	"age":                "Age",
	"year":               "Year",
}

// checkInput validates a request struct and translates violations into
// the per-field errors map of the response envelope.
func checkInput(v *validator.Validate, input interface{}) error {
	err := v.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = messageFor(fe)
	}
	return apperr.Validation(fields)
}

func messageFor(fe validator.FieldError) string {
	label := fieldLabels[fe.Field()]
	if label == "" {
		label = fe.Field()
	}

	switch fe.Tag() {
	case "required":
		if fe.Field() == "institute" {
			return "Please select an institute type"
		}
		return label + " is required"
	case "min":
		if fe.Field() == "age" {
			return "Age must be at least " + fe.Param()
		}
		return fmt.Sprintf("%s must be at least %s characters long", label, fe.Param())
	case "max":
		if fe.Field() == "age" {
			return "Age must be less than " + fe.Param()
		}
		return fmt.Sprintf("%s must be at most %s characters long", label, fe.Param())
	case "email":
		return "Please enter a valid email address"
	case "len", "numeric":
		if fe.Field() == "year" {
			return "Please enter a valid year (e.g., 2024)"
		}
		return label + " is invalid"
	case "datetime":
		return "Please enter a valid date (YYYY-MM-DD)"
	case "oneof":
		return label + " is invalid"
	default:
		return label + " is invalid"
	}
}
