// Package form declares the HTML forms of the blog and binds submitted values
// into them. A form is only handed to a handler once every field passes.
package form

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ErrValidationFailed is matched by every *ValidationError.
var ErrValidationFailed = errors.New("form validation failed")

// ValidationError lists the fields that failed, keyed by their form name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return ErrValidationFailed.Error()
	}
	return fmt.Sprintf("%s: %s", ErrValidationFailed, strings.Join(sortedKeys(e.Fields), ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// Message returns a single line suitable for showing above the form.
func (e *ValidationError) Message() string {
	if e == nil || len(e.Fields) == 0 {
		return "Please check the form and try again."
	}
	parts := make([]string, 0, len(e.Fields))
	for _, name := range sortedKeys(e.Fields) {
		parts = append(parts, e.Fields[name])
	}
	return strings.Join(parts, " ")
}

// Register is the sign-up form.
type Register struct {
	Name     string `form:"name" binding:"required,max=250"`
	Email    string `form:"email" binding:"required,email,max=250"`
	Password string `form:"password" binding:"required"`
}

// Login is the sign-in form.
type Login struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

// Post is the create/edit form used by the admin.
type Post struct {
	Title    string `form:"title" binding:"required,max=250"`
	Subtitle string `form:"subtitle" binding:"required,max=250"`
	ImgURL   string `form:"img_url" binding:"required,max=250"`
	Body     string `form:"body" binding:"required"`
}

// Comment is the form under each post.
type Comment struct {
	Text string `form:"comment_text" binding:"required"`
}

// Bind decodes the request into dst, trims string fields and validates them.
// dst keeps whatever was submitted even when validation fails, so the form can
// be shown again with the reader's input.
func Bind(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindWith(dst, binding.Form); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return &ValidationError{Fields: map[string]string{"form": "The form could not be read."}}
		}
	}

	trimStrings(dst)

	if err := binding.Validator.ValidateStruct(dst); err != nil {
		return translate(dst, err)
	}
	return nil
}

func translate(dst interface{}, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Fields: map[string]string{"form": err.Error()}}
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := formName(dst, fe.StructField())
		if _, exists := fields[name]; exists {
			continue
		}
		fields[name] = fieldMessage(name, fe)
	}
	return &ValidationError{Fields: fields}
}

func fieldMessage(name string, fe validator.FieldError) string {
	label := fieldLabel(name)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", label)
	case "email":
		return fmt.Sprintf("%s must be a valid email address.", label)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters.", label, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid.", label)
	}
}

var fieldLabels = map[string]string{
	"name":         "Name",
	"email":        "Email",
	"password":     "Password",
	"title":        "Blog post title",
	"subtitle":     "Subtitle",
	"img_url":      "Blog image URL",
	"body":         "Blog content",
	"comment_text": "Comment",
}

func fieldLabel(name string) string {
	if label, ok := fieldLabels[name]; ok {
		return label
	}
	return name
}

func formName(dst interface{}, structField string) string {
	t := reflect.TypeOf(dst)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return structField
	}
	field, ok := t.FieldByName(structField)
	if !ok {
		return structField
	}
	if tag := field.Tag.Get("form"); tag != "" {
		return strings.Split(tag, ",")[0]
	}
	return structField
}

// trimStrings trims surrounding whitespace on every string field except passwords.
func trimStrings(dst interface{}) {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return
	}
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if field.Kind() != reflect.String || !field.CanSet() {
			continue
		}
		if t.Field(i).Tag.Get("form") == "password" {
			continue
		}
		field.SetString(strings.TrimSpace(field.String()))
	}
}

func sortedKeys(fields map[string]string) []string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
