// Package validation checks decoded request payloads and turns every
// violated constraint into a client-facing message.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// RegisterRequest is the body of POST /auth/register. bcrypt only accepts
// passwords up to 72 bytes, so longer ones are rejected here.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,maxbytes=72"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ArticleRequest is the body of POST /articles.
type ArticleRequest struct {
	Title    string `json:"title" validate:"required,min=5,max=100"`
	Body     string `json:"body" validate:"required"`
	Category string `json:"category" validate:"required,min=3,max=50"`
}

// Validator wraps a go-playground validator configured to report fields by
// their JSON names. It is safe for concurrent use.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	if err := v.RegisterValidation("maxbytes", maxBytes); err != nil {
		panic(err)
	}
	return &Validator{v: v}
}

// maxBytes limits the encoded length of a string, unlike max which counts runes.
func maxBytes(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= n
}

// Decode copies the members of a JSON object into dst, which must point to a
// struct, one field at a time. A member whose value has the wrong type leaves
// its field zero; it is reported in msgs and its JSON name is returned in bad
// so Struct can skip it.
func Decode(fields map[string]json.RawMessage, dst any) (msgs, bad []string) {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return nil, nil
	}
	rv = rv.Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		name := jsonName(f)
		if !f.IsExported() || name == "" {
			continue
		}
		raw, ok := lookup(fields, name)
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, rv.Field(i).Addr().Interface()); err != nil {
			msgs = append(msgs, typeMessage(name, f.Type))
			bad = append(bad, name)
		}
	}
	return msgs, bad
}

// lookup matches keys the way encoding/json does: exact first, then
// case-insensitively.
func lookup(fields map[string]json.RawMessage, name string) (json.RawMessage, bool) {
	if raw, ok := fields[name]; ok {
		return raw, true
	}
	for k, raw := range fields {
		if strings.EqualFold(k, name) {
			return raw, true
		}
	}
	return nil, false
}

func typeMessage(name string, t reflect.Type) string {
	kind := "valid"
	switch t.Kind() {
	case reflect.String:
		kind = "a string"
	case reflect.Bool:
		kind = "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		kind = "a number"
	}
	return fmt.Sprintf("%s must be %s", capitalize(name), kind)
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// Struct validates s and returns one message per violated constraint, in
// field order. A nil result means s is valid. skip lists JSON field names
// whose violations are already reported elsewhere.
func (v *Validator) Struct(s any, skip ...string) ([]string, error) {
	err := v.v.Struct(s)
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}

	var msgs []string
	for _, fe := range verrs {
		if contains(skip, fe.Field()) {
			continue
		}
		msgs = append(msgs, message(fe))
	}
	return msgs, nil
}

func message(fe validator.FieldError) string {
	label := capitalize(fe.Field())
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must not exceed %s characters", label, fe.Param())
	case "maxbytes":
		return fmt.Sprintf("%s must not exceed %s bytes", label, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
