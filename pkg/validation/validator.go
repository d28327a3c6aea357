package validation

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Init configures the global validator used by Gin's binding.
// Errors report json (or form) field names; aliases cover repeated rules and
// each enums entry registers a tag accepting only the listed values.
func Init(enums map[string][]string) {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		Configure(v, enums)
	}
}

// Configure applies tag-name resolution, aliases and enum tags to v.
func Configure(v *validator.Validate, enums map[string][]string) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	v.RegisterAlias("pwd", "min=6")
	for tag, values := range enums {
		allowed := make(map[string]struct{}, len(values))
		for _, val := range values {
			allowed[val] = struct{}{}
		}
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			_, ok := allowed[fl.Field().String()]
			return ok
		})
		enumTags[tag] = struct{}{}
	}
}

var enumTags = map[string]struct{}{}

// ToList converts binding/validation errors into "field: message" entries
// suitable for the errors list of a validation failure.
func ToList(err error) []string {
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) {
		return []string{"payload: corps de requête vide"}
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return []string{"payload: JSON invalide"}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, fe.Field()+": "+formatFieldError(fe))
		}
		return out
	}

	return []string{"payload: données invalides"}
}

func formatFieldError(fe validator.FieldError) string {
	param := fe.Param()
	switch fe.Tag() {
	case "required":
		return "est requis"
	case "email":
		return "doit être un email valide"
	case "uuid", "uuid4":
		return "doit être un identifiant valide"
	case "pwd":
		return "doit contenir au moins 6 caractères"
	case "oneof":
		return "valeur non autorisée"
	case "eqfield":
		return "doit être identique à " + param
	case "min":
		if isNumberKind(fe.Kind()) {
			return "doit être au moins " + param
		}
		return "doit contenir au moins " + param + " caractères"
	case "max":
		if isNumberKind(fe.Kind()) {
			return "doit être au plus " + param
		}
		return "doit contenir au plus " + param + " caractères"
	case "alphanum":
		return "ne doit contenir que des lettres et des chiffres"
	default:
		if _, ok := enumTags[fe.Tag()]; ok {
			return "valeur non autorisée"
		}
		if param != "" {
			return "règle '" + fe.Tag() + "=" + param + "' non respectée"
		}
		return "règle '" + fe.Tag() + "' non respectée"
	}
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
