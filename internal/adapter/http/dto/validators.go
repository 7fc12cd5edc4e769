package dto

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	operationKindRe = regexp.MustCompile(`^[A-Za-z][A-Za-z_\-]{0,31}$`)
	safeArgRe       = regexp.MustCompile(`^[0-9A-Za-z.\-]*$`)
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("operation_kind", validateOperationKind)
		_ = v.RegisterValidation("safe_arg", validateSafeArg)
		_ = v.RegisterValidation("hex_address", validateHexAddress)
	}
}

// validateOperationKind accepts kind names such as "deposit" or "BUY_TICKETS".
func validateOperationKind(fl validator.FieldLevel) bool {
	return operationKindRe.MatchString(strings.TrimSpace(fl.Field().String()))
}

// validateSafeArg allows the characters of amounts, counts and hex addresses.
func validateSafeArg(fl validator.FieldLevel) bool {
	return safeArgRe.MatchString(strings.TrimSpace(fl.Field().String()))
}

func validateHexAddress(fl validator.FieldLevel) bool {
	return common.IsHexAddress(strings.TrimSpace(fl.Field().String()))
}

// TrimStruct trims whitespace from every exported string and []string field
// of a struct pointer.
func TrimStruct(v any) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return
	}
	rv = rv.Elem()
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanSet() {
			continue
		}
		switch f.Kind() {
		case reflect.String:
			f.SetString(strings.TrimSpace(f.String()))
		case reflect.Slice:
			if f.Type().Elem().Kind() != reflect.String {
				continue
			}
			for j := 0; j < f.Len(); j++ {
				f.Index(j).SetString(strings.TrimSpace(f.Index(j).String()))
			}
		}
	}
}
