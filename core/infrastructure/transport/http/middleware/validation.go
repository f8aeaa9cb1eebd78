package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// maxBodyBytes caps request bodies; run requests only carry a few params
const maxBodyBytes = 1 << 20

var (
	validatorInstance *validator.Validate
	validatorOnce     sync.Once
)

func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInstance = validator.New()

		// Report fields by their JSON name
		validatorInstance.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validatorInstance
}

// DecodeAndValidate decodes the JSON request body into a T and validates it.
// An empty body decodes to the zero T. Decoding problems are returned as err;
// rule violations are returned as a field to rule map.
func DecodeAndValidate[T any](r *http.Request) (*T, map[string]string, error) {
	var body T
	if r.Body != nil {
		dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			return nil, nil, err
		}
	}

	if fieldErrs := ValidateStruct(&body); len(fieldErrs) > 0 {
		return &body, fieldErrs, nil
	}
	return &body, nil, nil
}

// ValidateStruct runs the validate tags of v and returns a field to rule map
func ValidateStruct(v any) map[string]string {
	err := getValidator().Struct(v)
	if err == nil {
		return nil
	}

	validationErrors := make(map[string]string)
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			namespace := fe.Namespace()
			if idx := strings.Index(namespace, "."); idx >= 0 {
				namespace = namespace[idx+1:]
			}
			validationErrors[namespace] = fe.Tag()
		}
		return validationErrors
	}
	validationErrors["_"] = err.Error()
	return validationErrors
}
