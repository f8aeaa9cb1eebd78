package parser

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/hyperterse/dataexplorer/core/domain"
	"github.com/hyperterse/dataexplorer/core/logger"
)

var (
	// log is the logger instance for the validator package
	log = logger.New("parser")

	validatorInstance *validator.Validate
	validatorOnce     sync.Once

	// Query names must start with a letter, lowercase only (lower-snake-case or lower-kebab-case)
	queryNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)
	queryIDPattern   = regexp.MustCompile(`^[0-9]+$`)
)

func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInstance = validator.New()

		// Report fields by their configuration key
		validatorInstance.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validatorInstance
}

// ValidationErrors represents a collection of validation errors
type ValidationErrors struct {
	Errors []string
}

// Error implements the error interface
// Returns a simple message since detailed errors are already logged
func (ve *ValidationErrors) Error() string {
	if len(ve.Errors) == 0 {
		return ""
	}
	return fmt.Sprintf("validation failed with %d error(s)", len(ve.Errors))
}

// Validate checks a parsed Model. Struct rules come from validator tags on
// the domain types; naming rules are checked here.
func Validate(model *domain.Model) error {
	log.Debugf("Starting validation")
	var errors []string

	if err := getValidator().Struct(model); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range fieldErrs {
				errors = append(errors, describeFieldError(model, fe))
			}
		} else {
			errors = append(errors, err.Error())
		}
	}

	if strings.Contains(model.Host, "://") {
		errors = append(errors, fmt.Sprintf("host '%s' must not include a scheme", model.Host))
	}

	for _, query := range model.Queries {
		if query.Name != "" && !queryNamePattern.MatchString(query.Name) {
			errors = append(errors, fmt.Sprintf("Query '%s' - name is invalid. Must start with a letter and be in lower-snake-case or lower-kebab-case", query.Name))
		}
		if query.ID != "" && !queryIDPattern.MatchString(string(query.ID)) {
			errors = append(errors, fmt.Sprintf("Query '%s' - id '%s' must be a positive integer", query.Name, query.ID))
		}
	}

	if len(errors) > 0 {
		log.Debugf("Validation failed with %d error(s)", len(errors))
		return &ValidationErrors{Errors: errors}
	}

	log.Debugf("Validation completed successfully")
	return nil
}

func describeFieldError(model *domain.Model, fe validator.FieldError) string {
	// Namespace looks like "Model.queries[1].id"
	namespace := fe.Namespace()
	if idx := strings.Index(namespace, "."); idx >= 0 {
		namespace = namespace[idx+1:]
	}

	var index int
	if _, err := fmt.Sscanf(namespace, "queries[%d]", &index); err == nil && index < len(model.Queries) {
		name := model.Queries[index].Name
		return fmt.Sprintf("Query '%s' - %s %s", name, fe.Field(), ruleMessage(fe))
	}
	return fmt.Sprintf("%s %s", namespace, ruleMessage(fe))
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "hostname_port|hostname_rfc1123":
		return fmt.Sprintf("'%v' is not a valid hostname", fe.Value())
	case "numeric":
		return fmt.Sprintf("'%v' must be numeric", fe.Value())
	case "min", "max":
		return fmt.Sprintf("must be between 0 and 4, got %v", fe.Value())
	default:
		return fmt.Sprintf("failed the '%s' rule", fe.Tag())
	}
}
