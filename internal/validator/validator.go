package validator

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/academix/examsim/internal/model"
)

var (
	validate *govalidator.Validate
	trans    ut.Translator
	once     sync.Once
)

// Setup configures the validator with English translations and the
// struct-level question rules. Safe to call more than once.
func Setup() {
	once.Do(func() {
		validate = govalidator.New()

		// Use JSON tag name for field names in error messages.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		validate.RegisterStructValidation(questionStructLevel, model.Question{})

		// Register English translations.
		enLocale := en.New()
		uni := ut.New(enLocale, enLocale)
		trans, _ = uni.GetTranslator("en")
		en_translations.RegisterDefaultTranslations(validate, trans)
	})
}

// questionStructLevel enforces the invariants a tag cannot express:
// at least two options and exactly one option flagged correct.
func questionStructLevel(sl govalidator.StructLevel) {
	q := sl.Current().Interface().(model.Question)

	if len(q.Options) < 2 {
		sl.ReportError(q.Options, "options", "Options", "minoptions", "")
		return
	}

	correct := 0
	for _, o := range q.Options {
		if o.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		sl.ReportError(q.Options, "options", "Options", "onecorrect", "")
	}
}

// Struct validates a struct and returns a field → message map, or nil if
// the value is valid.
func Struct(v interface{}) map[string]string {
	Setup()

	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	return translateErrors(err)
}

// translateErrors takes a validation error and returns a map of field name
// → human-readable error message. If the error is not a validation error,
// it returns a single-key map with "detail".
func translateErrors(err error) map[string]string {
	fields := make(map[string]string)

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			switch fe.Tag() {
			case "minoptions":
				fields[fe.Field()] = "a question needs at least two options"
			case "onecorrect":
				fields[fe.Field()] = "a question needs exactly one correct option"
			default:
				fields[fe.Field()] = fe.Translate(trans)
			}
		}
		return fields
	}

	fields["detail"] = err.Error()
	return fields
}
