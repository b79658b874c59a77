// Package validation wraps go-playground/validator with english messages and
// json field names, shared by parameter checks and request binding.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// FieldIssue is one failed struct tag, addressed by its json path.
type FieldIssue struct {
	Field   string
	Tag     string
	Message string
}

// Service holds the validator singleton and its translator.
type Service struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	once sync.Once
	svc  *Service
)

// Get returns the process-wide validator, initializing it on first use.
func Get() *Service {
	once.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())

		// prefer json tag names in messages
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})

		_ = en_translations.RegisterDefaultTranslations(v, trans)

		svc = &Service{Validator: v, Translator: trans}
	})
	return svc
}

// Struct validates v and flattens the failures. A nil result means v is valid.
// Non-validation errors (e.g. v is not a struct) are reported under field "".
func (s *Service) Struct(v any) []FieldIssue {
	err := s.Validator.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldIssue{{Message: err.Error()}}
	}

	out := make([]FieldIssue, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldIssue{
			Field:   fieldPath(fe.Namespace()),
			Tag:     fe.Tag(),
			Message: fe.Translate(s.Translator),
		})
	}
	return out
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}
