package helper

import (
	"errors"
	"strings"
	"unicode"

	"qa-forum/models"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"gopkg.in/go-playground/validator.v9"
	en_translations "gopkg.in/go-playground/validator.v9/translations/en"
)

// Validator checks request DTOs against their `validate` tags and reports
// failures as models.ErrorValidation with English messages.
type Validator struct {
	Validate   *validator.Validate
	Translator ut.Translator
}

func NewValidator() *Validator {
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")

	validate := validator.New()
	_ = en_translations.RegisterDefaultTranslations(validate, trans)

	return &Validator{Validate: validate, Translator: trans}
}

func (v *Validator) Struct(s interface{}) error {
	err := v.Validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	fields := map[string][]string{}
	translated := validationErrors.Translate(v.Translator)
	for _, fieldErr := range validationErrors {
		key := Underscore(fieldErr.StructField())
		fields[key] = append(fields[key], translated[fieldErr.Namespace()])
	}

	return models.ErrorValidation{Message: "validation failed", Fields: fields}
}

// Underscore converts a Go identifier such as "AnswerCount" to "answer_count".
func Underscore(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
