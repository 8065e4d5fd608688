package core

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	// custom validation tags & texts
	alphaNumUnderTag   = "alphanum_"
	alphaNumUnderText  = "only alphanumeric characters and underscores are allowed"
	alphaNumUnderRegex = regexp.MustCompile(`^\w+$`)

	titleMaxLen = 120
	titleTag    = "title"
	titleText   = fmt.Sprintf("must be between 1 and %d characters, without control characters", titleMaxLen)

	descriptionMaxLen = 2000
	descriptionTag    = "description"
	descriptionText   = fmt.Sprintf("must be at most %d characters", descriptionMaxLen)

	hexColorTag   = "hexcolor6"
	hexColorText  = "must be a color of the form #RRGGBB"
	hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

	requiredTag     = "required"
	requiredWithTag = "required_with"
	requiredText    = "this field is required"
)

// InitValidators instantiates the validator for use.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// validate dates by their wire value: a zero Date is "missing"
	validate.RegisterCustomTypeFunc(dateValue, Date{})

	// register custom validators
	_ = validate.RegisterValidation(alphaNumUnderTag, alphaNumUnderValidation)
	RegisterCustomTranslation(validate, translator, alphaNumUnderTag, alphaNumUnderText)

	_ = validate.RegisterValidation(titleTag, titleValidation)
	RegisterCustomTranslation(validate, translator, titleTag, titleText)

	_ = validate.RegisterValidation(descriptionTag, descriptionValidation)
	RegisterCustomTranslation(validate, translator, descriptionTag, descriptionText)

	_ = validate.RegisterValidation(hexColorTag, hexColorValidation)
	RegisterCustomTranslation(validate, translator, hexColorTag, hexColorText)

	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)
	RegisterCustomTranslation(validate, translator, requiredWithTag, requiredText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// TranslateErrors maps each invalid field to its translated message.
func TranslateErrors(errs validator.ValidationErrors, translator ut.Translator) map[string]string {
	fldErrs := make(map[string]string, len(errs))
	for _, vErr := range errs {
		fldErrs[vErr.Field()] = vErr.Translate(translator)
	}
	return fldErrs
}

func dateValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(Date); ok && !d.IsZero() {
		return d.String()
	}
	return ""
}

// Custom Global Validators

// alphaNumUnderValidation only allows alphanumeric characters and underscores.
func alphaNumUnderValidation(fl validator.FieldLevel) bool {
	return alphaNumUnderRegex.MatchString(fl.Field().String())
}

// titleValidation checks short, single line labels: task titles, course and exam names.
func titleValidation(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	n := utf8.RuneCountInString(s)
	if n == 0 || n > titleMaxLen || strings.TrimSpace(s) != s {
		return false
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

func descriptionValidation(fl validator.FieldLevel) bool {
	return utf8.RuneCountInString(fl.Field().String()) <= descriptionMaxLen
}

func hexColorValidation(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}
