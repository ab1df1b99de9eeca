package validators

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/BruksfildServices01/shala-api/internal/httperr"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator

	// custom validation tags
	notBlankTag = "notblank"
	isoDateTag  = "isodate"
	hhmmTag     = "hhmm"
	acceptedTag = "accepted"
	currencyTag = "currency"
)

func init() {
	Validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	Translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(Validate, Translator)

	// Report JSON names so the field in an error matches the request body.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = Validate.RegisterValidation(notBlankTag, notBlank)
	_ = Validate.RegisterValidation(isoDateTag, layout("2006-01-02"))
	_ = Validate.RegisterValidation(hhmmTag, layout("15:04"))
	_ = Validate.RegisterValidation(acceptedTag, accepted)
	_ = Validate.RegisterValidation(currencyTag, currency)

	registerCustomTranslations(notBlankTag, isoDateTag, hhmmTag, acceptedTag, currencyTag)
}

// Struct validates v and converts the first violation into a validation
// BusinessError naming the offending field by its JSON path.
func Struct(v any) error {
	err := Validate.Struct(v)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return httperr.ErrValidation("", err.Error())
	}

	fe := errs[0]
	return httperr.ErrValidation(fieldPath(fe.Namespace()), fe.Translate(Translator))
}

// fieldPath drops the root struct name: "Register.student.phone" becomes
// "student.phone".
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func registerCustomTranslations(tags ...string) {
	registerFn := func(ut.Translator) error { return nil }
	for _, tag := range tags {
		_ = Validate.RegisterTranslation(tag, Translator, registerFn, translateCustom)
	}
}

func translateCustom(_ ut.Translator, fe validator.FieldError) string {
	switch fe.Tag() {
	case notBlankTag:
		return fe.Field() + " cannot be blank"
	case isoDateTag:
		return fe.Field() + " must be a date in YYYY-MM-DD format"
	case hhmmTag:
		return fe.Field() + " must be a time in HH:MM format"
	case acceptedTag:
		return "You must accept the terms and conditions"
	case currencyTag:
		return fe.Field() + " must be a 3-letter currency code"
	default:
		return ""
	}
}

func notBlank(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

func layout(l string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		str, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		_, err := time.Parse(l, str)
		return err == nil
	}
}

func accepted(fl validator.FieldLevel) bool {
	b, ok := fl.Field().Interface().(bool)
	return ok && b
}

func currency(fl validator.FieldLevel) bool {
	str, ok := fl.Field().Interface().(string)
	if !ok || len(str) != 3 {
		return false
	}
	for _, r := range str {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
