package profile

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

var (
	vOnce  sync.Once
	vInst  *validator.Validate
	vTrans ut.Translator
)

// validate returns the singleton profile validator, built on first use
func validate() *validator.Validate {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		vTrans, _ = uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())

		// prefer yaml key names in messages
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("yaml")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})

		registerZone(v, vTrans)
		vInst = v
	})
	return vInst
}

// registerZone adds the zone tag: a leading dot followed by lowercase
// LDH labels, multi-label zones like ".co.uk" included
func registerZone(v *validator.Validate, trans ut.Translator) {
	_ = v.RegisterValidation("zone", func(fl validator.FieldLevel) bool {
		return validZone(fl.Field().String())
	})
	_ = v.RegisterTranslation("zone", trans,
		func(ut ut.Translator) error {
			return ut.Add("zone", "{0} must be a zone with a leading dot, like .io", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T("zone", fe.Field())
			return msg
		},
	)
}

func validZone(z string) bool {
	if len(z) < 2 || !strings.HasPrefix(z, ".") {
		return false
	}
	for _, lbl := range strings.Split(z[1:], ".") {
		if lbl == "" || strings.HasPrefix(lbl, "-") || strings.HasSuffix(lbl, "-") {
			return false
		}
		for _, r := range lbl {
			ldh := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
			if !ldh {
				return false
			}
		}
	}
	return true
}

// firstFieldAndMessage extracts the first failing field and its translated message
func firstFieldAndMessage(err error) (field, message string) {
	if err == nil {
		return "", ""
	}
	if inv, ok := err.(*validator.InvalidValidationError); ok {
		return "", inv.Error()
	}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			return fe.Field(), fe.Translate(vTrans)
		}
	}
	return "", err.Error()
}
