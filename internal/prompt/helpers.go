package prompt

import (
	"reflect"

	"gopkg.in/AlecAivazis/survey.v1/core"

	"github.com/PhaserEditor2D/assetprep/internal/errs"
)

func init() {
	core.ErrorIcon = ""
	core.HelpIcon = ""
	core.QuestionIcon = ""
	core.SelectFocusIcon = ">"
}

// ValidateRequired does not allow an empty value
func ValidateRequired(val interface{}) error {
	// the reflect value of the result
	value := reflect.ValueOf(val)

	// if the value passed in is the zero value of the appropriate type
	if isZero(value) && value.Kind() != reflect.Bool && value.Kind() != reflect.Int {
		return errs.NewUserFacing("A value is required", errs.SetInput())
	}
	return nil
}

// NoValidate accepts any value
func NoValidate(val interface{}) error {
	return nil
}

// isZero returns true if the passed value is the zero object
func isZero(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	}

	// compare the types directly with more general coverage
	return reflect.DeepEqual(v.Interface(), reflect.Zero(v.Type()).Interface())
}
