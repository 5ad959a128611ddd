package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/RouqX7/AthleteConnect/internal/models"
)

// Violation is one failed field constraint. Validation always reports the
// complete set of violations, never just the first.
type Violation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Validator wraps go-playground/validator with the application's field
// naming (json tags) and cross-field rules.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()

	// Report violations under the wire-facing field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	v.RegisterStructValidation(profileVariant, models.Profile{})

	return &Validator{v: v}
}

// Struct validates s and returns every violation found.
func (val *Validator) Struct(s any) []Violation {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		out := make([]Violation, 0, len(ves))
		for _, fe := range ves {
			out = append(out, Violation{
				Field:   fe.Field(),
				Rule:    fe.Tag(),
				Message: fmt.Sprintf("field '%s' failed on the '%s' rule", fe.Field(), fe.Tag()),
			})
		}
		return out
	}

	return []Violation{{Rule: "struct", Message: err.Error()}}
}

// Aggregate renders all violations into one caller-facing message.
func Aggregate(violations []Violation) string {
	msgs := make([]string, len(violations))
	for i, v := range violations {
		msgs[i] = v.Message
	}
	return strings.Join(msgs, "; ")
}

// profileVariant enforces that the populated payload matches the declared
// profile type: a player profile must not carry a club payload and vice
// versa.
func profileVariant(sl validator.StructLevel) {
	p := sl.Current().Interface().(models.Profile)
	switch p.ProfileType {
	case models.ProfileTypePlayer:
		if p.Club != nil {
			sl.ReportError(p.Club, "club", "Club", "excluded_for_player", "")
		}
	case models.ProfileTypeClub:
		if p.Player != nil {
			sl.ReportError(p.Player, "player", "Player", "excluded_for_club", "")
		}
	}
}

// StripUnknown drops input keys that do not map to a declared field of T,
// along with the server-owned "id" key. This is the partial-update
// counterpart of decoding create input into the record type directly.
func StripUnknown[T any](in map[string]any) map[string]any {
	known := fieldKeys(reflect.TypeOf(*new(T)))
	out := make(map[string]any, len(in))
	for k, v := range in {
		if k == "id" {
			continue
		}
		if _, ok := known[k]; ok {
			out[k] = v
		}
	}
	return out
}

func fieldKeys(t reflect.Type) map[string]struct{} {
	keys := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := strings.SplitN(t.Field(i).Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			continue
		}
		keys[tag] = struct{}{}
	}
	return keys
}
