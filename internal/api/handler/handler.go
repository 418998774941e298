// Package handler contains HTTP handlers grouped by resource.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/d9705996/teamconnect/internal/api/respond"
	"github.com/d9705996/teamconnect/internal/apperr"
	"github.com/d9705996/teamconnect/internal/auth"
	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

var validate = newValidator()

// newValidator reports failing fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// maxbytes bounds the encoded length; bcrypt rejects passwords over 72 bytes.
	_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		return err == nil && len(fl.Field().String()) <= n
	})
	return v
}

// decode reads a JSON body into dst and validates it. On failure it writes
// a 400 response and returns false.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respond.ErrorMessage(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		respond.Error(w, r, apperr.Validation(validationMessage(err)))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "email":
			msgs = append(msgs, fe.Field()+" must be a valid email address")
		case "min":
			msgs = append(msgs, fe.Field()+" must be at least "+fe.Param()+" characters")
		case "max":
			msgs = append(msgs, fe.Field()+" must be at most "+fe.Param()+" long")
		case "maxbytes":
			msgs = append(msgs, fe.Field()+" must be at most "+fe.Param()+" bytes")
		default:
			msgs = append(msgs, fe.Field()+" is invalid")
		}
	}
	return strings.Join(msgs, "; ")
}

// pathID parses the named path wildcard as a positive integer id.
func pathID(r *http.Request, name string) (uint, error) {
	id, err := strconv.ParseUint(r.PathValue(name), 10, 0)
	if err != nil || id == 0 {
		return 0, apperr.New(apperr.KindValidation, "invalid_id", name+" must be a positive integer")
	}
	return uint(id), nil
}

// tenantOf returns the context resolved by middleware.RequireTenant.
func tenantOf(r *http.Request) auth.AuthContext {
	ac, _ := auth.FromContext(r.Context())
	return ac
}

// actingUser resolves a user id named in a request body. Verified callers
// act as themselves: the field defaults to the token's user and may not
// name anyone else. Header-only callers must name the user explicitly.
func actingUser(ac auth.AuthContext, given *uint, field string) (uint, error) {
	if ac.Verified {
		if given == nil || *given == ac.UserID {
			return ac.UserID, nil
		}
		return 0, apperr.ErrActorMismatch
	}
	if given == nil || *given == 0 {
		return 0, apperr.Validation(field + " is required")
	}
	return *given, nil
}
