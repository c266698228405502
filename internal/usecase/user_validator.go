package usecase

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"flightlog-service/internal/domain/entity"
)

// FieldViolation reports one failed constraint on one field.
type FieldViolation struct {
	Field   string
	Message string
}

func (v FieldViolation) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

const (
	usernameMinLen    = 3
	usernameMaxLen    = 20
	passwordMinLen    = 8
	displayNameMinLen = 3
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// NewUserInput is a candidate account creation record before validation.
type NewUserInput struct {
	Username    string
	Password    string
	DisplayName string
	Unit        string
	Role        string
}

// NewUser is the coerced, defaulted result of validating a NewUserInput.
type NewUser struct {
	Username    string
	Password    string
	DisplayName string
	Unit        entity.UnitPreference
	Role        entity.Role
}

// ProfileEditInput is a candidate profile edit. It deliberately has no
// password and no role field; neither can be changed through this path.
type ProfileEditInput struct {
	Username    string
	DisplayName string
	Unit        string
}

// ProfileEdit is the coerced result of validating a ProfileEditInput.
type ProfileEdit struct {
	Username    string
	DisplayName string
	Unit        entity.UnitPreference
}

// ValidateNewUser checks every field of the creation variant independently
// and returns either the coerced record or the full list of violations.
func ValidateNewUser(in NewUserInput) (*NewUser, []FieldViolation) {
	var violations []FieldViolation

	if v := checkUsername(in.Username); v != nil {
		violations = append(violations, *v)
	}
	if utf8.RuneCountInString(in.Password) < passwordMinLen {
		violations = append(violations, FieldViolation{
			Field:   "password",
			Message: fmt.Sprintf("must be at least %d characters", passwordMinLen),
		})
	}
	if v := checkDisplayName(in.DisplayName); v != nil {
		violations = append(violations, *v)
	}
	unit, v := coerceUnit(in.Unit)
	if v != nil {
		violations = append(violations, *v)
	}
	role, v := coerceRole(in.Role)
	if v != nil {
		violations = append(violations, *v)
	}

	if len(violations) > 0 {
		return nil, violations
	}
	return &NewUser{
		Username:    in.Username,
		Password:    in.Password,
		DisplayName: in.DisplayName,
		Unit:        unit,
		Role:        role,
	}, nil
}

// ValidateProfileEdit checks the edit variant, which carries neither
// password nor role.
func ValidateProfileEdit(in ProfileEditInput) (*ProfileEdit, []FieldViolation) {
	var violations []FieldViolation

	if v := checkUsername(in.Username); v != nil {
		violations = append(violations, *v)
	}
	if v := checkDisplayName(in.DisplayName); v != nil {
		violations = append(violations, *v)
	}
	unit, v := coerceUnit(in.Unit)
	if v != nil {
		violations = append(violations, *v)
	}

	if len(violations) > 0 {
		return nil, violations
	}
	return &ProfileEdit{
		Username:    in.Username,
		DisplayName: in.DisplayName,
		Unit:        unit,
	}, nil
}

func checkUsername(username string) *FieldViolation {
	// Lengths count characters, not bytes.
	length := utf8.RuneCountInString(username)
	if length < usernameMinLen || length > usernameMaxLen {
		return &FieldViolation{
			Field:   "username",
			Message: fmt.Sprintf("must be %d-%d characters", usernameMinLen, usernameMaxLen),
		}
	}
	if !usernamePattern.MatchString(username) {
		return &FieldViolation{
			Field:   "username",
			Message: "may only contain letters, digits and underscores",
		}
	}
	return nil
}

func checkDisplayName(name string) *FieldViolation {
	if utf8.RuneCountInString(name) < displayNameMinLen {
		return &FieldViolation{
			Field:   "displayName",
			Message: fmt.Sprintf("must be at least %d characters", displayNameMinLen),
		}
	}
	return nil
}

func coerceUnit(unit string) (entity.UnitPreference, *FieldViolation) {
	switch entity.UnitPreference(unit) {
	case entity.UnitImperial, entity.UnitMetric:
		return entity.UnitPreference(unit), nil
	case "":
		return entity.UnitMetric, nil
	default:
		return "", &FieldViolation{Field: "unit", Message: "must be imperial or metric"}
	}
}

func coerceRole(role string) (entity.Role, *FieldViolation) {
	switch entity.Role(role) {
	case entity.RoleUser, entity.RoleAdmin:
		return entity.Role(role), nil
	case "":
		return entity.RoleUser, nil
	default:
		return "", &FieldViolation{Field: "role", Message: "must be user or admin"}
	}
}
