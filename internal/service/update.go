package service

import (
	"encoding/json"
	"fmt"
)

// Whitelisted partial updates. A PATCH body is parsed into one of these
// typed values; any field name outside the whitelist fails the whole
// update before anything is applied.

type UserUpdate struct {
	Name     *string
	Email    *string
	Password *string
	Age      *int
}

type TaskUpdate struct {
	Description *string
	Completed   *bool
}

func parseUserUpdate(rawBody []byte) (UserUpdate, error) {
	var upd UserUpdate
	fields, err := parseUpdateFields(rawBody)
	if err != nil {
		return upd, err
	}
	for name, raw := range fields {
		var dst any
		switch name {
		case "name":
			dst = &upd.Name
		case "email":
			dst = &upd.Email
		case "password":
			dst = &upd.Password
		case "age":
			dst = &upd.Age
		default:
			return UserUpdate{}, fmt.Errorf("%w: unknown field %q", ErrValidation, name)
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return UserUpdate{}, fmt.Errorf("%w: bad value for field %q", ErrValidation, name)
		}
	}
	return upd, nil
}

func parseTaskUpdate(rawBody []byte) (TaskUpdate, error) {
	var upd TaskUpdate
	fields, err := parseUpdateFields(rawBody)
	if err != nil {
		return upd, err
	}
	for name, raw := range fields {
		var dst any
		switch name {
		case "description":
			dst = &upd.Description
		case "completed":
			dst = &upd.Completed
		default:
			return TaskUpdate{}, fmt.Errorf("%w: unknown field %q", ErrValidation, name)
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return TaskUpdate{}, fmt.Errorf("%w: bad value for field %q", ErrValidation, name)
		}
	}
	return upd, nil
}

func parseUpdateFields(rawBody []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(rawBody, &fields); err != nil {
		return nil, fmt.Errorf("%w: body must be a JSON object", ErrValidation)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", ErrValidation)
	}
	return fields, nil
}
