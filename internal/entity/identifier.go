package entity

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// numericIDPattern decides whether a caller-supplied identifier addresses
// the numeric primary key or the external uuid.
var numericIDPattern = regexp.MustCompile(`^\d+$`)

// AccountRef is the resolved form of an "id or uuid" identifier. Exactly one
// of the two variants is set. Every read, update, and delete path resolves the
// incoming token through ParseAccountRef once and passes the ref down, so the
// classification can never diverge between operations.
type AccountRef struct {
	ID   uint
	UUID string
}

// ParseAccountRef classifies a raw identifier as a numeric id or an external
// uuid. A blank input yields the zero ref.
func ParseAccountRef(raw string) AccountRef {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return AccountRef{}
	}
	if numericIDPattern.MatchString(trimmed) {
		id, err := strconv.ParseUint(trimmed, 10, 64)
		if err != nil || id == 0 {
			// Out-of-range or zero numbers cannot address a row; treat as
			// an (unknown) external token so lookups miss instead of erroring.
			return AccountRef{UUID: trimmed}
		}
		return AccountRef{ID: uint(id)}
	}
	return AccountRef{UUID: trimmed}
}

// RefFromID builds a ref addressing the numeric primary key directly.
func RefFromID(id uint) AccountRef {
	return AccountRef{ID: id}
}

// IsZero reports whether the ref addresses nothing.
func (r AccountRef) IsZero() bool {
	return r.ID == 0 && r.UUID == ""
}

// Column returns the accounts column the ref binds to.
func (r AccountRef) Column() string {
	if r.UUID != "" {
		return "uuid"
	}
	return "id"
}

// Value returns the lookup value matching Column.
func (r AccountRef) Value() interface{} {
	if r.UUID != "" {
		return r.UUID
	}
	return r.ID
}

func (r AccountRef) String() string {
	if r.UUID != "" {
		return r.UUID
	}
	return fmt.Sprintf("%d", r.ID)
}
