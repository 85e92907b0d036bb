// Package repository defines the persistence interfaces consumed by
// the service layer, together with their GORM implementations. The
// service layer never sees GORM types; missing rows surface as
// ErrNotFound.
package repository

import "errors"

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("record not found")
