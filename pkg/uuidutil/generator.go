// Package uuidutil generates the run identifiers stamped on log lines and
// the run lock.
package uuidutil

import "github.com/google/uuid"

func New() string {
	return uuid.New().String()
}
