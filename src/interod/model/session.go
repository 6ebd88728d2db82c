package model

import (
	"github.com/gofrs/uuid"
)

// Session is the repository layer model for an individual worker session.
type Session struct {
	UUID            uuid.UUID
	Kind            string
	ProjectRoot     string
	State           string
	Mode            string
	ServicePort     int
	CompilerVersion string
	Extensions      []string
	ScratchDir      string
	GaveUp          bool
	Transcript      string
}
