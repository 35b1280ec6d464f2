package data

import (
	"time"

	"github.com/google/uuid"
)

// NewObject creates a new object named name below the parent path.
func NewObject(parent, name string, kind Kind) *Object {
	now := time.Now()

	return &Object{
		ID:         genObjectID(),
		Kind:       kind,
		Name:       name,
		Path:       JoinPath(parent, name),
		Attributes: make(map[string]string),
		CreateTime: now,
		ModifyTime: now,
	}
}

// NewRootObject creates the root folder every inventory starts with.
func NewRootObject() *Object {
	root := NewObject("", "", KindFolder)
	root.Path = ""
	return root
}

func genObjectID() string {
	return uuid.Must(uuid.NewV7()).String()
}
