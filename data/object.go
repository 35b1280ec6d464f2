package data

import (
	"maps"
	"time"
)

// Object is a single entity in the managed inventory, e.g. a host or a
// virtual machine. Path is the slash separated location below the root
// without a leading slash; the root itself has an empty path.
type Object struct {
	ID         string            `json:"id"`
	Kind       Kind              `json:"kind"`
	Name       string            `json:"name"`
	Path       string            `json:"path"`
	Attributes map[string]string `json:"attributes,omitempty"`
	CreateTime time.Time         `json:"create_time"`
	ModifyTime time.Time         `json:"modify_time"`
}

// ParentLeaf pairs a resolved parent object with an unresolved leaf name.
type ParentLeaf struct {
	Parent *Object
	Leaf   string
}

// Parent returns the path of the containing object.
func (o *Object) Parent() string {
	parent, _ := SplitPath(o.Path)
	if parent == "." || parent == "/" {
		return ""
	}

	return parent
}

// IsRoot reports whether o is the inventory root.
func (o *Object) IsRoot() bool {
	return o.Path == ""
}

// Attribute returns the attribute value or defaultValue when unset.
func (o *Object) Attribute(key, defaultValue string) string {
	if value, exists := o.Attributes[key]; exists {
		return value
	}

	return defaultValue
}

// SetAttribute sets an attribute, initializing the map if needed.
func (o *Object) SetAttribute(key, value string) {
	if o.Attributes == nil {
		o.Attributes = make(map[string]string)
	}

	o.Attributes[key] = value
	o.ModifyTime = time.Now()
}

// Clone returns a deep copy so callers never share attribute maps with a backend.
func (o *Object) Clone() *Object {
	clone := *o
	clone.Attributes = maps.Clone(o.Attributes)
	return &clone
}

// String returns the absolute path of the object.
func (o *Object) String() string {
	return "/" + o.Path
}
