package translation

import (
	"reflect"
	"strings"
)

type dirtyMarker interface {
	MarkDirty(columns ...string)
}

// Attribute is a typed get/set pair for one column of model M.
type Attribute[M any] struct {
	name string
	get  func(M) any
	set  func(M, any) error
}

// Field binds a column name to the struct field returned by ref. Setting the
// attribute marks the column dirty when M embeds a Tracker.
func Field[M any, V any](name string, ref func(M) *V) Attribute[M] {
	name = strings.TrimSpace(name)
	return Attribute[M]{
		name: name,
		get: func(model M) any {
			return *ref(model)
		},
		set: func(model M, value any) error {
			typed, ok := value.(V)
			if !ok {
				if value != nil {
					return &AttributeTypeError{
						Attribute: name,
						Expected:  reflect.TypeOf((*V)(nil)).Elem().String(),
						Got:       reflect.TypeOf(value).String(),
					}
				}
				var zero V
				typed = zero
			}
			*ref(model) = typed
			if marker, ok := any(model).(dirtyMarker); ok {
				marker.MarkDirty(name)
			}
			return nil
		},
	}
}

// Name returns the column the attribute is bound to.
func (a Attribute[M]) Name() string {
	return a.name
}

// Get reads the attribute from model.
func (a Attribute[M]) Get(model M) any {
	if a.get == nil {
		return nil
	}
	return a.get(model)
}

// Set writes value into model.
func (a Attribute[M]) Set(model M, value any) error {
	if a.set == nil {
		return &UnknownAttributeError{Attribute: a.name}
	}
	return a.set(model, value)
}

type attributeSet[M any] struct {
	order  []string
	byName map[string]Attribute[M]
}

func newAttributeSet[M any](attrs []Attribute[M]) attributeSet[M] {
	set := attributeSet[M]{
		order:  make([]string, 0, len(attrs)),
		byName: make(map[string]Attribute[M], len(attrs)),
	}
	for _, attr := range attrs {
		if attr.name == "" {
			continue
		}
		if _, exists := set.byName[attr.name]; !exists {
			set.order = append(set.order, attr.name)
		}
		set.byName[attr.name] = attr
	}
	return set
}

func (s attributeSet[M]) lookup(name string) (Attribute[M], bool) {
	attr, ok := s.byName[name]
	return attr, ok
}

func (s attributeSet[M]) has(name string) bool {
	_, ok := s.byName[name]
	return ok
}
