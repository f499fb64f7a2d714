package typing

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/mash-protocol/mash-proxy/pkg/wire"
)

// Typing errors.
var (
	ErrInvalidTypeInfo   = errors.New("invalid type info")
	ErrAlreadyRegistered = errors.New("type already registered")
	ErrTypeMismatch      = errors.New("type mismatch")
	ErrMissingMember     = errors.New("missing required member")
	ErrAugment           = errors.New("type augmentation failed")
)

// Typed is implemented by values that know their declared type name.
type Typed interface {
	TypeName() string
}

// PropertyChecker validates one member of a value against its declared type.
type PropertyChecker func(value any, expectedType string, property string) error

// TypeInfo describes a registered complex type.
type TypeInfo struct {
	// Name is the declared type name.
	Name string

	// New returns a pointer to a fresh zero value of the type. It is used
	// to decode raw values and to index the Go type for TypeNameOf.
	// Optional.
	New func() any

	// CheckMembers validates the members of a value of this type. When New
	// is set the value is always passed as a pointer to the registered Go
	// type, even if the caller supplied a value of the type itself.
	// Optional.
	CheckMembers func(value any, check PropertyChecker) error
}

// Registry maps type names to TypeInfo. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]TypeInfo
	byType map[reflect.Type]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]TypeInfo),
		byType: make(map[reflect.Type]string),
	}
}

// Register adds a type. Registering the same name twice is an error.
func (r *Registry) Register(info TypeInfo) error {
	if info.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidTypeInfo)
	}
	if IsPrimitive(info.Name) {
		return fmt.Errorf("%w: %s is a primitive", ErrInvalidTypeInfo, info.Name)
	}

	var goType reflect.Type
	if info.New != nil {
		sample := info.New()
		if sample == nil || reflect.TypeOf(sample).Kind() != reflect.Pointer {
			return fmt.Errorf("%w: New for %s must return a pointer", ErrInvalidTypeInfo, info.Name)
		}
		goType = reflect.TypeOf(sample).Elem()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[info.Name]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, info.Name)
	}
	r.byName[info.Name] = info
	if goType != nil {
		r.byType[goType] = info.Name
	}
	return nil
}

// Lookup returns the TypeInfo registered under name.
func (r *Registry) Lookup(name string) (TypeInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.byName[name]
	return info, ok
}

// TypeNameOf returns the declared type name of v. Values implementing Typed
// report their own name; otherwise the Go type (or the type a pointer points
// to) is looked up among registered types.
func (r *Registry) TypeNameOf(v any) (string, bool) {
	if t, ok := v.(Typed); ok {
		return t.TypeName(), true
	}
	if v == nil {
		return "", false
	}

	rt := reflect.TypeOf(v)
	r.mu.RLock()
	defer r.mu.RUnlock()
	if name, ok := r.byType[rt]; ok {
		return name, true
	}
	if rt.Kind() == reflect.Pointer {
		if name, ok := r.byType[rt.Elem()]; ok {
			return name, true
		}
	}
	return "", false
}

// Augment converts a raw decoded value into the Go representation of
// declaredType. nil stays nil. Unknown type names pass the value through
// unchanged.
func (r *Registry) Augment(raw any, declaredType string) (any, error) {
	if raw == nil {
		return nil, nil
	}

	if elemType, ok := strings.CutSuffix(declaredType, ArraySuffix); ok {
		return r.augmentArray(raw, elemType, declaredType)
	}

	if p, ok := primitives[declaredType]; ok {
		v, err := p.convert(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrAugment, err)
		}
		return v, nil
	}

	info, ok := r.Lookup(declaredType)
	if !ok || info.New == nil {
		return raw, nil
	}

	target := info.New()
	goType := reflect.TypeOf(target).Elem()
	switch rt := reflect.TypeOf(raw); {
	case rt == goType:
		return raw, nil
	case rt == reflect.PointerTo(goType):
		return reflect.ValueOf(raw).Elem().Interface(), nil
	}

	data, err := wire.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrAugment, declaredType, err)
	}
	if err := wire.Unmarshal(data, target); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrAugment, declaredType, err)
	}
	return reflect.ValueOf(target).Elem().Interface(), nil
}

func (r *Registry) augmentArray(raw any, elemType, declaredType string) (any, error) {
	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("%w: %w", ErrAugment, mismatch(declaredType, raw))
	}
	out := make([]any, rv.Len())
	for i := range out {
		v, err := r.Augment(rv.Index(i).Interface(), elemType)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// CheckMembers runs the member check registered for the type of value.
// Values without a known type name or check pass.
func (r *Registry) CheckMembers(value any) error {
	name, ok := r.TypeNameOf(value)
	if !ok {
		return nil
	}
	info, ok := r.Lookup(name)
	if !ok || info.CheckMembers == nil {
		return nil
	}
	return info.CheckMembers(asPointer(info, value), CheckPropertyIfDefined)
}

// asPointer returns value as a pointer to the registered Go type. A value
// of the type itself is copied into a fresh pointer.
func asPointer(info TypeInfo, value any) any {
	if info.New == nil {
		return value
	}
	goType := reflect.TypeOf(info.New()).Elem()
	rv := reflect.ValueOf(value)
	if rv.Type() != goType {
		return value
	}
	p := reflect.New(goType)
	p.Elem().Set(rv)
	return p.Interface()
}

// CheckPropertyIfDefined is the PropertyChecker used for write validation.
// A nil member passes. A defined member must match expectedType.
func CheckPropertyIfDefined(value any, expectedType string, property string) error {
	if IsNil(value) {
		return nil
	}
	if err := checkType(value, expectedType); err != nil {
		return fmt.Errorf("member %q: %w", property, err)
	}
	return nil
}

// CheckProperty is like CheckPropertyIfDefined but rejects nil members.
func CheckProperty(value any, expectedType string, property string) error {
	if IsNil(value) {
		return fmt.Errorf("%w: %q", ErrMissingMember, property)
	}
	return CheckPropertyIfDefined(value, expectedType, property)
}

func checkType(value any, expectedType string) error {
	if elemType, ok := strings.CutSuffix(expectedType, ArraySuffix); ok {
		rv := reflect.ValueOf(value)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return mismatch(expectedType, value)
		}
		for i := 0; i < rv.Len(); i++ {
			if err := checkType(rv.Index(i).Interface(), elemType); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
		return nil
	}
	if p, ok := primitives[expectedType]; ok {
		if !p.accepts(value) {
			return mismatch(expectedType, value)
		}
		return nil
	}
	if t, ok := value.(Typed); ok && t.TypeName() != expectedType {
		return fmt.Errorf("%w: expected %s, got %s", ErrTypeMismatch, expectedType, t.TypeName())
	}
	return nil
}

// IsNil reports whether v is nil or a nil pointer, map, slice, channel,
// function or interface.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
