package hashid

import (
	"encoding/xml"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/zoobzio/sentinel"
)

// TagName is the struct tag that marks a field for transformation.
const TagName = "hashid"

func init() {
	sentinel.Tag(TagName)
}

var xmlNameType = reflect.TypeFor[xml.Name]()

// fieldAction selects how a field moves between a record and its mirror.
type fieldAction uint8

const (
	actionCopy      fieldAction = iota // same type on both sides
	actionTransform                    // marked field, dispatched through the codec
	actionNested                       // struct containing marked fields
	actionNestedPtr                    // pointer to such a struct
)

// fieldPlan describes how to move a single field.
type fieldPlan struct {
	src    int // field index in the record struct
	dst    int // field index in the mirror struct
	action fieldAction
	desc   FieldDescriptor // actionTransform only
	nested *structPlan     // actionNested and actionNestedPtr only
}

// structPlan pairs a record type with its mirror: the same struct with every
// marked field retyped to its wire type. Plans are immutable once built.
type structPlan struct {
	typ         reflect.Type
	mirror      reflect.Type
	typeName    string
	fields      []fieldPlan
	descriptors []FieldDescriptor // every marked field, depth first
}

var planCache sync.Map // reflect.Type -> *structPlan

// getOrBuildPlan returns the cached plan for T, building it on first use.
// Failed builds are not cached.
func getOrBuildPlan[T any]() (*structPlan, error) {
	rt := reflect.TypeFor[T]()
	if cached, ok := planCache.Load(rt); ok {
		return cached.(*structPlan), nil
	}
	if rt.Kind() != reflect.Struct {
		return nil, &TypeError{Field: "", Type: rt, Reason: "records must be structs"}
	}

	meta := sentinel.Scan[T]()
	plan, err := buildPlan(meta, rt, "", true, map[reflect.Type]bool{})
	if err != nil {
		return nil, err
	}
	actual, _ := planCache.LoadOrStore(rt, plan)
	return actual.(*structPlan), nil
}

// buildPlan plans rt, whose tag metadata is meta. root controls whether the
// mirror gets an XMLName naming the element after rt.
func buildPlan(meta sentinel.Metadata, rt reflect.Type, prefix string, root bool, visiting map[reflect.Type]bool) (*structPlan, error) {
	visiting[rt] = true
	defer delete(visiting, rt)

	plan := &structPlan{typ: rt, typeName: meta.TypeName}
	if plan.typeName == "" {
		plan.typeName = rt.Name()
	}
	tags := tagIndex(meta)

	var mirrorFields []reflect.StructField
	if root {
		if sf, ok := xmlRoot(rt); ok {
			mirrorFields = append(mirrorFields, sf)
		}
	}

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		path := prefix + sf.Name

		if !sf.IsExported() {
			if sf.Anonymous && structTarget(sf.Type) != nil && hasMarks(sf.Type, map[reflect.Type]bool{}) {
				return nil, &TypeError{Field: path, Type: sf.Type, Reason: "marked fields in embedded unexported structs are not supported"}
			}
			continue
		}

		marked, err := isMarked(tags, sf, path)
		if err != nil {
			return nil, err
		}

		fp := fieldPlan{src: i, dst: len(mirrorFields), action: actionCopy}
		mirrorType := sf.Type

		switch {
		case marked:
			desc, err := describe(sf.Name, path, sf.Type)
			if err != nil {
				return nil, err
			}
			fp.action = actionTransform
			fp.desc = desc
			mirrorType = desc.WireType()
			plan.descriptors = append(plan.descriptors, desc)

		case structTarget(sf.Type) != nil && hasMarks(structTarget(sf.Type), map[reflect.Type]bool{}):
			target := structTarget(sf.Type)
			if visiting[target] {
				return nil, &TypeError{Field: path, Type: sf.Type, Reason: "recursive types with marked fields are not supported"}
			}
			nested, err := buildPlan(*scanNestedType(target), target, path+".", false, visiting)
			if err != nil {
				return nil, err
			}
			fp.nested = nested
			if sf.Type.Kind() == reflect.Pointer {
				fp.action = actionNestedPtr
				mirrorType = reflect.PointerTo(nested.mirror)
			} else {
				fp.action = actionNested
				mirrorType = nested.mirror
			}
			plan.descriptors = append(plan.descriptors, nested.descriptors...)

		case hasMarks(sf.Type, map[reflect.Type]bool{}):
			return nil, &TypeError{Field: path, Type: sf.Type, Reason: "marked fields inside slices, arrays or maps are not supported"}
		}

		plan.fields = append(plan.fields, fp)
		mirrorFields = append(mirrorFields, reflect.StructField{
			Name:      sf.Name,
			Type:      mirrorType,
			Tag:       sf.Tag,
			Anonymous: sf.Anonymous,
		})
	}

	mirror, err := structOf(mirrorFields)
	if err != nil {
		return nil, &TypeError{Field: strings.TrimSuffix(prefix, "."), Type: rt, Reason: err.Error()}
	}
	plan.mirror = mirror
	return plan, nil
}

// structOf wraps reflect.StructOf, which panics on layouts it cannot
// synthesize (e.g. some embedded types with methods).
func structOf(fields []reflect.StructField) (t reflect.Type, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cannot build wire struct: %v", r)
		}
	}()
	return reflect.StructOf(fields), nil
}

// xmlRoot returns an XMLName field naming the XML root element after rt,
// unless rt declares its own. Other codecs ignore it.
func xmlRoot(rt reflect.Type) (reflect.StructField, bool) {
	if _, ok := directField(rt, "XMLName"); ok {
		return reflect.StructField{}, false
	}
	name := rt.Name()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	if name == "" {
		return reflect.StructField{}, false
	}
	return reflect.StructField{
		Name: "XMLName",
		Type: xmlNameType,
		Tag:  reflect.StructTag(`xml:"` + name + `" json:"-" yaml:"-" msgpack:"-" bson:"-"`),
	}, true
}

// directField finds a field declared on rt itself, ignoring promoted fields.
func directField(rt reflect.Type, name string) (reflect.StructField, bool) {
	for i := 0; i < rt.NumField(); i++ {
		if sf := rt.Field(i); sf.Name == name {
			return sf, true
		}
	}
	return reflect.StructField{}, false
}

// structTarget returns the struct type behind t for struct and
// pointer-to-struct fields, or nil.
func structTarget(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct || t == uint128Type {
		return nil
	}
	return t
}

// tagIndex maps field names to hashid tag values from scanned metadata.
func tagIndex(meta sentinel.Metadata) map[string]string {
	idx := make(map[string]string)
	for _, f := range meta.Fields {
		if val, ok := f.Tags[TagName]; ok {
			idx[f.Name] = val
		}
	}
	return idx
}

// isMarked reports whether sf carries a marking hashid tag.
func isMarked(tags map[string]string, sf reflect.StructField, path string) (bool, error) {
	val, ok := tags[sf.Name]
	if !ok {
		val, ok = sf.Tag.Lookup(TagName)
	}
	if !ok {
		return false, nil
	}
	return parseTag(val, path)
}

// parseTag interprets a hashid tag value.
func parseTag(val, path string) (bool, error) {
	switch val {
	case "", "true":
		return true, nil
	case "-", "false":
		return false, nil
	}
	return false, fmt.Errorf("%w %q (field %s)", ErrInvalidTag, val, path)
}

// hasMarks reports whether t, or anything reachable from it through
// structs, pointers, slices, arrays and maps, has a marked field.
// Invalid tag values count as marks so they surface as errors later.
func hasMarks(t reflect.Type, seen map[reflect.Type]bool) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Array:
		return hasMarks(t.Elem(), seen)
	case reflect.Map:
		return hasMarks(t.Key(), seen) || hasMarks(t.Elem(), seen)
	case reflect.Struct:
	default:
		return false
	}

	if seen[t] {
		return false
	}
	seen[t] = true

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() && !sf.Anonymous {
			continue
		}
		if val, ok := sf.Tag.Lookup(TagName); ok && val != "-" && val != "false" {
			return true
		}
		if hasMarks(sf.Type, seen) {
			return true
		}
	}
	return false
}

// scanNestedType returns tag metadata for a nested struct type, from the
// sentinel registry when available and by reflection otherwise.
func scanNestedType(rt reflect.Type) *sentinel.Metadata {
	if meta, ok := sentinel.Lookup(rt.String()); ok {
		return &meta
	}

	meta := sentinel.Metadata{
		TypeName:    rt.Name(),
		PackageName: rt.PkgPath(),
		Fields:      make([]sentinel.FieldMetadata, 0, rt.NumField()),
	}

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		fm := sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			ReflectType: sf.Type,
			Index:       sf.Index,
			Tags:        map[string]string{},
		}
		if val, ok := sf.Tag.Lookup(TagName); ok {
			fm.Tags[TagName] = val
		}

		switch sf.Type.Kind() {
		case reflect.Struct:
			fm.Kind = sentinel.KindStruct
		case reflect.Pointer:
			fm.Kind = sentinel.KindPointer
		case reflect.Slice, reflect.Array:
			fm.Kind = sentinel.KindSlice
		case reflect.Map:
			fm.Kind = sentinel.KindMap
		case reflect.Interface:
			fm.Kind = sentinel.KindInterface
		default:
			fm.Kind = sentinel.KindScalar
		}

		meta.Fields = append(meta.Fields, fm)
	}

	return &meta
}

// encodeStruct fills dst (a mirror value) from src (a record value).
func (p *structPlan) encodeStruct(nc *NumericCodec, src, dst reflect.Value) error {
	for _, fp := range p.fields {
		sv, dv := src.Field(fp.src), dst.Field(fp.dst)
		switch fp.action {
		case actionCopy:
			dv.Set(sv)
		case actionTransform:
			if err := nc.encodeField(fp.desc, sv, dv); err != nil {
				return err
			}
		case actionNested:
			if err := fp.nested.encodeStruct(nc, sv, dv); err != nil {
				return err
			}
		case actionNestedPtr:
			if sv.IsNil() {
				continue
			}
			m := reflect.New(fp.nested.mirror)
			if err := fp.nested.encodeStruct(nc, sv.Elem(), m.Elem()); err != nil {
				return err
			}
			dv.Set(m)
		}
	}
	return nil
}

// decodeStruct fills dst (a record value) from src (a mirror value).
func (p *structPlan) decodeStruct(nc *NumericCodec, src, dst reflect.Value) error {
	for _, fp := range p.fields {
		sv, dv := src.Field(fp.dst), dst.Field(fp.src)
		switch fp.action {
		case actionCopy:
			dv.Set(sv)
		case actionTransform:
			if err := nc.decodeField(fp.desc, sv, dv); err != nil {
				return err
			}
		case actionNested:
			if err := fp.nested.decodeStruct(nc, sv, dv); err != nil {
				return err
			}
		case actionNestedPtr:
			if sv.IsNil() {
				continue
			}
			r := reflect.New(fp.nested.typ)
			if err := fp.nested.decodeStruct(nc, sv.Elem(), r.Elem()); err != nil {
				return err
			}
			dv.Set(r)
		}
	}
	return nil
}
