// Package nbt decodes serialized tag trees from chunk data incrementally.
// A streaming visitor walk lets callers pull specific values or sections
// out of a chunk without holding the whole decoded structure, and early
// termination makes partial extraction cheap.
package nbt

// TagType identifies the kind of a tag node.
type TagType byte

const (
	TypeEnd TagType = iota
	TypeByte
	TypeShort
	TypeInt
	TypeLong
	TypeFloat
	TypeDouble
	TypeByteArray
	TypeString
	TypeList
	TypeCompound
	TypeIntArray
	TypeLongArray
)

// String returns the conventional tag type name
func (t TagType) String() string {
	switch t {
	case TypeEnd:
		return "TAG_End"
	case TypeByte:
		return "TAG_Byte"
	case TypeShort:
		return "TAG_Short"
	case TypeInt:
		return "TAG_Int"
	case TypeLong:
		return "TAG_Long"
	case TypeFloat:
		return "TAG_Float"
	case TypeDouble:
		return "TAG_Double"
	case TypeByteArray:
		return "TAG_Byte_Array"
	case TypeString:
		return "TAG_String"
	case TypeList:
		return "TAG_List"
	case TypeCompound:
		return "TAG_Compound"
	case TypeIntArray:
		return "TAG_Int_Array"
	case TypeLongArray:
		return "TAG_Long_Array"
	default:
		return "TAG_Unknown"
	}
}

// Tag is one node of a decoded tag tree: a compound (ordered named
// children), a list (ordered unnamed elements of one type), or a leaf
// with a primitive payload.
type Tag struct {
	Type TagType
	Name string

	// Value holds the leaf payload: int8, int16, int32, int64, float32,
	// float64, string, []byte, []int32 or []int64 depending on Type.
	Value any

	// Children holds compound members or list elements in decode order.
	Children []*Tag

	// ElemType is the element type of a list.
	ElemType TagType
}

// Child returns the named direct child of a compound, or nil.
func (t *Tag) Child(name string) *Tag {
	for _, c := range t.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// GetString returns the string payload of a named child leaf.
func (t *Tag) GetString(name string) (string, bool) {
	c := t.Child(name)
	if c == nil || c.Type != TypeString {
		return "", false
	}
	s, ok := c.Value.(string)
	return s, ok
}

// GetInt returns the int payload of a named child leaf.
func (t *Tag) GetInt(name string) (int32, bool) {
	c := t.Child(name)
	if c == nil || c.Type != TypeInt {
		return 0, false
	}
	v, ok := c.Value.(int32)
	return v, ok
}

// GetLong returns the long payload of a named child leaf.
func (t *Tag) GetLong(name string) (int64, bool) {
	c := t.Child(name)
	if c == nil || c.Type != TypeLong {
		return 0, false
	}
	v, ok := c.Value.(int64)
	return v, ok
}

// GetByteArray returns the byte-array payload of a named child leaf.
func (t *Tag) GetByteArray(name string) ([]byte, bool) {
	c := t.Child(name)
	if c == nil || c.Type != TypeByteArray {
		return nil, false
	}
	b, ok := c.Value.([]byte)
	return b, ok
}
