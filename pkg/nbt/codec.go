package nbt

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/voxelmesh/chunkstore/pkg/pools"
)

// maxDepth bounds tag nesting so a malformed stream cannot blow the stack
const maxDepth = 512

// allocStep bounds how much memory a single length prefix can reserve
// before any payload byte backs it; a forged length then fails on the
// short read instead of demanding the claimed size up front.
const allocStep = 1 << 20

// readNamedTag decodes one named tag, payload included. A TypeEnd marker
// is returned as a bare end tag with no name or payload.
func readNamedTag(r *bufio.Reader, depth int) (*Tag, error) {
	typeByte, err := r.ReadByte()
	if err != nil {
		return nil, decodeErr("read type", TypeEnd, "", err)
	}

	t := TagType(typeByte)
	if t == TypeEnd {
		return &Tag{Type: TypeEnd}, nil
	}
	if t > TypeLongArray {
		return nil, decodeErr("read type", t, "", fmt.Errorf("%w: unknown tag type %d", ErrMalformed, typeByte))
	}

	name, err := readString(r)
	if err != nil {
		return nil, decodeErr("read name", t, "", err)
	}

	tag := &Tag{Type: t, Name: name}
	if err := readPayload(r, tag, depth); err != nil {
		return nil, err
	}
	return tag, nil
}

// readPayload decodes the payload for tag.Type into tag.
func readPayload(r *bufio.Reader, tag *Tag, depth int) error {
	if depth > maxDepth {
		return decodeErr("read payload", tag.Type, tag.Name, ErrTooDeep)
	}

	switch tag.Type {
	case TypeByte:
		var v int8
		if err := binary.Read(r, binary.BigEndian, &v); err != nil {
			return decodeErr("read payload", tag.Type, tag.Name, err)
		}
		tag.Value = v

	case TypeShort:
		var v int16
		if err := binary.Read(r, binary.BigEndian, &v); err != nil {
			return decodeErr("read payload", tag.Type, tag.Name, err)
		}
		tag.Value = v

	case TypeInt:
		var v int32
		if err := binary.Read(r, binary.BigEndian, &v); err != nil {
			return decodeErr("read payload", tag.Type, tag.Name, err)
		}
		tag.Value = v

	case TypeLong:
		var v int64
		if err := binary.Read(r, binary.BigEndian, &v); err != nil {
			return decodeErr("read payload", tag.Type, tag.Name, err)
		}
		tag.Value = v

	case TypeFloat:
		var v float32
		if err := binary.Read(r, binary.BigEndian, &v); err != nil {
			return decodeErr("read payload", tag.Type, tag.Name, err)
		}
		tag.Value = v

	case TypeDouble:
		var v float64
		if err := binary.Read(r, binary.BigEndian, &v); err != nil {
			return decodeErr("read payload", tag.Type, tag.Name, err)
		}
		tag.Value = v

	case TypeByteArray:
		n, err := readLength(r)
		if err != nil {
			return decodeErr("read length", tag.Type, tag.Name, err)
		}
		data, err := readArrayBytes(r, n)
		if err != nil {
			return decodeErr("read payload", tag.Type, tag.Name, err)
		}
		tag.Value = data

	case TypeString:
		s, err := readString(r)
		if err != nil {
			return decodeErr("read payload", tag.Type, tag.Name, err)
		}
		tag.Value = s

	case TypeList:
		elemByte, err := r.ReadByte()
		if err != nil {
			return decodeErr("read list type", tag.Type, tag.Name, err)
		}
		elemType := TagType(elemByte)
		n, err := readLength(r)
		if err != nil {
			return decodeErr("read length", tag.Type, tag.Name, err)
		}
		if elemType == TypeEnd && n > 0 {
			return decodeErr("read list", tag.Type, tag.Name,
				fmt.Errorf("%w: non-empty list of end tags", ErrMalformed))
		}
		if elemType > TypeLongArray {
			return decodeErr("read list", tag.Type, tag.Name,
				fmt.Errorf("%w: unknown element type %d", ErrMalformed, elemByte))
		}
		tag.ElemType = elemType
		tag.Children = make([]*Tag, 0, minInt(n, allocStep/8))
		for i := 0; i < n; i++ {
			elem := &Tag{Type: elemType}
			if err := readPayload(r, elem, depth+1); err != nil {
				return err
			}
			tag.Children = append(tag.Children, elem)
		}

	case TypeCompound:
		for {
			child, err := readNamedTag(r, depth+1)
			if err != nil {
				return err
			}
			if child.Type == TypeEnd {
				break
			}
			tag.Children = append(tag.Children, child)
		}

	case TypeIntArray:
		n, err := readLength(r)
		if err != nil {
			return decodeErr("read length", tag.Type, tag.Name, err)
		}
		raw, err := readArrayBytes(r, n*4)
		if err != nil {
			return decodeErr("read payload", tag.Type, tag.Name, err)
		}
		vals := make([]int32, n)
		for i := range vals {
			vals[i] = int32(binary.BigEndian.Uint32(raw[i*4:]))
		}
		tag.Value = vals

	case TypeLongArray:
		n, err := readLength(r)
		if err != nil {
			return decodeErr("read length", tag.Type, tag.Name, err)
		}
		raw, err := readArrayBytes(r, n*8)
		if err != nil {
			return decodeErr("read payload", tag.Type, tag.Name, err)
		}
		vals := make([]int64, n)
		for i := range vals {
			vals[i] = int64(binary.BigEndian.Uint64(raw[i*8:]))
		}
		tag.Value = vals

	default:
		return decodeErr("read payload", tag.Type, tag.Name,
			fmt.Errorf("%w: unexpected tag type", ErrMalformed))
	}

	return nil
}

// readArrayBytes reads exactly n bytes, growing the buffer in allocStep
// increments so each step is backed by real payload before the next one
// is reserved.
func readArrayBytes(r *bufio.Reader, n int) ([]byte, error) {
	buf := make([]byte, 0, minInt(n, allocStep))
	for len(buf) < n {
		k := minInt(n-len(buf), allocStep)
		start := len(buf)
		buf = append(buf, make([]byte, k)...)
		if _, err := io.ReadFull(r, buf[start:]); err != nil {
			return nil, err
		}
	}
	return buf, nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// readString decodes a length-prefixed UTF-8 string, using pooled scratch
// buffers to keep name decoding allocation-free.
func readString(r *bufio.Reader) (string, error) {
	var n uint16
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}

	buf := pools.GetBytesSized(int(n))
	defer pools.PutBytes(buf)

	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// readLength decodes a signed 32-bit element count, rejecting negatives.
func readLength(r *bufio.Reader) (int, error) {
	var n int32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %d", ErrNegativeLen, n)
	}
	return int(n), nil
}
