package nbt

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

const maxStringLen = math.MaxUint16

// Encoder writes values in the binary NBT format to an output stream.
type Encoder struct {
	w    io.Writer
	opts []Option
}

// NewEncoder returns a new encoder that writes to w.
//
// By default the root is written as (tag, empty name, payload) without
// compression. RootName, Unnamed and Compress change the framing.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	return &Encoder{w: w, opts: opts}
}

// Encode writes v as a root value. When compression is enabled the
// compressed stream is finished before Encode returns, on success and on
// failure alike; the underlying writer is never closed.
func (e *Encoder) Encode(v Value) (err error) {
	o, err := newOptions(e.opts)
	if err != nil {
		return err
	}
	if v == nil || v.Tag() == TagEnd {
		return ErrEndValue
	}

	cw, err := compressWriter(e.w, o.compression)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := cw.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("nbt: finishing %s stream: %w", o.compression, cerr)
		}
	}()

	es := &encodeState{w: bufio.NewWriter(cw), depth: o.maxDepth}
	es.writeTag(v.Tag())
	if !o.unnamed {
		es.writeString(o.rootName)
	}
	es.writePayload(v)
	if es.err != nil {
		return es.err
	}
	return es.w.Flush()
}

// encodeState carries the first write error; once set, every later write
// is a no-op.
type encodeState struct {
	w       *bufio.Writer
	err     error
	depth   int
	scratch [8]byte
}

func (es *encodeState) write(p []byte) {
	if es.err != nil {
		return
	}
	_, es.err = es.w.Write(p)
}

func (es *encodeState) writeTag(t Tag) {
	if es.err != nil {
		return
	}
	es.err = es.w.WriteByte(byte(t))
}

func (es *encodeState) writeInt8(v int8) {
	if es.err != nil {
		return
	}
	es.err = es.w.WriteByte(byte(v))
}

func (es *encodeState) writeUint16(v uint16) {
	binary.BigEndian.PutUint16(es.scratch[:2], v)
	es.write(es.scratch[:2])
}

func (es *encodeState) writeUint32(v uint32) {
	binary.BigEndian.PutUint32(es.scratch[:4], v)
	es.write(es.scratch[:4])
}

func (es *encodeState) writeUint64(v uint64) {
	binary.BigEndian.PutUint64(es.scratch[:8], v)
	es.write(es.scratch[:8])
}

// writeLength writes an element count as a signed 32-bit integer.
func (es *encodeState) writeLength(n int) {
	if n > math.MaxInt32 {
		es.fail(fmt.Errorf("nbt: length %d does not fit in 32 bits", n))
		return
	}
	es.writeUint32(uint32(n))
}

// writeString writes the unsigned 16-bit byte length followed by the UTF-8
// bytes of s.
func (es *encodeState) writeString(s string) {
	if len(s) > maxStringLen {
		es.fail(fmt.Errorf("%w: length %d", ErrStringTooLong, len(s)))
		return
	}
	es.writeUint16(uint16(len(s)))
	if es.err != nil {
		return
	}
	_, es.err = es.w.WriteString(s)
}

func (es *encodeState) fail(err error) {
	if es.err == nil {
		es.err = err
	}
}

func (es *encodeState) writePayload(v Value) {
	switch x := v.(type) {
	case Byte:
		es.writeInt8(int8(x))
	case Short:
		es.writeUint16(uint16(x))
	case Int:
		es.writeUint32(uint32(x))
	case Long:
		es.writeUint64(uint64(x))
	case Float:
		es.writeUint32(math.Float32bits(float32(x)))
	case Double:
		es.writeUint64(math.Float64bits(float64(x)))
	case String:
		es.writeString(string(x))
	case *ByteArray:
		es.writeLength(len(x.data))
		es.write(x.data)
	case *IntArray:
		es.writeLength(len(x.data))
		for _, n := range x.data {
			es.writeUint32(uint32(n))
		}
	case *LongArray:
		es.writeLength(len(x.data))
		for _, n := range x.data {
			es.writeUint64(uint64(n))
		}
	case *List:
		if !es.enter() {
			return
		}
		defer es.leave()
		es.writeTag(x.elem)
		es.writeLength(len(x.items))
		for _, e := range x.items {
			if es.err != nil {
				return
			}
			es.writePayload(e)
		}
	case *Compound:
		if !es.enter() {
			return
		}
		defer es.leave()
		for _, k := range x.keys {
			if es.err != nil {
				return
			}
			e := x.m[k]
			es.writeTag(e.Tag())
			es.writeString(k)
			es.writePayload(e)
		}
		es.writeTag(TagEnd)
	default:
		es.fail(ErrEndValue)
	}
}

func (es *encodeState) enter() bool {
	if es.err != nil {
		return false
	}
	es.depth--
	if es.depth < 0 {
		es.fail(fmt.Errorf("nbt: maximum nesting depth exceeded while encoding"))
		return false
	}
	return true
}

func (es *encodeState) leave() { es.depth++ }
