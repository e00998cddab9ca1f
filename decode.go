package nbt

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// Decoder reads values in the binary NBT format from an input stream.
//
// Before the first value is read the decoder peeks at the head of the
// stream. Input produced by gzip, zstd or LZ4 is decompressed on the fly, so
// callers never need to know whether a file was compressed.
type Decoder struct {
	r    io.Reader
	opts []Option

	ds          *decodeState
	compression Compression
	release     func()
}

// NewDecoder returns a new decoder that reads from r.
//
// The decoder buffers data from r. It is the caller's responsibility to
// close r if required; Close only releases the decompressor.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	return &Decoder{r: r, opts: opts}
}

func (d *Decoder) init() error {
	if d.ds != nil {
		return nil
	}
	if d.r == nil {
		return fmt.Errorf("nbt: Decode(nil reader)")
	}
	o, err := newOptions(d.opts)
	if err != nil {
		return err
	}

	br := bufio.NewReader(d.r)
	c := sniff(br)
	src, release, err := decompressReader(br, c)
	if err != nil {
		return err
	}
	if c != CompressionNone {
		br = bufio.NewReader(src)
	}
	d.compression = c
	d.release = release
	d.ds = &decodeState{r: br, maxDepth: o.maxDepth, unnamed: o.unnamed}
	return nil
}

// Compression reports the compression detected at the head of the stream.
func (d *Decoder) Compression() (Compression, error) {
	if err := d.init(); err != nil {
		return CompressionNone, err
	}
	return d.compression, nil
}

// Decode reads the next root value, discarding its name.
func (d *Decoder) Decode() (Value, error) {
	_, v, err := d.DecodeNamed()
	return v, err
}

// DecodeNamed reads the next root value and returns it with its name. With
// the Unnamed option the name is always empty.
//
// At the end of the input DecodeNamed returns io.EOF. A stream that ends in
// the middle of a value yields a *FormatError wrapping io.ErrUnexpectedEOF;
// a partially read tree is never returned.
func (d *Decoder) DecodeNamed() (string, Value, error) {
	if err := d.init(); err != nil {
		return "", nil, err
	}
	ds := d.ds
	ds.depth = ds.maxDepth

	if _, err := ds.r.Peek(1); err == io.EOF {
		return "", nil, io.EOF
	}
	tag, err := ds.readTag()
	if err != nil {
		return "", nil, err
	}
	if tag == TagEnd {
		return "", nil, ds.fail(ds.off-1, "END tag in value position", ErrEndValue)
	}
	var name string
	if !ds.unnamed {
		if name, err = ds.readString(); err != nil {
			return "", nil, err
		}
	}
	v, err := ds.readPayload(tag)
	if err != nil {
		return "", nil, err
	}
	return name, v, nil
}

// LongStrings reports how many strings longer than 32767 bytes the decoder
// has read so far. They are valid, but readers that treat the length prefix
// as signed cannot load them.
func (d *Decoder) LongStrings() int {
	if d.ds == nil {
		return 0
	}
	return d.ds.longStrings
}

// Close releases the decompressor, if one was started. It does not close
// the underlying reader.
func (d *Decoder) Close() error {
	if d.release != nil {
		d.release()
		d.release = nil
	}
	return nil
}

type decodeState struct {
	r        *bufio.Reader
	off      int64
	depth    int
	maxDepth int
	unnamed  bool
	scratch  [8]byte

	longStrings int
}

func (ds *decodeState) fail(off int64, msg string, err error) error {
	return &FormatError{Offset: off, Msg: msg, Err: err}
}

// readFull fills p. Running out of input is reported as io.ErrUnexpectedEOF
// inside a *FormatError; any other error from the reader is returned as is.
func (ds *decodeState) readFull(p []byte) error {
	n, err := io.ReadFull(ds.r, p)
	ds.off += int64(n)
	return ds.wrapEOF(err)
}

func (ds *decodeState) wrapEOF(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ds.fail(ds.off, "unexpected end of stream", io.ErrUnexpectedEOF)
	}
	return err
}

// readBytes reads n bytes. The buffer grows with the data actually
// received, so a corrupt length cannot force a huge allocation up front.
func (ds *decodeState) readBytes(n int64) ([]byte, error) {
	if n <= 1<<16 {
		p := make([]byte, n)
		if err := ds.readFull(p); err != nil {
			return nil, err
		}
		return p, nil
	}
	var buf bytes.Buffer
	m, err := io.CopyN(&buf, ds.r, n)
	ds.off += m
	if err != nil {
		return nil, ds.wrapEOF(err)
	}
	return buf.Bytes(), nil
}

func (ds *decodeState) readTag() (Tag, error) {
	b, err := ds.r.ReadByte()
	if err != nil {
		return 0, ds.wrapEOF(err)
	}
	ds.off++
	t := Tag(b)
	if !t.Valid() {
		return 0, ds.fail(ds.off-1, fmt.Sprintf("invalid tag 0x%02x", b), nil)
	}
	return t, nil
}

func (ds *decodeState) readUint16() (uint16, error) {
	if err := ds.readFull(ds.scratch[:2]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(ds.scratch[:2]), nil
}

func (ds *decodeState) readUint32() (uint32, error) {
	if err := ds.readFull(ds.scratch[:4]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(ds.scratch[:4]), nil
}

func (ds *decodeState) readUint64() (uint64, error) {
	if err := ds.readFull(ds.scratch[:8]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(ds.scratch[:8]), nil
}

// readLength reads a signed 32-bit element count and rejects negative ones.
func (ds *decodeState) readLength() (int, error) {
	n, err := ds.readUint32()
	if err != nil {
		return 0, err
	}
	if int32(n) < 0 {
		return 0, ds.fail(ds.off-4, fmt.Sprintf("negative length %d", int32(n)), nil)
	}
	return int(int32(n)), nil
}

// readString reads an unsigned 16-bit byte length and that many bytes.
func (ds *decodeState) readString() (string, error) {
	n, err := ds.readUint16()
	if err != nil {
		return "", err
	}
	if n > math.MaxInt16 {
		ds.longStrings++
	}
	p, err := ds.readBytes(int64(n))
	if err != nil {
		return "", err
	}
	return string(p), nil
}

func (ds *decodeState) enter() error {
	ds.depth--
	if ds.depth < 0 {
		return ds.fail(ds.off, "maximum nesting depth exceeded", nil)
	}
	return nil
}

func (ds *decodeState) leave() { ds.depth++ }

func (ds *decodeState) readPayload(tag Tag) (Value, error) { //nolint:gocyclo
	switch tag {
	case TagByte:
		b, err := ds.r.ReadByte()
		if err != nil {
			return nil, ds.wrapEOF(err)
		}
		ds.off++
		return Byte(int8(b)), nil
	case TagShort:
		n, err := ds.readUint16()
		return Short(int16(n)), err
	case TagInt:
		n, err := ds.readUint32()
		return Int(int32(n)), err
	case TagLong:
		n, err := ds.readUint64()
		return Long(int64(n)), err
	case TagFloat:
		n, err := ds.readUint32()
		return Float(math.Float32frombits(n)), err
	case TagDouble:
		n, err := ds.readUint64()
		return Double(math.Float64frombits(n)), err
	case TagString:
		s, err := ds.readString()
		return String(s), err
	case TagByteArray:
		n, err := ds.readLength()
		if err != nil {
			return nil, err
		}
		p, err := ds.readBytes(int64(n))
		if err != nil {
			return nil, err
		}
		return &ByteArray{data: p}, nil
	case TagIntArray:
		n, err := ds.readLength()
		if err != nil {
			return nil, err
		}
		p, err := ds.readBytes(int64(n) * 4)
		if err != nil {
			return nil, err
		}
		data := make([]int32, n)
		for i := range data {
			data[i] = int32(binary.BigEndian.Uint32(p[i*4:]))
		}
		return &IntArray{data: data}, nil
	case TagLongArray:
		n, err := ds.readLength()
		if err != nil {
			return nil, err
		}
		p, err := ds.readBytes(int64(n) * 8)
		if err != nil {
			return nil, err
		}
		data := make([]int64, n)
		for i := range data {
			data[i] = int64(binary.BigEndian.Uint64(p[i*8:]))
		}
		return &LongArray{data: data}, nil
	case TagList:
		return ds.readList()
	case TagCompound:
		return ds.readCompound()
	default:
		return nil, ds.fail(ds.off, "END tag in value position", ErrEndValue)
	}
}

func (ds *decodeState) readList() (Value, error) {
	if err := ds.enter(); err != nil {
		return nil, err
	}
	defer ds.leave()

	elem, err := ds.readTag()
	if err != nil {
		return nil, err
	}
	n, err := ds.readLength()
	if err != nil {
		return nil, err
	}
	if elem == TagEnd && n > 0 {
		return nil, ds.fail(ds.off-5, fmt.Sprintf("list of END with %d elements", n), ErrEndValue)
	}
	l := &List{elem: elem, items: make([]Value, 0, min(n, 1024))}
	for range n {
		v, err := ds.readPayload(elem)
		if err != nil {
			return nil, err
		}
		l.items = append(l.items, v)
	}
	return l, nil
}

func (ds *decodeState) readCompound() (Value, error) {
	if err := ds.enter(); err != nil {
		return nil, err
	}
	defer ds.leave()

	c := NewCompound()
	for {
		tag, err := ds.readTag()
		if err != nil {
			return nil, err
		}
		if tag == TagEnd {
			return c, nil
		}
		name, err := ds.readString()
		if err != nil {
			return nil, err
		}
		v, err := ds.readPayload(tag)
		if err != nil {
			return nil, err
		}
		// Duplicate names overwrite.
		if err := c.Set(name, v); err != nil {
			return nil, err
		}
	}
}
