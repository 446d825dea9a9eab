package prefs

import "errors"

// reader reads little endian values from a blob.
type reader struct {
	buf []byte
	pos int
}

// u8 reads one byte.
func (r *reader) u8() (byte, error) {
	if r.pos+1 > len(r.buf) {
		return 0, ErrTruncated
	}

	v := r.buf[r.pos]
	r.pos++

	return v, nil
}

// u16 reads a 16-bit integer.
func (r *reader) u16() (uint16, error) {
	if r.pos+2 > len(r.buf) {
		return 0, ErrTruncated
	}

	v := readU16(r.buf[r.pos:])
	r.pos += 2

	return v, nil
}

// u32 reads a 32-bit integer.
func (r *reader) u32() (uint32, error) {
	if r.pos+4 > len(r.buf) {
		return 0, ErrTruncated
	}

	v := readU32(r.buf[r.pos:])
	r.pos += 4

	return v, nil
}

// str reads a u16 length-prefixed string.
func (r *reader) str() (string, error) {
	ln, err := r.u16()
	if err != nil {
		return "", err
	}
	if r.pos+int(ln) > len(r.buf) {
		return "", ErrTruncated
	}

	s := string(r.buf[r.pos : r.pos+int(ln)])
	r.pos += int(ln)

	return s, nil
}

// writer appends little endian values.
type writer struct {
	buf []byte
}

// u8 appends one byte.
func (w *writer) u8(v byte) {
	w.buf = append(w.buf, v)
}

// u16 appends a 16-bit integer.
func (w *writer) u16(v uint16) {
	var b [2]byte
	writeU16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// u32FromInt appends a 32-bit integer.
func (w *writer) u32FromInt(v int) error {
	var b [4]byte
	if err := writeU32FromInt(b[:], v); err != nil {
		return err
	}

	w.buf = append(w.buf, b[:]...)
	return nil
}

// str appends a u16 length-prefixed string.
func (w *writer) str(s string) error {
	if len(s) > 0xFFFF {
		return errors.New("string too long for u16 length")
	}

	w.u16(uint16(len(s)))
	w.buf = append(w.buf, s...)

	return nil
}

// readU16 reads a 16-bit integer from a byte slice.
func readU16(b []byte) uint16 {
	if len(b) < 2 {
		return 0
	}

	return uint16(b[0]) | uint16(b[1])<<8
}

// readU32 reads a 32-bit integer from a byte slice.
func readU32(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}

	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// writeU16 writes a 16-bit integer to a byte slice.
func writeU16(b []byte, v uint16) {
	if len(b) < 2 {
		return
	}

	b[0] = byte(v)
	b[1] = byte(v >> 8)
}

// writeU32FromInt writes a 32-bit integer to a byte slice.
func writeU32FromInt(b []byte, v int) error {
	if v < 0 || v > 0xFFFFFFFF {
		return errors.New("value out of uint32 range")
	}
	if len(b) < 4 {
		return errors.New("buffer too small for uint32")
	}

	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)

	return nil
}
