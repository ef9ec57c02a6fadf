package machine

import (
	"github.com/sarchlab/minirv/isa"
)

// Image is the flat memory of one run: text, data, and stack regions in a
// single bounds-checked byte array. The text region occupies the bottom of
// the image and is read-execute only; the stack grows downward from the top.
// The image size is fixed at creation, there is no implicit growth.
type Image struct {
	bytes   []byte
	textEnd uint32
}

// NewImage creates an image of the given size with an empty text region.
func NewImage(size uint32) *Image {
	return &Image{bytes: make([]byte, size)}
}

// Install copies a program to the bottom of the image and marks the first
// textLen bytes as the text region. The rest of the program is the data
// region. Installing a program that does not fit is an OutOfBounds fault.
func (im *Image) Install(program []byte, textLen uint32) error {
	if len(program) > len(im.bytes) {
		return isa.NewOutOfBounds(uint32(len(program)))
	}
	if textLen > uint32(len(program)) {
		panic("text region larger than program")
	}

	for i := range im.bytes {
		im.bytes[i] = 0
	}
	copy(im.bytes, program)
	im.textEnd = textLen

	return nil
}

// Size returns the image extent in bytes.
func (im *Image) Size() uint32 {
	return uint32(len(im.bytes))
}

// TextEnd returns the first address past the text region.
func (im *Image) TextEnd() uint32 {
	return im.textEnd
}

// ReadWord reads a little-endian word.
func (im *Image) ReadWord(addr uint32) (uint32, error) {
	if err := im.check(addr, isa.WordSize); err != nil {
		return 0, err
	}
	b := im.bytes[addr:]
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, nil
}

// WriteWord writes a little-endian word. Writes into the text region fail
// with a ProtectionViolation fault.
func (im *Image) WriteWord(addr uint32, v uint32) error {
	if err := im.check(addr, isa.WordSize); err != nil {
		return err
	}
	if addr < im.textEnd {
		return isa.NewProtectionViolation(addr)
	}
	b := im.bytes[addr:]
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
	return nil
}

// ReadByte reads a single byte.
func (im *Image) ReadByte(addr uint32) (byte, error) {
	if err := im.check(addr, 1); err != nil {
		return 0, err
	}
	return im.bytes[addr], nil
}

// WriteByte writes a single byte, with the same protection rule as
// WriteWord.
func (im *Image) WriteByte(addr uint32, v byte) error {
	if err := im.check(addr, 1); err != nil {
		return err
	}
	if addr < im.textEnd {
		return isa.NewProtectionViolation(addr)
	}
	im.bytes[addr] = v
	return nil
}

func (im *Image) check(addr uint32, n uint32) error {
	if uint64(addr)+uint64(n) > uint64(len(im.bytes)) {
		return isa.NewOutOfBounds(addr)
	}
	return nil
}
