package txtshot

import (
	"bytes"
	"fmt"
	"hash/crc32"
	"image"
	"image/png"

	"github.com/k1LoW/errors"
)

// Part is an encoded page ready to be stored.
type Part struct {
	Number   int
	Name     string
	Page     *Page
	data     []byte
	checksum uint32
}

// PartName returns the file name of the n-th part (1-based) for prefix.
func PartName(prefix string, n int) string {
	return fmt.Sprintf("%s_%d.png", prefix, n)
}

func newPart(prefix string, p *Page, img image.Image) (_ *Part, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode part %d: %w", p.PartNumber, err)
	}
	return &Part{
		Number: p.PartNumber,
		Name:   PartName(prefix, p.PartNumber),
		Page:   p,
		data:   buf.Bytes(),
	}, nil
}

// Bytes returns the PNG data.
func (p *Part) Bytes() []byte {
	if p == nil {
		return nil
	}
	return p.data
}

// Checksum returns the CRC-32 of the PNG data.
func (p *Part) Checksum() uint32 {
	if p == nil {
		return 0
	}
	if p.checksum == 0 {
		p.checksum = crc32.ChecksumIEEE(p.data)
	}
	return p.checksum
}

// Image decodes the PNG data.
func (p *Part) Image() (image.Image, error) {
	if p == nil {
		return nil, fmt.Errorf("part is nil")
	}
	img, err := png.Decode(bytes.NewReader(p.data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode part %d: %w", p.Number, err)
	}
	return img, nil
}
