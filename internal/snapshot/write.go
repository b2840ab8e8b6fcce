package snapshot

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Write serializes a snapshot container.
func Write(dst io.WriterAt, s *Snapshot) error {
	w := &writer{w: dst}

	if err := w.bytes(magic[:]); err != nil {
		return fmt.Errorf("writing magic: %w", err)
	}
	if err := w.uint8(formatVersion); err != nil {
		return err
	}

	if err := writeHeader(w, s); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	if err := w.uint16(uint16(len(s.Regions))); err != nil {
		return err
	}
	for i, r := range s.Regions {
		if err := w.uint64(r.Addr); err != nil {
			return fmt.Errorf("region %d: %w", i, err)
		}
		if err := w.uint64(uint64(len(r.Data))); err != nil {
			return fmt.Errorf("region %d: %w", i, err)
		}
		if err := w.bytes(r.Data); err != nil {
			return fmt.Errorf("region %d: %w", i, err)
		}
	}
	return nil
}

func writeHeader(w *writer, s *Snapshot) error {
	hdr := s.Header
	if err := w.uint32(hdr.Flags); err != nil {
		return err
	}
	for _, v := range []int64{hdr.Rows, hdr.Cols, hdr.Dims} {
		if err := w.uint64(uint64(v)); err != nil {
			return err
		}
	}

	if err := w.uint16(uint16(len(hdr.Step))); err != nil {
		return err
	}
	for _, step := range hdr.Step {
		if err := w.uint64(uint64(step)); err != nil {
			return err
		}
	}

	for _, v := range []uint64{hdr.Data, hdr.DataStart, hdr.DataEnd, hdr.DataLimit} {
		if err := w.uint64(v); err != nil {
			return err
		}
	}

	if hdr.RefCount == nil {
		return w.uint8(0)
	}
	if err := w.uint8(1); err != nil {
		return err
	}
	return w.uint32(uint32(*hdr.RefCount))
}

// writer writes little-endian fields to an io.WriterAt, tracking its own
// position.
type writer struct {
	w   io.WriterAt
	pos int64
}

func (w *writer) bytes(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	n, err := w.w.WriteAt(data, w.pos)
	w.pos += int64(n)
	return err
}

func (w *writer) uint8(v uint8) error {
	return w.bytes([]byte{v})
}

func (w *writer) uint16(v uint16) error {
	buf := make([]byte, 2)
	binary.LittleEndian.PutUint16(buf, v)
	return w.bytes(buf)
}

func (w *writer) uint32(v uint32) error {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, v)
	return w.bytes(buf)
}

func (w *writer) uint64(v uint64) error {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, v)
	return w.bytes(buf)
}
