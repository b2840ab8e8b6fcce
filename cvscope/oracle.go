package cvscope

import "fmt"

// Oracle reads raw bytes from the inspected target's memory.
//
// Implementations can serve reads from a live process, a core dump, or an
// in-memory snapshot. Reads are synchronous and side-effect free; a short
// read returns the number of bytes available together with an error.
type Oracle interface {
	ReadMemory(addr uint64, p []byte) (int, error)
}

// readFull fills p from addr or reports why it could not.
func readFull(o Oracle, addr uint64, p []byte) error {
	n, err := o.ReadMemory(addr, p)
	if err != nil {
		return err
	}
	if n < len(p) {
		return fmt.Errorf("%w: got %d of %d bytes at 0x%X", ErrShortRead, n, len(p), addr)
	}
	return nil
}
