package disk

import "io"

const DefaultBlocksize = 512

// ReadSectorAt reads one DefaultBlocksize-sized sector starting at the
// given byte offset.
func ReadSectorAt(r io.ReaderAt, offset int64) ([]byte, error) {
	buf := make([]byte, DefaultBlocksize)
	if err := ReadFullAt(r, buf, offset); err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadFullAt fills buf from r starting at offset. Reading past the end of
// the source yields io.ErrUnexpectedEOF, even against sloppy ReaderAt
// implementations that return short counts with a nil error.
func ReadFullAt(r io.ReaderAt, buf []byte, offset int64) error {
	_, err := io.ReadFull(io.NewSectionReader(r, offset, int64(len(buf))), buf)
	return err
}
