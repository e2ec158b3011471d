package dump

import (
	"bytes"
	"io"
	"os"
)

// Source provides random access to a finite sequence of bytes.
//
// Read returns between 0 and count bytes starting at offset. A short
// result means the end of the data was reached; missing bytes are
// never fabricated. Read fails with a *ReadError only when the
// underlying data access fails, never for an offset past the end.
type Source interface {
	Length() int64
	Read(offset, count int64) ([]byte, error)
}

// Buffer is an in-memory Source.
type Buffer []byte

func (b Buffer) Length() int64 {
	return int64(len(b))
}

func (b Buffer) Read(offset, count int64) ([]byte, error) {
	if offset < 0 || offset >= int64(len(b)) || count <= 0 {
		return nil, nil
	}
	end := offset + count
	if end > int64(len(b)) {
		end = int64(len(b))
	}
	return b[offset:end], nil
}

// FileSource is a Source backed by a seekable file. Reads are
// stateless offset+length queries, so a FileSource may be shared by
// concurrent dumps without synchronization.
type FileSource struct {
	file   *os.File
	length int64
}

// OpenFile opens path as a dump Source. The caller owns the handle
// and must Close it when the dump completes or fails.
func OpenFile(path string) (*FileSource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	return &FileSource{file: file, length: info.Size()}, nil
}

func (s *FileSource) Length() int64 {
	return s.length
}

func (s *FileSource) Read(offset, count int64) ([]byte, error) {
	if offset < 0 || offset >= s.length || count <= 0 {
		return nil, nil
	}
	if offset+count > s.length {
		count = s.length - offset
	}
	buf := make([]byte, count)
	n, err := s.file.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		return nil, &ReadError{Offset: offset, Count: count, Err: err}
	}
	return buf[:n], nil
}

func (s *FileSource) Close() error {
	return s.file.Close()
}

const searchChunkSize = 1024

// Find locates pattern in src at or after start, searching a sliding
// window so that the whole source is never held in memory. It returns
// the offset of the first match and whether one was found.
func Find(src Source, pattern []byte, start int64) (int64, bool, error) {
	if len(pattern) == 0 {
		if start > src.Length() {
			return 0, false, nil
		}
		return start, true, nil
	}

	searchSize := int64(len(pattern)) + searchChunkSize
	if searchSize < searchChunkSize*2 {
		searchSize = searchChunkSize * 2
	}
	skip := searchSize - int64(len(pattern))

	var data []byte
	dataStart := start
	offset := start
	for {
		chunk, err := src.Read(offset, searchSize)
		if err != nil {
			return 0, false, err
		}
		if len(chunk) == 0 {
			return 0, false, nil
		}
		offset += int64(len(chunk))
		data = append(data, chunk...)
		if i := bytes.Index(data, pattern); i >= 0 {
			return dataStart + int64(i), true, nil
		}
		drop := skip
		if drop > int64(len(data)) {
			drop = int64(len(data))
		}
		data = data[drop:]
		dataStart += drop
	}
}
