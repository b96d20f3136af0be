package archive

import (
	"errors"
	"fmt"
	"io"
	"time"
	"untile/pkg/model"

	"github.com/klauspost/compress/zip"
)

var (
	ErrClosed = errors.New("archive already closed")
)

// CBZWriter stores pages in a comic book zip, in the order they are added. Pages are already compressed images,
// so entries are stored without deflating them again.
type CBZWriter struct {
	zw      *zip.Writer
	pages   int
	closed  bool
	modTime time.Time
}

func NewCBZWriter(w io.Writer) *CBZWriter {
	return &CBZWriter{zw: zip.NewWriter(w), modTime: time.Now()}
}

// DefaultPad is enough digits for chapters of up to 999 pages
const DefaultPad = 3

// PageName returns the entry name of the page at index, numbered from 1 and zero padded to pad digits so that
// readers sort pages correctly
func PageName(index, pad int, extension string) string {
	return fmt.Sprintf("%0*d%s", pad, index+1, extension)
}

func (c *CBZWriter) AddPage(page model.OutputPage) error {
	if c.closed {
		return ErrClosed
	}

	entry, err := c.zw.CreateHeader(&zip.FileHeader{
		Name:     page.Name,
		Method:   zip.Store,
		Modified: c.modTime,
	})
	if err != nil {
		return fmt.Errorf("error creating archive entry %s: %w", page.Name, err)
	}
	if _, err = entry.Write(page.Content); err != nil {
		return fmt.Errorf("error writing archive entry %s: %w", page.Name, err)
	}
	c.pages++
	return nil
}

func (c *CBZWriter) Pages() int {
	return c.pages
}

func (c *CBZWriter) Close() error {
	if c.closed {
		return ErrClosed
	}
	c.closed = true
	return c.zw.Close()
}
