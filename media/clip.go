package media

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Clip is a handle to one rendered media file plus its probed metadata.
// Temporary clips own their file and remove it on Close; closing twice is
// a no-op, so aliased handles are safe.
type Clip struct {
	Path     string
	Duration float64
	Width    int
	Height   int

	temp   bool
	closed bool
}

// Close releases the clip, deleting the backing file if it is temporary.
func (c *Clip) Close() error {
	if c == nil || c.closed {
		return nil
	}
	c.closed = true
	if !c.temp {
		return nil
	}
	return os.Remove(c.Path)
}

// NewFileHandle wraps an already-written temporary file so it can share
// the clip release lifecycle. No probing is done.
func NewFileHandle(path string) *Clip {
	return &Clip{Path: path, temp: true}
}

// Releaser tracks clips acquired during a pipeline run and releases them
// in reverse-acquisition order. Tracking the same clip twice keeps a
// single entry, so aliases are released exactly once.
type Releaser struct {
	clips []*Clip
}

// Track registers a clip for release and returns it.
func (r *Releaser) Track(c *Clip) *Clip {
	if c == nil {
		return nil
	}
	for _, existing := range r.clips {
		if existing == c {
			return c
		}
	}
	r.clips = append(r.clips, c)
	return c
}

// ReleaseAll closes every tracked clip, newest first.
func (r *Releaser) ReleaseAll() {
	for i := len(r.clips) - 1; i >= 0; i-- {
		r.clips[i].Close()
	}
	r.clips = nil
}

// tempPath returns a collision-free scratch file path inside dir.
func tempPath(dir, ext string) string {
	return filepath.Join(dir, uuid.NewString()+ext)
}
