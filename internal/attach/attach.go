// Package attach stages locally selected files between selection and
// submit. Each accepted file gets a preview handle, a temp-file copy that
// must be released exactly once: on unstage, on clear, or when a new
// Stage call replaces the set, whichever comes first.
package attach

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck/internal/api"
)

// MaxFileSize is the largest file accepted for staging.
const MaxFileSize = 10 << 20 // 10 MB

// acceptedExtensions are the attachment types the server accepts:
// common image formats and PDF.
var acceptedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".pdf":  true,
}

// Preview is a locally allocated preview resource for one staged file.
type Preview struct {
	path     string
	released bool
}

// Path returns the preview file's location on disk.
func (p *Preview) Path() string {
	return p.path
}

// Release removes the preview resource. Releasing twice is a no-op.
func (p *Preview) Release() {
	if p.released {
		return
	}
	p.released = true
	_ = os.Remove(p.path)
}

// Released reports whether the preview resource has been freed.
func (p *Preview) Released() bool {
	return p.released
}

// StagedFile is a selected, not-yet-submitted attachment.
type StagedFile struct {
	Name    string
	Size    int64
	Data    []byte
	Preview *Preview
}

// Rejection describes one file that failed staging validation.
type Rejection struct {
	Name   string
	Reason string
}

// Pipeline owns the staged set. Not safe for concurrent use; staging is
// driven by a single dialog at a time.
type Pipeline struct {
	staged []*StagedFile
}

// NewPipeline returns an empty pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// Stage validates and stages the given files, replacing the previously
// staged set (whose previews are released first). Files that fail
// validation are returned as rejections rather than silently dropped;
// staging itself only fails on I/O errors reading an accepted file.
func (p *Pipeline) Stage(paths []string) ([]*StagedFile, []Rejection, error) {
	p.Clear()

	var rejections []Rejection
	for _, path := range paths {
		name := filepath.Base(path)

		ext := strings.ToLower(filepath.Ext(name))
		if !acceptedExtensions[ext] {
			rejections = append(rejections, Rejection{
				Name:   name,
				Reason: fmt.Sprintf("unsupported file type %q (accepted: images, PDF)", ext),
			})
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			p.Clear()
			return nil, nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		if info.Size() > MaxFileSize {
			rejections = append(rejections, Rejection{
				Name:   name,
				Reason: fmt.Sprintf("file exceeds the %d MB limit", MaxFileSize>>20),
			})
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			p.Clear()
			return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		preview, err := newPreview(name, data)
		if err != nil {
			p.Clear()
			return nil, nil, err
		}

		p.staged = append(p.staged, &StagedFile{
			Name:    name,
			Size:    info.Size(),
			Data:    data,
			Preview: preview,
		})
	}

	return p.Staged(), rejections, nil
}

// Staged returns the current staged set.
func (p *Pipeline) Staged() []*StagedFile {
	return append([]*StagedFile(nil), p.staged...)
}

// Unstage removes one staged file by name and releases its preview.
func (p *Pipeline) Unstage(name string) {
	kept := p.staged[:0]
	for _, f := range p.staged {
		if f.Name == name {
			f.Preview.Release()
			continue
		}
		kept = append(kept, f)
	}
	p.staged = kept
}

// Clear releases every preview handle and empties the staged set. Must be
// called on every exit path of the owning dialog: submit, cancel, or a
// replacing Stage call.
func (p *Pipeline) Clear() {
	for _, f := range p.staged {
		f.Preview.Release()
	}
	p.staged = nil
}

// Parts converts the staged set into the gateway's multipart file parts.
func (p *Pipeline) Parts() []api.FilePart {
	parts := make([]api.FilePart, 0, len(p.staged))
	for _, f := range p.staged {
		parts = append(parts, api.FilePart{Name: f.Name, Data: f.Data})
	}
	return parts
}

// newPreview writes the staged bytes to a uuid-named temp file so a
// viewer can render the file before it is submitted.
func newPreview(name string, data []byte) (*Preview, error) {
	path := filepath.Join(os.TempDir(), "taskdeck-preview-"+uuid.New().String()+filepath.Ext(name))
	if err := os.WriteFile(path, data, 0600); err != nil {
		return nil, fmt.Errorf("failed to write preview for %s: %w", name, err)
	}
	return &Preview{path: path}, nil
}
