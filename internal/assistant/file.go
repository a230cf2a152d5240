package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/okravets/freightdesk/internal/domain"
	"github.com/okravets/freightdesk/internal/kv"
)

const (
	fileListKey       = "uploadedFiles"
	fileContentPrefix = "uploadedFile:"
)

// FileMeta describes a stored uploaded file without its content.
type FileMeta struct {
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Size       int       `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// FileContext keeps uploaded files available across sessions so a file can
// be attached once and referenced in later chat turns. Content is stored
// already truncated to the configured limit.
type FileContext struct {
	store           kv.Store
	maxContentChars int
	clock           func() time.Time
}

// FileContextOption configures a FileContext.
type FileContextOption func(*FileContext)

// WithFileMaxContentChars overrides the stored-content truncation limit.
func WithFileMaxContentChars(n int) FileContextOption {
	return func(f *FileContext) {
		if n > 0 {
			f.maxContentChars = n
		}
	}
}

// WithFileClock overrides the time source.
func WithFileClock(clock func() time.Time) FileContextOption {
	return func(f *FileContext) { f.clock = clock }
}

func NewFileContext(store kv.Store, opts ...FileContextOption) *FileContext {
	f := &FileContext{
		store:           store,
		maxContentChars: DefaultMaxContentChars,
		clock:           time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Save stores the file content under its name and adds it to the metadata
// list. Saving an existing name replaces the stored file.
func (f *FileContext) Save(ctx context.Context, file domain.UploadedFile) error {
	if file.Name == "" {
		return fmt.Errorf("file name is empty")
	}

	metas, err := f.list(ctx)
	if err != nil {
		return err
	}

	content := TruncateContent(file.Content, f.maxContentChars)
	if err := f.store.Set(ctx, fileContentPrefix+file.Name, content); err != nil {
		return fmt.Errorf("storing file content: %w", err)
	}

	meta := FileMeta{
		Name:       file.Name,
		Type:       file.Type,
		Size:       len(file.Content),
		UploadedAt: f.clock(),
	}
	replaced := false
	for i := range metas {
		if metas[i].Name == file.Name {
			metas[i] = meta
			replaced = true
			break
		}
	}
	if !replaced {
		metas = append(metas, meta)
	}
	return f.saveList(ctx, metas)
}

// List returns metadata for all stored files in upload order.
func (f *FileContext) List(ctx context.Context) ([]FileMeta, error) {
	return f.list(ctx)
}

// Get loads a stored file by name. The boolean reports whether it exists.
func (f *FileContext) Get(ctx context.Context, name string) (*domain.UploadedFile, bool, error) {
	metas, err := f.list(ctx)
	if err != nil {
		return nil, false, err
	}
	var meta *FileMeta
	for i := range metas {
		if metas[i].Name == name {
			meta = &metas[i]
			break
		}
	}
	if meta == nil {
		return nil, false, nil
	}

	content, found, err := f.store.Get(ctx, fileContentPrefix+name)
	if err != nil {
		return nil, false, fmt.Errorf("loading file content: %w", err)
	}
	if !found {
		return nil, false, nil
	}
	return &domain.UploadedFile{Name: meta.Name, Type: meta.Type, Content: content}, true, nil
}

// Remove deletes a stored file and its metadata entry. Removing an unknown
// name is a no-op.
func (f *FileContext) Remove(ctx context.Context, name string) error {
	metas, err := f.list(ctx)
	if err != nil {
		return err
	}
	kept := metas[:0]
	for _, m := range metas {
		if m.Name != name {
			kept = append(kept, m)
		}
	}
	if err := f.store.Delete(ctx, fileContentPrefix+name); err != nil {
		return fmt.Errorf("removing file content: %w", err)
	}
	return f.saveList(ctx, kept)
}

// Clear removes all stored files.
func (f *FileContext) Clear(ctx context.Context) error {
	metas, err := f.list(ctx)
	if err != nil {
		return err
	}
	for _, m := range metas {
		if err := f.store.Delete(ctx, fileContentPrefix+m.Name); err != nil {
			return fmt.Errorf("removing file content: %w", err)
		}
	}
	return f.store.Delete(ctx, fileListKey)
}

func (f *FileContext) list(ctx context.Context) ([]FileMeta, error) {
	raw, found, err := f.store.Get(ctx, fileListKey)
	if err != nil {
		return nil, fmt.Errorf("loading file list: %w", err)
	}
	if !found {
		return nil, nil
	}
	var metas []FileMeta
	if err := json.Unmarshal([]byte(raw), &metas); err != nil {
		// Unreadable list is treated as empty rather than wedging uploads.
		return nil, nil
	}
	return metas, nil
}

func (f *FileContext) saveList(ctx context.Context, metas []FileMeta) error {
	data, err := json.Marshal(metas)
	if err != nil {
		return fmt.Errorf("encoding file list: %w", err)
	}
	if err := f.store.Set(ctx, fileListKey, string(data)); err != nil {
		return fmt.Errorf("storing file list: %w", err)
	}
	return nil
}
