package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rpupo63/appstore-backend/errs"
)

var allowedExtensionList = []string{"sh", "jpg", "png", "jpeg", "svg", "mp4", "flv", "mkv", "3gp"}

var allowedExtensions = func() map[string]bool {
	set := make(map[string]bool, len(allowedExtensionList))
	for _, ext := range allowedExtensionList {
		set[ext] = true
	}
	return set
}()

// MaxPackageNameLength bounds the name of a package file without its
// extension. The name becomes the application name column.
const MaxPackageNameLength = 128

// AllowedExtensions returns the accepted upload extensions in display order.
func AllowedExtensions() []string {
	return append([]string(nil), allowedExtensionList...)
}

// Extension returns everything after the first dot of filename.
// "archive.tar.gz" yields "tar.gz", not "gz".
func Extension(filename string) (string, bool) {
	_, ext, found := strings.Cut(filename, ".")
	return ext, found
}

// IsAllowedExtension reports whether the text after the first dot of filename
// is exactly one of the allowed extensions. Matching is case sensitive.
func IsAllowedExtension(filename string) bool {
	ext, ok := Extension(filename)
	return ok && allowedExtensions[ext]
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SanitizeFilename reduces filename to a single safe path element. Path
// separators become underscores, everything outside [A-Za-z0-9_.-] is
// dropped and leading dots or underscores are trimmed. An empty result is
// rejected.
func SanitizeFilename(filename string) (string, error) {
	name := strings.ReplaceAll(filename, "\\", "/")
	name = strings.Join(strings.Fields(name), "_")
	name = strings.ReplaceAll(name, "/", "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	name = strings.TrimLeft(name, "._")

	if name == "" || name == "." || name == ".." || name != filepath.Base(name) {
		return "", fmt.Errorf("%w: %q", errs.ErrUnsafeFilename, filename)
	}
	return name, nil
}

// Upload is one file received from a form field.
type Upload struct {
	Filename string
	Content  io.Reader
}

// Empty reports whether no file was selected for the field.
func (u Upload) Empty() bool {
	return u.Filename == "" || u.Content == nil
}

// StagedFile is an upload written to a temporary file next to its final
// name. Nothing under Name changes until Commit.
type StagedFile struct {
	// Name is the canonical file name the upload is committed to.
	Name string

	dir     string
	tmpName string
}

// StageUploadedField writes upload into destDir under a temporary name and
// returns the staged file bound for "{canonicalName}.{ext}". Committing
// renames it into place, so the canonical file is always complete and
// concurrent commits to the same name resolve as last writer wins.
//
// It fails with errs.ErrNoFileSelected when no file was given and with
// errs.ErrExtensionNotAllowed when the extension is not accepted; callers
// handling optional fields treat both as a skip.
func StageUploadedField(upload Upload, destDir, canonicalName string) (*StagedFile, error) {
	if upload.Empty() {
		return nil, errs.NewNoFileSelectedError(canonicalName)
	}
	if !IsAllowedExtension(upload.Filename) {
		return nil, errs.NewExtensionNotAllowedError(canonicalName, upload.Filename)
	}

	sanitized, err := SanitizeFilename(upload.Filename)
	if err != nil {
		return nil, errs.NewUnsafeFilenameError(canonicalName, upload.Filename)
	}
	ext, ok := Extension(sanitized)
	if !ok || !allowedExtensions[ext] {
		return nil, errs.NewExtensionNotAllowedError(canonicalName, upload.Filename)
	}

	tmpName, _, err := writeTemp(destDir, upload.Content)
	if err != nil {
		return nil, fmt.Errorf("stage %s: %w", canonicalName, err)
	}
	return &StagedFile{Name: canonicalName + "." + ext, dir: destDir, tmpName: tmpName}, nil
}

// Commit renames the staged content to its canonical name.
func (f *StagedFile) Commit() error {
	if err := os.Rename(f.tmpName, filepath.Join(f.dir, f.Name)); err != nil {
		return fmt.Errorf("rename into %s: %w", f.Name, err)
	}
	f.tmpName = ""
	return nil
}

// Discard removes the staged content. It is a no-op after Commit.
func (f *StagedFile) Discard() {
	if f.tmpName != "" {
		_ = os.Remove(f.tmpName)
		f.tmpName = ""
	}
}

// StorePackage saves the application package under its sanitized original
// name and returns that name and the number of bytes written.
func StorePackage(upload Upload, destDir string) (string, int64, error) {
	sanitized, err := ValidatePackage(upload)
	if err != nil {
		return "", 0, err
	}

	size, err := WriteAtomic(destDir, sanitized, upload.Content)
	if err != nil {
		return "", 0, err
	}
	return sanitized, size, nil
}

// ValidatePackage applies the strict checks of the mandatory package field
// without writing anything and returns the sanitized file name.
func ValidatePackage(upload Upload) (string, error) {
	const field = "app_file"
	if upload.Empty() {
		return "", errs.NewNoFileSelectedError(field)
	}
	if !IsAllowedExtension(upload.Filename) {
		return "", errs.NewExtensionNotAllowedError(field, upload.Filename)
	}

	sanitized, err := SanitizeFilename(upload.Filename)
	if err != nil {
		return "", errs.NewUnsafeFilenameError(field, upload.Filename)
	}
	if !IsAllowedExtension(sanitized) {
		return "", errs.NewExtensionNotAllowedError(field, upload.Filename)
	}
	if len(PackageName(sanitized)) > MaxPackageNameLength {
		return "", errs.NewInvalidFieldError(field, fmt.Sprintf("file name too long (max %d characters before the extension)", MaxPackageNameLength))
	}
	return sanitized, nil
}

// PackageName is the application name derived from a stored package file:
// the file name without its extension.
func PackageName(storedName string) string {
	name, _, _ := strings.Cut(storedName, ".")
	return name
}

// WriteAtomic copies r into dir/name through a temporary file in dir
// followed by a rename, and returns the number of bytes written.
func WriteAtomic(dir, name string, r io.Reader) (int64, error) {
	if name != filepath.Base(name) {
		return 0, fmt.Errorf("%w: %q", errs.ErrUnsafeFilename, name)
	}

	tmpName, n, err := writeTemp(dir, r)
	if err != nil {
		return 0, fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmpName, filepath.Join(dir, name)); err != nil {
		_ = os.Remove(tmpName)
		return 0, fmt.Errorf("rename into %s: %w", name, err)
	}
	return n, nil
}

// writeTemp copies r into a fresh hidden file in dir, synced and readable,
// and returns its path. The file is removed again on any failure.
func writeTemp(dir string, r io.Reader) (string, int64, error) {
	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return "", 0, fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	fail := func(err error) (string, int64, error) {
		tmp.Close()
		_ = os.Remove(tmpName)
		return "", 0, err
	}

	n, err := io.Copy(tmp, r)
	if err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(fmt.Errorf("sync: %w", err))
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", 0, fmt.Errorf("close: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return "", 0, fmt.Errorf("chmod: %w", err)
	}
	return tmpName, n, nil
}
