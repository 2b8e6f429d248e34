package media

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/Domenick1991/airportservice/internal/domain"
	"github.com/google/uuid"
)

const (
	AirplanesDir = "uploads/airplanes"
	UsersDir     = "uploads/users"
)

// UploadConfig maps every accepted sniffed MIME type to the extension stored files get.
type UploadConfig struct {
	MaxSizeBytes int64
	Extensions   map[string]string
}

var DefaultImageUploadConfig = UploadConfig{
	MaxSizeBytes: 5 * 1024 * 1024,
	Extensions: map[string]string{
		"image/jpeg": ".jpg",
		"image/png":  ".png",
		"image/gif":  ".gif",
		"image/webp": ".webp",
	},
}

// Store keeps uploaded images on local disk below root and serves them below baseURL.
type Store struct {
	root    string
	baseURL string
	config  UploadConfig
}

func NewStore(root, baseURL string) *Store {
	return &Store{root: root, baseURL: baseURL, config: DefaultImageUploadConfig}
}

func (s *Store) Root() string {
	return s.root
}

// SaveImage validates and stores an image, returning its path relative to the store root.
// Invalid payloads are reported as a validation error on field. The extension follows the
// sniffed content, never the client's file name.
func (s *Store) SaveImage(fileHeader *multipart.FileHeader, dir, name, field string) (string, error) {
	if fileHeader.Size > s.config.MaxSizeBytes {
		return "", domain.NewValidationError(field, fmt.Sprintf("file size exceeds maximum limit of %d MB", s.config.MaxSizeBytes/(1024*1024)))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}
	mimeType := http.DetectContentType(buffer[:n])

	ext, ok := s.config.Extensions[mimeType]
	if !ok {
		return "", domain.NewValidationError(field, "Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Join(s.root, dir), os.ModePerm); err != nil {
		return "", err
	}

	rel := path.Join(dir, fmt.Sprintf("%s-%s%s", Slugify(name), uuid.NewString(), ext))
	if err := writeFile(filepath.Join(s.root, filepath.FromSlash(rel)), src); err != nil {
		return "", err
	}
	return rel, nil
}

// writeFile copies src to name. A partly written file is removed on failure.
func writeFile(name string, src io.Reader) error {
	dst, err := os.Create(name)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(name)
		return err
	}
	if err := dst.Close(); err != nil {
		os.Remove(name)
		return err
	}
	return nil
}

// Remove deletes a stored file. Missing files are not an error.
func (s *Store) Remove(rel string) error {
	if rel == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// URL returns the public address of a stored file, or "" for none.
func (s *Store) URL(rel string) string {
	if rel == "" {
		return ""
	}
	return strings.TrimSuffix(s.baseURL, "/") + "/" + rel
}

// Slugify lowercases name and collapses every run of other characters into one hyphen.
func Slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "file"
	}
	return slug
}
