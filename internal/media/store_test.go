package media

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/Domenick1991/airportservice/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is enough for content sniffing to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("airplane_image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["airplane_image"][0]
}

func TestStore_SaveImage(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root, "/media/")

	rel, err := store.SaveImage(fileHeader(t, "plane.PNG", pngHeader), AirplanesDir, "Boeing 737 MAX", "airplane_image")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(rel, "uploads/airplanes/boeing-737-max-"))
	assert.True(t, strings.HasSuffix(rel, ".png"))
	assert.Equal(t, "/media/"+rel, store.URL(rel))

	_, err = os.Stat(filepath.Join(root, rel))
	assert.NoError(t, err)

	assert.NoError(t, store.Remove(rel))
	assert.NoError(t, store.Remove(rel))
}

func TestStore_SaveImageRejectsText(t *testing.T) {
	store := NewStore(t.TempDir(), "/media/")

	_, err := store.SaveImage(fileHeader(t, "notes.png", []byte("just some text")), AirplanesDir, "x", "airplane_image")
	verr, ok := domain.IsValidation(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "airplane_image")
}

func TestStore_SaveImageIgnoresClientExtension(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root, "/media/")

	content := append(append([]byte{}, pngHeader...), []byte("<script>alert(1)</script>")...)
	rel, err := store.SaveImage(fileHeader(t, "avatar.html", content), UsersDir, "mallory", "user_image")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(rel, "uploads/users/mallory-"))
	assert.Equal(t, ".png", filepath.Ext(rel))
	_, err = os.Stat(filepath.Join(root, rel))
	assert.NoError(t, err)
}

func TestWriteFile_RemovesPartialFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "partial.png")
	broken := io.MultiReader(bytes.NewReader(pngHeader), iotest.ErrReader(errors.New("connection reset")))

	err := writeFile(name, broken)

	assert.ErrorContains(t, err, "connection reset")
	_, statErr := os.Stat(name)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "airbus-a320", Slugify("Airbus  A320"))
	assert.Equal(t, "file", Slugify("!!!"))
	assert.Equal(t, "tu-154", Slugify("Tu-154!"))
}

func TestStore_URLEmpty(t *testing.T) {
	assert.Equal(t, "", NewStore("", "/media/").URL(""))
}
