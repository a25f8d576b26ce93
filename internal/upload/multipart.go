package upload

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// fieldName is the multipart field the analysis endpoint expects the audio
// bytes under.
const fieldName = "file"

// mimeTypes maps audio file extensions to their MIME types. Unrecognized
// extensions fall back to application/octet-stream rather than failing;
// the server decides whether it can handle the payload.
var mimeTypes = map[string]string{
	".wav":  "audio/wav",
	".mp3":  "audio/mpeg",
	".m4a":  "audio/mp4",
	".flac": "audio/flac",
	".ogg":  "audio/ogg",
}

// MimeTypeFor returns the MIME type for a file name based on its extension.
func MimeTypeFor(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if mime, ok := mimeTypes[ext]; ok {
		return mime
	}
	return "application/octet-stream"
}

// IsAudioFile reports whether the file name carries one of the known audio
// extensions.
func IsAudioFile(filename string) bool {
	_, ok := mimeTypes[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// EncodeMultipart builds a single-part multipart/form-data body carrying the
// file content verbatim, and returns it together with the Content-Type
// header value. The boundary token is freshly generated per call.
func EncodeMultipart(content []byte, filename, mimeType string) (body []byte, contentType string) {
	boundary := "Boundary-" + uuid.NewString()

	var b bytes.Buffer
	b.Grow(len(content) + 256)

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	fmt.Fprintf(&b, "Content-Disposition: form-data; name=%q; filename=%q\r\n", fieldName, filename)
	fmt.Fprintf(&b, "Content-Type: %s\r\n\r\n", mimeType)
	b.Write(content)
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "--%s--\r\n", boundary)

	return b.Bytes(), "multipart/form-data; boundary=" + boundary
}
