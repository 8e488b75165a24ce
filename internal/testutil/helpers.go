package testutil

import (
	"bytes"
	"database/sql"
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

const onePixelPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

// OnePixelPNG returns a valid 1x1 pixel PNG image.
func OnePixelPNG(t *testing.T) []byte {
	t.Helper()

	data, err := base64.StdEncoding.DecodeString(onePixelPNG)
	require.NoError(t, err, "fixture png should decode")

	return data
}

// OpenSQLite opens a private in-memory database closed on cleanup.
func OpenSQLite(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err, "sqlite should open")
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

// FilePart describes the file part of a multipart body.
type FilePart struct {
	FieldName   string
	FileName    string
	ContentType string
	Data        []byte
}

// CreateMultipartFormData builds a multipart body with text fields and an
// optional file part, returning the body and its Content-Type header.
func CreateMultipartFormData(t *testing.T, file *FilePart, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, value := range fields {
		err := writer.WriteField(key, value)
		require.NoError(t, err, "failed to write form field %s", key)
	}

	if file != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, file.FieldName, file.FileName))
		header.Set("Content-Type", file.ContentType)

		part, err := writer.CreatePart(header)
		require.NoError(t, err, "failed to create form file field")

		_, err = part.Write(file.Data)
		require.NoError(t, err, "failed to write file data")
	}

	err := writer.Close()
	require.NoError(t, err, "failed to close multipart writer")

	return body, writer.FormDataContentType()
}

// ParseJSONResponse decodes resp's body into out.
func ParseJSONResponse(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	require.NotEmpty(t, body, "response body should not be empty")

	err = sonic.Unmarshal(body, out)
	require.NoError(t, err, "failed to parse JSON response: %s", string(body))
}

// ParseErrorDetail returns the code and message of an error envelope.
func ParseErrorDetail(t *testing.T, resp *http.Response) (string, string) {
	t.Helper()

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	ParseJSONResponse(t, resp, &envelope)

	return envelope.Error.Code, envelope.Error.Message
}
