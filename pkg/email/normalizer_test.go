package email_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoutboxnet/shoutbox-go/pkg/email"
	"github.com/shoutboxnet/shoutbox-go/pkg/email/templates"
	"github.com/shoutboxnet/shoutbox-go/pkg/file"
)

// failingReader fails the test if any file is read.
func failingReader(t *testing.T) file.Reader {
	t.Helper()
	return file.ReaderFunc(func(_ context.Context, path string) ([]byte, error) {
		t.Errorf("unexpected read of %q", path)
		return nil, errors.New("unexpected read")
	})
}

func mapReader(files map[string]string) file.Reader {
	return file.ReaderFunc(func(_ context.Context, path string) ([]byte, error) {
		data, ok := files[path]
		if !ok {
			return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
		}
		return []byte(data), nil
	})
}

func TestNormalize_SuppliedContentIsNotRead(t *testing.T) {
	t.Parallel()
	n := email.NewNormalizer(failingReader(t), nil)

	opts := validOptions()
	opts.Attachments = []email.Attachment{
		{Filepath: "/srv/files/report.pdf", Content: email.Base64Content("JVBERi0xLjQ=")},
	}

	msg, err := n.Normalize(context.Background(), opts, email.TransportHTTP)
	require.NoError(t, err)
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "JVBERi0xLjQ=", msg.Attachments[0].Content.Base64())

	msg, err = n.Normalize(context.Background(), opts, email.TransportSMTP)
	require.NoError(t, err)
	raw, err := msg.Attachments[0].Content.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), raw)
	assert.False(t, msg.Attachments[0].Content.IsBase64())
}

func TestNormalize_AttachmentDefaults(t *testing.T) {
	t.Parallel()
	n := email.NewNormalizer(mapReader(map[string]string{
		"/srv/files/report.pdf":    "%PDF-1.4",
		"/srv/files/data.zzqx":     "????",
		"/srv/files/named-any.bin": "bin",
	}), nil)

	opts := validOptions()
	opts.Attachments = []email.Attachment{
		{Filepath: "/srv/files/report.pdf"},
		{Filepath: "/srv/files/data.zzqx"},
		{Filepath: "/srv/files/named-any.bin", Filename: "custom.txt", ContentType: "text/x-custom"},
	}

	msg, err := n.Normalize(context.Background(), opts, email.TransportHTTP)
	require.NoError(t, err)
	require.Len(t, msg.Attachments, 3)

	assert.Equal(t, "report.pdf", msg.Attachments[0].Filename)
	assert.Equal(t, "application/pdf", msg.Attachments[0].ContentType)
	assert.Equal(t, "JVBERi0xLjQ=", msg.Attachments[0].Content.Base64())

	assert.Equal(t, "data.zzqx", msg.Attachments[1].Filename)
	assert.Equal(t, "application/octet-stream", msg.Attachments[1].ContentType)

	assert.Equal(t, "custom.txt", msg.Attachments[2].Filename)
	assert.Equal(t, "text/x-custom", msg.Attachments[2].ContentType)
}

func TestNormalize_ReadErrorIsReturnedUnchanged(t *testing.T) {
	t.Parallel()
	readErr := errors.New("disk on fire")
	n := email.NewNormalizer(file.ReaderFunc(func(context.Context, string) ([]byte, error) {
		return nil, readErr
	}), nil)

	opts := validOptions()
	opts.Attachments = []email.Attachment{{Filepath: "/tmp/a.txt"}}

	_, err := n.Normalize(context.Background(), opts, email.TransportHTTP)
	assert.Same(t, readErr, err)
}

func TestNormalize_LocalFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0o600))

	n := email.NewNormalizer(file.NewLocalReader(file.WithBaseDir(dir)), nil)
	opts := validOptions()
	opts.Attachments = []email.Attachment{{Filepath: "notes.txt"}}

	msg, err := n.Normalize(context.Background(), opts, email.TransportHTTP)
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", msg.Attachments[0].Filename)
	assert.Equal(t, "aGVsbG8=", msg.Attachments[0].Content.Base64())

	opts.Attachments = []email.Attachment{{Filepath: "missing.txt"}}
	_, err = n.Normalize(context.Background(), opts, email.TransportHTTP)
	assert.ErrorIs(t, err, file.ErrFileNotFound)
}

func TestNormalize_DefaultReaderHasNoSizeCap(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "large.bin")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(file.DefaultMaxSize+1))
	require.NoError(t, f.Close())

	n := email.NewNormalizer(nil, nil)
	opts := validOptions()
	opts.Attachments = []email.Attachment{{Filepath: path}}

	msg, err := n.Normalize(context.Background(), opts, email.TransportSMTP)
	require.NoError(t, err)
	assert.Equal(t, int(file.DefaultMaxSize+1), msg.Attachments[0].Content.Len())
}

func TestNormalize_InvalidBase64ForSMTP(t *testing.T) {
	t.Parallel()
	n := email.NewNormalizer(failingReader(t), nil)

	opts := validOptions()
	opts.Attachments = []email.Attachment{{Filename: "a.bin", Content: email.Base64Content("%%%")}}

	_, err := n.Normalize(context.Background(), opts, email.TransportSMTP)
	assert.ErrorIs(t, err, email.ErrInvalidAttachment)

	// HTTP forwards base64 text untouched.
	msg, err := n.Normalize(context.Background(), opts, email.TransportHTTP)
	require.NoError(t, err)
	assert.Equal(t, "%%%", msg.Attachments[0].Content.Base64())
}

func TestNormalize_Headers(t *testing.T) {
	t.Parallel()
	n := email.NewNormalizer(nil, nil)

	opts := validOptions()
	opts.Headers = map[string]string{"X-A": "1"}

	msg, err := n.Normalize(context.Background(), opts, email.TransportHTTP)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"X-A": "1"}, msg.Headers)

	msg.Headers["X-B"] = "2"
	assert.NotContains(t, opts.Headers, "X-B", "message headers must not alias the options")
}

func TestNormalize_TextFallback(t *testing.T) {
	t.Parallel()
	n := email.NewNormalizer(nil, nil)

	opts := validOptions()
	opts.HTML = "<h1>Hi</h1><p>Bye</p>"

	msg, err := n.Normalize(context.Background(), opts, email.TransportSMTP)
	require.NoError(t, err)
	assert.Equal(t, "HiBye", msg.Text)

	msg, err = n.Normalize(context.Background(), opts, email.TransportHTTP)
	require.NoError(t, err)
	assert.Empty(t, msg.Text)

	opts.Text = "custom"
	msg, err = n.Normalize(context.Background(), opts, email.TransportSMTP)
	require.NoError(t, err)
	assert.Equal(t, "custom", msg.Text)
}

func TestNormalize_Template(t *testing.T) {
	t.Parallel()
	n := email.NewNormalizer(nil, templates.NewRenderer())
	rendered := `<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Transitional//EN"><html><body><p>Hi<!-- --> Ann</p><!--$--><b>x</b><!--/$--></body></html>`

	opts := validOptions()
	opts.HTML = "<p>ignored</p>"
	opts.TemplateContent = rendered

	msg, err := n.Normalize(context.Background(), opts, email.TransportHTTP)
	require.NoError(t, err)
	assert.Equal(t, rendered, msg.HTML, "HTTP keeps renderer output as is")

	msg, err = n.Normalize(context.Background(), opts, email.TransportSMTP)
	require.NoError(t, err)
	assert.Equal(t, `<html><body><p>Hi Ann</p><b>x</b></body></html>`, msg.HTML)
	assert.Equal(t, "Hi Annx", msg.Text)
}

func TestNormalize_TemplateErrors(t *testing.T) {
	t.Parallel()

	opts := validOptions()
	opts.TemplateContent = 42

	_, err := email.NewNormalizer(nil, templates.NewRenderer()).Normalize(context.Background(), opts, email.TransportHTTP)
	assert.ErrorIs(t, err, email.ErrTemplateRender)
	assert.ErrorIs(t, err, templates.ErrUnsupportedTemplate)

	_, err = email.NewNormalizer(nil, nil).Normalize(context.Background(), opts, email.TransportHTTP)
	assert.ErrorIs(t, err, email.ErrTemplateRender)
}

func TestNormalize_ValidationRunsFirst(t *testing.T) {
	t.Parallel()
	n := email.NewNormalizer(failingReader(t), nil)

	opts := validOptions()
	opts.Subject = ""
	opts.Attachments = []email.Attachment{{Filepath: "/tmp/a.txt"}}

	_, err := n.Normalize(context.Background(), opts, email.TransportHTTP)
	assert.ErrorIs(t, err, email.ErrInvalidParams)
}

func TestStripRenderArtifacts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "doctype", in: "<!DOCTYPE html><html></html>", want: "<html></html>"},
		{name: "lower case doctype with whitespace", in: "  <!doctype html>\n<p>a</p>", want: "<p>a</p>"},
		{name: "markers", in: "<p>a<!-- -->b<!--$?-->c<!--$!-->d</p>", want: "<p>abcd</p>"},
		{name: "inner doctype text untouched", in: "<p><!DOCTYPE></p>", want: "<p><!DOCTYPE></p>"},
		{name: "other comments untouched", in: "<!-- keep -->", want: "<!-- keep -->"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, email.StripRenderArtifacts(tt.in))
		})
	}
}
