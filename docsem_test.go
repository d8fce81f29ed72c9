package docsem_test

import (
	"errors"
	"testing"

	"github.com/docsem/docsem"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := docsem.Errorf(docsem.ENOTFOUND, "chunk %q not found", "test")

	assert.Equal(t, docsem.ENOTFOUND, docsem.ErrorCode(err))
	assert.Equal(t, "chunk \"test\" not found", docsem.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, docsem.ErrorCode(nil))
}

func TestErrorCode_NonAppError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, docsem.EINTERNAL, docsem.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, docsem.ErrorMessage(nil))
}

func TestChunkValidate(t *testing.T) {
	t.Parallel()

	valid := docsem.Chunk{
		SourceURL:  "https://docs.djangoproject.com/en/5.2/ref/models/fields#field-options",
		Content:    "Arguments available to all field types.",
		DocVersion: "5.2",
	}

	t.Run("accepts a complete chunk", func(t *testing.T) {
		t.Parallel()

		chunk := valid
		assert.NoError(t, chunk.Validate())
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		t.Parallel()

		for name, mutate := range map[string]func(*docsem.Chunk){
			"source URL":  func(c *docsem.Chunk) { c.SourceURL = "" },
			"content":     func(c *docsem.Chunk) { c.Content = "" },
			"doc version": func(c *docsem.Chunk) { c.DocVersion = "" },
		} {
			chunk := valid
			mutate(&chunk)
			err := chunk.Validate()
			assert.Equal(t, docsem.EINVALID, docsem.ErrorCode(err), "missing %s", name)
		}
	})
}
