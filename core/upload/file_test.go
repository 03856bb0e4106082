package upload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/classtrack/core"
)

func TestValidate(t *testing.T) {
	rules := Rules{AllowedTypes: []string{".pdf", ".doc"}, MaxSize: 5 * mb}

	tests := []struct {
		name       string
		file       File
		wantFields []string
	}{
		{"valid", File{Name: "essay.pdf", Size: 1 * mb}, nil},
		{"upper-case extension", File{Name: "ESSAY.PDF", Size: 1 * mb}, nil},
		{"exactly max size", File{Name: "essay.doc", Size: 5 * mb}, nil},
		{"bad extension", File{Name: "essay.exe", Size: 1 * mb}, []string{"file_type"}},
		{"no extension", File{Name: "essay", Size: 1 * mb}, []string{"file_type"}},
		{"oversize", File{Name: "essay.pdf", Size: 10 * mb}, []string{"file_size"}},
		{"both", File{Name: "essay.exe", Size: 10 * mb}, []string{"file_type", "file_size"}},
		{"negative size", File{Name: "essay.pdf", Size: -1}, []string{"file_size"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.file, rules)
			if tc.wantFields == nil {
				assert.NoError(t, err)
				return
			}
			var verr *core.ValidationError
			require.ErrorAs(t, err, &verr)
			var fields []string
			for _, f := range verr.Fields {
				fields = append(fields, f.Field)
			}
			assert.Equal(t, tc.wantFields, fields)
		})
	}
}

func TestValidate_Messages(t *testing.T) {
	err := Validate(File{Name: "notes.exe", Size: 10 * mb}, Rules{AllowedTypes: []string{".pdf", ".doc"}, MaxSize: 5 * mb})
	var verr *core.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 2)
	assert.Equal(t, "File type not allowed. Accepted types: .pdf, .doc", verr.Fields[0].Error)
	assert.Equal(t, "File size must be less than 5MB", verr.Fields[1].Error)
	assert.Equal(t, verr.Fields[0].Error, err.Error())
}

func TestValidate_NoRestrictions(t *testing.T) {
	assert.NoError(t, Validate(File{Name: "anything.bin", Size: 100 * mb}, Rules{}))

	err := Validate(File{Name: "anything.bin", Size: -5}, Rules{})
	var verr *core.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "File size cannot be negative", verr.Fields[0].Error)
}

func TestFile_SizeMB(t *testing.T) {
	assert.Equal(t, "1.19", File{Size: 1245678}.SizeMB())
	assert.Equal(t, "5.00", File{Size: 5 * mb}.SizeMB())
	assert.Equal(t, "2", FormatMB(2*mb))
	assert.Equal(t, "1.5", FormatMB(mb+mb/2))
}
