package utils

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUploadFile(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		size     int64
		wantCode string
	}{
		{name: "png image", filename: "logo.png", size: 1024},
		{name: "uppercase extension", filename: "PHOTO.JPG", size: 1024},
		{name: "zip deliverable", filename: "final.zip", size: MaxFileSize},
		{name: "video", filename: "promo.mp4", size: 5 * 1024 * 1024},
		{name: "oversized file", filename: "huge.png", size: MaxFileSize + 1, wantCode: "FILE_TOO_LARGE"},
		{name: "executable", filename: "setup.exe", size: 1024, wantCode: "INVALID_FILE_FORMAT"},
		{name: "no extension", filename: "README", size: 1024, wantCode: "INVALID_FILE_FORMAT"},
		{name: "shell script", filename: "deploy.sh", size: 1024, wantCode: "INVALID_FILE_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := &multipart.FileHeader{Filename: tt.filename, Size: tt.size}

			err := ValidateUploadFile(header)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			uploadErr := &FileUploadError{}
			require.ErrorAs(t, err, &uploadErr)
			assert.Equal(t, tt.wantCode, uploadErr.Code)
		})
	}
}
