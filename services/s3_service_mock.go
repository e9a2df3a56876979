package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"sync"
)

// MockS3Service is a mock implementation of S3Interface for testing
type MockS3Service struct {
	uploadedFiles map[string][]byte // map of object URL to file content
	UploadErr     error             // forced error for the next upload
	DeleteErr     error             // forced error for deletes
	mu            sync.RWMutex
}

// NewMockS3Service creates a new mock S3 service
func NewMockS3Service() *MockS3Service {
	return &MockS3Service{
		uploadedFiles: make(map[string][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global S3 service instance for testing
func (m *MockS3Service) SetAsMockForTesting() {
	SetS3Service(m)
}

// UploadFile simulates uploading a file and returns a mock object URL
func (m *MockS3Service) UploadFile(fileHeader *multipart.FileHeader, namespace string) (string, error) {
	if m.UploadErr != nil {
		return "", m.UploadErr
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	fileURL := fmt.Sprintf("https://test-bucket.s3.us-east-1.amazonaws.com/%s/mock_%s", namespace, fileHeader.Filename)

	m.mu.Lock()
	m.uploadedFiles[fileURL] = content
	m.mu.Unlock()

	return fileURL, nil
}

// DeleteFileByURL simulates deleting an object. Deleting a URL that was never
// uploaded succeeds, matching the real service's tolerance.
func (m *MockS3Service) DeleteFileByURL(fileURL string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	if fileURL == "" {
		return nil
	}

	m.mu.Lock()
	delete(m.uploadedFiles, fileURL)
	m.mu.Unlock()

	return nil
}

// FileExists checks if an object exists in mock storage
func (m *MockS3Service) FileExists(fileURL string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.uploadedFiles[fileURL]
	return exists
}

// UploadCount returns the number of stored objects (for testing assertions)
func (m *MockS3Service) UploadCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.uploadedFiles)
}

// Clear removes all objects from mock storage
func (m *MockS3Service) Clear() {
	m.mu.Lock()
	m.uploadedFiles = make(map[string][]byte)
	m.mu.Unlock()
}
