package upload

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultMaxFileSize caps uploads at 10 MiB, matching the generation service.
const DefaultMaxFileSize = 10 * 1024 * 1024

// DefaultExtensions lists the document formats the generation service accepts.
var DefaultExtensions = []string{"pdf", "docx", "txt", "doc"}

// Validator checks uploaded files by extension and size before they are
// accepted as quiz input.
type Validator struct {
	maxSize    int
	extensions map[string]struct{}
}

// NewValidator builds a validator. Zero maxSize and an empty extension list
// fall back to the defaults.
func NewValidator(maxSize int, extensions []string) *Validator {
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	allowed := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(ext)] = struct{}{}
	}
	return &Validator{maxSize: maxSize, extensions: allowed}
}

// Validate reports why a file cannot be accepted, or nil.
func (v *Validator) Validate(name string, size int) error {
	ext := Extension(name)
	if _, ok := v.extensions[ext]; !ok {
		return fmt.Errorf("file %q: type not allowed, allowed types: %s", name, strings.Join(v.allowedList(), ", "))
	}
	if size > v.maxSize {
		return fmt.Errorf("file %q: size exceeds limit, max size: %.2fMB", name, SizeMB(v.maxSize))
	}
	return nil
}

// Extension returns the lowercased extension without the dot, empty when the
// name has none.
func Extension(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 || idx == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[idx+1:])
}

// SizeMB converts a byte count to megabytes for user-facing messages.
func SizeMB(size int) float64 {
	return float64(size) / (1024 * 1024)
}

func (v *Validator) allowedList() []string {
	list := make([]string, 0, len(v.extensions))
	for ext := range v.extensions {
		list = append(list, ext)
	}
	// Stable order keeps error messages deterministic.
	sort.Strings(list)
	return list
}
