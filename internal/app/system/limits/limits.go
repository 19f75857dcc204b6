// internal/app/system/limits/limits.go
package limits

// Request body size limits for form submissions.
// These limits help prevent memory exhaustion from oversized requests.
// Image uploads go through ParseMultipartForm with their own cap in
// the courses feature.
const (
	// MaxAuthFormSize is the maximum size for login, register, and
	// OTP form submissions.
	MaxAuthFormSize = 64 << 10 // 64 KB

	// MaxCourseFormSize is the maximum size for the course editor
	// form, which carries a rich-text description.
	MaxCourseFormSize = 1 << 20 // 1 MB
)
