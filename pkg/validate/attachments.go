package validate

import "fmt"

const (
	ReasonTooMany         = "too_many"
	ReasonTooLarge        = "too_large"
	ReasonUnsupportedType = "unsupported_type"
)

type AttachmentLimits struct {
	MaxCount     int
	MaxSizeBytes int64
	AllowedTypes []string
}

// AttachmentError carries one of the Reason* codes.
type AttachmentError struct {
	Reason string
	Detail string
}

func (e *AttachmentError) Error() string {
	return fmt.Sprintf("attachment rejected: %s: %s", e.Reason, e.Detail)
}

// Attachment checks one more file against limits given how many are stored.
func Attachment(limits AttachmentLimits, stored int, size int64, contentType string) error {
	if stored >= limits.MaxCount {
		return &AttachmentError{
			Reason: ReasonTooMany,
			Detail: fmt.Sprintf("at most %d files", limits.MaxCount),
		}
	}
	if size > limits.MaxSizeBytes {
		return &AttachmentError{
			Reason: ReasonTooLarge,
			Detail: fmt.Sprintf("maximum size is %dMB", limits.MaxSizeBytes/(1024*1024)),
		}
	}
	for _, t := range limits.AllowedTypes {
		if t == contentType {
			return nil
		}
	}
	return &AttachmentError{
		Reason: ReasonUnsupportedType,
		Detail: "unsupported file type " + contentType,
	}
}
