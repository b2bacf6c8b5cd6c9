package domain

// Attachment is a stored proof-of-payment file reference. It points at bytes
// held by the file store; the domain never carries file contents.
type Attachment struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size"`
}

// IsComplete reports whether every field of the reference is present. Partial
// updates only replace a stored attachment when the incoming one is complete,
// so an edit that does not touch a line item cannot drop its proof file.
func (a *Attachment) IsComplete() bool {
	return a != nil && a.Filename != "" && a.Path != "" && a.MimeType != "" && a.Size > 0
}

// MergeAttachment decides which attachment survives a partial update:
// the incoming one when it is complete, otherwise the existing one.
func MergeAttachment(existing, incoming *Attachment) *Attachment {
	if incoming.IsComplete() {
		return incoming
	}
	return existing
}
