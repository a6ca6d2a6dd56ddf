package common

const (
	// MaxJSONBody limits JSON request bodies for form and submission endpoints.
	MaxJSONBody = 1 << 20
	// MaxAttachmentBytes limits one uploaded file inside a multipart submission.
	MaxAttachmentBytes = 10 << 20
	// MaxTextPartBytes limits one text part inside a multipart submission.
	MaxTextPartBytes = 1 << 20
)
