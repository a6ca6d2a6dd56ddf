package domain

import "fmt"

// Attachment is one uploaded file captured from a multipart submission. The
// bytes are held until validation passes; uploading is the pipeline's job.
type Attachment struct {
	FieldID     string
	Filename    string
	ContentType string
	Data        []byte
}

// Entry is one decoded unit of a multipart body, in arrival order. Exactly
// one of Value or File is meaningful: entries with a file never contribute to
// the attribute map.
type Entry struct {
	Key   string
	Value string
	File  *Attachment
}

// Payload is the canonical, wire-shape-independent form of a submission: a
// single attribute map plus the raw attachments keyed by field id.
type Payload struct {
	Values      map[string]any
	Attachments []Attachment
}

// AttachmentKeys returns the set of field ids that carry a pending file.
func (p Payload) AttachmentKeys() map[string]struct{} {
	if len(p.Attachments) == 0 {
		return nil
	}
	keys := make(map[string]struct{}, len(p.Attachments))
	for _, att := range p.Attachments {
		keys[att.FieldID] = struct{}{}
	}
	return keys
}

// NormalizeJSON canonicalizes a structured JSON body. The nested attribute
// map is taken verbatim; this shape cannot carry attachments.
func NormalizeJSON(data map[string]any) Payload {
	if data == nil {
		data = map[string]any{}
	}
	return Payload{Values: data}
}

// NormalizeEntries folds multipart entries into the canonical attribute map.
// File entries are routed to the attachment set under their key. Text entries
// merge with checkbox-group semantics: a repeated key turns the stored scalar
// into an ordered list and appends, preserving arrival order.
func NormalizeEntries(entries []Entry) Payload {
	payload := Payload{Values: make(map[string]any, len(entries))}
	for _, entry := range entries {
		if entry.File != nil {
			payload.Attachments = append(payload.Attachments, *entry.File)
			continue
		}
		existing, ok := payload.Values[entry.Key]
		if !ok {
			payload.Values[entry.Key] = entry.Value
			continue
		}
		switch prev := existing.(type) {
		case []string:
			payload.Values[entry.Key] = append(prev, entry.Value)
		case string:
			payload.Values[entry.Key] = []string{prev, entry.Value}
		default:
			payload.Values[entry.Key] = []string{fmt.Sprint(prev), entry.Value}
		}
	}
	return payload
}
