package models

// Session is the shared document of files plus the last execution output.
// Files values are interface{} on purpose: a legacy writer may have persisted
// a nested map instead of a flat dotted key, and the stream normalizer repairs
// that shape on read.
type Session struct {
	ID           string                 `json:"id" bson:"_id"`
	CreatedAt    int64                  `json:"createdAt" bson:"createdAt"`
	Files        map[string]interface{} `json:"files" bson:"files"`
	Output       string                 `json:"output" bson:"output"`
	Participants []string               `json:"participants" bson:"participants"`
}

// SessionResponse is the normalized view returned by the API, files already
// flattened to filename -> content.
type SessionResponse struct {
	ID        string            `json:"id"`
	CreatedAt int64             `json:"createdAt"`
	Files     map[string]string `json:"files"`
	Output    string            `json:"output"`
}

// CreateSessionResponse returns the identifier of a freshly created session
type CreateSessionResponse struct {
	ID string `json:"id"`
}

// UpdateFileRequest carries the new content for a single file
type UpdateFileRequest struct {
	Content *string `json:"content" validate:"required"`
}

// UpdateOutputRequest overwrites the session output field
type UpdateOutputRequest struct {
	Output *string `json:"output" validate:"required"`
}
