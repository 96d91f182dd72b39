package models

// RunRequest is the body accepted by the execution proxy. Field names follow
// the upstream Judge0 wire format.
type RunRequest struct {
	SourceCode string `json:"source_code"`
	LanguageID int    `json:"language_id"`
}

// RunResponse is the normalized execution result, always carrying all four
// fields with empty strings substituted for anything the upstream omitted.
type RunResponse struct {
	Stdout        string                 `json:"stdout"`
	Stderr        string                 `json:"stderr"`
	CompileOutput string                 `json:"compile_output"`
	Status        map[string]interface{} `json:"status"`
}
