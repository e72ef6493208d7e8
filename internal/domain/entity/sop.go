package entity

const DefaultSOPFormat = "standard"

type GenerationRequest struct {
	Task   string `json:"task"`
	Format string `json:"format,omitempty"` // accepted, currently no effect on generation
}

type GenerationResult struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
