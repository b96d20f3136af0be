package model

type OutputPage struct {
	Name    string `json:"name"`
	Format  string `json:"format"`
	Content []byte `json:"content"`
}
