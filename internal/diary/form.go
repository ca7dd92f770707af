package diary

// FormData is the title and content being written on the content step.
type FormData struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// FormPatch is a partial update to FormData. Nil fields are left alone.
type FormPatch struct {
	Title   *string
	Content *string
}

// TitlePatch builds a patch that only changes the title.
func TitlePatch(s string) FormPatch { return FormPatch{Title: &s} }

// ContentPatch builds a patch that only changes the content.
func ContentPatch(s string) FormPatch { return FormPatch{Content: &s} }

// Merge returns f with the fields present in p applied.
func (f FormData) Merge(p FormPatch) FormData {
	if p.Title != nil {
		f.Title = *p.Title
	}
	if p.Content != nil {
		f.Content = *p.Content
	}
	return f
}
