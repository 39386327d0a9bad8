package domain

// Section is the view state of one collapsible results tab
type Section struct {
	Name          string
	IsTabExpanded bool

	// Rendering payload, owned by the loader/UI
	Content *SectionContent
	Loading bool
	LoadErr string
}

// SectionContent is the Recipient > Giver > Question tree of one section
type SectionContent struct {
	Section    string
	Recipients []RecipientGroup
}

// ResponseCount returns the number of answers in the section
func (c *SectionContent) ResponseCount() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, r := range c.Recipients {
		for _, g := range r.Givers {
			n += len(g.Answers)
		}
	}
	return n
}

// RecipientGroup holds every response received by one recipient
type RecipientGroup struct {
	Recipient string
	Givers    []GiverGroup
}

// GiverGroup holds the answers one giver gave to a recipient
type GiverGroup struct {
	Giver   string
	Answers []Answer
}

// Answer is a single response to a question
type Answer struct {
	QuestionNumber int
	QuestionText   string
	Answer         string
}

// Question describes a feedback question of a session
type Question struct {
	Number        int    `yaml:"number"`
	Text          string `yaml:"text"`
	Description   string `yaml:"description,omitempty"`
	GiverType     string `yaml:"giver_type,omitempty"`
	RecipientType string `yaml:"recipient_type,omitempty"`
}

// Response is a raw feedback response as stored in the results file
type Response struct {
	QuestionNumber   int    `yaml:"question"`
	Giver            string `yaml:"giver"`
	GiverSection     string `yaml:"giver_section,omitempty"`
	Recipient        string `yaml:"recipient"`
	RecipientSection string `yaml:"recipient_section"`
	Answer           string `yaml:"answer"`
}

// Session is a feedback session together with its results
type Session struct {
	Name      string     `yaml:"session"`
	CourseID  string     `yaml:"course"`
	Sections  []string   `yaml:"sections,omitempty"` // explicit display order
	Questions []Question `yaml:"questions"`
	Responses []Response `yaml:"responses"`
}
