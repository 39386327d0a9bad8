package results

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"rgqview/internal/domain"
)

// FileProvider reads results from a YAML file. The file is parsed once,
// on first use.
type FileProvider struct {
	path string

	once    sync.Once
	session *domain.Session
	index   map[int]domain.Question
	err     error
}

// NewFileProvider creates a provider for the results file at path
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

func (p *FileProvider) load() error {
	p.once.Do(func() {
		data, err := os.ReadFile(p.path)
		if err != nil {
			p.err = fmt.Errorf("failed to read results file: %w", err)
			return
		}
		p.session, p.index, p.err = Parse(data)
	})
	return p.err
}

// Session returns the parsed session
func (p *FileProvider) Session(ctx context.Context) (*domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := p.load(); err != nil {
		return nil, err
	}
	return p.session, nil
}

// SectionNames returns section names in display order
func (p *FileProvider) SectionNames(ctx context.Context) ([]string, error) {
	s, err := p.Session(ctx)
	if err != nil {
		return nil, err
	}
	return SectionOrder(s), nil
}

// LoadSection builds the RGQ tree of one section
func (p *FileProvider) LoadSection(ctx context.Context, name string) (*domain.SectionContent, error) {
	s, err := p.Session(ctx)
	if err != nil {
		return nil, err
	}
	known := false
	for _, n := range SectionOrder(s) {
		if n == name {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("%w: %q", ErrSectionNotFound, name)
	}
	return BuildSection(s, p.index, name), nil
}

// Parse decodes and validates a results document. It returns the session
// and its questions indexed by number.
func Parse(data []byte) (*domain.Session, map[int]domain.Question, error) {
	var s domain.Session
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, nil, fmt.Errorf("failed to parse results: %w", err)
	}
	if s.Name == "" {
		return nil, nil, fmt.Errorf("invalid results: session name is required")
	}

	index := make(map[int]domain.Question, len(s.Questions))
	for _, q := range s.Questions {
		if _, dup := index[q.Number]; dup {
			return nil, nil, fmt.Errorf("invalid results: duplicate question %d", q.Number)
		}
		index[q.Number] = q
	}
	for i, r := range s.Responses {
		if _, ok := index[r.QuestionNumber]; !ok {
			return nil, nil, fmt.Errorf("response %d: %w %d", i+1, ErrUnknownQuestion, r.QuestionNumber)
		}
	}
	return &s, index, nil
}

// SectionOrder returns the explicit section list followed by any recipient
// sections it leaves out, or without a list the recipient sections in order
// of first appearance
func SectionOrder(s *domain.Session) []string {
	seen := make(map[string]bool, len(s.Sections))
	names := make([]string, 0, len(s.Sections))
	for _, name := range s.Sections {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for _, r := range s.Responses {
		if !seen[r.RecipientSection] {
			seen[r.RecipientSection] = true
			names = append(names, r.RecipientSection)
		}
	}
	return names
}

// BuildSection groups the responses received in a section by recipient,
// then giver, with answers ordered by question number
func BuildSection(s *domain.Session, questions map[int]domain.Question, name string) *domain.SectionContent {
	content := &domain.SectionContent{Section: name}
	recipientIdx := make(map[string]int)
	giverIdx := make(map[string]map[string]int)

	for _, r := range s.Responses {
		if r.RecipientSection != name {
			continue
		}
		ri, ok := recipientIdx[r.Recipient]
		if !ok {
			ri = len(content.Recipients)
			recipientIdx[r.Recipient] = ri
			giverIdx[r.Recipient] = make(map[string]int)
			content.Recipients = append(content.Recipients, domain.RecipientGroup{Recipient: r.Recipient})
		}
		recipient := &content.Recipients[ri]

		gi, ok := giverIdx[r.Recipient][r.Giver]
		if !ok {
			gi = len(recipient.Givers)
			giverIdx[r.Recipient][r.Giver] = gi
			recipient.Givers = append(recipient.Givers, domain.GiverGroup{Giver: r.Giver})
		}
		giver := &recipient.Givers[gi]
		giver.Answers = append(giver.Answers, domain.Answer{
			QuestionNumber: r.QuestionNumber,
			QuestionText:   questions[r.QuestionNumber].Text,
			Answer:         r.Answer,
		})
	}

	for ri := range content.Recipients {
		for gi := range content.Recipients[ri].Givers {
			answers := content.Recipients[ri].Givers[gi].Answers
			sort.SliceStable(answers, func(i, j int) bool {
				return answers[i].QuestionNumber < answers[j].QuestionNumber
			})
		}
	}
	return content
}
