package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSectionLoadRequested EventType = "SectionLoadRequested"
	EventSectionLoaded        EventType = "SectionLoaded"
	EventSectionLoadFailed    EventType = "SectionLoadFailed"
	EventError                EventType = "Error"
	EventConfigSaved          EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SectionLoadRequestedEvent is emitted when a section was revealed and its content is wanted
type SectionLoadRequestedEvent struct {
	RequestID string
	Name      string
}

func (e SectionLoadRequestedEvent) Type() EventType { return EventSectionLoadRequested }

// SectionLoadedEvent carries the content of a loaded section
type SectionLoadedEvent struct {
	RequestID string
	Name      string
	Content   *SectionContent
}

func (e SectionLoadedEvent) Type() EventType { return EventSectionLoaded }

// SectionLoadFailedEvent is emitted when a section could not be loaded
type SectionLoadFailedEvent struct {
	RequestID string
	Name      string
	Err       error
}

func (e SectionLoadFailedEvent) Type() EventType { return EventSectionLoadFailed }

// ErrorEvent reports a failure outside of section loading
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
