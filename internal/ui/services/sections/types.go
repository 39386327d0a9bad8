package sections

// LoadSectionFunc is notified with the name of a section that became
// expanded and may need its content loaded
type LoadSectionFunc func(sectionName string)

type listener struct {
	id uint64
	fn LoadSectionFunc
}
