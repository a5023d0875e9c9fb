package service

// SavePath is the file name the open note will be written to. Derived
// follows the title; Override, once set by the user, wins until the next
// new note.
type SavePath struct {
	Derived  string
	Override string
	overrode bool
}

// Value returns the effective file name
func (p SavePath) Value() string {
	if p.overrode {
		return p.Override
	}
	return p.Derived
}

// Overridden reports whether the user pinned the file name
func (p SavePath) Overridden() bool {
	return p.overrode
}

func (p *SavePath) setOverride(name string) {
	p.Override = name
	p.overrode = true
}

func (p *SavePath) clearOverride() {
	p.Override = ""
	p.overrode = false
}

// Status is the outcome of the last operation, shown to the user
type Status struct {
	Message string
	Err     error
}

// Failed reports whether the last operation failed
func (s Status) Failed() bool {
	return s.Err != nil
}
