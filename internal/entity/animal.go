package entity

// Animal is an inert creature. It can be inspected but never battled or captured.
type Animal struct {
	identity
}

// NewAnimal creates an animal off the map.
func NewAnimal(nickname, description string) *Animal {
	return &Animal{identity: identity{nickname: nickname, description: description}}
}

// Kind returns KindAnimal.
func (a *Animal) Kind() Kind { return KindAnimal }

// Capabilities reports that animals cannot be battled or captured.
func (a *Animal) Capabilities() Capabilities { return Capabilities{} }

// Capturable returns false.
func (a *Animal) Capturable() bool { return false }

// Capture always fails with ErrCaptureNotAllowed.
func (a *Animal) Capture() error { return ErrCaptureNotAllowed }

var _ Creature = (*Animal)(nil)
