package library

// Config represents the top-level structure of the affirmation library file.
type Config struct {
	Affirmations []Entry `yaml:"affirmations"`
}

// Entry is one affirmation as declared in the library file. ID is optional;
// a stable one is derived from the text when absent.
type Entry struct {
	ID       string `yaml:"id,omitempty"`
	Text     string `yaml:"text"`
	Category string `yaml:"category"`
}
