package cli

// Flags holds all command-line flag values.
type Flags struct {
	CfgFile   string
	AnkiURL   string
	ChatModel string
}

// NewFlags creates a new Flags instance. Defaults live in the config layer;
// flags only override what the user sets explicitly.
func NewFlags() *Flags {
	return &Flags{}
}
