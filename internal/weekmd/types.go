package weekmd

// ColorRule binds a calendar color id to the summary keywords that select
// it. Rules are evaluated in slice order; the first keyword hit wins, so
// the order coming from configuration is significant.
type ColorRule struct {
	ColorID  string
	Keywords []string
}

// Config carries everything the parser needs besides the document itself.
type Config struct {
	Timezone     string // IANA name, e.g. "Europe/Paris"
	DefaultColor string // color id used when no keyword matches
	Colors       []ColorRule
}
