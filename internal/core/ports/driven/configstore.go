package driven

// ConfigReader reads dotted keys such as "llm.model". Typed getters
// return the zero value when a key is absent or holds another type.
type ConfigReader interface {
	Get(key string) (any, bool)
	GetString(key string) string
	GetInt(key string) int
	GetFloat(key string) float64
	GetBool(key string) bool
	GetStringSlice(key string) []string
}

// ConfigStore is a ConfigReader backed by storage. Set persists at once;
// Load discards in-memory values in favour of what is stored.
type ConfigStore interface {
	ConfigReader

	Set(key string, value any) error
	Save() error
	Load() error

	// Path is where the values live, or ":memory:".
	Path() string
}
