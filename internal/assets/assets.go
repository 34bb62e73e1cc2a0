package assets

// DefaultStyleName is the built-in style used when none is named.
const DefaultStyleName = "default"

var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a built-in style by name.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// StyleNames lists the built-in styles.
func StyleNames() []string {
	return defaultLoader.Names()
}
