package ports

// LinkOpener opens topic resource links outside the terminal
type LinkOpener interface {
	// OpenURL opens an http or https URL in the default browser
	OpenURL(rawURL string) error
}
