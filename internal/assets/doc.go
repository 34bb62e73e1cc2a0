// Package assets provides the stylesheets injected into rendered notebooks.
//
// # Loaders
//
//	StyleLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in styles compiled into the binary
//	    ├── FilesystemLoader  - {name}.css files from a user directory
//	    └── Resolver          - user directory first, built-ins as fallback
//
// Built-in styles are default (light), dark and minimal. A user directory
// may override any of them or add new ones by name:
//
//	{styleDir}/
//	├── default.css   # replaces the built-in default
//	└── report.css    # new style, selected with --style report
//
// # Security
//
// Style names are validated so a name can never become a path.
// FilesystemLoader resolves symlinks and verifies paths stay within its directory.
package assets
