package skill

import "os"

// Destination category prefixes. A resolved file's Dest starts with one of
// these; the installer routes on it.
const (
	DestSkill   = "skill"
	DestCommand = "command"
	DestAgent   = "agent"
	DestUtils   = "utils"
)

// File is one resolved file ready to be written into the project.
type File struct {
	// Dest is the category-relative destination: skill/<name>/<file>,
	// command/<file>, agent/<file>, or utils/<file>.
	Dest string

	// Content is the transformed file body.
	Content []byte

	// Mode is the file mode to write with. Zero means 0644.
	Mode os.FileMode
}
