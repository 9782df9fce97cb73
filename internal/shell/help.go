package shell

import (
	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# registrar

Pick an action with the arrow keys and **enter**, or type its number.

| Action | Asks for |
|---|---|
| Add Course | code, name, maximum capacity |
| Enroll Student | student name, course name |
| Assign Grade | student ID, course name, grade |
| Calculate Average Grade | student ID |
| View Grade | student ID, course name |
| Transcript | student ID |

Enrolling a name that is not registered yet registers the student and prints
the new ID. Courses can be named by their name or their code.

Invalid numbers are asked again; after too many attempts the shell returns to
the menu. Press **esc** to abandon a prompt and **?** to close this page.
`

// noMarginStyle removes the document margins glamour adds by default.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// renderHelp renders the help page, falling back to the raw markdown.
func renderHelp(width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return out
}
