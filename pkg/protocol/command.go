package protocol

// Op is the operation of a server command.
type Op string

const (
	OpPush    Op = "push"    // history.pushState
	OpReplace Op = "replace" // history.replaceState
	OpGo      Op = "go"      // history.go(delta)
	OpRender  Op = "render"  // swap the rendered view
	OpError   Op = "error"   // report a failed request
)

// Command is a server → client frame.
type Command struct {
	Op     Op            `json:"op"`
	URL    string        `json:"url,omitempty"`
	Delta  int           `json:"delta,omitempty"`
	Route  string        `json:"route,omitempty"`
	View   string        `json:"view,omitempty"`
	HTML   string        `json:"html,omitempty"`
	Status int           `json:"status,omitempty"`
	Error  *ErrorMessage `json:"error,omitempty"`
}

// NewPushCommand asks the client to push url onto its history stack.
func NewPushCommand(url string) Command {
	return Command{Op: OpPush, URL: url}
}

// NewReplaceCommand asks the client to replace the current history entry.
func NewReplaceCommand(url string) Command {
	return Command{Op: OpReplace, URL: url}
}

// NewGoCommand asks the client to traverse its history by delta entries.
func NewGoCommand(delta int) Command {
	return Command{Op: OpGo, Delta: delta}
}

// NewRenderCommand swaps the client's view for html.
func NewRenderCommand(route, view, html string, status int) Command {
	return Command{Op: OpRender, Route: route, View: view, HTML: html, Status: status}
}

// NewErrorCommand reports an error to the client.
func NewErrorCommand(code ErrorCode, message string) Command {
	return Command{Op: OpError, Error: &ErrorMessage{Code: code, Message: message}}
}
