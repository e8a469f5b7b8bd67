package ea

import "sync"

// Connector opens the project repository lazily and hands out the shared
// session. Opening happens on the first tool call rather than at server
// startup, so a project file that appears later (or an EA export still in
// progress) doesn't keep the whole server from starting. Failures surface
// per call as *ConnectionError.
//
// Tool calls arrive one at a time over the stdio transport; the mutex only
// guards the open-once handoff.
type Connector struct {
	path   string
	create bool

	mu   sync.Mutex
	repo *Repo
}

// NewConnector returns a Connector for the given project file.
func NewConnector(path string, create bool) *Connector {
	return &Connector{path: path, create: create}
}

// Session returns the open repository, opening it on first use.
func (c *Connector) Session() (Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.repo != nil {
		return c.repo, nil
	}

	repo, err := Open(c.path, c.create)
	if err != nil {
		return nil, &ConnectionError{Path: c.path, Err: err}
	}
	c.repo = repo
	return c.repo, nil
}

// Connected reports whether the repository has been opened.
func (c *Connector) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.repo != nil
}

// Path returns the configured project file path.
func (c *Connector) Path() string {
	return c.path
}

// Close closes the repository if it was opened.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.repo == nil {
		return nil
	}
	err := c.repo.Close()
	c.repo = nil
	return err
}
