package viewmodels

type LayoutData struct {
	Title      string
	ActivePath string
	ChainID    int
	Chains     []ChainOption
	RequestID  string
}

// ChainOption is one entry of the network switcher.
type ChainOption struct {
	ID       int
	Name     string
	Selected bool
}
