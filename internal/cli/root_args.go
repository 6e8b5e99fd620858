package cli

// RootArgs holds the flags of the root command.
type RootArgs struct {
	logLevel  *string
	logFormat *string
	config    *string
	yes       *bool
}

// NewRootArgs creates a new [RootArgs].
func NewRootArgs() *RootArgs {
	return &RootArgs{
		logLevel:  new(string),
		logFormat: new(string),
		config:    new(string),
		yes:       new(bool),
	}
}

func (a *RootArgs) GetLogLevel() string {
	return *a.logLevel
}

func (a *RootArgs) GetLogFormat() string {
	return *a.logFormat
}

func (a *RootArgs) GetConfig() string {
	return *a.config
}

func (a *RootArgs) GetYes() bool {
	return *a.yes
}
