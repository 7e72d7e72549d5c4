package cnst

const (
	// AppName is the application name used in logs and metrics namespaces
	AppName = "reobserve"
	// CommandName is the name of the apiserver command
	CommandName = "apiserver"
)

const (
	// ApiServerYaml is the default configuration file name
	ApiServerYaml = "apiserver.yaml"
)
