package config

var (
	// AppName is the name of the application
	AppName = "osui-setup"

	// EnvPrefix prefixes environment overrides, e.g. OSUI_SETUP_PATCH_EDITOR
	EnvPrefix = "OSUI_SETUP"

	// Config search paths

	// InDot is the path to the config file in ./
	InDot = "."
	// InEtc is the path to the config file in /etc/{AppName}
	InEtc = "/etc/" + AppName
	// InHome is the path to the config file in $HOME/.config/{AppName}
	InHome = "$HOME/.config/" + AppName
	// InHomeDot is the path to the config file in $HOME/.{AppName}
	InHomeDot = "$HOME/." + AppName
)
