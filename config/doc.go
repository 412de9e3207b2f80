// Package config turns CLI flags and an optional YAML file into validated
// [render.Settings] for one run.
//
// Values are layered: built-in defaults, then the config file, then flags
// the user set explicitly. The file is read from --config or, when that is
// empty, from asciivid/config.yaml under the XDG config directories. Its
// JSON Schema is available from [Schema].
//
// [Config.Resolve] checks the combination of options against the command
// being run and rejects conflicts with [ErrInvalidConfiguration] before any
// media is touched. Width and height of zero mean "fit the terminal": half
// the columns, since every pixel is two characters wide, and all rows but
// one.
package config
