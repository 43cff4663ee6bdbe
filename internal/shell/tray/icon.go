package tray

import _ "embed"

//go:embed icon.png
var iconData []byte

//go:embed icon.ico
var iconICO []byte
