package modules

// Module is one named install/packaging action bound to exactly one script.
type Module struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Script      string `json:"script"`
}

var builtin = []Module{
	{ID: "core", Name: "Core", Description: "Base toolchain and editor environment", Script: "master_install_core.sh"},
	{ID: "ai", Name: "AI", Description: "AI assistants and model tooling", Script: "master_install_ai.sh"},
	{ID: "android", Name: "Android", Description: "Android SDK and build tools", Script: "master_install_android.sh"},
	{ID: "wsl", Name: "WSL", Description: "Windows Subsystem for Linux integration", Script: "master_install_wsl.sh"},
	{ID: "lcd", Name: "LCD", Description: "LCD display drivers", Script: "master_install_lcd.sh"},
	{ID: "zip", Name: "ZIP", Description: "Package the installer directory into an archive", Script: "create_zip.sh"},
}
