package panel

import _ "embed"

// installerPage is served verbatim on GET /.
//
//go:embed web/installer.html
var installerPage []byte
