package config

import (
	"github.com/OliveiraNt/netbind/locales"
	"github.com/invopop/ctxi18n"
)

// InitI18n loads the embedded locales with English as the default.
func InitI18n() {
	if err := ctxi18n.LoadWithDefault(locales.Content, "en"); err != nil {
		panic(err)
	}
}
