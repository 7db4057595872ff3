package notification

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"
)

const unknownOrderKey = "unknown order"

// Supported display locales.
var (
	English = language.English
	Spanish = language.Spanish
)

var messages = newCatalog()

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(English))

	set := func(tag language.Tag, key, msg string) {
		if err := b.SetString(tag, key, msg); err != nil {
			panic(err)
		}
	}

	for _, r := range rules {
		set(English, r.key, r.key)
	}
	set(English, unknownOrderKey, "(unknown)")

	set(Spanish, rules[EventOrderCreated].key, "El pedido %s ha sido creado")
	set(Spanish, rules[EventOrderReceived].key, "La cocina ha recibido el pedido %s")
	set(Spanish, rules[EventOrderPreparing].key, "El pedido %s se está preparando")
	set(Spanish, rules[EventOrderReady].key, "¡El pedido %s está listo para recoger!")
	set(Spanish, rules[EventOrderCancelled].key, "El pedido %s ha sido cancelado")
	set(Spanish, unknownOrderKey, "(sin número)")

	return b
}

// ParseLocale maps a configured locale string onto a supported tag.
// Anything unrecognised falls back to English.
func ParseLocale(s string) language.Tag {
	tag, err := language.Parse(s)
	if err != nil {
		return English
	}
	base, _ := tag.Base()
	switch base.String() {
	case "es":
		return Spanish
	default:
		return English
	}
}
