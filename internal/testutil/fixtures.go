// internal/testutil/fixtures.go
package testutil

// Fixture data para tests (valores primitivos solamente, sin dependencias de domain)

// FixturePhone número normalizado de prueba.
const FixturePhone = "+15551234567"

// FixtureRawPhones entradas crudas y su forma normalizada.
var FixtureRawPhones = map[string]string{
	"+1 (555) 123-4567": "+15551234567",
	" 79001234567 ":     "79001234567",
	"+44 20.7946.0958":  "+442079460958",
	"+15551234567":      "+15551234567",
}

// FixtureUserAgents firmas usadas por providers estáticos.
var FixtureUserAgents = []string{
	"test-agent/1.0",
	"test-agent/2.0",
}

// FixtureValidTemplates templates que el catálogo debe aceptar.
var FixtureValidTemplates = []string{
	"https://example.com/search?q={phone}",
	"https://example.com/u/{phone}",
	"viber://chat?number={phone}",
	"skype:{phone}?call",
}

// FixtureInvalidTemplates templates que el catálogo debe rechazar.
var FixtureInvalidTemplates = []string{
	"",
	"https://example.com/search",
	"https://example.com/{phone}/{phone}",
	"example.com/{phone}",
	"https:///{phone}",
	"://{phone}",
}
