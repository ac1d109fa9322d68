package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	message.SetString(lang, "dialog.menu.prompt", "Pick an action:")
	message.SetString(lang, "dialog.menu.repeat", "Pick one:")
	message.SetString(lang, "dialog.auth.denied", "⛔ Access denied. Send me your ID to get whitelisted.")
	message.SetString(lang, "dialog.auth.denied_short", "⛔ Access denied.")
	message.SetString(lang, "dialog.count.prompt", "How many numbers do you want?")
	message.SetString(lang, "dialog.count.invalid", "Send a whole number > 0.")
	message.SetString(lang, "dialog.pool.empty", "No numbers left.")
	message.SetString(lang, "dialog.export.caption", "📦 %d numbers extracted.\nRemainder available via 📊 Status.")
	message.SetString(lang, "dialog.followup", "Anything else?")
	message.SetString(lang, "dialog.query.prompt", "Send a *number* (+33… or 0…) or a *name*.")
	message.SetString(lang, "dialog.query.empty", "Send a number or a name.")
	message.SetString(lang, "dialog.search.none", "No results.")
	message.SetString(lang, "dialog.search.again", "New search?")
	message.SetString(lang, "dialog.status", "📱 Numbers left: %d\n👥 Records: %d")
	message.SetString(lang, "dialog.farewell", "Bye.")
	message.SetString(lang, "dialog.error.generic", "⚠️ Oops, something went wrong. Try again.")
	message.SetString(lang, "dialog.menu.draw", "📱 Draw numbers")
	message.SetString(lang, "dialog.menu.search", "🔎 Search records")
	message.SetString(lang, "dialog.menu.status", "📊 Status")
}
