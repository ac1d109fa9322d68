package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.French

	message.SetString(lang, "dialog.menu.prompt", "Choisis une action :")
	message.SetString(lang, "dialog.menu.repeat", "Choisis :")
	message.SetString(lang, "dialog.auth.denied", "⛔ Accès refusé. Donne-moi ton ID pour whitelister.")
	message.SetString(lang, "dialog.auth.denied_short", "⛔ Accès refusé.")
	message.SetString(lang, "dialog.count.prompt", "Combien de numéros veux-tu ?")
	message.SetString(lang, "dialog.count.invalid", "Entre un nombre entier > 0.")
	message.SetString(lang, "dialog.pool.empty", "Aucun numéro dispo.")
	message.SetString(lang, "dialog.export.caption", "📦 %d numéros extraits.\nRestant consultable via 📊 Statut.")
	message.SetString(lang, "dialog.followup", "Tu veux autre chose ?")
	message.SetString(lang, "dialog.query.prompt", "Envoie un *numéro* (+33… ou 0…) ou un *nom/prénom*.")
	message.SetString(lang, "dialog.query.empty", "Envoie un numéro ou un nom.")
	message.SetString(lang, "dialog.search.none", "Aucun résultat.")
	message.SetString(lang, "dialog.search.again", "Nouvelle recherche ?")
	message.SetString(lang, "dialog.status", "📱 Numéros dispo: %d\n👥 Fiches: %d")
	message.SetString(lang, "dialog.farewell", "Bye.")
	message.SetString(lang, "dialog.error.generic", "⚠️ Oups, une erreur est survenue. Réessaie.")
	message.SetString(lang, "dialog.menu.draw", "📱 Tirer des numéros")
	message.SetString(lang, "dialog.menu.search", "🔎 Rechercher fiche")
	message.SetString(lang, "dialog.menu.status", "📊 Statut")
}
