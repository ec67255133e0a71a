package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/solotto/solotto-bot/data"
	"github.com/solotto/solotto-bot/utils"
)

func (b *Bot) callbackQueryReceived(callback *tgbotapi.CallbackQuery) {
	cb := callback.Data
	b.tgBot.AnswerCallbackQuery(tgbotapi.NewCallback(callback.ID, cb))
	user := b.getOrCreateUser(callback.From)
	name := utils.FormatTgUser(callback.From)
	log.Info("callback received", "callback", callback.Data, "user", name)

	if callback.Data == "KEY" {
		b.sendPrivateKey(user)
		return
	}
}

// sendPrivateKey hands the user the base58 key of their generated
// wallet so they can import it into any Solana wallet app.
func (b *Bot) sendPrivateKey(user *data.User) {
	pk := utils.GetPrivateKeyFromSeed(user.ID)
	text := fmt.Sprintf("`Wallet:` `%s`\n`Private key:` `%s`\n\n⚠️ Keep it secret. Anyone holding this key controls the wallet.",
		user.Wallet, pk.String())
	b.sendMessage(user.ID, text)
}
