package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	logger "github.com/ElrondNetwork/elrond-go-logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/solotto/solotto-bot/cache"
	"github.com/solotto/solotto-bot/config"
	"github.com/solotto/solotto-bot/data"
	"github.com/solotto/solotto-bot/network"
	"github.com/solotto/solotto-bot/price"
	"github.com/solotto/solotto-bot/reconcile"
	"github.com/solotto/solotto-bot/utils"
)

var log = logger.GetOrCreate("bot")

var seasonInfo *data.SeasonSnapshot

// Bot - holds the required fields of the bot application
type Bot struct {
	tgBot          *tgbotapi.BotAPI
	cfg            *data.AppConfig
	networkManager *network.Manager
	reconciler     *reconcile.Reconciler
	cacheStore     *cache.Store
	priceClient    *price.Client

	users   map[int64]*data.User
	tgUsers map[int64]*data.Telegram
}

// NewBot - creates a new Bot object
func NewBot(cfg *data.AppConfig, networkManager *network.Manager, reconciler *reconcile.Reconciler,
	cacheStore *cache.Store, priceClient *price.Client) (*Bot, error) {
	tgBot, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		log.Error("can not create telegram bot", "error", err)
		return nil, err
	}

	telegramBot := &Bot{
		tgBot:          tgBot,
		cfg:            cfg,
		networkManager: networkManager,
		reconciler:     reconciler,
		cacheStore:     cacheStore,
		priceClient:    priceClient,
		users:          make(map[int64]*data.User),
		tgUsers:        make(map[int64]*data.Telegram),
	}

	helpMessage = strings.ReplaceAll(helpMessage, "Solotto", cfg.Bot.Group)

	return telegramBot, nil
}

// StartTasks - starts bot's tasks
func (b *Bot) StartTasks() {
	go func() {
		lastTicketsSold := uint32(0)
		lastInfoMessage := 0
		for {
			snapshot := b.reconciler.GetSeasonState(context.Background(), b.cfg.Lottery.CurrentSeasonID)
			seasonInfo = snapshot
			if lastInfoMessage == 0 {
				msg, err := b.sendSeasonInfo(nil)
				if err == nil {
					lastInfoMessage = msg.MessageID
				}
				lastTicketsSold = snapshot.TotalTicketsSold
			} else if snapshot.TotalTicketsSold != lastTicketsSold {
				msg := tgbotapi.NewEditMessageText(b.cfg.Bot.GroupID, lastInfoMessage, b.seasonInfoText(nil))
				msg.ParseMode = tgbotapi.ModeMarkdown
				b.tgBot.Send(msg)
				lastTicketsSold = snapshot.TotalTicketsSold
			}
			time.Sleep(time.Second * 30)
		}
	}()

	go func() {
		u := tgbotapi.NewUpdate(0)
		u.Timeout = 60
		updates, err := b.tgBot.GetUpdatesChan(u)
		if err != nil {
			log.Error("can not get Telegram bot updates", "error", err)
			panic(err)
		}
		updates.Clear()
		for update := range updates {
			if update.Message != nil {
				if update.Message.Chat.IsPrivate() {
					// private
					if update.Message.IsCommand() {
						b.privateCommandReceived(update.Message)
						continue
					}
					b.privateMessageReceived(update.Message)
				} else {
					// public
					if b.cfg.Bot.GroupID == 0 && update.Message.Chat.UserName == b.cfg.Bot.Group {
						b.cfg.Bot.GroupID = update.Message.Chat.ID
						_ = config.Save(b.cfg)
					}
					if update.Message.IsCommand() {
						b.tgBot.Send(tgbotapi.DeleteMessageConfig{ChatID: update.Message.Chat.ID, MessageID: update.Message.MessageID})
						continue
					}
				}
			}
			if update.CallbackQuery != nil {
				b.callbackQueryReceived(update.CallbackQuery)
			}
		}
	}()
}

func (b *Bot) reportError(text string) {
	msg := tgbotapi.NewMessage(b.cfg.Bot.Owner, "⛔️ "+text)
	b.tgBot.Send(msg)
}

func (b *Bot) sendToGroup(text string) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(b.cfg.Bot.GroupID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	res, err := b.tgBot.Send(msg)
	if err != nil {
		log.Warn("error sending message to group", "message", text, "error", err)
	}

	return res, err
}

func (b *Bot) sendMessage(userID int64, text string) (tgbotapi.Message, error) {
	user, ok := b.users[userID]
	if user == nil || !ok {
		return tgbotapi.Message{}, errors.New("user not found")
	}

	tgUser, ok := b.tgUsers[userID]
	if tgUser != nil && ok {
		log.Info("sent message", "user", fmt.Sprintf("@%s (%s %s)", tgUser.UserName, tgUser.FirstName, tgUser.LastName), "message", text)
	}
	msg := tgbotapi.NewMessage(userID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	res, err := b.tgBot.Send(msg)
	if err != nil && ok {
		log.Warn("error sending message", "user", fmt.Sprintf("@%s (%s %s)", tgUser.UserName, tgUser.FirstName, tgUser.LastName),
			"message", text, "error", err.Error())
	}

	return res, err
}

func (b *Bot) seasonInfoText(user *data.User) string {
	if seasonInfo == nil {
		return ""
	}

	solPrice := b.priceClient.GetSolPriceUSD()
	prizeSol := float64(seasonInfo.TotalPrizePoolLamports) / float64(utils.LamportsPerSol)

	text := fmt.Sprintf("`%s`\n\n", reconcile.SeasonLabel(seasonInfo.SeasonID))
	text += fmt.Sprintf("`Ticket price:` $%s (≈%s SOL)\n",
		price.FormatUSD(b.cfg.Lottery.TicketPriceUSD), price.FormatSOL(b.priceClient.GetTicketPriceSOL()))
	text += fmt.Sprintf("`Tickets sold:` %v\n", seasonInfo.TotalTicketsSold)
	text += fmt.Sprintf("`Prize pool:` %s SOL (≈$%s)\n", price.FormatSOL(prizeSol), price.FormatUSD(prizeSol*solPrice))
	if seasonInfo.CommissionLamports > 0 {
		commissionSol := float64(seasonInfo.CommissionLamports) / float64(utils.LamportsPerSol)
		text += fmt.Sprintf("`Realized commission:` %s SOL\n", price.FormatSOL(commissionSol))
	}
	if seasonInfo.IsActive {
		remaining := time.Until(seasonInfo.EndTime)
		if remaining < 0 {
			remaining = 0
		}
		text += fmt.Sprintf("`Ends in:` %v\n", remaining.Round(time.Minute))
	} else {
		text += "`Status:` ended\n"
		if seasonInfo.Winner != "" {
			text += fmt.Sprintf("`Winner:` %s", utils.ShortenAddress(seasonInfo.Winner))
			if seasonInfo.WinnerTicketID != "" {
				text += fmt.Sprintf(" (%s)", seasonInfo.WinnerTicketID)
			}
			text += "\n"
		}
	}
	if user != nil {
		tickets := b.reconciler.GetUserTickets(context.Background(), user.Wallet)
		if len(tickets) == 1 {
			text += "\nYou have `1` ticket"
		} else if len(tickets) > 1 {
			text += fmt.Sprintf("\nYou have `%v` tickets", len(tickets))
		}
	}

	return text
}

func (b *Bot) sendSeasonInfo(user *data.User) (tgbotapi.Message, error) {
	text := b.seasonInfoText(user)
	if user == nil {
		return b.sendToGroup(text)
	}

	return b.sendMessage(user.ID, text)
}

func (b *Bot) buyTicket(user *data.User, count int64) {
	if seasonInfo == nil {
		return
	}

	if !seasonInfo.IsActive {
		b.sendMessage(user.ID, "⌛️ Please wait for the next season to start")
		return
	}

	balance, err := b.networkManager.GetBalance(context.Background(), user.Wallet)
	if err != nil {
		b.sendMessage(user.ID, "❗️ Network error. Please contact an administrator ("+err.Error()+")")
		return
	}

	needed := b.networkManager.PurchaseCostLamports(count) + utils.FeeBufferLamports
	if balance < needed {
		b.sendMessage(user.ID, fmt.Sprintf("⛔️ Not enough balance. You have %s SOL and you need %s SOL for the ticket(s) and the transaction fee",
			utils.SolString(balance), utils.SolString(needed)))
		return
	}

	pk := utils.GetPrivateKeyFromSeed(user.ID)
	seasonID := b.cfg.Lottery.CurrentSeasonID
	instructions := b.networkManager.BuildBuyTicket(pk.PublicKey(), seasonID, count)
	signature, err := b.networkManager.SubmitTransaction(context.Background(), instructions, pk)
	if err != nil {
		log.Error("buy ticket submission failed", "user", user.ID, "error", err)
		b.sendMessage(user.ID, "⛔️ Transaction failed. Please check your balance and try again.")
		return
	}

	format := fmt.Sprintf("`Buy %v ticket(s) in season #%v` - Status: ", count, seasonID)
	msg := tgbotapi.NewMessage(user.ID, fmt.Sprintf("%s[pending ⌛️](%s%s)", format, b.cfg.Network.ExplorerTransaction, signature))
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	res, err := b.tgBot.Send(msg)
	if err != nil {
		log.Warn("can not send buy ticket tx status message", "message", msg.Text, "error", err)
		return
	}

	go b.watchBuyTicketTx(signature, format, user, count, res.MessageID)
}

func (b *Bot) watchBuyTicketTx(signature string, format string, user *data.User, count int64, messageID int) {
	for attempt := 0; attempt < 24; attempt++ {
		time.Sleep(time.Second * 5)
		rec, err := b.networkManager.GetTransactionRecord(context.Background(), signature)
		if err != nil || rec == nil {
			continue
		}

		msg := tgbotapi.NewEditMessageText(user.ID, messageID, fmt.Sprintf("%s[success ✅](%s%s)",
			format, b.cfg.Network.ExplorerTransaction, signature))
		msg.ParseMode = tgbotapi.ModeMarkdown
		msg.DisableWebPagePreview = true
		b.tgBot.Send(msg)

		b.recordTickets(user, count, rec.BlockTime)
		return
	}

	msg := tgbotapi.NewEditMessageText(user.ID, messageID, fmt.Sprintf("%s[unknown ❌](%s%s)",
		format, b.cfg.Network.ExplorerTransaction, signature))
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	b.tgBot.Send(msg)
}

// recordTickets mints the sequential ticket numbers locally; the cache
// stays the numbering authority until the program assigns numbers.
func (b *Bot) recordTickets(user *data.User, count int64, purchaseTime time.Time) {
	seasonID := b.cfg.Lottery.CurrentSeasonID
	if purchaseTime.IsZero() {
		purchaseTime = time.Now()
	}

	next := len(b.cacheStore.SeasonTickets(seasonID)) + 1
	tickets := make([]*data.Ticket, 0, count)
	numbers := make([]string, 0, count)
	for i := int64(0); i < count; i++ {
		number := fmt.Sprintf("TKT-%06d", next+int(i))
		numbers = append(numbers, number)
		tickets = append(tickets, &data.Ticket{
			ID:            fmt.Sprintf("%v_%v", purchaseTime.UnixMilli(), i),
			SeasonID:      seasonID,
			WalletAddress: user.Wallet,
			PurchaseTime:  purchaseTime,
			TicketNumber:  number,
		})
	}

	b.cacheStore.Append(user.Wallet, tickets)
	b.cacheStore.AppendToSeason(seasonID, tickets)

	b.sendMessage(user.ID, fmt.Sprintf("🎫 Your ticket number(s): `%s`\nGood luck!", strings.Join(numbers, "`, `")))
}

func (b *Bot) sendMyTickets(user *data.User) {
	tickets := b.reconciler.GetUserTickets(context.Background(), user.Wallet)
	if len(tickets) == 0 {
		b.sendMessage(user.ID, "🚫 You have no tickets yet")
		return
	}

	text := fmt.Sprintf("`Your tickets` (%v)\n\n", len(tickets))
	for _, ticket := range tickets {
		text += fmt.Sprintf("`%s` - %s - %s\n",
			ticket.TicketNumber, reconcile.SeasonLabel(ticket.SeasonID), ticket.PurchaseTime.Format("2006-01-02 15:04"))
	}
	b.sendMessage(user.ID, text)
}

func (b *Bot) getOrCreateUser(tgUser *tgbotapi.User) *data.User {
	id := int64(tgUser.ID)
	user, ok := b.users[id]
	if !ok {
		user = &data.User{
			ID:     id,
			Wallet: utils.GetAddressFromPrivateKey(utils.GetPrivateKeyFromSeed(id)),
		}
		b.users[id] = user
	}

	tg, ok := b.tgUsers[id]
	if !ok || tg.UserName != tgUser.UserName || tg.FirstName != tgUser.FirstName || tg.LastName != tgUser.LastName {
		b.tgUsers[id] = &data.Telegram{
			ID:        id,
			UserName:  tgUser.UserName,
			FirstName: tgUser.FirstName,
			LastName:  tgUser.LastName,
		}
	}

	return user
}
